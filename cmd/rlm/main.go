package main

import "github.com/SaschaOnTour/rlm/internal/cli"

func main() {
	cli.Execute()
}
