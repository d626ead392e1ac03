// Package cli implements the rlm command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/SaschaOnTour/rlm/internal/config"
)

var (
	rootDir string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rlm",
	Short: "Extract the structure of source code",
	Long: `rlm parses source files with tree-sitter and reports their
structure: classes, functions and methods with parameters, return
annotations and visibility, plus module-level call expressions.

Single files are extracted directly; whole directories are scanned
into a local SQLite store that backs call-graph queries and the MCP
server.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "C", ".", "project root (holds .rlm/config.yml and the store)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the project configuration relative to --root.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Store: %s\n", cfg.Store.Path)
	}
	return cfg, nil
}

// storePath resolves the configured store path against --root.
func storePath(cfg *config.Config) string {
	path := cfg.Store.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(rootDir, path)
	}
	return path
}
