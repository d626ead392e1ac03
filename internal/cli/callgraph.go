package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SaschaOnTour/rlm/internal/graph"
	"github.com/SaschaOnTour/rlm/internal/report"
	"github.com/SaschaOnTour/rlm/internal/store"
)

// callgraphCmd represents the callgraph command
var callgraphCmd = &cobra.Command{
	Use:   "callgraph <symbol>",
	Short: "Show the direct callers and callees of a symbol",
	Long: `Query the call graph built from the last scan and print the
direct callers and callees of a function or method as JSON.

Example:
  rlm callgraph helper`,
	Args: cobra.ExactArgs(1),
	RunE: runCallgraph,
}

func init() {
	rootCmd.AddCommand(callgraphCmd)
}

func runCallgraph(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(storePath(cfg))
	if err != nil {
		return err
	}
	defer st.Close()

	cg, err := graph.New(st)
	if err != nil {
		return err
	}

	symbol := args[0]
	if verbose && !cg.Known(symbol) {
		fmt.Fprintf(cmd.ErrOrStderr(), "note: %s is not a declared callable in the store\n", symbol)
	}

	out, err := report.Render(cg.Query(symbol))
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
