package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SaschaOnTour/rlm/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for structural code queries",
	Long: `Start the Model Context Protocol (MCP) server that lets coding
assistants extract source structure and query the call graph.

The MCP server:
- Serves the rlm_extract tool for on-demand extraction
- Serves the rlm_callgraph tool backed by the scanned store
- Reloads the call graph when the store file changes
- Communicates via stdio (standard MCP transport)

Example:
  rlm mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "rlm MCP Server\n")
	fmt.Fprintf(os.Stderr, "Store: %s\n\n", storePath(cfg))

	server, err := mcp.NewMCPServer(newRegistry(cfg), storePath(cfg))
	if err != nil {
		return err
	}
	defer server.Close()

	return server.Serve(cmd.Context())
}
