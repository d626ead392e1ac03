package mcp

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/SaschaOnTour/rlm/internal/extract"
	"github.com/SaschaOnTour/rlm/internal/graph"
	"github.com/SaschaOnTour/rlm/internal/report"
)

// AddExtractTool registers the rlm_extract tool with an MCP server.
// This function is composable - it can be combined with other tool registrations.
func AddExtractTool(s *server.MCPServer, registry *extract.Registry) {
	tool := mcp.NewTool(
		"rlm_extract",
		mcp.WithDescription("Extract the structure of a source file: classes, functions, methods with parameters, return annotations and visibility, plus module-level call expressions. Provide either a file path, or source text with its language."),
		mcp.WithString("path",
			mcp.Description("Path of the file to extract. The language is inferred from the extension.")),
		mcp.WithString("source",
			mcp.Description("Source text to extract. Requires 'language'.")),
		mcp.WithString("language",
			mcp.Description("Language of 'source'. One of: python, go, java, rust.")),
	)

	s.AddTool(tool, createExtractHandler(registry))
}

// createExtractHandler creates the handler function for the rlm_extract tool.
func createExtractHandler(registry *extract.Registry) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		path, _ := argsMap["path"].(string)
		source, _ := argsMap["source"].(string)
		language, _ := argsMap["language"].(string)

		var (
			extractor extract.LanguageExtractor
			content   []byte
			err       error
		)
		switch {
		case path != "":
			extractor, err = registry.ForPath(path)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			content, err = os.ReadFile(path)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to read %s: %v", path, err)), nil
			}
		case source != "":
			if language == "" {
				return mcp.NewToolResultError("language parameter is required with source"), nil
			}
			extractor, err = registry.ForLanguage(language)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			content = []byte(source)
		default:
			return mcp.NewToolResultError("either path or source parameter is required"), nil
		}

		mod, err := extractor.Extract(content)
		if err != nil {
			if errors.Is(err, extract.ErrEmptyInput) || extract.IsParseError(err) {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return nil, fmt.Errorf("extraction failed: %w", err)
		}
		refs, err := extractor.References(content)
		if err != nil {
			return nil, fmt.Errorf("reference collection failed: %w", err)
		}

		out, err := report.Render(report.NewFileReport(path, content, mod, refs))
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(string(out)), nil
	}
}

// AddCallgraphTool registers the rlm_callgraph tool with an MCP server.
func AddCallgraphTool(s *server.MCPServer, cg *graph.Callgraph) {
	tool := mcp.NewTool(
		"rlm_callgraph",
		mcp.WithDescription("Look up the direct callers and callees of a symbol in the scanned codebase. Run a scan first to populate the store."),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Function or method name to query (e.g. 'helper', 'display').")),
	)

	s.AddTool(tool, createCallgraphHandler(cg))
}

// createCallgraphHandler creates the handler function for the rlm_callgraph tool.
func createCallgraphHandler(cg *graph.Callgraph) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		symbol, ok := argsMap["symbol"].(string)
		if !ok || symbol == "" {
			return mcp.NewToolResultError("symbol parameter is required"), nil
		}

		out, err := report.Render(cg.Query(symbol))
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(string(out)), nil
	}
}
