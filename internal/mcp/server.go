// Package mcp exposes extraction and call-graph queries as MCP tools
// over stdio.
package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/SaschaOnTour/rlm/internal/extract"
	"github.com/SaschaOnTour/rlm/internal/graph"
	"github.com/SaschaOnTour/rlm/internal/store"
)

// MCPServer manages the MCP server lifecycle.
type MCPServer struct {
	store     *store.Store
	registry  *extract.Registry
	callgraph *graph.Callgraph
	watcher   *FileWatcher
	mcp       *server.MCPServer
}

// NewMCPServer opens the store at storePath and wires up the tools.
// The call graph reloads automatically when the store file changes.
func NewMCPServer(registry *extract.Registry, storePath string) (*MCPServer, error) {
	st, err := store.Open(storePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	cg, err := graph.New(st)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to build call graph: %w", err)
	}

	mcpServer := server.NewMCPServer(
		"rlm-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	AddExtractTool(mcpServer, registry)
	AddCallgraphTool(mcpServer, cg)

	watcher, err := NewFileWatcher(cg, filepath.Dir(storePath))
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &MCPServer{
		store:     st,
		registry:  registry,
		callgraph: cg,
		watcher:   watcher,
		mcp:       mcpServer,
	}, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *MCPServer) Serve(ctx context.Context) error {
	s.watcher.Start(ctx)
	defer s.watcher.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio...")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		cancel()
		return nil
	case err := <-errCh:
		cancel()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases all resources.
func (s *MCPServer) Close() error {
	if s.watcher != nil {
		s.watcher.Stop()
	}
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
