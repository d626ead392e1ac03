// Package graph builds an in-memory call graph from the stored
// declarations and calls, and answers caller/callee queries.
package graph

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dominikbraun/graph"

	"github.com/SaschaOnTour/rlm/internal/extract"
	"github.com/SaschaOnTour/rlm/internal/store"
)

// Node is one declaration in the call graph.
type Node struct {
	ID     string `json:"id"`
	Kind   string `json:"kind"`
	Parent string `json:"parent,omitempty"`
}

// SymbolGraph is the answer to a call-graph query: who calls the
// symbol, and whom the symbol calls.
type SymbolGraph struct {
	Symbol  string   `json:"symbol"`
	Callers []string `json:"callers"`
	Callees []string `json:"callees"`
}

// Callgraph holds the directed call graph with reverse indexes for
// O(1) lookups. Safe for concurrent queries; Reload swaps the graph
// under a write lock.
type Callgraph struct {
	store *store.Store
	mu    sync.RWMutex

	graph graph.Graph[string, *Node]

	callers map[string][]string // symbol -> [callers]
	callees map[string][]string // symbol -> [callees]
}

// New builds a call graph from the store's current contents.
func New(st *store.Store) (*Callgraph, error) {
	cg := &Callgraph{store: st}
	if err := cg.Reload(context.Background()); err != nil {
		return nil, err
	}
	return cg, nil
}

// Reload rebuilds the graph and indexes from the store.
func (cg *Callgraph) Reload(ctx context.Context) error {
	cg.mu.Lock()
	defer cg.mu.Unlock()

	decls, err := cg.store.AllDeclarations()
	if err != nil {
		return fmt.Errorf("failed to load declarations: %w", err)
	}
	calls, err := cg.store.AllCalls()
	if err != nil {
		return fmt.Errorf("failed to load calls: %w", err)
	}

	cg.graph = graph.New(func(n *Node) string { return n.ID }, graph.Directed())
	cg.callers = make(map[string][]string)
	cg.callees = make(map[string][]string)

	for i := range decls {
		d := &decls[i]
		// Containers are not call targets; only callables become nodes.
		if d.Kind != extract.KindFunction && d.Kind != extract.KindMethod {
			continue
		}
		node := &Node{ID: d.Name, Kind: string(d.Kind), Parent: d.Parent}
		// Duplicate names across files collapse into one node.
		_ = cg.graph.AddVertex(node)
	}

	for _, call := range calls {
		from := call.Enclosing
		if from == "" {
			// Module-top-level call; attribute it to the file.
			from = call.Path
		}
		to := BaseName(call.Callee)

		// Edges to symbols outside the scanned tree are kept in the
		// indexes even when the graph has no matching vertex.
		_ = cg.graph.AddEdge(from, to)

		cg.callees[from] = appendUnique(cg.callees[from], to)
		cg.callers[to] = appendUnique(cg.callers[to], from)
	}

	return nil
}

// Query returns the direct callers and callees of a symbol. A symbol
// with no declaration and no edges yields an empty SymbolGraph.
func (cg *Callgraph) Query(symbol string) *SymbolGraph {
	cg.mu.RLock()
	defer cg.mu.RUnlock()

	sg := &SymbolGraph{
		Symbol:  symbol,
		Callers: sortedCopy(cg.callers[symbol]),
		Callees: sortedCopy(cg.callees[symbol]),
	}
	return sg
}

// Known reports whether the symbol is a declared callable.
func (cg *Callgraph) Known(symbol string) bool {
	cg.mu.RLock()
	defer cg.mu.RUnlock()

	if cg.graph == nil {
		return false
	}
	_, err := cg.graph.Vertex(symbol)
	return err == nil
}

// BaseName reduces a callee expression to its final symbol segment:
// "cfg.display" and "Config::new" resolve to "display" and "new".
func BaseName(callee string) string {
	if i := strings.LastIndex(callee, "::"); i >= 0 {
		callee = callee[i+2:]
	}
	if i := strings.LastIndex(callee, "."); i >= 0 {
		callee = callee[i+1:]
	}
	return callee
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

func sortedCopy(list []string) []string {
	out := make([]string, len(list))
	copy(out, list)
	sort.Strings(out)
	return out
}
