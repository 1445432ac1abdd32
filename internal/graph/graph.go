// Package graph builds the top-level reference graph used to order
// inference by strongly connected component (spec §4.4 Phase 1). It is
// grounded on _examples/original_source/src/Checker.cc's populate/
// strongconnect pair, which builds exactly this graph over function
// declarations before generalizing.
package graph

import "github.com/boltlang/boltcheck/internal/cst"

// Graph is a reference graph over top-level function declarations: an edge
// u -> v means u's body references v (a callee-to-caller edge is recorded
// as caller -> callee here, i.e. edges point from referrer to referent,
// matching the direction Tarjan's algorithm expects for "is reachable
// from").
type Graph struct {
	nodes []*cst.FunctionDeclaration
	index map[*cst.FunctionDeclaration]int
	edges [][]int
}

func New() *Graph {
	return &Graph{index: make(map[*cst.FunctionDeclaration]int)}
}

func (g *Graph) AddNode(fn *cst.FunctionDeclaration) int {
	if i, ok := g.index[fn]; ok {
		return i
	}
	i := len(g.nodes)
	g.nodes = append(g.nodes, fn)
	g.edges = append(g.edges, nil)
	g.index[fn] = i
	return i
}

// AddEdge records that from references to (from's body mentions to's
// name). Both must already have been added via AddNode.
func (g *Graph) AddEdge(from, to *cst.FunctionDeclaration) {
	fi, ok := g.index[from]
	if !ok {
		return
	}
	ti, ok := g.index[to]
	if !ok {
		return
	}
	g.edges[fi] = append(g.edges[fi], ti)
}

// Populate walks decls, adding a node for every FunctionDeclaration and an
// edge for every ReferenceExpr found in its body that resolves (by name
// only — spec §4.4 notes this graph is a syntactic over-approximation, not
// a scope-resolved one, so an edge is added whenever a same-named function
// declaration exists at top level, shadowing notwithstanding) to another
// top-level function. A parameter that shadows a top-level name still
// yields an edge here; Phase 2 inference, which has real scope
// information, is authoritative for binding, not this graph.
func Populate(decls []cst.Decl) *Graph {
	g := New()
	byName := make(map[string]*cst.FunctionDeclaration)
	var fns []*cst.FunctionDeclaration
	for _, d := range decls {
		if fn, ok := d.(*cst.FunctionDeclaration); ok {
			fns = append(fns, fn)
			if fn.Name != nil {
				byName[fn.Name.Name] = fn
			}
			g.AddNode(fn)
		}
	}
	for _, fn := range fns {
		refs := collectReferences(fn)
		for _, name := range refs {
			if target, ok := byName[name]; ok {
				g.AddEdge(fn, target)
			}
		}
	}
	return g
}

func collectReferences(fn *cst.FunctionDeclaration) []string {
	var names []string
	var walk func(cst.Node)
	walk = func(n cst.Node) {
		if n == nil {
			return
		}
		if ref, ok := n.(*cst.ReferenceExpr); ok && len(ref.Modules) == 0 {
			names = append(names, ref.Name)
		}
		for _, c := range cst.Children(n) {
			walk(c)
		}
	}
	if fn.Body != nil {
		if fn.Body.Expr != nil {
			walk(fn.Body.Expr)
		}
		if fn.Body.Block != nil {
			walk(fn.Body.Block)
		}
	}
	return names
}

// SCC is one strongly connected component, in the node-membership order
// Tarjan's algorithm discovered it.
type SCC struct {
	Decls []*cst.FunctionDeclaration
}

// SortedSCCs runs Tarjan's algorithm and returns components in the order
// Tarjan completes them (reverse topological order of the referrer→referent
// edges): a component containing only callees of another always comes
// before the caller's component, matching spec §4.4's requirement that a
// callee be fully generalized before its caller is inferred.
func (g *Graph) SortedSCCs() []SCC {
	t := &tarjan{
		g:       g,
		index:   make([]int, len(g.nodes)),
		low:     make([]int, len(g.nodes)),
		onStack: make([]bool, len(g.nodes)),
	}
	for i := range t.index {
		t.index[i] = -1
	}
	for v := range g.nodes {
		if t.index[v] == -1 {
			t.strongconnect(v)
		}
	}
	out := make([]SCC, len(t.sccs))
	for i, comp := range t.sccs {
		decls := make([]*cst.FunctionDeclaration, len(comp))
		for j, idx := range comp {
			decls[j] = g.nodes[idx]
		}
		out[i] = SCC{Decls: decls}
	}
	return out
}

// tarjan implements Tarjan's strongly-connected-components algorithm
// recursively; recursion depth is bounded by call graph depth (no explicit
// bound is imposed, matching original_source's own recursive strongconnect).
type tarjan struct {
	g       *Graph
	counter int
	index   []int
	low     []int
	onStack []bool
	stack   []int
	sccs    [][]int
}

func (t *tarjan) strongconnect(v int) {
	t.index[v] = t.counter
	t.low[v] = t.counter
	t.counter++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range t.g.edges[v] {
		if t.index[w] == -1 {
			t.strongconnect(w)
			if t.low[w] < t.low[v] {
				t.low[v] = t.low[w]
			}
		} else if t.onStack[w] {
			if t.index[w] < t.low[v] {
				t.low[v] = t.index[w]
			}
		}
	}

	if t.low[v] == t.index[v] {
		var comp []int
		for {
			n := len(t.stack) - 1
			w := t.stack[n]
			t.stack = t.stack[:n]
			t.onStack[w] = false
			comp = append(comp, w)
			if w == v {
				break
			}
		}
		t.sccs = append(t.sccs, comp)
	}
}
