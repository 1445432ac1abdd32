// Package scope builds the lexical scope tree of spec §3.5 and §4.2. Scopes
// attach to source-file nodes, function declarations and block expressions
// (match cases get a child scope during building that is not recorded in
// the table); rather than embedding a *Scope field on those cst.Node
// structs (which would force internal/cst to import this package while this
// package must import internal/cst to walk the tree), scopes are kept in an
// external side table keyed by cst.Node, following the teacher's own
// preference for small, composable maps over deeply cross-referenced
// structs (see internal/symbols' table-keyed-by-node design).
package scope

import "github.com/boltlang/boltcheck/internal/cst"

// SymbolKind distinguishes the four namespaces spec §3.5 keeps separate:
// a record field name and a value binding of the same spelling do not
// collide.
type SymbolKind int

const (
	Var SymbolKind = iota
	Type
	Class
	Constructor
)

func (k SymbolKind) String() string {
	switch k {
	case Var:
		return "var"
	case Type:
		return "type"
	case Class:
		return "class"
	case Constructor:
		return "constructor"
	default:
		return "unknown"
	}
}

type key struct {
	name string
	kind SymbolKind
}

// Symbol is one named thing introduced in a Scope: a variable binding, a
// type name, a class name, or a data constructor.
type Symbol struct {
	Name string
	Kind SymbolKind
	// Node is the declaring CST node (a *cst.FunctionDeclaration,
	// *cst.VariableDeclaration, *cst.BindPattern, *cst.RecordDeclaration,
	// *cst.VariantDeclaration, or *cst.ClassDeclaration; a data constructor's
	// Node is its enclosing *cst.VariantDeclaration).
	Node cst.Node
}

// Scope is a multimap of (name, kind) -> Symbol with a parent link, per
// spec §3.5 ("a lookup walks outward through parent scopes until it finds a
// matching (name, kind) pair, or exhausts the chain").
type Scope struct {
	parent  *Scope
	symbols map[key]*Symbol
}

func newScope(parent *Scope) *Scope {
	return &Scope{parent: parent, symbols: make(map[key]*Symbol)}
}

// Define adds a symbol to s, shadowing any same-(name,kind) symbol visible
// from an enclosing scope. Redefinition within the same Scope overwrites
// silently; no duplicate-definition diagnostic is raised, here or by the
// inference driver.
func (s *Scope) Define(sym *Symbol) {
	s.symbols[key{sym.Name, sym.Kind}] = sym
}

// Lookup walks s and its ancestors for the nearest (name, kind) symbol.
func (s *Scope) Lookup(name string, kind SymbolKind) (*Symbol, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if sym, ok := cur.symbols[key{name, kind}]; ok {
			return sym, true
		}
	}
	return nil, false
}

// LocalLookup checks only s itself, not its ancestors.
func (s *Scope) LocalLookup(name string, kind SymbolKind) (*Symbol, bool) {
	sym, ok := s.symbols[key{name, kind}]
	return sym, ok
}

// Parent returns s's enclosing scope, or nil for the root.
func (s *Scope) Parent() *Scope { return s.parent }

// Table is the side table mapping scope-introducing CST nodes to their
// Scope. A caller that needs "what scope is node n in" for a non-scope-
// introducing node should walk n.Parent() until it finds a node present in
// the table.
type Table struct {
	byNode map[cst.Node]*Scope
}

func NewTable() *Table {
	return &Table{byNode: make(map[cst.Node]*Scope)}
}

func (t *Table) Get(n cst.Node) (*Scope, bool) {
	s, ok := t.byNode[n]
	return s, ok
}

// ScopeFor returns the nearest enclosing Scope for n, walking up through
// parents until it reaches a node present in the table (or the root).
func (t *Table) ScopeFor(n cst.Node) *Scope {
	for cur := n; cur != nil; cur = cur.Parent() {
		if s, ok := t.byNode[cur]; ok {
			return s
		}
	}
	return nil
}

func (t *Table) set(n cst.Node, s *Scope) {
	t.byNode[n] = s
}
