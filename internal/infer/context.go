// Package infer implements the two-phase, SCC-ordered constraint-based
// inference engine of spec §4.4-§4.8. Phase 1 forward-declares every
// top-level function (internal/graph supplies the reference graph and SCC
// order); Phase 2 infers each SCC's bodies, generalizing once every
// function in it has a body type. Constraint generation and the unifier
// are grounded on the teacher's internal/typesystem unify.go structuring
// (a per-kind-pair switch), re-expressed atop internal/types' union-find
// Type rather than the teacher's substitution map.
package infer

import (
	"github.com/boltlang/boltcheck/internal/cst"
	"github.com/boltlang/boltcheck/internal/diagnostics"
	"github.com/boltlang/boltcheck/internal/scope"
	"github.com/boltlang/boltcheck/internal/source"
	"github.com/boltlang/boltcheck/internal/types"
	"github.com/google/uuid"
)

// Context threads the ambient state every inference rule needs: the
// current type environment, the current function's declared return type
// (for `return` expressions), the set of type variables introduced by the
// current generalization unit (relevant to generalization — a variable
// bound in an enclosing, already-generalized scope must never be
// generalized again), and the constraint/diagnostic sinks.
//
// Locals is scoped to the current generalization unit (spec §4.5: an SCC's
// locally-introduced type variables are generalized together), not to
// every nested Child() call: Child opens a nested lexical Env for pattern
// bindings, but shares its parent's Locals so that a variable allocated
// three match-cases deep still counts toward the enclosing function/SCC's
// own set. NewScope is the one place that starts a fresh Locals set, once
// per SCC. global records every variable ever allocated in this check run,
// regardless of which Context allocated it, so that generalizing one SCC
// can tell "mine" (in Locals) apart from "someone else's, not yet owned by
// anybody else either" (in global but not in Locals) without having to
// walk every other SCC's Context.
type Context struct {
	Env         *types.TypeEnv
	ReturnType  *types.Type // nil outside a function body
	Locals      map[*types.Type]bool
	global      map[*types.Type]bool
	Constraints *[]Constraint
	Sink        *diagnostics.Sink
	Scopes      *scope.Table
	File        string
	RunID       uuid.UUID
	fresh       *counter
	// TypeCons maps a declared record/variant type name to the Con node
	// representing it, shared across the whole file so a function
	// signature anywhere can reference a type declared anywhere else in
	// the same file (spec §3.5: file-scope declarations are unordered).
	TypeCons map[string]*types.Type
}

type counter struct{ n uint32 }

func (c *counter) next() uint32 {
	c.n++
	return c.n
}

// NewRoot creates the outermost Context for one source file's inference
// run (spec §5: one Context tree per Check call, rooted here).
func NewRoot(file string, runID uuid.UUID, sink *diagnostics.Sink, scopes *scope.Table) *Context {
	constraints := make([]Constraint, 0, 64)
	return &Context{
		Env:         types.NewTypeEnv(nil),
		Locals:      make(map[*types.Type]bool),
		global:      make(map[*types.Type]bool),
		Constraints: &constraints,
		Sink:        sink,
		Scopes:      scopes,
		File:        file,
		RunID:       runID,
		fresh:       &counter{},
		TypeCons:    make(map[string]*types.Type),
	}
}

// Child opens a nested lexical Context (a block, a match case, a lambda
// body) sharing everything its parent has, including Locals: nesting an
// Env is necessary so pattern bindings shadow correctly, but a variable
// allocated anywhere within the current generalization unit still belongs
// to that unit, however many Child() calls deep it was introduced.
func (c *Context) Child() *Context {
	return &Context{
		Env:         types.NewTypeEnv(c.Env),
		ReturnType:  c.ReturnType,
		Locals:      c.Locals,
		global:      c.global,
		Constraints: c.Constraints,
		Sink:        c.Sink,
		Scopes:      c.Scopes,
		File:        c.File,
		RunID:       c.RunID,
		fresh:       c.fresh,
		TypeCons:    c.TypeCons,
	}
}

// NewScope opens a new generalization unit sharing this Context's Env
// directly (top-level declarations are flat siblings, not lexically
// nested, so Env.Define from any unit must be visible to every other),
// global registry, constraint/diagnostic sink, and fresh-variable counter,
// but starts a brand-new empty Locals set. The inference driver calls this
// once per SCC (spec §4.5: "the SCC's locally-introduced type variables")
// before declaring or inferring any of its member functions, so that
// Locals collects exactly the variables that SCC introduced and no others.
func (c *Context) NewScope() *Context {
	return &Context{
		Env:         c.Env,
		ReturnType:  c.ReturnType,
		Locals:      make(map[*types.Type]bool),
		global:      c.global,
		Constraints: c.Constraints,
		Sink:        c.Sink,
		Scopes:      c.Scopes,
		File:        c.File,
		RunID:       c.RunID,
		fresh:       c.fresh,
		TypeCons:    c.TypeCons,
	}
}

// FreshVar allocates a new unification variable, recorded both in the
// current generalization unit's Locals (so that unit's own Generalize call
// knows the variable is eligible) and in the run-wide global registry (so
// every OTHER unit's Generalize call knows the variable is already spoken
// for and must not be swept up too).
func (c *Context) FreshVar(name string) *types.Type {
	v := types.NewVar(c.fresh.next(), types.Unification, name)
	c.Locals[v] = true
	c.global[v] = true
	return v
}

// FreshRigid allocates a rigid (non-unifiable) variable, used for a
// function's own declared or scheme-bound type parameters.
func (c *Context) FreshRigid(name string) *types.Type {
	return types.NewVar(c.fresh.next(), types.Rigid, name)
}

// AddConstraint appends to the shared worklist (spec §4.8: constraints are
// data, collected during generation and solved afterward).
func (c *Context) AddConstraint(con Constraint) {
	*c.Constraints = append(*c.Constraints, con)
}

// Equal queues an equality constraint between two types observed at rng.
func (c *Context) Equal(a, b *types.Type, rng source.TextRange) {
	c.AddConstraint(&EqualConstraint{Left: a, Right: b, Range: rng})
}

func (c *Context) errorf(n cst.Node, code diagnostics.Code, format string, args ...interface{}) {
	c.Sink.Add(diagnostics.NewError(code, c.File, n.Range(), c.RunID, format, args...))
}
