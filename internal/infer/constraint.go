package infer

import (
	"github.com/boltlang/boltcheck/internal/config"
	"github.com/boltlang/boltcheck/internal/diagnostics"
	"github.com/boltlang/boltcheck/internal/source"
	"github.com/boltlang/boltcheck/internal/types"
)

// Constraint is one deferred piece of the checking work, queued during
// generation and discharged by Solve (spec §4.8: "constraints are data").
type Constraint interface {
	// ready reports whether this constraint can be solved yet, and solve
	// applies it. A Field constraint is not ready until its Record operand
	// has resolved enough to know which field (or index) to project.
	ready() bool
	solve(s *solverState)
}

// EqualConstraint demands Left and Right unify.
type EqualConstraint struct {
	Left, Right *types.Type
	Range       source.TextRange
}

func (c *EqualConstraint) ready() bool { return true }

func (c *EqualConstraint) solve(s *solverState) {
	Unify(c.Left, c.Right, c.Range, s.ctx)
}

// FieldConstraint defers a tuple-index or record-field projection until
// Record's shape is known (spec §4.8): `e.0` or `e.name` queues one of
// these rather than unifying eagerly, so the solver can wait for Record's
// type to arrive from elsewhere in the queue.
type FieldConstraint struct {
	Record *types.Type
	Name   string // set when this is a named-field projection
	Index  int    // set (Name=="") when this is a tuple-index projection
	Result *types.Type
	Range  source.TextRange
}

func (c *FieldConstraint) ready() bool {
	root := types.Find(c.Record)
	if c.Name == "" {
		return root.Kind == types.KTuple
	}
	switch root.Kind {
	case types.KField, types.KNil:
		return true
	case types.KVar:
		return false
	default:
		// Any other concrete shape means projection is simply ill-typed;
		// report now rather than waiting forever.
		return true
	}
}

func (c *FieldConstraint) solve(s *solverState) {
	root := types.Find(c.Record)
	if c.Name == "" {
		if root.Kind != types.KTuple {
			s.ctx.Sink.Add(diagnostics.NewError(diagnostics.ErrFieldNotFound, s.ctx.File, c.Range, s.ctx.RunID,
				"value is not a tuple, cannot index .%d", c.Index))
			return
		}
		if c.Index < 0 || c.Index >= len(root.Elements) {
			s.ctx.Sink.Add(diagnostics.NewError(diagnostics.ErrTupleIndexOutOfRange, s.ctx.File, c.Range, s.ctx.RunID,
				"tuple has no element %d", c.Index))
			return
		}
		Unify(root.Elements[c.Index], c.Result, c.Range, s.ctx)
		return
	}
	cur := root
	for cur.Kind == types.KField {
		if cur.FieldName == c.Name {
			fieldTy := types.Find(cur.FieldTy)
			if fieldTy.Kind == types.KPresent {
				Unify(fieldTy.Inner, c.Result, c.Range, s.ctx)
			} else {
				Unify(fieldTy, c.Result, c.Range, s.ctx)
			}
			return
		}
		cur = types.Find(cur.Rest)
	}
	if cur.Kind == types.KVar {
		// Open row: the field may still appear once more record structure
		// arrives, but in a fully-generated program this should have been
		// constrained already. Extend the row speculatively.
		field := types.NewField(c.Name, types.NewPresent(c.Result), s.ctx.FreshVar(""))
		_ = types.Set(cur, field)
		return
	}
	s.ctx.Sink.Add(diagnostics.NewError(diagnostics.ErrFieldNotFound, s.ctx.File, c.Range, s.ctx.RunID,
		"no field named %q", c.Name))
}

// ClassConstraintItem demands that a type belongs to a class, checked
// against the InstanceMap once solving has settled the type's shape
// (spec §4.7).
type ClassConstraintItem struct {
	ClassName string
	Type      *types.Type
	Range     source.TextRange
}

func (c *ClassConstraintItem) ready() bool {
	root := types.Find(c.Type)
	return root.Kind != types.KVar
}

func (c *ClassConstraintItem) solve(s *solverState) {
	if !s.instances.Satisfies(c.ClassName, c.Type) {
		s.ctx.Sink.Add(diagnostics.NewError(diagnostics.ErrInvalidTypeForClass, s.ctx.File, c.Range, s.ctx.RunID,
			"type %s is not an instance of %s", c.Type.String(), c.ClassName))
	}
}

type solverState struct {
	ctx       *Context
	instances *InstanceMap
}

// Solve drains constraints to a fixed point using a FIFO main queue plus a
// secondary queue for constraints that are not yet ready (spec §4.8): each
// full pass over the main queue that makes at least one constraint ready
// (the "did-join" flag) triggers another pass; the process stops either
// when both queues are empty or the iteration bound from config.Tunables is
// hit, which is reported as an internal-error diagnostic rather than
// looping forever.
func Solve(ctx *Context, constraints []Constraint, instances *InstanceMap, tun config.Tunables) {
	s := &solverState{ctx: ctx, instances: instances}
	main := append([]Constraint(nil), constraints...)
	var secondary []Constraint

	iterations := 0
	for len(main) > 0 {
		iterations++
		if iterations > tun.MaxSolverIterations {
			ctx.Sink.Add(diagnostics.NewError(diagnostics.ErrInternalSolverStuck, ctx.File, source.TextRange{}, ctx.RunID,
				"constraint solver did not converge after %d iterations", tun.MaxSolverIterations))
			return
		}
		didJoin := false
		secondary = secondary[:0]
		for _, c := range main {
			if c.ready() {
				c.solve(s)
				didJoin = true
			} else {
				secondary = append(secondary, c)
			}
		}
		main, secondary = secondary, main[:0]
		if !didJoin {
			// Nothing more can become ready; whatever remains is reported
			// once each so forgotten row variables don't vanish silently.
			for _, c := range main {
				c.solve(s)
			}
			return
		}
	}
}
