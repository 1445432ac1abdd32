package infer

import (
	"github.com/boltlang/boltcheck/internal/diagnostics"
	"github.com/boltlang/boltcheck/internal/source"
	"github.com/boltlang/boltcheck/internal/types"
)

// Unify attempts to make a and b equal, mutating the union-find structure
// in place via types.Set, and recording a Type Mismatch diagnostic on
// failure (spec §4.6). It is grounded on the teacher's internal/typesystem
// unifier's per-kind-pair switch, re-targeted at union-find roots: instead
// of building and applying a Subst map, each successful branch calls
// types.Set directly so later Find calls observe the binding immediately.
func Unify(a, b *types.Type, rng source.TextRange, ctx *Context) {
	ra, rb := types.Find(a), types.Find(b)
	if ra == rb {
		return
	}

	if ra.Kind == types.KVar {
		unifyVar(ra, rb, rng, ctx)
		return
	}
	if rb.Kind == types.KVar {
		unifyVar(rb, ra, rng, ctx)
		return
	}

	if ra.Kind != rb.Kind {
		mismatch(ra, rb, rng, ctx)
		return
	}

	switch ra.Kind {
	case types.KCon:
		if ra.ConID != rb.ConID {
			mismatch(ra, rb, rng, ctx)
		}

	case types.KApp:
		Unify(ra.Op, rb.Op, rng, ctx)
		Unify(ra.Arg, rb.Arg, rng, ctx)

	case types.KArrow:
		Unify(ra.Param, rb.Param, rng, ctx)
		Unify(ra.Return, rb.Return, rng, ctx)

	case types.KTuple:
		if len(ra.Elements) != len(rb.Elements) {
			mismatch(ra, rb, rng, ctx)
			return
		}
		for i := range ra.Elements {
			Unify(ra.Elements[i], rb.Elements[i], rng, ctx)
		}

	case types.KNil, types.KAbsent:
		// Both nullary and already equal-kind: nothing further to check.

	case types.KPresent:
		Unify(ra.Inner, rb.Inner, rng, ctx)

	case types.KField:
		unifyRows(ra, rb, rng, ctx)

	default:
		mismatch(ra, rb, rng, ctx)
	}
}

func unifyVar(v, other *types.Type, rng source.TextRange, ctx *Context) {
	if v == types.Find(other) {
		return
	}
	if other.Kind == types.KVar {
		// A rigid variable must always be the survivor, never the bind
		// target: types.Set only ever assigns a unification variable's
		// root (original_source/src/Checker.cc's two-variable case picks
		// the non-rigid side as From regardless of id). Only when both
		// sides are unification variables do we tie-break by VarID,
		// preferring to keep the lexically outer/older one (lower VarID)
		// as the surviving root, matching original_source's preference
		// for stable display names during error reporting.
		if v.VarSort == types.Rigid {
			v, other = other, v
		} else if other.VarSort != types.Rigid && v.VarID < other.VarID {
			v, other = other, v
		}
	}
	if types.Contains(other, v) {
		ctx.Sink.Add(diagnostics.NewError(diagnostics.ErrTypeMismatch, ctx.File, rng, ctx.RunID,
			"occurs check failed: %s occurs in %s", v.String(), other.String()))
		return
	}
	if err := types.Set(v, other); err != nil {
		ctx.Sink.Add(diagnostics.NewError(diagnostics.ErrTypeMismatch, ctx.File, rng, ctx.RunID,
			"%s", err.Error()))
	}
}

func mismatch(a, b *types.Type, rng source.TextRange, ctx *Context) {
	ctx.Sink.Add(diagnostics.NewError(diagnostics.ErrTypeMismatch, ctx.File, rng, ctx.RunID,
		"type mismatch: expected %s, found %s", a.String(), b.String()))
}

// unifyRows unifies two row types field-by-field (spec §3.3/§4.6): since
// rows are cons-lists, two rows naming the same fields in different orders
// can still unify — a field present in a but not (yet) in b unifies
// against an open tail of b, and vice versa, failing only once both tails
// are closed (Nil) and a name remains unmatched.
func unifyRows(a, b *types.Type, rng source.TextRange, ctx *Context) {
	aFields, aTail := flattenRow(a)
	bFields, bTail := flattenRow(b)

	matchedB := make(map[string]bool)
	for name, aTy := range aFields {
		if bTy, ok := bFields[name]; ok {
			Unify(aTy, bTy, rng, ctx)
			matchedB[name] = true
			continue
		}
		// a has a field b does not (yet) have: extend b's tail if open.
		if types.Find(bTail).Kind == types.KVar {
			newTail := ctx.FreshVar("")
			_ = types.Set(types.Find(bTail), types.NewField(name, aTy, newTail))
			bTail = newTail
			matchedB[name] = true
			continue
		}
		ctx.Sink.Add(diagnostics.NewError(diagnostics.ErrFieldNotFound, ctx.File, rng, ctx.RunID,
			"missing field %q", name))
	}
	for name, bTy := range bFields {
		if matchedB[name] {
			continue
		}
		if types.Find(aTail).Kind == types.KVar {
			newTail := ctx.FreshVar("")
			_ = types.Set(types.Find(aTail), types.NewField(name, bTy, newTail))
			aTail = newTail
			continue
		}
		ctx.Sink.Add(diagnostics.NewError(diagnostics.ErrFieldNotFound, ctx.File, rng, ctx.RunID,
			"missing field %q", name))
	}
	Unify(aTail, bTail, rng, ctx)
}

// flattenRow walks a KField chain into a name->type map plus its trailing
// tail (a KNil, KVar, or other non-Field type).
func flattenRow(row *types.Type) (map[string]*types.Type, *types.Type) {
	fields := make(map[string]*types.Type)
	cur := types.Find(row)
	for cur.Kind == types.KField {
		fields[cur.FieldName] = cur.FieldTy
		cur = types.Find(cur.Rest)
	}
	return fields, cur
}
