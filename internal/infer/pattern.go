package infer

import (
	"github.com/boltlang/boltcheck/internal/cst"
	"github.com/boltlang/boltcheck/internal/diagnostics"
	"github.com/boltlang/boltcheck/internal/source"
	"github.com/boltlang/boltcheck/internal/types"
)

// InferPattern binds every name p introduces into ctx.Env with the
// appropriate sub-type of expected, and queues an equality constraint
// tying expected to p's own structural shape (spec §4.4 pattern rules).
// tvars is only consulted for nested type assertions; patterns here carry
// no such assertions of their own, so it is threaded through unchanged.
func InferPattern(p cst.Pattern, expected *types.Type, ctx *Context, b *Builtins, tvars map[string]*types.Type) {
	switch t := p.(type) {
	case *cst.BindPattern:
		ctx.Env.Define(t.Name, types.EnvVar, types.Mono(expected))

	case *cst.LiteralPattern:
		var lit *types.Type
		switch t.Kind {
		case cst.LiteralInt:
			lit = b.Int
		case cst.LiteralString:
			lit = b.String
		}
		ctx.Equal(expected, lit, t.Range())

	case *cst.TuplePattern:
		elemTys := make([]*types.Type, len(t.Elements))
		for i := range t.Elements {
			elemTys[i] = ctx.FreshVar("")
		}
		ctx.Equal(expected, types.NewTuple(elemTys...), t.Range())
		for i, e := range t.Elements {
			InferPattern(e, elemTys[i], ctx, b, tvars)
		}

	case *cst.NestedPattern:
		InferPattern(t.Inner, expected, ctx, b, tvars)

	case *cst.ListPattern:
		// Lists are represented as the built-in "List" constructor applied
		// to the element type (spec §2a supplements no dedicated List
		// primitive; this mirrors how the rest of the checker treats any
		// single-argument generic constructor).
		elemTy := ctx.FreshVar("")
		listCon, ok := ctx.TypeCons["List"]
		if !ok {
			listCon = types.NewCon(nextConID(), "List")
			ctx.TypeCons["List"] = listCon
		}
		ctx.Equal(expected, types.NewApp(listCon, elemTy), t.Range())
		for _, e := range t.Elements {
			InferPattern(e, elemTy, ctx, b, tvars)
		}

	case *cst.NamedTuplePattern:
		scheme, ok := ctx.Env.Lookup(t.Ctor, types.EnvConstructor)
		if !ok {
			ctx.Sink.Add(diagnostics.NewError(diagnostics.ErrBindingNotFound, ctx.File, t.Range(), ctx.RunID,
				"unknown constructor %q", t.Ctor))
			for _, a := range t.Args {
				InferPattern(a, ctx.FreshVar(""), ctx, b, tvars)
			}
			return
		}
		ctorTy, _ := types.Instantiate(scheme, func(classes []string, name string) *types.Type {
			v := ctx.FreshVar(name)
			for _, c := range classes {
				v.Classes[c] = true
			}
			return v
		})
		paramTys, retTy := uncurryArrow(ctorTy, len(t.Args))
		ctx.Equal(expected, retTy, t.Range())
		for i, a := range t.Args {
			var pty *types.Type
			if i < len(paramTys) {
				pty = paramTys[i]
			} else {
				pty = ctx.FreshVar("")
			}
			InferPattern(a, pty, ctx, b, tvars)
		}

	case *cst.RecordPattern:
		inferRowPattern(t.Fields, expected, t.Range(), ctx, b, tvars)

	case *cst.NamedRecordPattern:
		scheme, ok := ctx.Env.Lookup(t.Ctor, types.EnvConstructor)
		if ok {
			ctorTy, _ := types.Instantiate(scheme, func(classes []string, name string) *types.Type {
				return ctx.FreshVar(name)
			})
			_, retTy := uncurryArrow(ctorTy, 0)
			ctx.Equal(expected, retTy, t.Range())
		}
		inferRowPattern(t.Fields, ctx.FreshVar(""), t.Range(), ctx, b, tvars)

	default:
		// Unrecognized pattern kind: nothing to bind.
	}
}

func inferRowPattern(fields []cst.RecordPatternField, expected *types.Type, rng source.TextRange, ctx *Context, b *Builtins, tvars map[string]*types.Type) {
	rowFields := make(map[string]*types.Type)
	for _, f := range fields {
		if f.DotDot {
			continue
		}
		fty := ctx.FreshVar("")
		rowFields[f.Name] = fty
		if f.SubPattern != nil {
			InferPattern(f.SubPattern, fty, ctx, b, tvars)
		} else {
			ctx.Env.Define(f.Name, types.EnvVar, types.Mono(fty))
		}
	}
	hasOpen := false
	var tailPattern cst.Pattern
	for _, f := range fields {
		if f.DotDot {
			hasOpen = true
			tailPattern = f.SubPattern
		}
	}
	var tail *types.Type
	if hasOpen {
		tail = ctx.FreshVar("")
		if tailPattern != nil {
			InferPattern(tailPattern, tail, ctx, b, tvars)
		}
	}
	ctx.Equal(expected, types.BuildRow(rowFields, tail), rng)
}
