package infer

import (
	"strconv"

	"github.com/boltlang/boltcheck/internal/cst"
	"github.com/boltlang/boltcheck/internal/diagnostics"
	"github.com/boltlang/boltcheck/internal/source"
	"github.com/boltlang/boltcheck/internal/types"
)

// InferExpr produces e's type, queuing whatever constraints its sub-
// expressions require and recording the result on e itself via
// SetInferredType (spec §4.4: every expression node carries its inferred
// type once inference completes).
func InferExpr(e cst.Expr, ctx *Context, b *Builtins) *types.Type {
	ty := inferExpr(e, ctx, b)
	e.SetInferredType(ty)
	return ty
}

func inferExpr(e cst.Expr, ctx *Context, b *Builtins) *types.Type {
	switch t := e.(type) {
	case *cst.ReferenceExpr:
		return inferReference(t, ctx, b)

	case *cst.LiteralExpr:
		switch t.Kind {
		case cst.LiteralInt:
			checkIntegerWidth(t, ctx)
			return b.Int
		case cst.LiteralString:
			return b.String
		}
		return ctx.FreshVar("")

	case *cst.CallExpr:
		fnTy := InferExpr(t.Fn, ctx, b)
		argTys := make([]*types.Type, len(t.Args))
		for i, a := range t.Args {
			argTys[i] = InferExpr(a, ctx, b)
		}
		resultTy := ctx.FreshVar("")
		ctx.Equal(fnTy, types.BuildArrow(argTys, resultTy), t.Range())
		return resultTy

	case *cst.InfixExpr:
		leftTy := InferExpr(t.Left, ctx, b)
		rightTy := InferExpr(t.Right, ctx, b)
		return inferOperatorCall(t.Op, []*types.Type{leftTy, rightTy}, t.Range(), ctx, b)

	case *cst.PrefixExpr:
		argTy := InferExpr(t.Arg, ctx, b)
		return inferOperatorCall(t.Op, []*types.Type{argTy}, t.Range(), ctx, b)

	case *cst.MemberExpr:
		recordTy := InferExpr(t.Expr, ctx, b)
		resultTy := ctx.FreshVar("")
		fc := &FieldConstraint{Record: recordTy, Result: resultTy, Range: t.Range()}
		if t.IsIndex {
			fc.Index = t.Index
		} else {
			fc.Name = t.Name
		}
		ctx.AddConstraint(fc)
		return resultTy

	case *cst.TupleExpr:
		elems := make([]*types.Type, len(t.Elements))
		for i, el := range t.Elements {
			elems[i] = InferExpr(el, ctx, b)
		}
		return types.NewTuple(elems...)

	case *cst.RecordExpr:
		fields := make(map[string]*types.Type, len(t.Fields))
		for _, f := range t.Fields {
			fields[f.Name] = InferExpr(f.Value, ctx, b)
		}
		return types.BuildRow(fields, nil)

	case *cst.MatchExpr:
		return inferMatch(t, ctx, b)

	case *cst.IfExpr:
		return inferIf(t, ctx, b)

	case *cst.NestedExpr:
		return InferExpr(t.Inner, ctx, b)

	case *cst.BlockExpr:
		return inferBlock(t, ctx, b)

	case *cst.ReturnExpr:
		var valueTy *types.Type
		if t.Value != nil {
			valueTy = InferExpr(t.Value, ctx, b)
		} else {
			valueTy = b.Unit
		}
		if ctx.ReturnType != nil {
			ctx.Equal(ctx.ReturnType, valueTy, t.Range())
		}
		return b.Unit

	case *cst.FunctionExpr:
		return inferFunctionExpr(t, ctx, b)

	default:
		return ctx.FreshVar("")
	}
}

func inferReference(t *cst.ReferenceExpr, ctx *Context, b *Builtins) *types.Type {
	scheme, ok := ctx.Env.Lookup(t.Name, types.EnvVar)
	if !ok {
		scheme, ok = ctx.Env.Lookup(t.Name, types.EnvConstructor)
	}
	if !ok {
		ctx.Sink.Add(diagnostics.NewError(diagnostics.ErrBindingNotFound, ctx.File, t.Range(), ctx.RunID,
			"undefined reference %q", t.Name))
		return ctx.FreshVar("")
	}
	body, constraints := types.Instantiate(scheme, func(classes []string, name string) *types.Type {
		v := ctx.FreshVar(name)
		for _, c := range classes {
			v.Classes[c] = true
		}
		return v
	})
	for _, c := range constraints {
		ctx.AddConstraint(&ClassConstraintItem{ClassName: c.ClassName, Type: c.Type, Range: t.Range()})
	}
	return body
}

func inferOperatorCall(op string, argTys []*types.Type, rng source.TextRange, ctx *Context, b *Builtins) *types.Type {
	scheme, ok := b.Env().Lookup(op, types.EnvVar)
	if !ok {
		scheme, ok = ctx.Env.Lookup(op, types.EnvVar)
	}
	if !ok {
		ctx.Sink.Add(diagnostics.NewError(diagnostics.ErrBindingNotFound, ctx.File, rng, ctx.RunID,
			"unknown operator %q", op))
		return ctx.FreshVar("")
	}
	body, constraints := types.Instantiate(scheme, func(classes []string, name string) *types.Type {
		v := ctx.FreshVar(name)
		for _, c := range classes {
			v.Classes[c] = true
		}
		return v
	})
	for _, c := range constraints {
		ctx.AddConstraint(&ClassConstraintItem{ClassName: c.ClassName, Type: c.Type, Range: rng})
	}
	resultTy := ctx.FreshVar("")
	ctx.Equal(body, types.BuildArrow(argTys, resultTy), rng)
	return resultTy
}

// checkIntegerWidth flags an integer literal whose text could not fit in a
// signed 64-bit value (spec §2a/§8 boundary scenario: i64::MAX overflow).
func checkIntegerWidth(lit *cst.LiteralExpr, ctx *Context) {
	if lit.Text == "" {
		return
	}
	if _, err := strconv.ParseInt(lit.Text, 10, 64); err != nil {
		ctx.Sink.Add(diagnostics.NewError(diagnostics.ErrUnexpectedString, ctx.File, lit.Range(), ctx.RunID,
			"integer literal %q does not fit in a 64-bit signed integer", lit.Text))
	}
}

func inferIf(t *cst.IfExpr, ctx *Context, b *Builtins) *types.Type {
	resultTy := ctx.FreshVar("")
	for _, p := range t.Parts {
		if p.Test != nil {
			testTy := InferExpr(p.Test, ctx, b)
			ctx.Equal(testTy, b.Bool, p.Test.Range())
		}
		bodyTy := InferExpr(p.Body, ctx, b)
		ctx.Equal(resultTy, bodyTy, p.Body.Range())
	}
	return resultTy
}

func inferMatch(t *cst.MatchExpr, ctx *Context, b *Builtins) *types.Type {
	var scrutineeTy *types.Type
	if t.Scrutinee != nil {
		scrutineeTy = InferExpr(t.Scrutinee, ctx, b)
	} else {
		scrutineeTy = ctx.FreshVar("")
	}
	resultTy := ctx.FreshVar("")
	for _, c := range t.Cases {
		cctx := ctx.Child()
		InferPattern(c.Pattern, scrutineeTy, cctx, b, map[string]*types.Type{})
		bodyTy := InferExpr(c.Body, cctx, b)
		ctx.Equal(resultTy, bodyTy, c.Body.Range())
	}
	if t.Scrutinee == nil {
		return types.NewArrow(scrutineeTy, resultTy)
	}
	return resultTy
}

func inferBlock(t *cst.BlockExpr, ctx *Context, b *Builtins) *types.Type {
	bctx := ctx.Child()
	var last *types.Type = b.Unit
	for _, el := range t.Elements {
		switch n := el.(type) {
		case *cst.VariableDeclaration:
			var declared *types.Type
			if n.TypeAssert != nil {
				declared = resolveTypeExpr(n.TypeAssert, bctx, b, map[string]*types.Type{})
			} else {
				declared = bctx.FreshVar(n.Pattern.Name)
			}
			if n.Value != nil {
				valueTy := InferExpr(n.Value, bctx, b)
				bctx.Equal(declared, valueTy, n.Range())
			}
			bctx.Env.Define(n.Pattern.Name, types.EnvVar, types.Mono(declared))
			last = b.Unit
		case cst.Expr:
			last = InferExpr(n, bctx, b)
		}
	}
	return last
}

func inferFunctionExpr(t *cst.FunctionExpr, ctx *Context, b *Builtins) *types.Type {
	fctx := ctx.Child()
	tvars := map[string]*types.Type{}
	paramTys := make([]*types.Type, len(t.Params))
	for i, p := range t.Params {
		paramTys[i] = fctx.FreshVar("")
		InferPattern(p, paramTys[i], fctx, b, tvars)
	}
	retTy := fctx.FreshVar("")
	fctx.ReturnType = retTy
	if t.Body != nil {
		if t.Body.Expr != nil {
			bodyTy := InferExpr(t.Body.Expr, fctx, b)
			fctx.Equal(retTy, bodyTy, t.Body.Expr.Range())
		}
		if t.Body.Block != nil {
			blockTy := inferBlock(t.Body.Block, fctx, b)
			fctx.Equal(retTy, blockTy, t.Body.Block.Range())
		}
	}
	return types.BuildArrow(paramTys, retTy)
}
