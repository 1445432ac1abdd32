package infer

import (
	"github.com/boltlang/boltcheck/internal/cst"
	"github.com/boltlang/boltcheck/internal/types"
)

// resolveTypeExpr elaborates a syntactic type expression into a types.Type
// (spec §4.4: a declared type assertion is resolved once, up front, rather
// than inferred). tvars caches one rigid variable per lowercase type
// variable name seen within a single signature, so `a -> a` resolves both
// occurrences to the identical node.
func resolveTypeExpr(te cst.TypeExpr, ctx *Context, b *Builtins, tvars map[string]*types.Type) *types.Type {
	switch t := te.(type) {
	case *cst.TypeReferenceExpr:
		if len(t.Modules) == 0 {
			if con, ok := b.ConNamed(t.Name); ok {
				return con
			}
			if con, ok := ctx.TypeCons[t.Name]; ok {
				return con
			}
		}
		// Unknown at resolution time (e.g. forward reference to a type not
		// yet walked in this pass, or genuinely undeclared): allocate a
		// placeholder Con so inference can proceed. No diagnostic is
		// raised for the unresolved name, here or by any caller.
		return types.NewCon(nextConID(), t.Name)

	case *cst.TypeVarExpr:
		if v, ok := tvars[t.Name]; ok {
			return v
		}
		v := ctx.FreshRigid(t.Name)
		tvars[t.Name] = v
		return v

	case *cst.TypeAppExpr:
		return types.NewApp(resolveTypeExpr(t.Op, ctx, b, tvars), resolveTypeExpr(t.Arg, ctx, b, tvars))

	case *cst.TypeArrowExpr:
		params := make([]*types.Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = resolveTypeExpr(p, ctx, b, tvars)
		}
		return types.BuildArrow(params, resolveTypeExpr(t.Return, ctx, b, tvars))

	case *cst.TypeNestedExpr:
		return resolveTypeExpr(t.Inner, ctx, b, tvars)

	case *cst.TypeTupleExpr:
		elems := make([]*types.Type, len(t.Elements))
		for i, e := range t.Elements {
			elems[i] = resolveTypeExpr(e, ctx, b, tvars)
		}
		return types.NewTuple(elems...)

	case *cst.TypeRecordExpr:
		fields := make(map[string]*types.Type, len(t.Fields))
		for _, f := range t.Fields {
			fields[f.Name] = resolveTypeExpr(f.Type, ctx, b, tvars)
		}
		var tail *types.Type
		if t.Rest != nil {
			tail = resolveTypeExpr(t.Rest, ctx, b, tvars)
		}
		return types.BuildRow(fields, tail)

	case *cst.TypeQualifiedExpr:
		body := resolveTypeExpr(t.Body, ctx, b, tvars)
		for _, c := range t.Constraints {
			if tc, ok := c.(cst.TypeclassConstraintExpr); ok {
				for _, varName := range tc.Vars {
					if v, ok := tvars[varName]; ok {
						v.Classes[tc.ClassName] = true
					}
				}
			}
		}
		return body

	default:
		return ctx.FreshVar("")
	}
}
