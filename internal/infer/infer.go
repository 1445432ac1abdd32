package infer

import (
	"github.com/boltlang/boltcheck/internal/config"
	"github.com/boltlang/boltcheck/internal/cst"
	"github.com/boltlang/boltcheck/internal/diagnostics"
	"github.com/boltlang/boltcheck/internal/graph"
	"github.com/boltlang/boltcheck/internal/scope"
	"github.com/boltlang/boltcheck/internal/types"
	"github.com/google/uuid"
)

// Result is the outcome of running inference over one source file.
type Result struct {
	Diagnostics []*diagnostics.DiagnosticError
}

// Run performs the full two-phase inference pass over file (spec §4.4):
// Phase 1 forward-declares every top-level function in SCC order, Phase 2
// infers bodies in the same order, generalizing each SCC once its bodies
// are inferred. file must already have had cst.SetParents applied.
func Run(filePath string, root *cst.SourceFile, runID uuid.UUID, b *Builtins, instances *InstanceMap, tun config.Tunables) *Result {
	sink := diagnostics.NewSink()
	scopes := scope.Build(root)

	ctx := NewRoot(filePath, runID, sink, scopes)
	ctx.Env = types.NewTypeEnv(b.Env())

	declareNonFunctionTopLevel(root, ctx, b)

	g := graph.Populate(root.Decls)
	sccs := g.SortedSCCs()

	// Each SCC gets its own generalization-unit Context (spec §4.5: "the
	// SCC's locally-introduced type variables") so that generalizing one
	// SCC's functions can tell its own freshly-allocated variables apart
	// from every other SCC's — including SCCs not yet processed, whose
	// forward-declared provisional variables must not be swept into an
	// earlier SCC's scheme just because they are still unification
	// variables and still free at generalization time.
	sccScopes := make([]*Context, len(sccs))

	// Phase 1: forward-declare every function in every SCC so that calls
	// made before a callee's own body has been inferred still see a
	// provisional type (spec §4.4 Phase 1).
	for i, comp := range sccs {
		sctx := ctx.NewScope()
		sccScopes[i] = sctx
		for _, fn := range comp.Decls {
			declareFunctionProvisional(fn, sctx, b)
		}
	}

	// Phase 2: infer each SCC's bodies in dependency order, then
	// generalize (spec §4.4 Phase 2, §4.5). Constraints accumulated so far
	// are solved before each SCC is generalized — not only at the very
	// end — since generalization must see this SCC's own equalities
	// already applied (e.g. a parameter unified with the return type)
	// to abstract over the right, merged set of free variables. Re-
	// solving earlier SCCs' already-settled constraints here is
	// redundant but harmless: unifying two already-identical roots is a
	// no-op.
	for i, comp := range sccs {
		inferSCC(comp, sccScopes[i], b, instances, tun)
	}

	Solve(ctx, *ctx.Constraints, instances, tun)

	if len(sink.Items()) > tun.MaxDiagnostics {
		return &Result{Diagnostics: sink.Items()[:tun.MaxDiagnostics]}
	}
	return &Result{Diagnostics: sink.Items()}
}

// declareNonFunctionTopLevel installs record/variant constructor schemes
// and top-level `let` bindings' declared-or-fresh types into ctx.Env before
// any function body is inferred, since a function may reference a sibling
// record type or constant declared anywhere in the file (spec §3.5: file
// scope has no ordering requirement for non-function declarations).
func declareNonFunctionTopLevel(root *cst.SourceFile, ctx *Context, b *Builtins) {
	for _, d := range root.Decls {
		switch t := d.(type) {
		case *cst.RecordDeclaration:
			declareRecord(t, ctx, b)
		case *cst.VariantDeclaration:
			declareVariant(t, ctx, b)
		case *cst.VariableDeclaration:
			var declared *types.Type
			if t.TypeAssert != nil {
				declared = resolveTypeExpr(t.TypeAssert, ctx, b, map[string]*types.Type{})
			} else {
				declared = ctx.FreshVar(t.Pattern.Name)
			}
			ctx.Env.Define(t.Pattern.Name, types.EnvVar, types.Mono(declared))
		}
	}
}

func declareRecord(d *cst.RecordDeclaration, ctx *Context, b *Builtins) {
	head := types.NewCon(nextConID(), d.Name)
	ctx.TypeCons[d.Name] = head
	fields := make(map[string]*types.Type, len(d.Fields))
	tvars := map[string]*types.Type{}
	for _, f := range d.Fields {
		fields[f.Name] = resolveTypeExpr(f.Type, ctx, b, tvars)
	}
	row := types.BuildRow(fields, nil)
	var params []*types.Type
	for _, f := range d.Fields {
		params = append(params, fields[f.Name])
	}
	ctorTy := types.BuildArrow(params, head)
	_ = row
	ctx.Env.Define(d.Name, types.EnvConstructor, types.Mono(ctorTy))
}

func declareVariant(d *cst.VariantDeclaration, ctx *Context, b *Builtins) {
	head := types.NewCon(nextConID(), d.Name)
	ctx.TypeCons[d.Name] = head
	for _, m := range d.Members {
		tvars := map[string]*types.Type{}
		var params []*types.Type
		for _, fte := range m.Fields {
			params = append(params, resolveTypeExpr(fte, ctx, b, tvars))
		}
		ctorTy := types.BuildArrow(params, head)
		ctx.Env.Define(m.Name, types.EnvConstructor, types.Mono(ctorTy))
	}
}

// declareFunctionProvisional installs fn's Phase-1 provisional scheme: its
// declared type if one was written, otherwise a fresh unification variable
// per parameter and a fresh return variable (spec §4.4 Phase 1).
func declareFunctionProvisional(fn *cst.FunctionDeclaration, ctx *Context, b *Builtins) {
	tvars := map[string]*types.Type{}
	var paramTys []*types.Type
	for _, p := range fn.Params {
		paramTys = append(paramTys, patternExpectedType(p, ctx, b, tvars))
	}
	var retTy *types.Type
	if fn.TypeAssert != nil {
		full := resolveTypeExpr(fn.TypeAssert, ctx, b, tvars)
		fn.ProvisionalType = full
	} else {
		retTy = ctx.FreshVar(fn.Name.Name + ".ret")
		fn.ProvisionalType = types.BuildArrow(paramTys, retTy)
	}
	if fn.Name != nil {
		ctx.Env.Define(fn.Name.Name, types.EnvVar, types.Mono(fn.ProvisionalType))
	}
}

// patternExpectedType allocates a fresh unification variable (named after
// the binder for a plain bind pattern) as the type a top-level pattern
// parameter is expected to have, without yet
// binding names into any environment — declareFunctionProvisional only
// needs the shape, Phase 2's inferFunctionBody does the actual binding.
func patternExpectedType(p cst.Pattern, ctx *Context, b *Builtins, tvars map[string]*types.Type) *types.Type {
	if bp, ok := p.(*cst.BindPattern); ok {
		return ctx.FreshVar(bp.Name)
	}
	return ctx.FreshVar("")
}

// inferSCC infers every function body in comp, marking each IsCycleActive
// while any of them is still being processed (spec §4.4: a self- or
// mutually-recursive reference within the active SCC reuses the live
// provisional type directly instead of instantiating a Scheme), then
// generalizes each once the whole component's bodies have been inferred.
func inferSCC(comp graph.SCC, ctx *Context, b *Builtins, instances *InstanceMap, tun config.Tunables) {
	for _, fn := range comp.Decls {
		fn.IsCycleActive = true
	}
	for _, fn := range comp.Decls {
		inferFunctionBody(fn, ctx, b)
	}
	for _, fn := range comp.Decls {
		fn.IsCycleActive = false
	}
	Solve(ctx, *ctx.Constraints, instances, tun)
	for _, fn := range comp.Decls {
		generalizeFunction(fn, ctx, b)
	}
}

func inferFunctionBody(fn *cst.FunctionDeclaration, ctx *Context, b *Builtins) {
	fctx := ctx.Child()
	tvars := map[string]*types.Type{}

	provisional := types.Find(fn.ProvisionalType)
	paramTys, retTy := uncurryArrow(provisional, len(fn.Params))
	fctx.ReturnType = retTy

	for i, p := range fn.Params {
		var expect *types.Type
		if i < len(paramTys) {
			expect = paramTys[i]
		} else {
			expect = fctx.FreshVar("")
		}
		InferPattern(p, expect, fctx, b, tvars)
	}

	if fn.Body == nil {
		return
	}
	if fn.Body.Expr != nil {
		bodyTy := InferExpr(fn.Body.Expr, fctx, b)
		fctx.Equal(retTy, bodyTy, fn.Body.Expr.Range())
	}
	if fn.Body.Block != nil {
		blockTy := inferBlock(fn.Body.Block, fctx, b)
		fctx.Equal(retTy, blockTy, fn.Body.Block.Range())
	}
}

// uncurryArrow splits a (possibly partially-applied) arrow type into its
// first n parameter types and the remaining return type.
func uncurryArrow(t *types.Type, n int) ([]*types.Type, *types.Type) {
	var params []*types.Type
	cur := types.Find(t)
	for i := 0; i < n; i++ {
		if cur.Kind != types.KArrow {
			break
		}
		params = append(params, cur.Param)
		cur = types.Find(cur.Return)
	}
	return params, cur
}

// generalizeFunction computes fn's final Scheme from its inferred type,
// abstracting over every unification variable this function's SCC itself
// introduced (ctx.Locals, per spec §4.5) and excluding every variable some
// OTHER SCC, or the top-level non-function declarations, already claimed
// (ctx.global minus ctx.Locals). ctx is expected to be the per-SCC Context
// returned by Context.NewScope, not the file-wide root Context: fn's own
// parameter and return provisional variables, and every fresh variable its body
// inference introduced at any Child() nesting depth, were recorded into
// this same ctx.Locals as they were allocated (see Context.FreshVar), so
// they are correctly excluded from notOwned and so correctly generalized —
// the bug this replaces excluded them by conflating "introduced by this
// SCC" with "introduced anywhere in the whole run so far".
func generalizeFunction(fn *cst.FunctionDeclaration, ctx *Context, b *Builtins) {
	notOwned := make(map[*types.Type]bool, len(ctx.global))
	for v := range ctx.global {
		if !ctx.Locals[v] {
			notOwned[v] = true
		}
	}
	scheme := types.Generalize(fn.ProvisionalType, notOwned, nil)
	if fn.Name != nil {
		ctx.Env.Define(fn.Name.Name, types.EnvVar, scheme)
	}
}
