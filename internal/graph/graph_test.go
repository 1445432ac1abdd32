package graph_test

import (
	"testing"

	"github.com/boltlang/boltcheck/internal/cst"
	"github.com/boltlang/boltcheck/internal/graph"
	"github.com/stretchr/testify/require"
)

func fn(name string, body cst.Expr) *cst.FunctionDeclaration {
	return &cst.FunctionDeclaration{
		Name: &cst.BindPattern{Name: name},
		Body: &cst.FunctionBody{Expr: body},
	}
}

func ref(name string) *cst.ReferenceExpr { return &cst.ReferenceExpr{Name: name} }

func TestCalleeSCCPrecedesCaller(t *testing.T) {
	id := fn("id", ref("x"))
	main := fn("main", &cst.CallExpr{Fn: ref("id"), Args: []cst.Expr{&cst.LiteralExpr{Kind: cst.LiteralInt, IntVal: 1}}})

	g := graph.Populate([]cst.Decl{id, main})
	sccs := g.SortedSCCs()
	require.Len(t, sccs, 2)

	pos := make(map[string]int)
	for i, s := range sccs {
		for _, d := range s.Decls {
			pos[d.Name.Name] = i
		}
	}
	require.Less(t, pos["id"], pos["main"])
}

func TestMutualRecursionFormsSingleSCC(t *testing.T) {
	even := fn("even", &cst.CallExpr{Fn: ref("odd"), Args: nil})
	odd := fn("odd", &cst.CallExpr{Fn: ref("even"), Args: nil})

	g := graph.Populate([]cst.Decl{even, odd})
	sccs := g.SortedSCCs()
	require.Len(t, sccs, 1)
	require.Len(t, sccs[0].Decls, 2)
}

func TestIndependentFunctionsFormSeparateSCCs(t *testing.T) {
	a := fn("a", &cst.LiteralExpr{Kind: cst.LiteralInt, IntVal: 1})
	b := fn("b", &cst.LiteralExpr{Kind: cst.LiteralInt, IntVal: 2})

	g := graph.Populate([]cst.Decl{a, b})
	sccs := g.SortedSCCs()
	require.Len(t, sccs, 2)
}
