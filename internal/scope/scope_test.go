package scope_test

import (
	"testing"

	"github.com/boltlang/boltcheck/internal/cst"
	"github.com/boltlang/boltcheck/internal/scope"
	"github.com/stretchr/testify/require"
)

func bind(name string) *cst.BindPattern {
	return &cst.BindPattern{Name: name}
}

func TestFunctionParamsVisibleInBody(t *testing.T) {
	fn := &cst.FunctionDeclaration{
		Name:   bind("id"),
		Params: []cst.Pattern{bind("x")},
		Body: &cst.FunctionBody{
			Expr: &cst.ReferenceExpr{Name: "x"},
		},
	}
	file := &cst.SourceFile{Decls: []cst.Decl{fn}}
	cst.SetParents(file)

	table := scope.Build(file)
	fnScope, ok := table.Get(fn)
	require.True(t, ok)

	sym, ok := fnScope.Lookup("x", scope.Var)
	require.True(t, ok)
	require.Equal(t, "x", sym.Name)

	_, ok = fnScope.Lookup("y", scope.Var)
	require.False(t, ok)
}

func TestTopLevelNameVisibleToLaterDeclarations(t *testing.T) {
	id := &cst.FunctionDeclaration{
		Name:   bind("id"),
		Params: []cst.Pattern{bind("x")},
		Body:   &cst.FunctionBody{Expr: &cst.ReferenceExpr{Name: "x"}},
	}
	main := &cst.FunctionDeclaration{
		Name: bind("main"),
		Body: &cst.FunctionBody{
			Expr: &cst.CallExpr{
				Fn:   &cst.ReferenceExpr{Name: "id"},
				Args: []cst.Expr{&cst.LiteralExpr{Kind: cst.LiteralInt, IntVal: 42}},
			},
		},
	}
	file := &cst.SourceFile{Decls: []cst.Decl{id, main}}
	cst.SetParents(file)

	table := scope.Build(file)
	fileScope, ok := table.Get(file)
	require.True(t, ok)

	_, ok = fileScope.Lookup("id", scope.Var)
	require.True(t, ok)
	_, ok = fileScope.Lookup("main", scope.Var)
	require.True(t, ok)
}

func TestVariantConstructorsAndTypeNameDeclared(t *testing.T) {
	decl := &cst.VariantDeclaration{
		Name: "Option",
		Members: []cst.VariantMember{
			{Name: "None"},
			{Name: "Some", Fields: []cst.TypeExpr{&cst.TypeReferenceExpr{Name: "Int"}}},
		},
	}
	file := &cst.SourceFile{Decls: []cst.Decl{decl}}
	cst.SetParents(file)

	table := scope.Build(file)
	fileScope, _ := table.Get(file)

	_, ok := fileScope.Lookup("Option", scope.Type)
	require.True(t, ok)
	_, ok = fileScope.Lookup("None", scope.Constructor)
	require.True(t, ok)
	_, ok = fileScope.Lookup("Some", scope.Constructor)
	require.True(t, ok)
}

func TestMatchCaseBindingsAreIsolatedPerCase(t *testing.T) {
	match := &cst.MatchExpr{
		Scrutinee: &cst.ReferenceExpr{Name: "opt"},
		Cases: []cst.MatchCase{
			{Pattern: &cst.NamedTuplePattern{Ctor: "Some", Args: []cst.Pattern{bind("v")}}, Body: &cst.ReferenceExpr{Name: "v"}},
			{Pattern: &cst.NamedTuplePattern{Ctor: "None", BareConstructor: true}, Body: &cst.LiteralExpr{Kind: cst.LiteralInt, IntVal: 0}},
		},
	}
	fn := &cst.FunctionDeclaration{
		Name: bind("unwrapOr0"),
		Body: &cst.FunctionBody{Expr: match},
	}
	file := &cst.SourceFile{Decls: []cst.Decl{fn}}
	cst.SetParents(file)

	table := scope.Build(file)
	fnScope, ok := table.Get(fn)
	require.True(t, ok)

	// "v" is bound inside the first case only, not visible from the
	// function's own scope.
	_, ok = fnScope.Lookup("v", scope.Var)
	require.False(t, ok)
}

func TestLocalLookupDoesNotSeeParent(t *testing.T) {
	fn := &cst.FunctionDeclaration{
		Name:   bind("f"),
		Params: []cst.Pattern{bind("x")},
		Body:   &cst.FunctionBody{Expr: &cst.ReferenceExpr{Name: "x"}},
	}
	file := &cst.SourceFile{Decls: []cst.Decl{fn}}
	cst.SetParents(file)

	table := scope.Build(file)
	fileScope, _ := table.Get(file)
	fnScope, _ := table.Get(fn)

	_, ok := fileScope.LocalLookup("x", scope.Var)
	require.False(t, ok)
	_, ok = fnScope.LocalLookup("x", scope.Var)
	require.True(t, ok)
}
