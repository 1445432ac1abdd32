package check_test

import (
	"testing"

	"github.com/boltlang/boltcheck/internal/cst"
	"github.com/boltlang/boltcheck/internal/source"
	"github.com/boltlang/boltcheck/pkg/check"
	"github.com/stretchr/testify/require"
)

func TestParseAnnotationsFindsTypeAndDiagnosticMarkers(t *testing.T) {
	file := source.NewTextFile("a.bolt", "let x = 1 # @: Int\nlet y = \"a\" + 1 # @expect_diagnostic(1004)\n")
	annotations := check.ParseAnnotations(file)
	require.Len(t, annotations, 2)
	require.Equal(t, "Int", annotations[0].ExpectedType)
	require.Equal(t, 1004, annotations[1].ExpectedCode)
}

func TestApplyAnnotationsPassesWhenTypeMatches(t *testing.T) {
	lit := &cst.LiteralExpr{Kind: cst.LiteralInt, Text: "1", IntVal: 1}
	lit.SetInferredType(nil)
	fn := &cst.FunctionDeclaration{
		Name: bind("f"),
		Body: &cst.FunctionBody{Expr: lit},
	}
	file := &cst.SourceFile{Path: "a.bolt", Decls: []cst.Decl{fn}}
	cst.SetParents(file)

	c := check.New()
	src := source.NewTextFile("a.bolt", "let f = 1 # @: Int\n")
	res := c.Check(src, file)
	require.Empty(t, res.Diagnostics)

	violations := check.ApplyAnnotations(src, file, res)
	require.Empty(t, violations)
}
