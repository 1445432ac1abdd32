package check

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/boltlang/boltcheck/internal/cst"
	"github.com/boltlang/boltcheck/internal/diagnostics"
	"github.com/boltlang/boltcheck/internal/source"
)

// Annotation is one `@: T` type assertion or `@expect_diagnostic(N)`
// expectation found in a source file's comments (spec §6.2-§6.3). They let
// a source file pin down its expected behavior without a separate
// expectation file.
type Annotation struct {
	Line         uint64
	ExpectedType string // set for an `@: T` annotation
	ExpectedCode int     // set (nonzero) for an `@expect_diagnostic(N)` annotation
}

var (
	typeAnnotationRe = regexp.MustCompile(`@:\s*(.+?)\s*$`)
	expectDiagRe     = regexp.MustCompile(`@expect_diagnostic\((\d+)\)`)
)

// ParseAnnotations scans file's source text line by line for trailing
// `@: T` or `@expect_diagnostic(N)` comments.
func ParseAnnotations(file *source.TextFile) []Annotation {
	var out []Annotation
	lines := strings.Split(file.Text, "\n")
	for i, line := range lines {
		lineNo := uint64(i + 1)
		if m := expectDiagRe.FindStringSubmatch(line); m != nil {
			code, err := strconv.Atoi(m[1])
			if err == nil {
				out = append(out, Annotation{Line: lineNo, ExpectedCode: code})
			}
			continue
		}
		if m := typeAnnotationRe.FindStringSubmatch(line); m != nil {
			out = append(out, Annotation{Line: lineNo, ExpectedType: m[1]})
		}
	}
	return out
}

// ApplyAnnotations cross-checks root's inferred expression types and
// result's diagnostics against every annotation found in file, returning
// one synthetic diagnostic per violated annotation (spec §6.3: annotation
// mismatches are reported the same way any other checking failure is,
// through the diagnostic sink, so a host needs no separate assertion
// mechanism to drive this checker from fixtures). Each
// `@expect_diagnostic(N)` annotation consumes one diagnostic of code N
// starting on its line, removing it from result.Diagnostics.
func ApplyAnnotations(file *source.TextFile, root *cst.SourceFile, result *Result) []*diagnostics.DiagnosticError {
	annotations := ParseAnnotations(file)
	if len(annotations) == 0 {
		return nil
	}
	exprsByLine := make(map[uint64][]cst.Expr)
	collectExprs(root, exprsByLine)

	var out []*diagnostics.DiagnosticError
	for _, a := range annotations {
		if a.ExpectedCode != 0 {
			idx := -1
			for i, d := range result.Diagnostics {
				if d.Range.Start.Line == a.Line && int(d.Code) == a.ExpectedCode {
					idx = i
					break
				}
			}
			if idx < 0 {
				out = append(out, diagnostics.NewError(diagnostics.ErrTypeMismatch, file.Path,
					source.TextRange{Start: source.TextLoc{Line: a.Line, Column: 1}}, result.RunID,
					"expected diagnostic %d on this line, none was reported", a.ExpectedCode))
			} else {
				result.Diagnostics = append(result.Diagnostics[:idx:idx], result.Diagnostics[idx+1:]...)
			}
			continue
		}
		exprs := exprsByLine[a.Line]
		if len(exprs) == 0 {
			continue
		}
		found := false
		for _, e := range exprs {
			if e.InferredType() != nil && e.InferredType().String() == a.ExpectedType {
				found = true
				break
			}
		}
		if !found {
			var got string
			if exprs[0].InferredType() != nil {
				got = exprs[0].InferredType().String()
			}
			out = append(out, diagnostics.NewError(diagnostics.ErrTypeMismatch, file.Path,
				source.TextRange{Start: source.TextLoc{Line: a.Line, Column: 1}}, result.RunID,
				"annotation expected type %q, inferred %q", a.ExpectedType, got))
		}
	}
	return out
}

func collectExprs(n cst.Node, out map[uint64][]cst.Expr) {
	if n == nil {
		return
	}
	if e, ok := n.(cst.Expr); ok {
		line := e.Range().End.Line
		out[line] = append(out[line], e)
	}
	for _, c := range cst.Children(n) {
		collectExprs(c, out)
	}
}

