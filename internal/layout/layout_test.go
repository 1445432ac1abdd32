package layout

import (
	"testing"

	"github.com/google/uuid"

	"github.com/boltlang/boltcheck/internal/diagnostics"
	"github.com/boltlang/boltcheck/internal/source"
	"github.com/boltlang/boltcheck/internal/token"
)

func scanString(t *testing.T, text string) ([]token.Token, *diagnostics.Sink) {
	t.Helper()
	file := source.NewTextFile("<test>", text)
	sink := diagnostics.NewSink()
	lex := New(file, uuid.New(), sink)
	return Scan(lex), sink
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tk := range toks {
		out[i] = tk.Kind
	}
	return out
}

func TestEmptySourceYieldsEndOfFile(t *testing.T) {
	toks, sink := scanString(t, "")
	if len(toks) != 1 || toks[0].Kind != token.EndOfFile {
		t.Fatalf("expected single EndOfFile token, got %v", kinds(toks))
	}
	if sink.HasErrors() {
		t.Fatalf("expected no diagnostics, got %v", sink.Items())
	}
}

func TestSingleIntegerLiteral(t *testing.T) {
	toks, sink := scanString(t, "1")
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Items())
	}
	ks := kinds(toks)
	if len(ks) < 2 || ks[0] != token.IntegerLiteral {
		t.Fatalf("expected IntegerLiteral first, got %v", ks)
	}
	if ks[len(ks)-1] != token.EndOfFile {
		t.Fatalf("expected trailing EndOfFile, got %v", ks)
	}
}

func TestBlockStartEndBalance(t *testing.T) {
	src := "let f x =.\n  x\nlet g y = y\n"
	toks, sink := scanString(t, src)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Items())
	}
	depth := 0
	maxDepth := 0
	for _, tk := range toks {
		switch tk.Kind {
		case token.BlockStart:
			depth++
			if depth > maxDepth {
				maxDepth = depth
			}
		case token.BlockEnd:
			depth--
			if depth < 0 {
				t.Fatalf("BlockEnd without matching BlockStart")
			}
		}
	}
	if depth != 0 {
		t.Fatalf("unbalanced blocks, final depth %d", depth)
	}
	if maxDepth == 0 {
		t.Fatalf("expected at least one BlockStart/BlockEnd pair for the '.' block form")
	}
}

func TestIntegerOverflowIsUnexpectedString(t *testing.T) {
	_, sink := scanString(t, "99999999999999999999999999")
	if !sink.HasErrors() {
		t.Fatalf("expected overflow diagnostic")
	}
	found := false
	for _, d := range sink.Items() {
		if d.Code == diagnostics.ErrUnexpectedString {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ErrUnexpectedString among %v", sink.Items())
	}
}

func TestStringEscapes(t *testing.T) {
	toks, sink := scanString(t, `"a\nb"`)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Items())
	}
	if toks[0].Kind != token.StringLiteral || toks[0].Text != "a\nb" {
		t.Fatalf("expected decoded string literal, got %q", toks[0].Text)
	}
}

func TestKeywordVsIdentifierClassification(t *testing.T) {
	toks, _ := scanString(t, "let Foo foo")
	if toks[0].Kind != token.LetKeyword {
		t.Fatalf("expected LetKeyword, got %v", toks[0].Kind)
	}
	if toks[1].Kind != token.IdentifierAlt {
		t.Fatalf("expected IdentifierAlt, got %v", toks[1].Kind)
	}
	if toks[2].Kind != token.Identifier {
		t.Fatalf("expected Identifier, got %v", toks[2].Kind)
	}
}

func TestAssignmentReclassification(t *testing.T) {
	toks, _ := scanString(t, "x += 1")
	// "+=" should become Assignment carrying "+" as its text.
	found := false
	for _, tk := range toks {
		if tk.Kind == token.Assignment && tk.Text == "+" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Assignment('+') token among %v", toks)
	}
}
