package layout

import "github.com/boltlang/boltcheck/internal/token"

// tokenStream is a small peekable buffer over the raw Lexer, giving the
// punctuator the Tokens.peek()/peek(1)/get() shape that
// original_source/src/Scanner.cc's Punctuator is written against.
type tokenStream struct {
	lex *Lexer
	buf []token.Token
}

func newTokenStream(lex *Lexer) *tokenStream {
	return &tokenStream{lex: lex}
}

func (s *tokenStream) fill(n int) {
	for len(s.buf) <= n {
		s.buf = append(s.buf, s.lex.NextToken())
	}
}

func (s *tokenStream) peek() token.Token {
	s.fill(0)
	return s.buf[0]
}

func (s *tokenStream) peekN(n int) token.Token {
	s.fill(n)
	return s.buf[n]
}

func (s *tokenStream) get() token.Token {
	s.fill(0)
	t := s.buf[0]
	s.buf = s.buf[1:]
	return t
}

// frameType is either a Block (an indented region) or a LineFold (a single
// logical, possibly multi-line, statement), per spec §4.1/GLOSSARY.
type frameType int

const (
	frameBlock frameType = iota
	frameLineFold
)

// Punctuator is the off-side-rule state machine. It is a direct port of
// original_source/src/Scanner.cc's Punctuator class.
//
// The frame stack and the reference-location stack are NOT pushed/popped in
// lockstep — this mirrors the original exactly, and is not an oversight:
// only LineFold frames ever own a dedicated reference location (pushed when
// a Block frame decides to open a fold, popped when that fold closes). A
// Block frame — whether the outermost one or one opened by a trailing "."
// — always reads whatever reference location the nearest enclosing
// LineFold (or the initial (0,0) sentinel) left on top; it never pushes or
// pops one of its own. So the Locations stack is addressed by
// topRefLoc() regardless of whether the top frame is itself a Block.
type Punctuator struct {
	tokens  *tokenStream
	frames  []frameType
	refLocs []token.TLoc
}

// NewPunctuator wraps lex with the layout post-pass.
func NewPunctuator(lex *Lexer) *Punctuator {
	return &Punctuator{
		tokens:  newTokenStream(lex),
		frames:  []frameType{frameBlock},
		refLocs: []token.TLoc{{Line: 0, Column: 0}},
	}
}

func (p *Punctuator) pushFrameOnly(ft frameType) {
	p.frames = append(p.frames, ft)
}

func (p *Punctuator) pushFold(loc token.TLoc) {
	p.frames = append(p.frames, frameLineFold)
	p.refLocs = append(p.refLocs, loc)
}

// popFrameOnly pops the frame stack without touching refLocs, used to close
// a Block frame (which never owned its own refLocs entry).
func (p *Punctuator) popFrameOnly() frameType {
	ft := p.frames[len(p.frames)-1]
	p.frames = p.frames[:len(p.frames)-1]
	return ft
}

// popFold pops both stacks, used to close a LineFold frame.
func (p *Punctuator) popFold() {
	p.frames = p.frames[:len(p.frames)-1]
	p.refLocs = p.refLocs[:len(p.refLocs)-1]
}

func (p *Punctuator) topFrame() frameType   { return p.frames[len(p.frames)-1] }
func (p *Punctuator) topRefLoc() token.TLoc { return p.refLocs[len(p.refLocs)-1] }

func virtualAt(kind token.Kind, loc token.TLoc) token.Token {
	return token.Token{Kind: kind, StartLoc: loc, EndLoc: loc}
}

// Read returns the next token in the fully layout-delimited stream.
func (p *Punctuator) Read() token.Token {
	t0 := p.tokens.peek()

	if t0.Kind == token.EndOfFile {
		if len(p.frames) == 1 {
			return t0
		}
		ft := p.popFrameOnly()
		switch ft {
		case frameBlock:
			return virtualAt(token.BlockEnd, t0.StartLoc)
		default:
			return virtualAt(token.LineFoldEnd, t0.StartLoc)
		}
	}

	ref := p.topRefLoc()

	switch p.topFrame() {
	case frameLineFold:
		if t0.StartLoc.Line > ref.Line && t0.StartLoc.Column <= ref.Column {
			p.popFold()
			return virtualAt(token.LineFoldEnd, t0.StartLoc)
		}
		if t0.Kind == token.Dot {
			t1 := p.tokens.peekN(1)
			if t1.StartLoc.Line > t0.EndLoc.Line {
				p.tokens.get()
				p.pushFrameOnly(frameBlock)
				return virtualAt(token.BlockStart, t0.StartLoc)
			}
		}
		return p.tokens.get()

	default: // frameBlock
		if t0.StartLoc.Column <= ref.Column {
			p.popFrameOnly()
			return virtualAt(token.BlockEnd, t0.StartLoc)
		}
		p.pushFold(t0.StartLoc)
		return p.tokens.get()
	}
}

// Scan drains the punctuator into a slice, terminated by (and including)
// EndOfFile.
func Scan(lex *Lexer) []token.Token {
	p := NewPunctuator(lex)
	var out []token.Token
	for {
		t := p.Read()
		out = append(out, t)
		if t.Kind == token.EndOfFile {
			return out
		}
	}
}
