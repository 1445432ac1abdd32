// Package layout implements the layout-sensitive tokenizer: a raw
// character-at-a-time scanner (Lexer) and a punctuator post-pass
// (Punctuator) that injects BlockStart/BlockEnd/LineFoldEnd virtual tokens
// implementing the off-side indentation rule (spec §4.1).
//
// The raw scanner's style — a struct carrying input/position/readPosition/
// ch/line/column, readChar advancing one byte at a time, peekChar
// lookahead, readIdentifier/readNumber/readString helpers — is adapted
// directly from the teacher's internal/lexer/lexer.go. The punctuator is a
// near line-for-line port of original_source/src/Scanner.cc's
// Punctuator::read(), the concrete C++ function this spec's §4.1 was
// distilled from.
package layout

import (
	"math"
	"strings"

	"github.com/boltlang/boltcheck/internal/diagnostics"
	"github.com/boltlang/boltcheck/internal/source"
	"github.com/boltlang/boltcheck/internal/token"

	"github.com/google/uuid"
)

// Lexer is the raw, layout-unaware scanner.
type Lexer struct {
	file *source.TextFile
	runID uuid.UUID
	sink  *diagnostics.Sink

	input        string
	position     int // offset of ch
	readPosition int // offset of next byte
	ch           byte
	line, column uint64
}

// New creates a raw Lexer over file's contents.
func New(file *source.TextFile, runID uuid.UUID, sink *diagnostics.Sink) *Lexer {
	l := &Lexer{file: file, runID: runID, sink: sink, input: file.Text, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	// The line advances when stepping past a '\n', so a token that ends
	// right before a newline keeps its end location on its own line.
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) loc() token.TLoc {
	return token.TLoc{Line: l.line, Column: l.column}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
			l.readChar()
		}
		if l.ch == '#' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		break
	}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// NextToken scans and returns the next raw token. Newlines are significant
// to the punctuator (via token positions) but are not emitted as tokens
// themselves; NextToken skips newlines along with spaces/tabs/comments, and
// the line/column recorded on each token is what the layout pass consumes.
func (l *Lexer) NextToken() token.Token {
	l.skipLineBreaksAndBlanks()

	start := l.loc()

	switch {
	case l.ch == 0:
		return token.Token{Kind: token.EndOfFile, StartLoc: start, EndLoc: start}
	case isLetter(l.ch):
		return l.readIdentifier(start)
	case isDigit(l.ch):
		return l.readNumber(start)
	case l.ch == '"':
		return l.readString(start)
	case token.IsOperatorChar(l.ch):
		return l.readOperator(start)
	default:
		return l.readSimple(start)
	}
}

// skipLineBreaksAndBlanks skips spaces/tabs/comments and blank-only lines,
// but stops exactly at the first byte of the next token so its start
// location is accurate for the punctuator's column comparisons.
func (l *Lexer) skipLineBreaksAndBlanks() {
	for {
		l.skipWhitespaceAndComments()
		if l.ch == '\n' {
			l.readChar()
			continue
		}
		break
	}
}

func (l *Lexer) readIdentifier(start token.TLoc) token.Token {
	begin := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	text := l.input[begin:l.position]
	kind := token.Identifier
	if kw, ok := token.Keywords[text]; ok {
		kind = kw
	} else if text[0] >= 'A' && text[0] <= 'Z' {
		kind = token.IdentifierAlt
	}
	return token.Token{Kind: kind, Text: text, StartLoc: start, EndLoc: l.loc()}
}

func (l *Lexer) readNumber(start token.TLoc) token.Token {
	begin := l.position
	var value int64
	overflowed := false
	for isDigit(l.ch) {
		d := int64(l.ch - '0')
		if value > (math.MaxInt64-d)/10 {
			overflowed = true
		} else {
			value = value*10 + d
		}
		l.readChar()
	}
	text := l.input[begin:l.position]
	if overflowed {
		l.sink.Add(diagnostics.NewError(
			diagnostics.ErrUnexpectedString,
			l.file.Path,
			rangeOf(start, l.loc()),
			l.runID,
			"integer literal %q exceeds the maximum representable value", text,
		))
	}
	return token.Token{Kind: token.IntegerLiteral, Text: text, StartLoc: start, EndLoc: l.loc()}
}

var simpleEscapes = map[byte]byte{
	'n': '\n', 't': '\t', 'r': '\r', '\\': '\\', '"': '"', '\'': '\'',
	'0': 0, 'a': 7, 'b': 8, 'f': 12, 'v': 11,
}

func (l *Lexer) readString(start token.TLoc) token.Token {
	l.readChar() // consume opening quote
	var sb strings.Builder
	for l.ch != '"' && l.ch != 0 {
		if l.ch == '\\' {
			l.readChar()
			repl, ok := simpleEscapes[l.ch]
			if !ok {
				l.sink.Add(diagnostics.NewError(
					diagnostics.ErrUnexpectedString,
					l.file.Path,
					rangeOf(l.loc(), l.loc()),
					l.runID,
					"unsupported escape sequence '\\%c'", l.ch,
				))
			} else {
				sb.WriteByte(repl)
			}
			l.readChar()
			continue
		}
		sb.WriteByte(l.ch)
		l.readChar()
	}
	if l.ch == '"' {
		l.readChar()
	}
	return token.Token{Kind: token.StringLiteral, Text: sb.String(), StartLoc: start, EndLoc: l.loc()}
}

func (l *Lexer) readOperator(start token.TLoc) token.Token {
	begin := l.position
	for token.IsOperatorChar(l.ch) {
		l.readChar()
	}
	text := l.input[begin:l.position]
	switch text {
	case "->":
		return token.Token{Kind: token.Arrow, Text: text, StartLoc: start, EndLoc: l.loc()}
	case "=>":
		return token.Token{Kind: token.FatArrow, Text: text, StartLoc: start, EndLoc: l.loc()}
	case "=":
		return token.Token{Kind: token.Equals, Text: text, StartLoc: start, EndLoc: l.loc()}
	}
	// An operator whose final char is '=' (and not preceded by '=') is an
	// Assignment carrying the left portion (spec §4.1).
	if len(text) > 1 && text[len(text)-1] == '=' && text[len(text)-2] != '=' {
		return token.Token{Kind: token.Assignment, Text: text[:len(text)-1], StartLoc: start, EndLoc: l.loc()}
	}
	return token.Token{Kind: token.CustomOperator, Text: text, StartLoc: start, EndLoc: l.loc()}
}

func (l *Lexer) readSimple(start token.TLoc) token.Token {
	ch := l.ch
	text := string(ch)
	l.readChar()
	var kind token.Kind
	switch ch {
	case '.':
		if l.ch == '.' {
			l.readChar()
			return token.Token{Kind: token.DotDot, Text: "..", StartLoc: start, EndLoc: l.loc()}
		}
		kind = token.Dot
	case '~':
		kind = token.Tilde
	case ',':
		kind = token.Comma
	case ':':
		kind = token.Colon
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '_':
		kind = token.Underscore
	default:
		l.sink.Add(diagnostics.NewError(
			diagnostics.ErrUnexpectedString,
			l.file.Path,
			rangeOf(start, l.loc()),
			l.runID,
			"unexpected character %q", ch,
		))
		kind = token.Invalid
	}
	return token.Token{Kind: kind, Text: text, StartLoc: start, EndLoc: l.loc()}
}

func rangeOf(start, end token.TLoc) source.TextRange {
	return source.TextRange{
		Start: source.TextLoc{Line: start.Line, Column: start.Column},
		End:   source.TextLoc{Line: end.Line, Column: end.Column},
	}
}
