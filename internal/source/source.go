// Package source holds the positional primitives shared by every later
// stage: a location, a range, and an indexed file.
package source

import "sort"

// TextLoc is a 1-based (line, column) pair. The zero value (0,0) is the
// reserved "empty" sentinel and never denotes a real position.
type TextLoc struct {
	Line   uint64
	Column uint64
}

// Empty reports whether this is the (0,0) sentinel.
func (l TextLoc) Empty() bool {
	return l.Line == 0 && l.Column == 0
}

// Before reports whether l sorts strictly before other.
func (l TextLoc) Before(other TextLoc) bool {
	if l.Line != other.Line {
		return l.Line < other.Line
	}
	return l.Column < other.Column
}

// TextRange is a half-open-by-convention span between two locations.
type TextRange struct {
	Start TextLoc
	End   TextLoc
}

// TextFile owns a path, its full text, and a line-start offset index.
type TextFile struct {
	Path  string
	Text  string
	lines []int // byte offset of the first byte of each line, 0-indexed
}

// NewTextFile builds a TextFile, precomputing the line-start index.
func NewTextFile(path, text string) *TextFile {
	f := &TextFile{Path: path, Text: text}
	f.lines = append(f.lines, 0)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			f.lines = append(f.lines, i+1)
		}
	}
	return f
}

// LineOf returns the 1-based line containing byte offset.
func (f *TextFile) LineOf(offset int) uint64 {
	// binary search for the last line-start <= offset
	i := sort.Search(len(f.lines), func(i int) bool { return f.lines[i] > offset })
	return uint64(i) // i is 1-based line number once we subtract 0: lines[0]=0 so i>=1
}

// ColumnOf returns the 1-based column of offset on its line.
func (f *TextFile) ColumnOf(offset int) uint64 {
	line := f.LineOf(offset)
	start := f.StartOffsetOfLine(line)
	return uint64(offset-start) + 1
}

// LocOf converts a byte offset into a TextLoc.
func (f *TextFile) LocOf(offset int) TextLoc {
	return TextLoc{Line: f.LineOf(offset), Column: f.ColumnOf(offset)}
}

// StartOffsetOfLine returns the byte offset of the first byte of the given
// 1-based line.
func (f *TextFile) StartOffsetOfLine(line uint64) int {
	idx := int(line) - 1
	if idx < 0 || idx >= len(f.lines) {
		return len(f.Text)
	}
	return f.lines[idx]
}

// EndOffsetOfLine returns the byte offset one past the last byte of the
// given 1-based line (excluding its trailing newline).
func (f *TextFile) EndOffsetOfLine(line uint64) int {
	idx := int(line)
	if idx < 0 || idx >= len(f.lines) {
		return len(f.Text)
	}
	end := f.lines[idx] - 1 // byte before next line's start, i.e. the '\n'
	if end < 0 {
		end = len(f.Text)
	}
	return end
}
