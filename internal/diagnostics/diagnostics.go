// Package diagnostics holds the error-records-as-data this front-end
// accumulates instead of throwing (spec §7). The teacher's own analyzer
// (internal/analyzer/analyzer.go) imports a sibling "diagnostics" package
// pervasively (diagnostics.DiagnosticError{Token,File,Code},
// diagnostics.NewError(code, token, msg), ErrA001/ErrA003-style constants)
// but that package itself is absent from the retrieved pack; this package
// is authored fresh against those call-site shapes plus the error-kind
// taxonomy of spec §7.
package diagnostics

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/boltlang/boltcheck/internal/source"
)

// Code is a stable numeric diagnostic identifier (spec §7).
type Code int

const (
	ErrUnexpectedToken       Code = 1001
	ErrUnexpectedString      Code = 1002
	ErrBindingNotFound       Code = 1003
	ErrTypeMismatch          Code = 1004
	ErrFieldNotFound         Code = 1005
	ErrTypeclassMissing      Code = 1006
	ErrInstanceNotFound      Code = 1007
	ErrClassNotFound         Code = 1008
	ErrTupleIndexOutOfRange  Code = 1009
	ErrInvalidTypeForClass   Code = 1010
	ErrInternalSolverStuck   Code = 1099
)

// Severity distinguishes hard errors from advisory notes.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

// DiagnosticError is one accumulated error record.
type DiagnosticError struct {
	Code     Code
	Severity Severity
	Message  string
	File     string
	Range    source.TextRange
	RunID    uuid.UUID
}

func (d *DiagnosticError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", d.File, d.Range.Start.Line, d.Range.Start.Column, d.Message)
}

// NewError constructs a DiagnosticError at the given range.
func NewError(code Code, file string, rng source.TextRange, runID uuid.UUID, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:     code,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
		File:     file,
		Range:    rng,
		RunID:    runID,
	}
}

// Sink accumulates diagnostics monotonically (spec §5), deduplicating by
// (file, line, column, code) and sorting deterministically before the
// caller renders them, mirroring the teacher's walker.addError/getErrors
// accumulation pattern (internal/analyzer/analyzer.go).
type Sink struct {
	seen  map[string]bool
	items []*DiagnosticError
}

// NewSink creates an empty diagnostic sink.
func NewSink() *Sink {
	return &Sink{seen: make(map[string]bool)}
}

// Add appends d unless an equivalent diagnostic was already recorded.
func (s *Sink) Add(d *DiagnosticError) {
	key := fmt.Sprintf("%s:%d:%d:%d", d.File, d.Range.Start.Line, d.Range.Start.Column, d.Code)
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.items = append(s.items, d)
}

// AddAll appends every diagnostic in ds.
func (s *Sink) AddAll(ds []*DiagnosticError) {
	for _, d := range ds {
		s.Add(d)
	}
}

// Items returns the accumulated diagnostics sorted by (file, line, column).
func (s *Sink) Items() []*DiagnosticError {
	out := make([]*DiagnosticError, len(s.items))
	copy(out, s.items)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Range.Start.Line != b.Range.Start.Line {
			return a.Range.Start.Line < b.Range.Start.Line
		}
		return a.Range.Start.Column < b.Range.Start.Column
	})
	return out
}

// HasErrors reports whether any accumulated diagnostic has error severity.
func (s *Sink) HasErrors() bool {
	for _, d := range s.items {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
