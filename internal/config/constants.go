// Package config holds the checker's tunable constants, the same shape as
// the teacher's internal/config/constants.go (exported constants) since
// this library has no deployment surface of its own; LoadOverrides is the
// one optional YAML-based way to adjust them.
package config

import (
	"io"

	"gopkg.in/yaml.v3"
)

// Tunables bounds the solver and diagnostic accumulation so a pathological
// input degrades to a bounded internal error rather than hanging or
// exhausting memory (spec §1c, §4.8, §7).
type Tunables struct {
	// MaxSolverIterations bounds the number of main/secondary queue swaps
	// the constraint solver (§4.8) performs before reporting a stuck fixed
	// point as ErrInternalSolverStuck instead of looping forever.
	MaxSolverIterations int `yaml:"max_solver_iterations"`

	// MaxDiagnostics bounds the number of diagnostics a single Check run
	// keeps; later diagnostics beyond this are dropped (no summary note is
	// added) rather than accumulated without bound.
	MaxDiagnostics int `yaml:"max_diagnostics"`

	// StrictInternalChecks is carried in Tunables and loadable from YAML,
	// but no checker code reads it: a rigid variable reached as a
	// union-find target is always reported as a diagnostic, never a panic.
	StrictInternalChecks bool `yaml:"strict_internal_checks"`
}

// Default returns the tunables used when a caller supplies no overrides.
func Default() Tunables {
	return Tunables{
		MaxSolverIterations: 10000,
		MaxDiagnostics:      500,
		StrictInternalChecks: false,
	}
}

// LoadOverrides parses a YAML document of tunable overrides on top of
// Default(), for a host that wants to loosen the solver's iteration cap
// for pathological inputs without a code change (spec §1e).
func LoadOverrides(r io.Reader) (Tunables, error) {
	t := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&t); err != nil && err != io.EOF {
		return Tunables{}, err
	}
	return t, nil
}

// BuiltinTypeNames is the closed set of primitive type constructor names the
// inferencer installs into the prelude environment before checking any
// declarations.
var BuiltinTypeNames = map[string]bool{
	"Int":    true,
	"Bool":   true,
	"String": true,
	"Unit":   true,
}
