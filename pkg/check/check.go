// Package check is the public entry point this checker exposes to a host
// program (spec §6): construct a Builtins/InstanceMap once per process,
// then call Check (or CheckSet) per source file. This mirrors the
// teacher's own pkg/embed surface (a small facade over its internal
// evaluator) re-targeted at exposing type-checking instead of evaluation.
package check

import (
	"time"

	"github.com/boltlang/boltcheck/internal/checkfile"
	"github.com/boltlang/boltcheck/internal/config"
	"github.com/boltlang/boltcheck/internal/cst"
	"github.com/boltlang/boltcheck/internal/diagnostics"
	"github.com/boltlang/boltcheck/internal/infer"
	"github.com/boltlang/boltcheck/internal/source"
	"github.com/boltlang/boltcheck/internal/telemetry"
	"github.com/google/uuid"
)

// Checker holds the process-wide immutable state a Check call needs:
// the builtin environment, declared class instances, and tunable limits.
// A Checker is not safe for concurrent use: DeclareInstance mutates the
// InstanceMap, and every Check call allocates type constructor ids from an
// unsynchronized package-level counter.
type Checker struct {
	Builtins  *infer.Builtins
	Instances *infer.InstanceMap
	Tunables  config.Tunables
	Recorder  telemetry.Recorder
}

// New constructs a Checker with the default tunables and an empty
// instance map; call DeclareInstance to register class instances before checking
// any file that relies on them.
func New() *Checker {
	return &Checker{
		Builtins:  infer.NewBuiltins(),
		Instances: infer.NewInstanceMap(),
		Tunables:  config.Default(),
		Recorder:  telemetry.NoOp,
	}
}

// DeclareInstance registers that className has an instance for the
// primitive type headTypeName (e.g. DeclareInstance("Eq", "Int")). Only the
// builtin primitive names (Int, Bool, String, Unit) are resolved; any other
// headTypeName, including a user-declared record or variant type, is
// ignored and registers nothing.
func (c *Checker) DeclareInstance(className, headTypeName string) {
	if con, ok := c.Builtins.ConNamed(headTypeName); ok {
		c.Instances.Declare(className, con.ConID)
	}
}

// Result is the outcome of checking one source file.
type Result struct {
	Diagnostics []*diagnostics.DiagnosticError
	RunID       uuid.UUID
}

// Check runs inference over one already-parsed source file (spec §6.1:
// this checker consumes a CST, not source text — parsing is an external
// collaborator's responsibility). root must have had cst.SetParents
// applied already.
func (c *Checker) Check(file *source.TextFile, root *cst.SourceFile) *Result {
	runID := uuid.New()
	c.Recorder.PassStarted(runID.String(), "infer")
	start := time.Now()
	res := infer.Run(file.Path, root, runID, c.Builtins, c.Instances, c.Tunables)
	c.Recorder.PassFinished(runID.String(), "infer", time.Since(start))
	return &Result{Diagnostics: res.Diagnostics, RunID: runID}
}

// CheckSet runs inference over several files within one run, pooling
// their diagnostics (spec §2d).
func (c *Checker) CheckSet(files []checkfile.FileUnit) *Result {
	runID := uuid.New()
	ds := checkfile.CheckAll(checkfile.CheckSet{Files: files}, runID, c.Builtins, c.Instances, c.Tunables)
	return &Result{Diagnostics: ds, RunID: runID}
}
