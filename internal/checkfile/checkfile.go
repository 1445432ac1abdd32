// Package checkfile sequences inference over more than one source file in
// a single run (spec §2d), and loads multi-file fixtures from a txtar
// archive for tests (spec §1d: golang.org/x/tools/txtar is the fixture
// format this checker's test suite standardizes on, the way the teacher's
// own tests/fixtures directories standardize on plain .funxy source files).
package checkfile

import (
	"github.com/boltlang/boltcheck/internal/config"
	"github.com/boltlang/boltcheck/internal/cst"
	"github.com/boltlang/boltcheck/internal/diagnostics"
	"github.com/boltlang/boltcheck/internal/infer"
	"github.com/boltlang/boltcheck/internal/source"
	"github.com/google/uuid"
	"golang.org/x/tools/txtar"
)

// CheckSet is a collection of already-parsed source files to check
// together, each with its own CST root (spec §2d: "multi-file checking"
// means running inference over several roots within one run, sharing
// builtins and the run ID; each file gets its own diagnostic sink and the
// results are concatenated in file order. Top-level declarations are NOT
// shared across files — cross-file imports remain a non-goal).
type CheckSet struct {
	Files []FileUnit
}

// FileUnit pairs a loaded source file with its already-built CST root.
// Parsing text into a *cst.SourceFile is the external parser's job (this
// checker accepts a CST, per spec §6.1); LoadCheckSet's txtar reader
// therefore returns the raw source text per file, and the caller supplies
// Root after parsing it.
type FileUnit struct {
	File *source.TextFile
	Root *cst.SourceFile
}

// LoadCheckSet parses a txtar archive into one *source.TextFile per
// section, keyed by the section's filename. It performs no CST parsing;
// the caller fills in Root once an external parser has run, typically
// inside a table-driven test that wants one archive to carry several
// related fixtures.
func LoadCheckSet(archiveText []byte) []*source.TextFile {
	ar := txtar.Parse(archiveText)
	files := make([]*source.TextFile, len(ar.Files))
	for i, f := range ar.Files {
		files[i] = source.NewTextFile(f.Name, string(f.Data))
	}
	return files
}

// CheckAll runs infer.Run over every file in the set, each with its own
// fresh root Context chained from the same Builtins and InstanceMap, and
// pools every file's diagnostics into one result in file order (spec
// §2d). One file's undefined reference never affects another file's
// result, since each gets its own Context.
func CheckAll(set CheckSet, runID uuid.UUID, b *infer.Builtins, instances *infer.InstanceMap, tun config.Tunables) []*diagnostics.DiagnosticError {
	var all []*diagnostics.DiagnosticError
	for _, unit := range set.Files {
		res := infer.Run(unit.File.Path, unit.Root, runID, b, instances, tun)
		all = append(all, res.Diagnostics...)
	}
	return all
}
