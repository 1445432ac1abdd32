// Package types implements the mutable union-find type representation of
// spec §3.3. It is grounded directly on
// _examples/original_source/bootstrap/cxx/include/bolt/Type.hpp — the
// Parent-self-pointer / Find (path-halving) / Set design there is ported
// close to verbatim. This supersedes the teacher's own
// internal/typesystem package, which is substitution-map based
// (Subst map[string]Type, Apply) and cannot express find(find(t))==find(t);
// the per-kind String() method style below still follows that package's
// convention of one method per Kind via a switch.
package types

import (
	"fmt"
	"sort"
	"strings"
)

// Kind tags which variant a Type node is.
type Kind int

const (
	KVar Kind = iota
	KCon
	KApp
	KArrow
	KTuple
	KNil
	KAbsent
	KPresent
	KField
)

// VarSort distinguishes rigid (user-annotated, non-unifiable) variables
// from unification variables (freely unifiable).
type VarSort int

const (
	Unification VarSort = iota
	Rigid
)

// Type is a tagged, mutable union-find node. Every Type carries Parent,
// used for union-find; roots point to themselves. Only the fields relevant
// to Kind are meaningful; this mirrors the original's tagged-union layout
// without requiring unsafe.Pointer, at the cost of some unused fields per
// variant — an acceptable trade given Go has no union types.
type Type struct {
	Kind   Kind
	Parent *Type

	// KVar
	VarID    uint32
	VarSort  VarSort
	Classes  map[string]bool
	Provided map[string]bool // nil unless this rigid var's scheme declared a context
	VarName  string

	// KCon
	ConID   uint32
	Display string

	// KApp
	Op  *Type
	Arg *Type

	// KArrow
	Param  *Type
	Return *Type

	// KTuple
	Elements []*Type

	// KPresent
	Inner *Type

	// KField
	FieldName string
	FieldTy   *Type
	Rest      *Type
}

func newRoot(k Kind) *Type {
	t := &Type{Kind: k}
	t.Parent = t
	return t
}

// NewVar allocates a fresh variable node. id should be unique within a
// check run (the inference engine's fresh-variable counter).
func NewVar(id uint32, sort VarSort, name string) *Type {
	t := newRoot(KVar)
	t.VarID = id
	t.VarSort = sort
	t.Classes = make(map[string]bool)
	t.VarName = name
	return t
}

func NewCon(id uint32, display string) *Type {
	t := newRoot(KCon)
	t.ConID = id
	t.Display = display
	return t
}

func NewApp(op, arg *Type) *Type {
	t := newRoot(KApp)
	t.Op = op
	t.Arg = arg
	return t
}

// NewAppN left-associates a constructor applied to several arguments, e.g.
// List<Int> == App(Con("List"), Con("Int")).
func NewAppN(op *Type, args ...*Type) *Type {
	cur := op
	for _, a := range args {
		cur = NewApp(cur, a)
	}
	return cur
}

func NewArrow(param, ret *Type) *Type {
	t := newRoot(KArrow)
	t.Param = param
	t.Return = ret
	return t
}

// BuildArrow curries a multi-parameter arrow, right-to-left, matching
// original_source's Type::buildArrow.
func BuildArrow(params []*Type, ret *Type) *Type {
	cur := ret
	for i := len(params) - 1; i >= 0; i-- {
		cur = NewArrow(params[i], cur)
	}
	return cur
}

func NewTuple(elements ...*Type) *Type {
	t := newRoot(KTuple)
	t.Elements = elements
	return t
}

func NewNil() *Type {
	return newRoot(KNil)
}

func NewAbsent() *Type {
	return newRoot(KAbsent)
}

func NewPresent(inner *Type) *Type {
	t := newRoot(KPresent)
	t.Inner = inner
	return t
}

func NewField(name string, ty *Type, rest *Type) *Type {
	t := newRoot(KField)
	t.FieldName = name
	t.FieldTy = ty
	t.Rest = rest
	return t
}

// BuildRow constructs a closed row from fields sorted by name (spec §4.4
// "Record" rule: fields ordered by name, sorted before unification to
// normalize), optionally left open with a trailing variable tail.
func BuildRow(fields map[string]*Type, tail *Type) *Type {
	names := make([]string, 0, len(fields))
	for n := range fields {
		names = append(names, n)
	}
	sort.Strings(names)
	var rest *Type
	if tail != nil {
		rest = tail
	} else {
		rest = NewNil()
	}
	for i := len(names) - 1; i >= 0; i-- {
		n := names[i]
		rest = NewField(n, NewPresent(fields[n]), rest)
	}
	return rest
}

// Find returns t's union-find root, path-halving as it walks (spec §3.3:
// "find(t) walks to the root with path compression"; original_source uses
// path-halving specifically — every node visited is re-pointed at its
// grandparent, not directly at the final root).
func Find(t *Type) *Type {
	curr := t
	for {
		keep := curr.Parent
		if keep == curr {
			return keep
		}
		curr.Parent = keep.Parent
		curr = keep
	}
}

// ErrRigidTarget is returned by Set when asked to unify away a rigid
// variable's root.
type ErrRigidTarget struct{ Var *Type }

func (e *ErrRigidTarget) Error() string {
	return fmt.Sprintf("cannot assign into rigid variable %s", e.Var.String())
}

// Set unions a into b: it writes the root of a to point to b (spec §3.3:
// "union(a, b) — spelled set in the source — writes the root of a to
// point to b"). Only a unification variable's root may be assigned; a
// rigid variable's root may never become a union-find target.
func Set(a, b *Type) error {
	root := Find(a)
	if root.Kind != KVar {
		return fmt.Errorf("internal: Set target %s is not a variable", root.String())
	}
	if root.VarSort == Rigid {
		return &ErrRigidTarget{Var: root}
	}
	root.Parent = b
	return nil
}

// Contains is the occurs check: does tv's root appear anywhere beneath
// ty's root (following union-find roots throughout, per spec §4.3)?
func Contains(ty *Type, tv *Type) bool {
	root := Find(tv)
	return containsWalk(Find(ty), root, make(map[*Type]bool))
}

func containsWalk(ty *Type, root *Type, visited map[*Type]bool) bool {
	ty = Find(ty)
	if ty == root {
		return true
	}
	if visited[ty] {
		return false
	}
	visited[ty] = true
	switch ty.Kind {
	case KApp:
		return containsWalk(ty.Op, root, visited) || containsWalk(ty.Arg, root, visited)
	case KArrow:
		return containsWalk(ty.Param, root, visited) || containsWalk(ty.Return, root, visited)
	case KTuple:
		for _, e := range ty.Elements {
			if containsWalk(e, root, visited) {
				return true
			}
		}
		return false
	case KPresent:
		return containsWalk(ty.Inner, root, visited)
	case KField:
		return containsWalk(ty.FieldTy, root, visited) || containsWalk(ty.Rest, root, visited)
	default:
		return false
	}
}

// FreeVars collects every unification/rigid variable reachable from ty's
// root (following union-find roots), deduplicated by identity.
func FreeVars(ty *Type) []*Type {
	seen := make(map[*Type]bool)
	var out []*Type
	var walk func(*Type)
	walk = func(t *Type) {
		t = Find(t)
		if seen[t] {
			return
		}
		seen[t] = true
		switch t.Kind {
		case KVar:
			out = append(out, t)
		case KApp:
			walk(t.Op)
			walk(t.Arg)
		case KArrow:
			walk(t.Param)
			walk(t.Return)
		case KTuple:
			for _, e := range t.Elements {
				walk(e)
			}
		case KPresent:
			walk(t.Inner)
		case KField:
			walk(t.FieldTy)
			walk(t.Rest)
		}
	}
	walk(ty)
	return out
}

func (t *Type) String() string {
	t = Find(t)
	switch t.Kind {
	case KVar:
		if t.VarName != "" {
			return t.VarName
		}
		return fmt.Sprintf("t%d", t.VarID)
	case KCon:
		return t.Display
	case KApp:
		return fmt.Sprintf("%s<%s>", t.Op.String(), t.Arg.String())
	case KArrow:
		return fmt.Sprintf("(%s -> %s)", t.Param.String(), t.Return.String())
	case KTuple:
		parts := make([]string, len(t.Elements))
		for i, e := range t.Elements {
			parts[i] = e.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case KNil:
		return "{}"
	case KAbsent:
		return "<absent>"
	case KPresent:
		return t.Inner.String()
	case KField:
		return fmt.Sprintf("{ %s: %s | %s }", t.FieldName, t.FieldTy.String(), t.Rest.String())
	default:
		return "?"
	}
}
