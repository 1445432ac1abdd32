package infer

import "github.com/boltlang/boltcheck/internal/types"

// InstanceMap records which (class, head type constructor) pairs have a
// declared instance, grounded on the teacher's InstanceDef lookup in
// internal/typesystem (a class name keying a set of implementing type
// heads) but keyed here by the type's head constructor id rather than a
// source-level name, since heads are union-find Type nodes.
type InstanceMap struct {
	// byClass maps a class name to the set of Con ids it has an instance
	// for (spec §4.7: class membership is decided by syntactic head-
	// constructor match, no functional dependencies or multi-param classes).
	byClass map[string]map[uint32]bool
}

func NewInstanceMap() *InstanceMap {
	return &InstanceMap{byClass: make(map[string]map[uint32]bool)}
}

// Declare registers that className has an instance whose target head is
// headConID (e.g. the Con id for "Int").
func (m *InstanceMap) Declare(className string, headConID uint32) {
	set, ok := m.byClass[className]
	if !ok {
		set = make(map[uint32]bool)
		m.byClass[className] = set
	}
	set[headConID] = true
}

// Satisfies reports whether ty's head constructor has a declared instance
// of className. A bare rigid type variable constrained by the class
// itself (e.g. a function declared `(Eq a) => a -> a -> Bool` applied to
// another rigid `a`) also satisfies trivially, since the constraint is
// inherited rather than discharged here.
func (m *InstanceMap) Satisfies(className string, ty *types.Type) bool {
	root := types.Find(ty)
	if root.Kind == types.KVar {
		return root.Classes[className]
	}
	head := headConstructor(root)
	if head == nil {
		return false
	}
	set, ok := m.byClass[className]
	if !ok {
		return false
	}
	return set[head.ConID]
}

// headConstructor returns the Con at the head of a (possibly applied)
// type, e.g. head(List<Int>) == Con("List").
func headConstructor(ty *types.Type) *types.Type {
	cur := types.Find(ty)
	for cur.Kind == types.KApp {
		cur = types.Find(cur.Op)
	}
	if cur.Kind == types.KCon {
		return cur
	}
	return nil
}
