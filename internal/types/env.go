package types

// EnvKind mirrors internal/scope's SymbolKind split but is kept as its own
// small enum rather than importing that package: TypeEnv is consulted only
// during inference, for the two namespaces that carry a type (values and
// data constructors), while internal/scope's four namespaces also track
// type names and classes for name-resolution purposes unrelated to typing.
type EnvKind int

const (
	EnvVar EnvKind = iota
	EnvConstructor
)

type envKey struct {
	name string
	kind EnvKind
}

// ClassConstraint is one `C a` entry in a Scheme's qualifying context
// (spec §3.4).
type ClassConstraint struct {
	ClassName string
	Type      *Type
}

// Scheme is a `forall a b. (C1, C2) => body` polymorphic type (spec §3.4).
// Vars lists the scheme's bound variables (the generalized unification
// variables), each replaced by a fresh variable at every instantiation site.
type Scheme struct {
	Vars        []*Type
	Constraints []ClassConstraint
	Body        *Type
}

// Mono wraps a non-generalized type as a trivial scheme (no bound
// variables, no constraints) for uniform storage in a TypeEnv.
func Mono(t *Type) *Scheme {
	return &Scheme{Body: t}
}

// TypeEnv is a parent-chaining map from (name, EnvKind) to Scheme,
// grounded on original_source/include/bolt/Checker.hpp's TypeEnv: child
// environments are created per function/block and shadow their parent
// without mutating it.
type TypeEnv struct {
	parent  *TypeEnv
	schemes map[envKey]*Scheme
}

func NewTypeEnv(parent *TypeEnv) *TypeEnv {
	return &TypeEnv{parent: parent, schemes: make(map[envKey]*Scheme)}
}

func (e *TypeEnv) Define(name string, kind EnvKind, s *Scheme) {
	e.schemes[envKey{name, kind}] = s
}

func (e *TypeEnv) Lookup(name string, kind EnvKind) (*Scheme, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if s, ok := cur.schemes[envKey{name, kind}]; ok {
			return s, true
		}
	}
	return nil, false
}

func (e *TypeEnv) Parent() *TypeEnv { return e.parent }

// Instantiate replaces every one of s's bound variables with a fresh
// unification variable (spec §4.5), returning the instantiated body and
// the constraints carried over the fresh variables. fresh is the caller's
// variable allocator (ordinarily InferContext.FreshVar).
func Instantiate(s *Scheme, fresh func(classes []string, name string) *Type) (*Type, []ClassConstraint) {
	if len(s.Vars) == 0 {
		return s.Body, nil
	}
	mapping := make(map[*Type]*Type, len(s.Vars))
	for _, v := range s.Vars {
		root := Find(v)
		var classes []string
		for c := range root.Classes {
			classes = append(classes, c)
		}
		mapping[root] = fresh(classes, root.VarName)
	}
	var constraints []ClassConstraint
	for _, c := range s.Constraints {
		constraints = append(constraints, ClassConstraint{ClassName: c.ClassName, Type: substitute(c.Type, mapping)})
	}
	return substitute(s.Body, mapping), constraints
}

// substitute rebuilds ty with every variable found in mapping replaced.
// Every structural node (App, Arrow, Tuple, Present, Field) is rebuilt,
// even when its subtree mentions no mapped variable; sharing with ty is
// not preserved.
func substitute(ty *Type, mapping map[*Type]*Type) *Type {
	root := Find(ty)
	switch root.Kind {
	case KVar:
		if repl, ok := mapping[root]; ok {
			return repl
		}
		return root
	case KCon, KNil, KAbsent:
		return root
	case KApp:
		return NewApp(substitute(root.Op, mapping), substitute(root.Arg, mapping))
	case KArrow:
		return NewArrow(substitute(root.Param, mapping), substitute(root.Return, mapping))
	case KTuple:
		elems := make([]*Type, len(root.Elements))
		for i, e := range root.Elements {
			elems[i] = substitute(e, mapping)
		}
		return NewTuple(elems...)
	case KPresent:
		return NewPresent(substitute(root.Inner, mapping))
	case KField:
		return NewField(root.FieldName, substitute(root.FieldTy, mapping), substitute(root.Rest, mapping))
	default:
		return root
	}
}

// Generalize produces a Scheme over ty abstracting every free variable not
// also free in the enclosing environment nor marked as locally-erased
// (spec §4.5: "generalize over every variable introduced within this
// declaration that does not escape into an enclosing scope"). notOwned is
// the set of variables that must NOT be generalized (bound in an outer
// scope, or explicitly excluded); constraints are the class constraints
// collected on ty's own free variables.
func Generalize(ty *Type, notOwned map[*Type]bool, constraints []ClassConstraint) *Scheme {
	free := FreeVars(ty)
	var owned []*Type
	for _, v := range free {
		if !notOwned[v] {
			owned = append(owned, v)
		}
	}
	var kept []ClassConstraint
	for _, c := range constraints {
		for _, v := range owned {
			if Find(c.Type) == v {
				kept = append(kept, c)
				break
			}
		}
	}
	return &Scheme{Vars: owned, Constraints: kept, Body: ty}
}
