package infer

import "github.com/boltlang/boltcheck/internal/types"

// Builtins holds the handful of primitive type constructors and operator
// schemes every checked file starts with (spec §2a/§2b: integer and string
// literals, and the fixed operator table). Con ids are allocated from a
// private counter disjoint from Context.FreshVar's so two Builtins
// instances never collide; in practice one Builtins is built once per
// process and shared by every Check call. The counter is a plain package
// variable that inference also draws from during a run, so concurrent runs
// are not synchronized.
type Builtins struct {
	Int    *types.Type
	Bool   *types.Type
	String *types.Type
	Unit   *types.Type

	env *types.TypeEnv
}

var conIDs uint32

func nextConID() uint32 {
	conIDs++
	return conIDs
}

// NewBuiltins constructs the fixed primitive environment.
func NewBuiltins() *Builtins {
	b := &Builtins{
		Int:    types.NewCon(nextConID(), "Int"),
		Bool:   types.NewCon(nextConID(), "Bool"),
		String: types.NewCon(nextConID(), "String"),
		Unit:   types.NewCon(nextConID(), "Unit"),
	}
	b.env = types.NewTypeEnv(nil)
	arith := types.BuildArrow([]*types.Type{b.Int, b.Int}, b.Int)
	for _, op := range []string{"+", "-", "*", "/", "%"} {
		b.env.Define(op, types.EnvVar, types.Mono(arith))
	}
	compareBool := types.BuildArrow([]*types.Type{b.Int, b.Int}, b.Bool)
	for _, op := range []string{"<", ">", "<=", ">="} {
		b.env.Define(op, types.EnvVar, types.Mono(compareBool))
	}
	// `==` and `/=` are polymorphic over any Eq instance (spec §2b); a
	// fresh rigid variable stands in for the unnamed "a" and is
	// instantiated fresh at each call site, per the Scheme contract.
	eqVar := types.NewVar(0, types.Rigid, "a")
	eqScheme := &types.Scheme{
		Vars:        []*types.Type{eqVar},
		Constraints: []types.ClassConstraint{{ClassName: "Eq", Type: eqVar}},
		Body:        types.BuildArrow([]*types.Type{eqVar, eqVar}, b.Bool),
	}
	b.env.Define("==", types.EnvVar, eqScheme)
	b.env.Define("/=", types.EnvVar, eqScheme)

	boolOp := types.BuildArrow([]*types.Type{b.Bool, b.Bool}, b.Bool)
	b.env.Define("&&", types.EnvVar, types.Mono(boolOp))
	b.env.Define("||", types.EnvVar, types.Mono(boolOp))
	return b
}

// Env returns the root TypeEnv seeded with builtin operator schemes; a
// Context's root Env should chain from this.
func (b *Builtins) Env() *types.TypeEnv { return b.env }

// ConNamed looks up one of the fixed primitive Con nodes by the builtin
// type name it represents, per config.BuiltinTypeNames.
func (b *Builtins) ConNamed(name string) (*types.Type, bool) {
	switch name {
	case "Int":
		return b.Int, true
	case "Bool":
		return b.Bool, true
	case "String":
		return b.String, true
	case "Unit":
		return b.Unit, true
	default:
		return nil, false
	}
}
