package cst

// BindPattern binds a single name (spec §3.2 `Bind(name)`). Variable
// declarations and named-function name slots are always a BindPattern
// (spec §3.2 invariants).
type BindPattern struct {
	patternBase
	Name string
}

func (n *BindPattern) Accept(v Visitor) {}

type LiteralPattern struct {
	patternBase
	Kind   LiteralKind
	Text   string
	IntVal int64
}

func (n *LiteralPattern) Accept(v Visitor) {}

type TuplePattern struct {
	patternBase
	Elements []Pattern
}

func (n *TuplePattern) Accept(v Visitor) {}

type NestedPattern struct {
	patternBase
	Inner Pattern
}

func (n *NestedPattern) Accept(v Visitor) {}

type ListPattern struct {
	patternBase
	Elements []Pattern
}

func (n *ListPattern) Accept(v Visitor) {}

// NamedTuplePattern is `Ctor(args...)` or the bare-constructor form `Ctor`
// with no parens. BareConstructor is an explicit discriminant (spec §2c)
// so pattern inference treats both forms uniformly, per spec §9's
// instruction that downstream code must accept both without relying on the
// parser's own disambiguation.
type NamedTuplePattern struct {
	patternBase
	Ctor            string
	Args            []Pattern
	BareConstructor bool
}

func (n *NamedTuplePattern) Accept(v Visitor) {}

// RecordPatternField is (dotdot?, name?, equals?, subpattern?) per spec
// §3.2: the `..` form (DotDot=true) matches the row remainder, optionally
// binding it to SubPattern; otherwise Name/SubPattern describe one field.
type RecordPatternField struct {
	DotDot     bool
	Name       string
	SubPattern Pattern // nil for a `..` with no binding, or a shorthand field
}

type RecordPattern struct {
	patternBase
	Fields []RecordPatternField
}

func (n *RecordPattern) Accept(v Visitor) {}

type NamedRecordPattern struct {
	patternBase
	Ctor   string
	Fields []RecordPatternField
}

func (n *NamedRecordPattern) Accept(v Visitor) {}
