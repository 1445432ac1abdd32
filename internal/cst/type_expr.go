package cst

// TypeExpr is a type-expression node, the syntactic (not yet elaborated)
// form of a type as written by the user (spec §3.2).
type TypeExpr interface {
	Node
	typeExprNode()
}

type typeExprBase struct{ base }

func (typeExprBase) typeExprNode() {}
func (*typeExprBase) Accept(Visitor) {}

type TypeReferenceExpr struct {
	typeExprBase
	Modules Modules
	Name    string
}

type TypeAppExpr struct {
	typeExprBase
	Op  TypeExpr
	Arg TypeExpr
}

type TypeArrowExpr struct {
	typeExprBase
	Params []TypeExpr
	Return TypeExpr
}

type TypeVarExpr struct {
	typeExprBase
	Name string
}

type TypeNestedExpr struct {
	typeExprBase
	Inner TypeExpr
}

type TypeTupleExpr struct {
	typeExprBase
	Elements []TypeExpr
}

type TypeRecordField struct {
	Name string
	Type TypeExpr
}

// TypeRecordExpr is a record type expression `{ f1: T1, f2: T2 | rest }`;
// Rest is nil for a closed record.
type TypeRecordExpr struct {
	typeExprBase
	Fields []TypeRecordField
	Rest   TypeExpr
}

// ConstraintExpr is either `Typeclass(name, vars)` or `Equality(left, right)`.
type ConstraintExpr interface {
	constraintExprNode()
}

type TypeclassConstraintExpr struct {
	ClassName string
	Vars      []string
}

func (TypeclassConstraintExpr) constraintExprNode() {}

type EqualityConstraintExpr struct {
	Left  TypeExpr
	Right TypeExpr
}

func (EqualityConstraintExpr) constraintExprNode() {}

// TypeQualifiedExpr is `(C1, C2) => Body`.
type TypeQualifiedExpr struct {
	typeExprBase
	Constraints []ConstraintExpr
	Body        TypeExpr
}
