// Package cst defines the concrete syntax tree node shapes this checker
// consumes. The parser that produces these trees is an external
// collaborator and is not built here; this package only defines the node
// shapes, the Accept/Visitor traversal idiom (adapted from the teacher's
// internal/ast/ast_core.go), and the parent-wiring pass the teacher calls
// setParents.
package cst

import (
	"github.com/boltlang/boltcheck/internal/source"
	"github.com/boltlang/boltcheck/internal/types"
)

// Node is the common interface every CST node satisfies.
type Node interface {
	Parent() Node
	setParent(Node)
	Range() source.TextRange
	Accept(Visitor)
}

// base is embedded by every concrete node and carries the parent backlink
// and source range, following the teacher's nil-receiver-guarded embedding
// idiom in internal/ast/ast_core.go (adapted: that package embeds a Token,
// this one a TextRange, since positions here come from the layout scanner
// rather than a single token).
type base struct {
	parent Node
	rng    source.TextRange
}

func (b *base) Parent() Node               { return b.parent }
func (b *base) setParent(p Node)           { b.parent = p }
func (b *base) Range() source.TextRange    { return b.rng }

// Visitor receives one callback per node kind. Embedding BaseVisitor gives
// a default no-op so callers only implement the methods they care about.
type Visitor interface {
	VisitSourceFile(*SourceFile)
	VisitFunctionDeclaration(*FunctionDeclaration)
	VisitVariableDeclaration(*VariableDeclaration)
	VisitRecordDeclaration(*RecordDeclaration)
	VisitVariantDeclaration(*VariantDeclaration)
	VisitClassDeclaration(*ClassDeclaration)
	VisitInstanceDeclaration(*InstanceDeclaration)

	VisitReferenceExpr(*ReferenceExpr)
	VisitLiteralExpr(*LiteralExpr)
	VisitCallExpr(*CallExpr)
	VisitInfixExpr(*InfixExpr)
	VisitPrefixExpr(*PrefixExpr)
	VisitMemberExpr(*MemberExpr)
	VisitTupleExpr(*TupleExpr)
	VisitRecordExpr(*RecordExpr)
	VisitMatchExpr(*MatchExpr)
	VisitIfExpr(*IfExpr)
	VisitNestedExpr(*NestedExpr)
	VisitBlockExpr(*BlockExpr)
	VisitReturnExpr(*ReturnExpr)
	VisitFunctionExpr(*FunctionExpr)
}

// BaseVisitor is embedded by visitors that only need a subset of callbacks.
type BaseVisitor struct{}

func (BaseVisitor) VisitSourceFile(*SourceFile)                     {}
func (BaseVisitor) VisitFunctionDeclaration(*FunctionDeclaration)   {}
func (BaseVisitor) VisitVariableDeclaration(*VariableDeclaration)   {}
func (BaseVisitor) VisitRecordDeclaration(*RecordDeclaration)       {}
func (BaseVisitor) VisitVariantDeclaration(*VariantDeclaration)     {}
func (BaseVisitor) VisitClassDeclaration(*ClassDeclaration)         {}
func (BaseVisitor) VisitInstanceDeclaration(*InstanceDeclaration)   {}
func (BaseVisitor) VisitReferenceExpr(*ReferenceExpr)               {}
func (BaseVisitor) VisitLiteralExpr(*LiteralExpr)                   {}
func (BaseVisitor) VisitCallExpr(*CallExpr)                         {}
func (BaseVisitor) VisitInfixExpr(*InfixExpr)                       {}
func (BaseVisitor) VisitPrefixExpr(*PrefixExpr)                     {}
func (BaseVisitor) VisitMemberExpr(*MemberExpr)                     {}
func (BaseVisitor) VisitTupleExpr(*TupleExpr)                       {}
func (BaseVisitor) VisitRecordExpr(*RecordExpr)                     {}
func (BaseVisitor) VisitMatchExpr(*MatchExpr)                       {}
func (BaseVisitor) VisitIfExpr(*IfExpr)                             {}
func (BaseVisitor) VisitNestedExpr(*NestedExpr)                     {}
func (BaseVisitor) VisitBlockExpr(*BlockExpr)                       {}
func (BaseVisitor) VisitReturnExpr(*ReturnExpr)                     {}
func (BaseVisitor) VisitFunctionExpr(*FunctionExpr)                 {}

// Expr is any expression node; every expression carries an optional
// inferred type slot, filled in by the inference engine.
type Expr interface {
	Node
	InferredType() *types.Type
	SetInferredType(*types.Type)
}

type exprBase struct {
	base
	inferred *types.Type
}

func (e *exprBase) InferredType() *types.Type     { return e.inferred }
func (e *exprBase) SetInferredType(t *types.Type) { e.inferred = t }

// Decl is any top-level or nested declaration.
type Decl interface {
	Node
	declNode()
}

type declBase struct{ base }

func (declBase) declNode() {}

// Pattern is any pattern node.
type Pattern interface {
	Node
	patternNode()
}

type patternBase struct{ base }

func (patternBase) patternNode() {}

// ---- Source file ----

type SourceFile struct {
	base
	Path     string
	Decls    []Decl
}

func (n *SourceFile) Accept(v Visitor) { v.VisitSourceFile(n) }

// ---- Declarations ----

type Fixity int

const (
	FixityNamed Fixity = iota
	FixityPrefix
	FixitySuffix
	FixityInfix
)

// FunctionBody is either an expression body (`= expr`) or a block body.
type FunctionBody struct {
	Expr  Expr      // non-nil for an expression body
	Block *BlockExpr // non-nil for a block body
}

type FunctionDeclaration struct {
	declBase
	Fixity     Fixity
	Name       *BindPattern
	Params     []Pattern
	TypeAssert TypeExpr // nil if absent
	Body       *FunctionBody

	// IsCycleActive is set by the inference driver (§4.4 Phase 2) while
	// this declaration's SCC is being inferred. Nothing reads it: self/mutual
	// references reuse the live type variable because the provisional type
	// stays a monomorphic scheme until the SCC is generalized.
	IsCycleActive bool
	// ProvisionalType is the fresh unification variable (or the declared
	// type assertion) installed during Phase 1 forward-declaration.
	ProvisionalType *types.Type
}

func (n *FunctionDeclaration) Accept(v Visitor) { v.VisitFunctionDeclaration(n) }

type VariableDeclaration struct {
	declBase
	Pattern    *BindPattern // always a Bind, per spec §3.2 invariants
	TypeAssert TypeExpr
	Value      Expr
	IsConstant bool
}

func (n *VariableDeclaration) Accept(v Visitor) { v.VisitVariableDeclaration(n) }

type RecordField struct {
	Name string
	Type TypeExpr
}

type RecordDeclaration struct {
	declBase
	Name   string
	Fields []RecordField
}

func (n *RecordDeclaration) Accept(v Visitor) { v.VisitRecordDeclaration(n) }

type VariantMember struct {
	Name   string
	Fields []TypeExpr // positional constructor arguments
}

type VariantDeclaration struct {
	declBase
	Name    string
	Members []VariantMember
}

func (n *VariantDeclaration) Accept(v Visitor) { v.VisitVariantDeclaration(n) }

type ClassDeclaration struct {
	declBase
	Name    string
	TypeVar string
	Methods []*FunctionDeclaration
}

func (n *ClassDeclaration) Accept(v Visitor) { v.VisitClassDeclaration(n) }

type InstanceDeclaration struct {
	declBase
	ClassName  string
	TargetType TypeExpr
	Methods    []*FunctionDeclaration
}

func (n *InstanceDeclaration) Accept(v Visitor) { v.VisitInstanceDeclaration(n) }

// ---- Expressions ----

type Modules = []string

type ReferenceExpr struct {
	exprBase
	Modules Modules
	Name    string
}

func (n *ReferenceExpr) Accept(v Visitor) { v.VisitReferenceExpr(n) }

type LiteralKind int

const (
	LiteralInt LiteralKind = iota
	LiteralString
)

type LiteralExpr struct {
	exprBase
	Kind    LiteralKind
	Text    string
	IntVal  int64
}

func (n *LiteralExpr) Accept(v Visitor) { v.VisitLiteralExpr(n) }

type CallExpr struct {
	exprBase
	Fn   Expr
	Args []Expr
}

func (n *CallExpr) Accept(v Visitor) { v.VisitCallExpr(n) }

type InfixExpr struct {
	exprBase
	Left  Expr
	Op    string
	Right Expr
}

func (n *InfixExpr) Accept(v Visitor) { v.VisitInfixExpr(n) }

type PrefixExpr struct {
	exprBase
	Op  string
	Arg Expr
}

func (n *PrefixExpr) Accept(v Visitor) { v.VisitPrefixExpr(n) }

// MemberExpr's Name is either an identifier (IsIndex=false) or an integer
// tuple index (IsIndex=true, Index holds the value) per spec §3.2.
type MemberExpr struct {
	exprBase
	Expr    Expr
	Name    string
	IsIndex bool
	Index   int
}

func (n *MemberExpr) Accept(v Visitor) { v.VisitMemberExpr(n) }

type TupleExpr struct {
	exprBase
	Elements []Expr
}

func (n *TupleExpr) Accept(v Visitor) { v.VisitTupleExpr(n) }

type RecordFieldExpr struct {
	Name  string
	Value Expr
}

type RecordExpr struct {
	exprBase
	Fields []RecordFieldExpr
}

func (n *RecordExpr) Accept(v Visitor) { v.VisitRecordExpr(n) }

// MatchCase is one `pattern => body` arm of a match expression. It is not a
// Node; internal/scope opens a child scope for each case while building,
// but does not record that scope in its Scope-by-node side table.
type MatchCase struct {
	Pattern Pattern
	Body    Expr
}

type MatchExpr struct {
	exprBase
	Scrutinee Expr // nil if absent (match acts as a function, spec §4.4)
	Cases     []MatchCase
}

func (n *MatchExpr) Accept(v Visitor) { v.VisitMatchExpr(n) }

type IfPart struct {
	Test Expr // nil for the trailing else
	Body Expr
}

type IfExpr struct {
	exprBase
	Parts []IfPart
}

func (n *IfExpr) Accept(v Visitor) { v.VisitIfExpr(n) }

type NestedExpr struct {
	exprBase
	Inner Expr
}

func (n *NestedExpr) Accept(v Visitor) { v.VisitNestedExpr(n) }

type BlockExpr struct {
	exprBase
	Elements []Node // ExpressionStatement-like nodes; Expr or Decl
}

func (n *BlockExpr) Accept(v Visitor) { v.VisitBlockExpr(n) }

type ReturnExpr struct {
	exprBase
	Value Expr // nil if bare `return`
}

func (n *ReturnExpr) Accept(v Visitor) { v.VisitReturnExpr(n) }

type FunctionExpr struct {
	exprBase
	Params []Pattern
	Body   *FunctionBody
}

func (n *FunctionExpr) Accept(v Visitor) { v.VisitFunctionExpr(n) }

// SetParents walks the tree rooted at root, wiring every non-root node's
// parent pointer (spec §3.2 invariant). It is the Go analogue of the
// parser's own setParents pass, applied here to whatever CST a caller
// (ordinarily the out-of-scope parser, or a test fixture builder) hands in.
func SetParents(root Node) {
	setParentsWalk(root, nil)
}

func setParentsWalk(n Node, parent Node) {
	if n == nil {
		return
	}
	n.setParent(parent)
	for _, child := range Children(n) {
		setParentsWalk(child, n)
	}
}
