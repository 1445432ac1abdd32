package scope

import "github.com/boltlang/boltcheck/internal/cst"

// Build walks root (ordinarily a *cst.SourceFile) and constructs the full
// scope tree, returning the side Table keyed by scope-introducing node.
// root must already have had cst.SetParents applied.
func Build(root cst.Node) *Table {
	t := NewTable()
	b := &builder{table: t}
	b.visitNode(root, nil)
	return t
}

type builder struct {
	table *Table
}

// visitNode dispatches on concrete type; it replaces a cst.Visitor-based
// walk because several node kinds (FunctionDeclaration, BlockExpr,
// MatchExpr cases) need to introduce a child scope and recurse with it,
// which the single-dispatch Visitor interface does not thread through.
func (b *builder) visitNode(n cst.Node, enclosing *Scope) {
	switch t := n.(type) {
	case *cst.SourceFile:
		s := newScope(enclosing)
		b.table.set(t, s)
		for _, d := range t.Decls {
			b.declareTopLevel(d, s)
		}
		for _, d := range t.Decls {
			b.visitNode(d, s)
		}

	case *cst.FunctionDeclaration:
		s := newScope(enclosing)
		b.table.set(t, s)
		for _, p := range t.Params {
			b.declarePattern(p, s)
		}
		if t.Body != nil {
			if t.Body.Expr != nil {
				b.visitNode(t.Body.Expr, s)
			}
			if t.Body.Block != nil {
				b.visitNode(t.Body.Block, s)
			}
		}

	case *cst.InstanceDeclaration:
		for _, m := range t.Methods {
			b.visitNode(m, enclosing)
		}

	case *cst.ClassDeclaration:
		for _, m := range t.Methods {
			b.visitNode(m, enclosing)
		}

	case *cst.VariableDeclaration:
		if t.Value != nil {
			b.visitNode(t.Value, enclosing)
		}

	case *cst.BlockExpr:
		s := newScope(enclosing)
		b.table.set(t, s)
		for _, el := range t.Elements {
			switch e := el.(type) {
			case *cst.VariableDeclaration:
				b.declarePattern(e.Pattern, s)
				if e.Value != nil {
					b.visitNode(e.Value, s)
				}
			case cst.Decl:
				b.declareTopLevel(e, s)
				b.visitNode(e, s)
			default:
				b.visitNode(el, s)
			}
		}

	case *cst.MatchExpr:
		if t.Scrutinee != nil {
			b.visitNode(t.Scrutinee, enclosing)
		}
		for _, c := range t.Cases {
			cs := newScope(enclosing)
			b.declarePattern(c.Pattern, cs)
			b.visitNode(c.Body, cs)
		}

	case *cst.FunctionExpr:
		s := newScope(enclosing)
		for _, p := range t.Params {
			b.declarePattern(p, s)
		}
		if t.Body != nil {
			if t.Body.Expr != nil {
				b.visitNode(t.Body.Expr, s)
			}
			if t.Body.Block != nil {
				b.visitNode(t.Body.Block, s)
			}
		}

	case *cst.CallExpr:
		b.visitNode(t.Fn, enclosing)
		for _, a := range t.Args {
			b.visitNode(a, enclosing)
		}

	case *cst.InfixExpr:
		b.visitNode(t.Left, enclosing)
		b.visitNode(t.Right, enclosing)

	case *cst.PrefixExpr:
		b.visitNode(t.Arg, enclosing)

	case *cst.MemberExpr:
		b.visitNode(t.Expr, enclosing)

	case *cst.TupleExpr:
		for _, e := range t.Elements {
			b.visitNode(e, enclosing)
		}

	case *cst.RecordExpr:
		for _, f := range t.Fields {
			b.visitNode(f.Value, enclosing)
		}

	case *cst.IfExpr:
		for _, p := range t.Parts {
			if p.Test != nil {
				b.visitNode(p.Test, enclosing)
			}
			b.visitNode(p.Body, enclosing)
		}

	case *cst.NestedExpr:
		b.visitNode(t.Inner, enclosing)

	case *cst.ReturnExpr:
		if t.Value != nil {
			b.visitNode(t.Value, enclosing)
		}

	default:
		// Reference/Literal and other leaf expressions need no scope work.
	}
}

// declareTopLevel introduces the symbol(s) a declaration contributes to its
// enclosing scope (spec §3.5: function/variable names live in the Var
// namespace, record/variant names in Type, class names in Class, data
// constructors in Constructor).
func (b *builder) declareTopLevel(d cst.Decl, s *Scope) {
	switch t := d.(type) {
	case *cst.FunctionDeclaration:
		if t.Name != nil {
			s.Define(&Symbol{Name: t.Name.Name, Kind: Var, Node: t})
		}
	case *cst.VariableDeclaration:
		if t.Pattern != nil {
			s.Define(&Symbol{Name: t.Pattern.Name, Kind: Var, Node: t})
		}
	case *cst.RecordDeclaration:
		s.Define(&Symbol{Name: t.Name, Kind: Type, Node: t})
		s.Define(&Symbol{Name: t.Name, Kind: Constructor, Node: t})
	case *cst.VariantDeclaration:
		s.Define(&Symbol{Name: t.Name, Kind: Type, Node: t})
		for i := range t.Members {
			s.Define(&Symbol{Name: t.Members[i].Name, Kind: Constructor, Node: t})
		}
	case *cst.ClassDeclaration:
		s.Define(&Symbol{Name: t.Name, Kind: Class, Node: t})
		for _, m := range t.Methods {
			if m.Name != nil {
				s.Define(&Symbol{Name: m.Name.Name, Kind: Var, Node: m})
			}
		}
	case *cst.InstanceDeclaration:
		// Instances contribute no new names; their methods implement an
		// existing class's signatures.
	}
}

// declarePattern introduces every name a pattern binds into s (spec §3.2:
// Bind, Tuple, List, NamedTuple, Record, NamedRecord patterns may all
// nest binders).
func (b *builder) declarePattern(p cst.Pattern, s *Scope) {
	switch t := p.(type) {
	case *cst.BindPattern:
		s.Define(&Symbol{Name: t.Name, Kind: Var, Node: t})
	case *cst.TuplePattern:
		for _, e := range t.Elements {
			b.declarePattern(e, s)
		}
	case *cst.NestedPattern:
		b.declarePattern(t.Inner, s)
	case *cst.ListPattern:
		for _, e := range t.Elements {
			b.declarePattern(e, s)
		}
	case *cst.NamedTuplePattern:
		for _, a := range t.Args {
			b.declarePattern(a, s)
		}
	case *cst.RecordPattern:
		for _, f := range t.Fields {
			if f.SubPattern != nil {
				b.declarePattern(f.SubPattern, s)
			}
		}
	case *cst.NamedRecordPattern:
		for _, f := range t.Fields {
			if f.SubPattern != nil {
				b.declarePattern(f.SubPattern, s)
			}
		}
	case *cst.LiteralPattern:
		// No binder.
	}
}
