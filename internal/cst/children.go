package cst

// Children enumerates n's immediate structural children for the purposes
// of SetParents. It is a plain type switch rather than a Visitor method
// because the parent-wiring walk needs every child regardless of kind,
// unlike the kind-specific Visitor dispatch used by the rest of the
// checker.
func Children(n Node) []Node {
	switch t := n.(type) {
	case *SourceFile:
		out := make([]Node, 0, len(t.Decls))
		for _, d := range t.Decls {
			out = append(out, d)
		}
		return out

	case *FunctionDeclaration:
		var out []Node
		if t.Name != nil {
			out = append(out, t.Name)
		}
		for _, p := range t.Params {
			out = append(out, p)
		}
		if t.TypeAssert != nil {
			out = append(out, t.TypeAssert)
		}
		if t.Body != nil {
			if t.Body.Expr != nil {
				out = append(out, t.Body.Expr)
			}
			if t.Body.Block != nil {
				out = append(out, t.Body.Block)
			}
		}
		return out

	case *VariableDeclaration:
		var out []Node
		if t.Pattern != nil {
			out = append(out, t.Pattern)
		}
		if t.TypeAssert != nil {
			out = append(out, t.TypeAssert)
		}
		if t.Value != nil {
			out = append(out, t.Value)
		}
		return out

	case *RecordDeclaration:
		var out []Node
		for _, f := range t.Fields {
			if f.Type != nil {
				out = append(out, f.Type)
			}
		}
		return out

	case *VariantDeclaration:
		var out []Node
		for _, m := range t.Members {
			for _, f := range m.Fields {
				out = append(out, f)
			}
		}
		return out

	case *ClassDeclaration:
		var out []Node
		for _, m := range t.Methods {
			out = append(out, m)
		}
		return out

	case *InstanceDeclaration:
		var out []Node
		if t.TargetType != nil {
			out = append(out, t.TargetType)
		}
		for _, m := range t.Methods {
			out = append(out, m)
		}
		return out

	case *CallExpr:
		out := []Node{t.Fn}
		for _, a := range t.Args {
			out = append(out, a)
		}
		return out

	case *InfixExpr:
		return []Node{t.Left, t.Right}

	case *PrefixExpr:
		return []Node{t.Arg}

	case *MemberExpr:
		return []Node{t.Expr}

	case *TupleExpr:
		out := make([]Node, 0, len(t.Elements))
		for _, e := range t.Elements {
			out = append(out, e)
		}
		return out

	case *RecordExpr:
		var out []Node
		for _, f := range t.Fields {
			out = append(out, f.Value)
		}
		return out

	case *MatchExpr:
		var out []Node
		if t.Scrutinee != nil {
			out = append(out, t.Scrutinee)
		}
		for _, c := range t.Cases {
			out = append(out, c.Pattern, c.Body)
		}
		return out

	case *IfExpr:
		var out []Node
		for _, p := range t.Parts {
			if p.Test != nil {
				out = append(out, p.Test)
			}
			out = append(out, p.Body)
		}
		return out

	case *NestedExpr:
		return []Node{t.Inner}

	case *BlockExpr:
		out := make([]Node, 0, len(t.Elements))
		out = append(out, t.Elements...)
		return out

	case *ReturnExpr:
		if t.Value != nil {
			return []Node{t.Value}
		}
		return nil

	case *FunctionExpr:
		var out []Node
		for _, p := range t.Params {
			out = append(out, p)
		}
		if t.Body != nil {
			if t.Body.Expr != nil {
				out = append(out, t.Body.Expr)
			}
			if t.Body.Block != nil {
				out = append(out, t.Body.Block)
			}
		}
		return out

	case *TuplePattern:
		out := make([]Node, 0, len(t.Elements))
		for _, e := range t.Elements {
			out = append(out, e)
		}
		return out

	case *NestedPattern:
		return []Node{t.Inner}

	case *ListPattern:
		out := make([]Node, 0, len(t.Elements))
		for _, e := range t.Elements {
			out = append(out, e)
		}
		return out

	case *NamedTuplePattern:
		out := make([]Node, 0, len(t.Args))
		for _, a := range t.Args {
			out = append(out, a)
		}
		return out

	case *RecordPattern:
		var out []Node
		for _, f := range t.Fields {
			if f.SubPattern != nil {
				out = append(out, f.SubPattern)
			}
		}
		return out

	case *NamedRecordPattern:
		var out []Node
		for _, f := range t.Fields {
			if f.SubPattern != nil {
				out = append(out, f.SubPattern)
			}
		}
		return out

	case *TypeAppExpr:
		return []Node{t.Op, t.Arg}

	case *TypeArrowExpr:
		out := make([]Node, 0, len(t.Params)+1)
		for _, p := range t.Params {
			out = append(out, p)
		}
		out = append(out, t.Return)
		return out

	case *TypeNestedExpr:
		return []Node{t.Inner}

	case *TypeTupleExpr:
		out := make([]Node, 0, len(t.Elements))
		for _, e := range t.Elements {
			out = append(out, e)
		}
		return out

	case *TypeRecordExpr:
		var out []Node
		for _, f := range t.Fields {
			out = append(out, f.Type)
		}
		if t.Rest != nil {
			out = append(out, t.Rest)
		}
		return out

	case *TypeQualifiedExpr:
		return []Node{t.Body}

	default:
		// Reference/Literal/Bind/LiteralPattern/TypeReference/TypeVar and
		// other leaf nodes have no structural children.
		return nil
	}
}
