package pil

// Mutator rewrites a single expression node. It is applied by PreVisit and
// PostVisit to every node in a tree; returning the node unchanged is a no-op.
type Mutator func(Expression) Expression

// PreVisit applies f to e, then recurses into the (possibly rewritten)
// node's children. This is the order romgen's input substitution relies on
// (spec section 4.1, step 2): a Reference leaf is rewritten before its
// (nonexistent) children are visited, and a rewrite at an outer node is free
// to replace children wholesale without f seeing the originals.
func PreVisit(e Expression, f Mutator) Expression {
	e = f(e)
	children := e.Children()
	if len(children) == 0 {
		return e
	}
	rewritten := make([]Expression, len(children))
	for i, c := range children {
		rewritten[i] = PreVisit(c, f)
	}
	return e.WithChildren(rewritten)
}

// PostVisit recurses into e's children first, then applies f to the
// rewritten node. Instruction-body parameter substitution (spec section 4.2,
// Phase B) uses this order: every reference inside the body is visited
// before the enclosing identity is considered whole.
func PostVisit(e Expression, f Mutator) Expression {
	children := e.Children()
	if len(children) > 0 {
		rewritten := make([]Expression, len(children))
		for i, c := range children {
			rewritten[i] = PostVisit(c, f)
		}
		e = e.WithChildren(rewritten)
	}
	return f(e)
}

// SubstituteReferences rewrites every Reference leaf whose name is a key of
// substitution to Reference{Name: substitution[name]}. It leaves every other
// node, including left-hand sides of assignments (which are not expressions
// to begin with), untouched — this is the isolation property tested in spec
// section 8, property 4.
func SubstituteReferences(e Expression, substitution map[string]string) Expression {
	return PreVisit(e, func(e Expression) Expression {
		ref, ok := e.(Reference)
		if !ok {
			return e
		}
		if to, ok := substitution[ref.Name]; ok {
			return Reference{Name: to}
		}
		return e
	})
}
