package expr

// AllWidths walks e and returns the declared word width of every leaf
// (Literal) reachable within it, in left-to-right traversal order.
//
// DataWidth (the public, spec-mandated operation) reports only a single
// width — the leftmost leaf's, per §4.B — which is exactly what the
// original Python implementation does and what this package's own
// DataWidth methods reproduce. AllWidths exists alongside it purely so
// the Observation Cache can detect a WidthConflict (mixed widths within
// one expression), which the single-width contract cannot see on its
// own; nothing in the algebra itself uses it.
func AllWidths(e Expr) []int {
	var out []int
	var walk func(Expr)
	walk = func(e Expr) {
		switch v := e.(type) {
		case literalExpr:
			out = append(out, v.w)
		case targetExpr:
			// no leaves
		case concatExpr:
			walk(v.a)
			walk(v.b)
		case optionalExpr:
			walk(v.a)
		case repeatExpr:
			walk(v.a)
		case permuteExpr:
			for _, c := range v.values {
				walk(c)
			}
		case combineExpr:
			for _, c := range v.values {
				walk(c)
			}
		}
	}
	walk(e)
	return out
}
