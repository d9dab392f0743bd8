package expr

// Builder wraps an Expr with chainable sugar for Concat/Optional/Repeat,
// standing in for the operator overloading (__add__, __invert__, __mul__)
// that ctk/datatypes.py's _operations mixin gives the Python original —
// Go has no operator overloading, so this is a named-method rendering of
// the same convenience. The named constructors (Data, Target, Concat,
// Optional, Repeat, Permute, Combine) remain the canonical, spec-traceable
// API; Builder is strictly peripheral.
type Builder struct{ Expr }

// Wrap returns a Builder around e.
func Wrap(e Expr) Builder { return Builder{e} }

// Then is sugar for Concat(b.Expr, other).
func (b Builder) Then(other Expr) Builder {
	return Builder{Concat(b.Expr, other)}
}

// Maybe is sugar for Optional(b.Expr).
func (b Builder) Maybe() Builder {
	return Builder{Optional(b.Expr)}
}

// Times is sugar for Repeat(b.Expr, lo, hi).
func (b Builder) Times(lo, hi int) (Builder, error) {
	r, err := Repeat(b.Expr, lo, hi)
	if err != nil {
		return Builder{}, err
	}
	return Builder{r}, nil
}
