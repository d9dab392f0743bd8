package expr

import "iter"

type permuteExpr struct {
	values []Expr
	lo, hi int
}

// Permute investigates a subset of all possible orderings of values,
// restricted to using between lo and hi of them (inclusive). For each r
// in lo..hi, for each ordered r-permutation of the children, Expand
// yields every candidate formed by concatenating one candidate per chosen
// child in the permuted order.
//
// hi < lo is normalised to hi = lo. Negative lo or hi is rejected with
// ErrNegativeBound. No child may carry a Target node (ErrMisplacedTarget).
// Calling Permute with no values is a programmer error and panics.
func Permute(values []Expr, lo, hi int) (Expr, error) {
	if len(values) == 0 {
		panic("expr: Permute requires at least one value")
	}
	if lo < 0 || hi < 0 {
		return nil, ErrNegativeBound
	}
	for _, v := range values {
		if hasTarget(v) {
			return nil, ErrMisplacedTarget
		}
	}
	if hi < lo {
		hi = lo
	}
	cp := make([]Expr, len(values))
	copy(cp, values)
	return permuteExpr{values: cp, lo: lo, hi: hi}, nil
}

func (p permuteExpr) Expand() iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		n := len(p.values)
		for r := p.lo; r <= p.hi; r++ {
			if r > n {
				continue
			}
			ok := true
			forEachPermutation(n, r, func(idx []int) bool {
				children := make([]Expr, len(idx))
				for i, j := range idx {
					children[i] = p.values[j]
				}
				if !unrollChildren(children, nil, yield) {
					ok = false
					return false
				}
				return true
			})
			if !ok {
				return
			}
		}
	}
}
func (p permuteExpr) DataWidth() (int, bool) { return p.values[0].DataWidth() }
func (permuteExpr) TargetCRC() (uint64, bool) {
	return 0, false
}
func (permuteExpr) sealed() {}

type combineExpr struct {
	values []Expr
	lo, hi int
}

// Combine investigates a subset of all possible combinations of values,
// restricted to using between lo and hi of them (inclusive), preserving
// the input order of the chosen children. For each r in lo..hi, for each
// r-element subset, Expand yields every candidate formed by concatenating
// one candidate per chosen child.
//
// Negative bounds, hi < lo, an empty values list, and a child carrying
// Target are all handled identically to Permute.
func Combine(values []Expr, lo, hi int) (Expr, error) {
	if len(values) == 0 {
		panic("expr: Combine requires at least one value")
	}
	if lo < 0 || hi < 0 {
		return nil, ErrNegativeBound
	}
	for _, v := range values {
		if hasTarget(v) {
			return nil, ErrMisplacedTarget
		}
	}
	if hi < lo {
		hi = lo
	}
	cp := make([]Expr, len(values))
	copy(cp, values)
	return combineExpr{values: cp, lo: lo, hi: hi}, nil
}

func (c combineExpr) Expand() iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		n := len(c.values)
		for r := c.lo; r <= c.hi; r++ {
			if r > n {
				continue
			}
			ok := true
			forEachCombination(n, r, func(idx []int) bool {
				children := make([]Expr, len(idx))
				for i, j := range idx {
					children[i] = c.values[j]
				}
				if !unrollChildren(children, nil, yield) {
					ok = false
					return false
				}
				return true
			})
			if !ok {
				return
			}
		}
	}
}
func (c combineExpr) DataWidth() (int, bool) { return c.values[0].DataWidth() }
func (combineExpr) TargetCRC() (uint64, bool) {
	return 0, false
}
func (combineExpr) sealed() {}

// forEachPermutation calls visit with every ordered r-permutation of the
// indices [0, n), as a freshly-allocated []int, stopping early if visit
// returns false.
func forEachPermutation(n, r int, visit func([]int) bool) bool {
	used := make([]bool, n)
	idx := make([]int, r)
	var rec func(pos int) bool
	rec = func(pos int) bool {
		if pos == r {
			cp := make([]int, r)
			copy(cp, idx)
			return visit(cp)
		}
		for i := 0; i < n; i++ {
			if used[i] {
				continue
			}
			used[i] = true
			idx[pos] = i
			cont := rec(pos + 1)
			used[i] = false
			if !cont {
				return false
			}
		}
		return true
	}
	return rec(0)
}

// forEachCombination calls visit with every ascending-index r-subset of
// [0, n) — equivalent to Python's itertools.combinations, which preserves
// the original relative order of the chosen elements — stopping early if
// visit returns false.
func forEachCombination(n, r int, visit func([]int) bool) bool {
	idx := make([]int, r)
	var rec func(pos, start int) bool
	rec = func(pos, start int) bool {
		if pos == r {
			cp := make([]int, r)
			copy(cp, idx)
			return visit(cp)
		}
		for i := start; i < n; i++ {
			idx[pos] = i
			if !rec(pos+1, i+1) {
				return false
			}
		}
		return true
	}
	return rec(0, 0)
}
