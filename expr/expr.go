// Package expr implements the symbolic message algebra: a small set of
// composable constructors (Data, Target, Concat, Optional, Repeat,
// Permute, Combine) that lazily enumerate the candidate byte sequences a
// framed message might actually be.
//
// The algebra is a closed, recursive sum type — one unexported struct per
// constructor, sealed behind the Expr interface — rather than an open
// class hierarchy, matching how the teacher this package was grown from
// (github.com/ericlagergren/lwcrypto) keeps its cipher state as a single
// concrete struct rather than an interface with many implementations.
package expr

import (
	"errors"
	"iter"
)

// ErrNegativeBound is returned by Repeat, Permute and Combine when lo or
// hi is negative. Together with ErrMisplacedTarget it is one of the two
// construction-time errors the algebra itself defines; out-of-range
// values are checked by the Observation Cache and Search Engine.
var ErrNegativeBound = errors.New("expr: lo and hi must be non-negative")

// ErrMisplacedTarget is returned by Repeat, Permute and Combine when a
// child expression carries a Target node. The spec leaves this case
// explicitly undefined upstream and recommends implementations reject
// it; Target is only meaningful directly on the top-level Concat spine
// of an observation.
var ErrMisplacedTarget = errors.New("expr: Target may only appear on the top-level Concat spine")

// Candidate is one concrete byte sequence enumerated from a message
// expression: a finite ordered sequence of byte words.
type Candidate []uint64

// clone returns a copy of c so callers holding onto an emitted Candidate
// are never aliased to the algebra's internal working buffers.
func (c Candidate) clone() Candidate {
	out := make(Candidate, len(c))
	copy(out, c)
	return out
}

func concatTwo(a, b Candidate) Candidate {
	out := make(Candidate, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

// Expr is a symbolic message expression. Every variant exposes the three
// operations of §3 of the spec: Expand (yield candidates), DataWidth (the
// word width of its leaves), and TargetCRC (the declared checksum carried
// somewhere in the expression, if any).
//
// Expr is sealed: the only implementations are the ones returned by this
// package's constructors.
type Expr interface {
	// Expand lazily yields every candidate this expression denotes. The
	// sequence is always finite.
	Expand() iter.Seq[Candidate]
	// DataWidth reports the word width of this expression's leaves, if
	// any exist.
	DataWidth() (w int, ok bool)
	// TargetCRC reports the declared checksum carried by this
	// expression, if any.
	TargetCRC() (value uint64, ok bool)

	sealed()
}

// hasTarget reports whether e (or any descendant) carries a Target node.
// Used to enforce ErrMisplacedTarget.
func hasTarget(e Expr) bool {
	_, ok := e.TargetCRC()
	return ok
}

// --- Literal -----------------------------------------------------------

type literalExpr struct {
	value Candidate
	w     int
}

// Data constructs a Literal expression: Expand yields exactly one
// candidate, value, unchanged. w is the word width of every element of
// value (see the internal/words package for the textual formats that
// produce value).
func Data(value []uint64, w int) Expr {
	return literalExpr{value: Candidate(value).clone(), w: w}
}

func (l literalExpr) Expand() iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		yield(l.value.clone())
	}
}
func (l literalExpr) DataWidth() (int, bool)          { return l.w, true }
func (literalExpr) TargetCRC() (uint64, bool)         { return 0, false }
func (literalExpr) sealed()                           {}

// --- Target --------------------------------------------------------------

type targetExpr struct{ value uint64 }

// Target constructs a marker declaring the expected CRC for the enclosing
// expression. It is not payload: Expand yields the empty candidate.
func Target(value uint64) Expr {
	return targetExpr{value: value}
}

func (targetExpr) Expand() iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) { yield(nil) }
}
func (targetExpr) DataWidth() (int, bool)        { return 0, false }
func (t targetExpr) TargetCRC() (uint64, bool)   { return t.value, true }
func (targetExpr) sealed()                       {}

// --- Concat --------------------------------------------------------------

type concatExpr struct{ a, b Expr }

// Concat concatenates two or more expressions. Expand yields every
// ax++bx for ax drawn from a.Expand (outer) and bx from b.Expand (inner).
// With more than two parts, Concat nests to the right, as
// Concat(a, Concat(b, c, ...)); the resulting candidates, and the order
// they are yielded in, are the same as for left nesting.
//
// Concat requires at least two parts; calling it with fewer is a
// programmer error and panics, the same way grain.Seal panics on a
// malformed nonce rather than returning an error for a contract violation
// that can only come from a caller bug.
func Concat(parts ...Expr) Expr {
	if len(parts) < 2 {
		panic("expr: Concat requires at least two parts")
	}
	if len(parts) == 2 {
		return concatExpr{a: parts[0], b: parts[1]}
	}
	return concatExpr{a: parts[0], b: Concat(parts[1:]...)}
}

func (c concatExpr) Expand() iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		for a := range c.a.Expand() {
			for b := range c.b.Expand() {
				if !yield(concatTwo(a, b)) {
					return
				}
			}
		}
	}
}
func (c concatExpr) DataWidth() (int, bool) {
	if w, ok := c.a.DataWidth(); ok {
		return w, true
	}
	return c.b.DataWidth()
}
func (c concatExpr) TargetCRC() (uint64, bool) {
	if v, ok := c.a.TargetCRC(); ok {
		return v, true
	}
	return c.b.TargetCRC()
}
func (concatExpr) sealed() {}

// --- Optional ------------------------------------------------------------

type optionalExpr struct{ a Expr }

// Optional makes an expression optional: Expand yields the empty
// candidate first, then every candidate of a.
func Optional(a Expr) Expr {
	return optionalExpr{a: a}
}

func (o optionalExpr) Expand() iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		if !yield(nil) {
			return
		}
		for c := range o.a.Expand() {
			if !yield(c) {
				return
			}
		}
	}
}
func (o optionalExpr) DataWidth() (int, bool)      { return o.a.DataWidth() }
func (o optionalExpr) TargetCRC() (uint64, bool)   { return o.a.TargetCRC() }
func (optionalExpr) sealed()                       {}

// --- Repeat ----------------------------------------------------------------

type repeatExpr struct {
	a      Expr
	lo, hi int
}

// Repeat repeats a between lo and hi times inclusive (0 <= lo <= hi). For
// each k from lo to hi ascending, Expand yields every candidate formed by
// concatenating k independently-drawn candidates from a.Expand, in
// lexicographic expansion order; Repeat(a, 0, hi) yields the empty
// candidate at k=0.
//
// hi < lo is normalised to hi = lo. Negative lo or hi is rejected with
// ErrNegativeBound. A may not carry a Target node (ErrMisplacedTarget).
func Repeat(a Expr, lo, hi int) (Expr, error) {
	if lo < 0 || hi < 0 {
		return nil, ErrNegativeBound
	}
	if hasTarget(a) {
		return nil, ErrMisplacedTarget
	}
	if hi < lo {
		hi = lo
	}
	return repeatExpr{a: a, lo: lo, hi: hi}, nil
}

func (r repeatExpr) Expand() iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		for k := r.lo; k <= r.hi; k++ {
			children := make([]Expr, k)
			for i := range children {
				children[i] = r.a
			}
			if !unrollChildren(children, nil, yield) {
				return
			}
		}
	}
}
func (r repeatExpr) DataWidth() (int, bool)      { return r.a.DataWidth() }
func (repeatExpr) TargetCRC() (uint64, bool)     { return 0, false }
func (repeatExpr) sealed()                       {}

// unrollChildren concatenates one candidate from each child's Expand, in
// order, over the full Cartesian product — the common engine behind
// Repeat, Permute and Combine (Concat iterates its two parts directly),
// mirroring ctk/datatypes.py's recursive_unroll helper in the original
// implementation.
func unrollChildren(children []Expr, prefix Candidate, yield func(Candidate) bool) bool {
	if len(children) == 0 {
		return yield(prefix.clone())
	}
	head, tail := children[0], children[1:]
	for c := range head.Expand() {
		if !unrollChildren(tail, concatTwo(prefix, c), yield) {
			return false
		}
	}
	return true
}
