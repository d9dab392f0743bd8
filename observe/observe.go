// Package observe implements the Observation Cache (component C of the
// spec): on insertion of a message expression it eagerly materialises the
// expression's candidate list and the metadata the Search Engine needs
// (declared target CRC, word width), since re-running the lazy expansion
// once per (init, poly, dir) combination the search engine tries would be
// prohibitive.
package observe

import (
	"errors"
	"fmt"

	"github.com/ericlagergren/crcsolve/expr"
)

// ErrMissingTarget is returned when an expression carries no Target node.
var ErrMissingTarget = errors.New("observe: expression has no Target node")

// ErrWidthConflict is returned when an expression's leaves disagree on
// word width.
var ErrWidthConflict = errors.New("observe: expression leaves disagree on word width")

// ErrOutOfRange is returned when the declared target exceeds the CRC
// register's range for the configured order.
var ErrOutOfRange = errors.New("observe: target exceeds register range for the configured order")

// Observation is one materialised (candidates, target, width) triple
// produced from a message expression. It is immutable once constructed
// and owned for the lifetime of a single solve() call, matching the
// lifetime contract in §3 of the spec.
type Observation struct {
	Candidates []expr.Candidate
	Target     uint64
	Width      int

	describe string
}

// Describe returns a short human-readable trace of the observation,
// suitable for a startup banner (ctk/solver.py's "print i, 'should
// result in CRC...'" loop); it is not used by the hot search path.
func (o Observation) Describe() string {
	return o.describe
}

// New materialises e into an Observation, validating it against a CRC
// register of the given order (bits). It fails with ErrMissingTarget if e
// carries no Target node, ErrWidthConflict if e's leaves disagree on word
// width, and ErrOutOfRange if the declared target does not fit in order
// bits.
func New(e expr.Expr, order int) (Observation, error) {
	target, ok := e.TargetCRC()
	if !ok {
		return Observation{}, ErrMissingTarget
	}

	widths := expr.AllWidths(e)
	for i := 1; i < len(widths); i++ {
		if widths[i] != widths[0] {
			return Observation{}, fmt.Errorf("%w: found widths %d and %d", ErrWidthConflict, widths[0], widths[i])
		}
	}
	w, ok := e.DataWidth()
	if !ok && len(widths) > 0 {
		w = widths[0]
	}

	maxValue := uint64(1)<<order - 1
	if order >= 64 {
		maxValue = ^uint64(0)
	}
	if target > maxValue {
		return Observation{}, fmt.Errorf("%w: target %#x, order %d", ErrOutOfRange, target, order)
	}

	var candidates []expr.Candidate
	for c := range e.Expand() {
		candidates = append(candidates, c)
	}

	return Observation{
		Candidates: candidates,
		Target:     target,
		Width:      w,
		describe:   fmt.Sprintf("target=%#x width=%d alternatives=%d", target, w, len(candidates)),
	}, nil
}
