// Package search implements the Search Engine (component D of the spec):
// for one fixed (poly, dir), it finds every (init, post) pair consistent
// with all observations, exploiting the identity
//
//	finish = raw_state XOR post      <=>      post = raw_state XOR target
//
// to replace an explicit inner loop over candidate post values with a
// single membership test — the central performance win the spec calls
// out in §9 ("preserve this reduction").
package search

import (
	"errors"
	"fmt"

	"github.com/ericlagergren/crcsolve/crc"
	"github.com/ericlagergren/crcsolve/expr"
	"github.com/ericlagergren/crcsolve/internal/words"
	"github.com/ericlagergren/crcsolve/observe"
)

// ErrOutOfRange is returned by NewConfig when a declared poly, init or
// post set contains a value that does not fit the configured order.
var ErrOutOfRange = errors.New("search: value exceeds register range for the configured order")

// Pair is one surviving (init, post) parameter pair for a fixed
// (poly, dir), together with the witness candidates — per observation —
// that were found to reproduce that observation's declared CRC.
type Pair struct {
	Init, Post uint64
	// Witnesses holds, for each observation in insertion order, every
	// candidate from that observation found to match. Witness lists grow
	// monotonically across phases; they are a debugging artefact and the
	// same_length filter only inspects the first observation's lengths.
	Witnesses [][]expr.Candidate
}

// Result is one emitted parameterisation (§4.D "Emission").
type Result struct {
	Poly       uint64
	Dir        crc.Direction
	Init, Post uint64
	Witnesses  [][]expr.Candidate
}

// Config is the four finite search sets of §3: P, D, I, X.
type Config struct {
	Poly words.Set
	Dir  []crc.Direction
	Init words.Set
	Post words.Set
}

// NewFullConfig returns the default search configuration: full
// enumeration of [0, 2^order) for Poly/Init/Post and both directions —
// the default described in §3. For order > 16 this is almost always
// infeasible (§9); callers targeting a large order should build a
// narrower Config by hand instead of calling this.
func NewFullConfig(order int) Config {
	return Config{
		Poly: words.Full(order),
		Dir:  []crc.Direction{crc.Forward, crc.Reverse},
		Init: words.Full(order),
		Post: words.Full(order),
	}
}

// NewConfig validates a user-supplied Config against order, returning
// ErrOutOfRange if any member of Poly, Init or Post falls outside
// [0, 2^order). This is the "configuration time" OutOfRange check of §7 —
// fatal and eager, before any worker is ever started.
func NewConfig(order int, poly, init, post words.Set, dirs []crc.Direction) (Config, error) {
	for name, s := range map[string]words.Set{"poly": poly, "init": init, "post": post} {
		if err := validateSet(order, s); err != nil {
			return Config{}, fmt.Errorf("search: %s set: %w", name, err)
		}
	}
	return Config{Poly: poly, Dir: dirs, Init: init, Post: post}, nil
}

func validateSet(order int, s words.Set) error {
	limit := uint64(1)<<order - 1
	if order >= 64 {
		limit = ^uint64(0)
	}
	for v := range s.All() {
		if v > limit {
			return fmt.Errorf("%w: value %#x, order %d", ErrOutOfRange, v, order)
		}
	}
	return nil
}

// pairKey identifies a live (init, post) pair within one (poly, dir) run.
type pairKey struct{ init, post uint64 }

// One runs the two-phase filter of §4.D for one fixed (poly, dir) against
// obs, returning every surviving (init, post) pair. obs must be
// non-empty; order is the CRC register width in bits.
func One(order int, poly uint64, dir crc.Direction, obs []observe.Observation, cfg Config, sameLength bool) ([]Pair, error) {
	if len(obs) == 0 {
		return nil, nil
	}

	live := map[pairKey]*Pair{}

	// Phase 1: seed from the first observation.
	first := obs[0]
	for init := range cfg.Init.All() {
		c, err := crc.New(order, poly, dir, init, 0)
		if err != nil {
			return nil, err
		}
		for _, cand := range first.Candidates {
			raw := c.Run([]uint64(cand), first.Width)
			post := raw ^ first.Target
			if !cfg.Post.Contains(post) {
				continue
			}
			key := pairKey{init: init, post: post}
			p, ok := live[key]
			if !ok {
				p = &Pair{Init: init, Post: post, Witnesses: make([][]expr.Candidate, len(obs))}
				live[key] = p
			}
			p.Witnesses[0] = append(p.Witnesses[0], cand)
		}
	}

	if len(live) == 0 {
		return nil, nil
	}

	// Phase 2: filter against the remaining observations.
	for k := 1; k < len(obs); k++ {
		dataset := obs[k]
		for key, p := range live {
			c, err := crc.New(order, poly, dir, key.init, 0)
			if err != nil {
				return nil, err
			}
			matched := false
			for _, cand := range dataset.Candidates {
				raw := c.Run([]uint64(cand), dataset.Width)
				if raw^key.post == dataset.Target {
					matched = true
					p.Witnesses[k] = append(p.Witnesses[k], cand)
				}
			}
			if !matched {
				delete(live, key)
			}
		}
		if len(live) == 0 {
			return nil, nil
		}
	}

	out := make([]Pair, 0, len(live))
	for _, p := range live {
		if sameLength && !sameLengthWitnesses(p.Witnesses[0]) {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

// sameLengthWitnesses reports whether every witness in the first
// observation's list shares the same length, per the same_length policy
// of §4.D: a pair is suppressed when alternatives of differing length are
// present, signalling a likely false positive against a fixed-length
// framing.
func sameLengthWitnesses(witnesses []expr.Candidate) bool {
	if len(witnesses) == 0 {
		return true
	}
	l := len(witnesses[0])
	for _, w := range witnesses[1:] {
		if len(w) != l {
			return false
		}
	}
	return true
}
