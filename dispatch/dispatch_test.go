package dispatch

import (
	"context"
	"testing"

	"github.com/ericlagergren/crcsolve/crc"
	"github.com/ericlagergren/crcsolve/expr"
	"github.com/ericlagergren/crcsolve/internal/words"
	"github.com/ericlagergren/crcsolve/observe"
	"github.com/ericlagergren/crcsolve/search"
)

// S1: a single literal-plus-target observation, CRC-8/CCITT-ish
// parameters, narrowed search sets so the pool finishes quickly.
func TestScenarioS1(t *testing.T) {
	cache := observe.NewCache(8)
	if err := cache.Add(expr.Concat(expr.Data([]uint64{0x41}, 8), expr.Target(0x05))); err != nil {
		t.Fatal(err)
	}

	cfg, err := search.NewConfig(8, words.NewHashSet(0x07), words.NewHashSet(0x00), words.NewHashSet(0x00), nil)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Dir = []crc.Direction{crc.Forward}

	results, err := RunAndWait(context.Background(), 8, cfg, cache, false, 0)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, r := range results {
		if r.Poly == 0x07 && r.Init == 0 && r.Post == 0 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the known-good (poly=0x07, init=0, post=0) tuple among %v", results)
	}
}

// TestEmptyCacheRejected matches spec.md's "configuration time" eager
// failure policy: Run refuses to start a pool with nothing to search.
func TestEmptyCacheRejected(t *testing.T) {
	cache := observe.NewCache(8)
	cfg := search.NewFullConfig(8)
	_, _, err := Run(context.Background(), 8, cfg, cache, false, 0)
	if err == nil {
		t.Fatal("expected an error for an empty cache")
	}
}

// TestContextCancellation verifies that cancelling ctx before Run starts
// unwinds the pool promptly instead of hanging, and that the error
// channel surfaces a non-nil error.
func TestContextCancellation(t *testing.T) {
	cache := observe.NewCache(8)
	if err := cache.Add(expr.Concat(expr.Data([]uint64{0x00}, 8), expr.Target(0x00))); err != nil {
		t.Fatal(err)
	}
	cfg := search.NewFullConfig(8)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, errc, err := Run(ctx, 8, cfg, cache, false, 1)
	if err != nil {
		t.Fatal(err)
	}
	for range out {
		// drain; cancellation may still let a few results through
		// depending on scheduling, which is fine — the contract is
		// only that the channel eventually closes.
	}
	if werr := <-errc; werr == nil {
		t.Fatal("expected a non-nil error after cancellation")
	}
}

// TestWorkerCountClampedToTaskCount ensures a large worker count doesn't
// panic or deadlock against a tiny task set.
func TestWorkerCountClampedToTaskCount(t *testing.T) {
	cache := observe.NewCache(4)
	if err := cache.Add(expr.Concat(expr.Data([]uint64{0x3}, 4), expr.Target(0x3))); err != nil {
		t.Fatal(err)
	}
	cfg, err := search.NewConfig(4, words.NewHashSet(0x3), words.NewHashSet(0x0), words.NewHashSet(0x0), nil)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Dir = []crc.Direction{crc.Forward}

	results, err := RunAndWait(context.Background(), 4, cfg, cache, false, 64)
	if err != nil {
		t.Fatal(err)
	}
	_ = results
}
