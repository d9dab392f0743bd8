// Command crcsolve is the reference driver for the crcsolve library: a
// trivial host program, not a general-purpose CLI (the library itself
// takes no flags and defines no wire format for its callers). It runs
// the worked repo-reverse-engineering example built by demoExpressions
// end to end and prints every surviving (poly, dir, init, post) tuple.
package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/golang/glog"

	"github.com/ericlagergren/crcsolve/dispatch"
	"github.com/ericlagergren/crcsolve/expr"
	"github.com/ericlagergren/crcsolve/internal/words"
	"github.com/ericlagergren/crcsolve/observe"
	"github.com/ericlagergren/crcsolve/search"
)

func main() {
	flag.Parse()
	defer glog.Flush()

	const order = 8

	cache := observe.NewCache(order)
	for i, e := range demoExpressions() {
		if err := cache.Add(e); err != nil {
			glog.Exitf("observation %d: %v", i, err)
		}
	}
	glog.Infof("Will solve:")
	for i, o := range cache.Observations() {
		glog.Infof("  %d: %s", i, o.Describe())
	}

	cfg := search.NewFullConfig(order)
	cfg.Post = words.NewHashSet(0) // narrowed exactly as ctk/test.py does

	results, err := dispatch.RunAndWait(context.Background(), order, cfg, cache, false, 0)
	if err != nil {
		glog.Exitf("solve: %v", err)
	}

	for _, r := range results {
		fmt.Printf("poly=%02X, dir=%s, init=%02X, post=%02X, success on:\n", r.Poly, r.Dir, r.Init, r.Post)
		for i, alts := range r.Witnesses {
			for _, c := range alts {
				fmt.Printf("  obs %d: %3d: %02X\n", i, len(c), []uint64(c))
			}
		}
	}
	if len(results) == 0 {
		fmt.Println("no parameters found")
	}
}

// demoExpressions is the three-observation repo test case from the
// reference Python implementation, translated expression for expression:
//
//	s += Data("41") + ~Data("a4 1f 10") + TargetCRC("0f")
//	s += ~Data("41 a4 1f 10") + Permute(Data("20"), Data("40"), ~Data("00")) + Data("00") + TargetCRC("d1")
//	s += ~Data("41 a4 1f 10") + Data("3b 40 00 00") + TargetCRC("a2")
func demoExpressions() []expr.Expr {
	header := []uint64{0x41, 0xa4, 0x1f, 0x10}

	perm, err := expr.Permute([]expr.Expr{
		expr.Data([]uint64{0x20}, 8),
		expr.Data([]uint64{0x40}, 8),
		expr.Optional(expr.Data([]uint64{0x00}, 8)),
	}, 3, 3)
	if err != nil {
		glog.Exitf("building demo expression: %v", err)
	}

	return []expr.Expr{
		expr.Concat(
			expr.Data([]uint64{0x41}, 8),
			expr.Optional(expr.Data([]uint64{0xa4, 0x1f, 0x10}, 8)),
			expr.Target(0x0f),
		),
		expr.Concat(
			expr.Optional(expr.Data(header, 8)),
			perm,
			expr.Data([]uint64{0x00}, 8),
			expr.Target(0xd1),
		),
		expr.Concat(
			expr.Optional(expr.Data(header, 8)),
			expr.Data([]uint64{0x3b, 0x40, 0x00, 0x00}, 8),
			expr.Target(0xa2),
		),
	}
}
