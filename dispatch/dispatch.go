// Package dispatch implements the Dispatcher (component E of the spec):
// it fans the (poly, dir) cross product out across a bounded worker pool,
// runs the Search Engine for each pair, and joins the results onto a
// single channel.
//
// Grounded on the xaction-per-task fan-out shape in the pack's storage
// example and built on golang.org/x/sync/errgroup for the worker-pool and
// first-error-wins plumbing, the same dependency that repo's go.mod
// carries for exactly this kind of bounded concurrent fan-out.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ericlagergren/crcsolve/crc"
	"github.com/ericlagergren/crcsolve/observe"
	"github.com/ericlagergren/crcsolve/search"
)

// ErrWorkerFault wraps a panic or invariant violation recovered from a
// search worker, distinguishing "a bug in this package" from a clean,
// empty result set (the policy spec.md names for WorkerFault).
var ErrWorkerFault = errors.New("dispatch: worker fault")

// Workers overrides the default worker-pool size (runtime.GOMAXPROCS(0))
// when positive; zero or negative means "use the default."
type Workers int

// Run fans search.One out across every (poly, dir) pair named by cfg,
// against the observations held in cache, and streams every surviving
// pair back as a search.Result on the first returned channel.
//
// That channel is closed only after every worker has returned — the Go
// idiom for the "STOP" sentinel spec.md describes — so a consumer's range
// loop terminates exactly once, after every result has been sent. The
// second returned channel carries exactly one value (nil, a context
// error, an error returned by search.One, or an ErrWorkerFault) once the
// pool has fully drained, and is
// then closed; a panic recovered from any one worker is reported there
// and aborts the remaining workers, matching spec.md's WorkerFault
// policy.
func Run(ctx context.Context, order int, cfg search.Config, cache *observe.Cache, sameLength bool, workers Workers) (<-chan search.Result, <-chan error, error) {
	if cache.Len() == 0 {
		return nil, nil, fmt.Errorf("dispatch: cache has no observations")
	}

	type task struct {
		poly uint64
		dir  crc.Direction
	}
	var tasks []task
	for poly := range cfg.Poly.All() {
		for _, dir := range cfg.Dir {
			tasks = append(tasks, task{poly: poly, dir: dir})
		}
	}
	if len(tasks) == 0 {
		out := make(chan search.Result)
		errc := make(chan error, 1)
		close(out)
		errc <- nil
		close(errc)
		return out, errc, nil
	}

	n := int(workers)
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n > len(tasks) {
		n = len(tasks)
	}

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan task)
	out := make(chan search.Result)

	for i := 0; i < n; i++ {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: %v", ErrWorkerFault, r)
				}
			}()
			for t := range jobs {
				pairs, err := search.One(order, t.poly, t.dir, cache.Observations(), cfg, sameLength)
				if err != nil {
					return err
				}
				for _, p := range pairs {
					result := search.Result{
						Poly:      t.poly,
						Dir:       t.dir,
						Init:      p.Init,
						Post:      p.Post,
						Witnesses: p.Witnesses,
					}
					select {
					case out <- result:
					case <-ctx.Done():
						return ctx.Err()
					}
				}
			}
			return nil
		})
	}

	// Feeder: hands tasks to the worker pool, stopping early on either
	// cancellation or a worker's first error.
	g.Go(func() error {
		defer close(jobs)
		for _, t := range tasks {
			select {
			case jobs <- t:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	errc := make(chan error, 1)
	go func() {
		defer close(out)
		// Wait() blocks until every Go func above has returned — the
		// join barrier that must precede the STOP sentinel (closing
		// out), matching the happens-before guarantee ctk/solver.py
		// gets from pool.join() preceding output.put("STOP").
		err := g.Wait()
		errc <- err
		close(errc)
	}()

	return out, errc, nil
}

// RunAndWait is a convenience wrapper around Run for callers who want a
// single synchronous call: it drains the result channel into a slice and
// returns the first error observed from the worker pool, if any.
func RunAndWait(ctx context.Context, order int, cfg search.Config, cache *observe.Cache, sameLength bool, workers Workers) ([]search.Result, error) {
	out, errc, err := Run(ctx, order, cfg, cache, sameLength, workers)
	if err != nil {
		return nil, err
	}
	var results []search.Result
	for r := range out {
		results = append(results, r)
	}
	return results, <-errc
}
