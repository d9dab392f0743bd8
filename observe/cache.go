package observe

import "github.com/ericlagergren/crcsolve/expr"

// Cache is the Observation Cache itself (component C): an ordered,
// append-only collection of materialised Observations, mirroring
// ctk/solver.py's Solver.add(expression) accumulating into self._data
// before solve() ever runs. It is built once per solve and then only
// ever read, matching the "immutable shared ... cache" concurrency note
// carried into the Dispatcher's design.
type Cache struct {
	order int
	obs   []Observation
}

// NewCache returns an empty Cache for CRC registers of the given order.
func NewCache(order int) *Cache {
	return &Cache{order: order}
}

// Order reports the register width, in bits, this cache was built for.
func (c *Cache) Order() int {
	return c.order
}

// Add materialises e against the cache's order and appends the result,
// returning the same errors New does (ErrMissingTarget, ErrWidthConflict,
// ErrOutOfRange) on failure. On failure the cache is left unchanged.
func (c *Cache) Add(e expr.Expr) error {
	o, err := New(e, c.order)
	if err != nil {
		return err
	}
	c.obs = append(c.obs, o)
	return nil
}

// Observations returns the accumulated list, in insertion order. The
// returned slice is owned by the cache and must not be mutated.
func (c *Cache) Observations() []Observation {
	return c.obs
}

// Len reports how many observations have been added.
func (c *Cache) Len() int {
	return len(c.obs)
}
