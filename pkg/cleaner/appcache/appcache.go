// Package appcache provides an explicit TTL cache for derived lists
// that are expensive to rebuild, such as an installed-app inventory.
// The cache is owned by the calling layer and injected where needed;
// the scanner and estimators themselves hold no cross-call state.
package appcache

import (
	"sync"
	"time"
)

// Cache holds one value with a timestamp and a time-to-live. The zero
// value is not usable; construct with New.
type Cache[T any] struct {
	mu    sync.Mutex
	value T
	set   bool
	at    time.Time
	ttl   time.Duration

	// now is swapped in tests to control expiry.
	now func() time.Time
}

// New creates an empty cache whose entries expire after ttl.
// A non-positive ttl means entries never expire on their own and only
// Invalidate clears them.
func New[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{ttl: ttl, now: time.Now}
}

// Get returns the cached value and whether it is present and fresh.
func (c *Cache[T]) Get() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	if !c.set {
		return zero, false
	}
	if c.ttl > 0 && c.now().Sub(c.at) >= c.ttl {
		c.value = zero
		c.set = false
		return zero, false
	}
	return c.value, true
}

// Put stores a value and stamps it with the current time.
func (c *Cache[T]) Put(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = v
	c.set = true
	c.at = c.now()
}

// Invalidate discards the cached value immediately.
func (c *Cache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	c.value = zero
	c.set = false
}

// Timestamp returns when the current value was stored; zero when empty.
func (c *Cache[T]) Timestamp() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.set {
		return time.Time{}
	}
	return c.at
}
