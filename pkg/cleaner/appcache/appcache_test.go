package appcache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCacheGetPut verifies basic store and retrieve.
func TestCacheGetPut(t *testing.T) {
	c := New[[]string](time.Minute)

	_, ok := c.Get()
	assert.False(t, ok, "empty cache should miss")

	c.Put([]string{"a", "b"})
	got, ok := c.Get()
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, got)
}

// TestCacheExpiry verifies entries expire after the TTL.
func TestCacheExpiry(t *testing.T) {
	c := New[int](10 * time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Put(42)

	if _, ok := c.Get(); !ok {
		t.Fatal("fresh entry should hit")
	}

	now = now.Add(10 * time.Minute)
	_, ok := c.Get()
	assert.False(t, ok, "entry at TTL should miss")
}

// TestCacheNoTTL verifies a non-positive TTL disables expiry.
func TestCacheNoTTL(t *testing.T) {
	c := New[int](0)
	now := time.Now()
	c.now = func() time.Time { return now }

	c.Put(7)
	now = now.Add(24 * time.Hour)

	got, ok := c.Get()
	assert.True(t, ok)
	assert.Equal(t, 7, got)
}

// TestCacheInvalidate verifies explicit invalidation.
func TestCacheInvalidate(t *testing.T) {
	c := New[int](time.Hour)
	c.Put(1)
	c.Invalidate()

	_, ok := c.Get()
	assert.False(t, ok)
	assert.True(t, c.Timestamp().IsZero())
}

// TestCacheTimestamp verifies the stored-at stamp.
func TestCacheTimestamp(t *testing.T) {
	c := New[int](time.Hour)
	assert.True(t, c.Timestamp().IsZero())

	before := time.Now()
	c.Put(1)
	stamp := c.Timestamp()
	assert.False(t, stamp.Before(before))
}

// TestWatcherInvalidates verifies a filesystem change under a watched
// directory drops the cached value.
func TestWatcherInvalidates(t *testing.T) {
	dir := t.TempDir()
	c := New[int](time.Hour)
	c.Put(99)

	inv, err := Watch([]string{dir}, c.Invalidate)
	require.NoError(t, err)
	defer inv.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new-file"), []byte("x"), 0o644))

	assert.Eventually(t, func() bool {
		_, ok := c.Get()
		return !ok
	}, 2*time.Second, 10*time.Millisecond, "cache should be invalidated on change")
}

// TestWatcherMissingDirs verifies nonexistent directories are skipped
// without failing the watch setup.
func TestWatcherMissingDirs(t *testing.T) {
	inv, err := Watch([]string{filepath.Join(t.TempDir(), "nope")}, func() {})
	require.NoError(t, err)
	assert.NoError(t, inv.Close())
	assert.NoError(t, inv.Close(), "Close must be idempotent")
}
