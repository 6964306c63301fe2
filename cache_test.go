package rex

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheReturnsSameInstance(t *testing.T) {
	c := NewCache()

	first, err := c.Get(`\d+`, 0)
	require.NoError(t, err)
	second, err := c.Get(`\d+`, 0)
	require.NoError(t, err)

	assert.Same(t, first, second, "repeated Get should return the cached Regexp")
	assert.Equal(t, 1, c.Len())
}

func TestCacheKeyIncludesFlags(t *testing.T) {
	c := NewCache()

	plain, err := c.Get("abc", 0)
	require.NoError(t, err)
	folded, err := c.Get("abc", IgnoreCase)
	require.NoError(t, err)

	assert.NotSame(t, plain, folded, "same text under different flags is a different entry")
	assert.Equal(t, 2, c.Len())

	assert.False(t, plain.MatchString("ABC"))
	assert.True(t, folded.MatchString("ABC"))
}

func TestCacheErrorNotCached(t *testing.T) {
	c := NewCache()

	_, err := c.Get("(", 0)
	require.Error(t, err)
	assert.True(t, IsInvalidPattern(err))
	assert.Equal(t, 0, c.Len(), "failed compiles must not be cached")

	// The same bad pattern fails again rather than returning a stale entry.
	_, err = c.Get("(", 0)
	require.Error(t, err)
}

func TestCacheClear(t *testing.T) {
	c := NewCache()

	first, err := c.Get("abc", 0)
	require.NoError(t, err)
	c.Clear()
	assert.Equal(t, 0, c.Len())

	second, err := c.Get("abc", 0)
	require.NoError(t, err)
	assert.NotSame(t, first, second, "Clear should force a recompile")
}

func TestCacheConcurrentGet(t *testing.T) {
	c := NewCache()
	const goroutines = 16

	results := make([]*Regexp, goroutines)
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(i int) {
			defer wg.Done()
			re, err := c.Get(`(\w+)@(\w+)`, 0)
			if err == nil {
				results[i] = re
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, 1, c.Len(), "concurrent first use should compile once")
	for i := 1; i < goroutines; i++ {
		assert.Same(t, results[0], results[i])
	}
}

func TestPackageCache(t *testing.T) {
	ClearCache()

	first, err := Cached(`\w+`, 0)
	require.NoError(t, err)
	second, err := Cached(`\w+`, 0)
	require.NoError(t, err)
	assert.Same(t, first, second)

	ClearCache()
	third, err := Cached(`\w+`, 0)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}
