package cache

import (
	"testing"
	"time"

	"github.com/law-makers/quotes/pkg/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func response(url string, bodySize int) *models.Response {
	return &models.Response{URL: url, StatusCode: 200, Body: make([]byte, bodySize)}
}

func TestMemoryCache_SetGet(t *testing.T) {
	mc := NewMemoryCache(1024*1024, zerolog.Nop())
	defer mc.Close()

	require.NoError(t, mc.Set("a", response("a", 10), time.Minute))

	got, ok := mc.Get("a")
	require.True(t, ok)
	assert.Equal(t, "a", got.URL)

	_, ok = mc.Get("missing")
	assert.False(t, ok)

	stats := mc.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
}

func TestMemoryCache_Expiry(t *testing.T) {
	mc := NewMemoryCache(1024*1024, zerolog.Nop())
	defer mc.Close()

	require.NoError(t, mc.Set("a", response("a", 10), time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, ok := mc.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, mc.Stats().Entries)
}

func TestMemoryCache_EvictsLeastRecentlyUsed(t *testing.T) {
	// Room for two ~2KB entries
	mc := NewMemoryCache(5000, zerolog.Nop())
	defer mc.Close()

	require.NoError(t, mc.Set("a", response("a", 1000), time.Minute))
	require.NoError(t, mc.Set("b", response("b", 1000), time.Minute))

	// Touch a so that b becomes the eviction candidate
	_, ok := mc.Get("a")
	require.True(t, ok)

	require.NoError(t, mc.Set("c", response("c", 1000), time.Minute))

	_, ok = mc.Get("b")
	assert.False(t, ok, "b should have been evicted")
	_, ok = mc.Get("a")
	assert.True(t, ok)
	_, ok = mc.Get("c")
	assert.True(t, ok)
}

func TestMemoryCache_ReplaceKeepsSizeConsistent(t *testing.T) {
	mc := NewMemoryCache(1024*1024, zerolog.Nop())
	defer mc.Close()

	require.NoError(t, mc.Set("a", response("a", 100), time.Minute))
	first := mc.Stats().SizeBytes
	require.NoError(t, mc.Set("a", response("a", 100), time.Minute))

	assert.Equal(t, first, mc.Stats().SizeBytes)
	assert.Equal(t, 1, mc.Stats().Entries)

	require.NoError(t, mc.Delete("a"))
	assert.Equal(t, int64(0), mc.Stats().SizeBytes)
}
