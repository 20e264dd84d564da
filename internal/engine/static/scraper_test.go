// internal/engine/static/scraper_test.go
package static

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/law-makers/quotes/internal/cache"
	"github.com/law-makers/quotes/internal/engine"
	"github.com/law-makers/quotes/internal/ratelimit"
	"github.com/law-makers/quotes/internal/retry"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScraper(attempts int) *Scraper {
	rc := retry.DefaultConfig()
	rc.MaxAttempts = attempts
	rc.InitialBackoff = time.Millisecond
	rc.MaxBackoff = time.Millisecond

	return New(
		cache.NewMemoryCache(1024*1024, zerolog.Nop()),
		ratelimit.NewDomainLimiter(100, 100),
		&http.Client{Timeout: 5 * time.Second},
		Options{
			UserAgent: "TestScraper/1.0",
			Headers:   map[string]string{"X-Custom-Header": "TestValue"},
			CacheTTL:  time.Minute,
			Retry:     rc,
			Logger:    zerolog.Nop(),
		},
	)
}

func TestScraper_Fetch_ParsesDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "TestScraper/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "TestValue", r.Header.Get("X-Custom-Header"))
		w.Write([]byte(`<html><body><b>12 matches found</b></body></html>`))
	}))
	defer server.Close()

	resp, doc, err := newTestScraper(1).Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "12 matches found", doc.Find("b").Text())
}

func TestScraper_Fetch_CacheHitSkipsRequest(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`<html><body><p>cached</p></body></html>`))
	}))
	defer server.Close()

	s := newTestScraper(1)
	for i := 0; i < 2; i++ {
		_, doc, err := s.Fetch(context.Background(), server.URL+"/?keyword=god")
		require.NoError(t, err)
		assert.Equal(t, "cached", doc.Find("p").Text())
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestScraper_Fetch_RetriesServerErrors(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`<html><body>ok</body></html>`))
	}))
	defer server.Close()

	_, _, err := newTestScraper(3).Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestScraper_Fetch_NotFoundIsNetworkErrorWithoutRetry(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, _, err := newTestScraper(3).Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrNetworkError)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestScraper_Fetch_UnreachableHost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, _, err := newTestScraper(1).Fetch(context.Background(), url)
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrNetworkError)
}

func TestScraper_Name(t *testing.T) {
	assert.Equal(t, "StaticScraper", newTestScraper(1).Name())
}
