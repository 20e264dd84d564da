package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/law-makers/quotes/internal/engine"
	"github.com/law-makers/quotes/internal/engine/static"
	"github.com/law-makers/quotes/pkg/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const countPage = `<html><body><p><b>1 matches found</b></p></body></html>`

const resultPage = `<html><body>
<p><b>1 matches found</b></p>
<ol>
<li><b>"Test quote"</b> text<br>Author Name (Source) more text</li>
</ol>
</body></html>`

// upstream records every query it receives
type upstream struct {
	mu      sync.Mutex
	queries []map[string]string
	count   string
	page    string
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := map[string]string{}
	for k := range r.URL.Query() {
		q[k] = r.URL.Query().Get(k)
	}
	u.mu.Lock()
	u.queries = append(u.queries, q)
	u.mu.Unlock()

	if r.URL.Query().Has("start") {
		w.Write([]byte(u.page))
		return
	}
	w.Write([]byte(u.count))
}

func newTestClient(t *testing.T, up *upstream) *Client {
	t.Helper()
	server := httptest.NewServer(up)
	t.Cleanup(server.Close)

	fetcher := static.New(nil, nil, &http.Client{Timeout: 5 * time.Second}, static.Options{
		UserAgent: "Test/1.0",
		Logger:    zerolog.Nop(),
	})
	return NewClient(fetcher, zerolog.Nop(), WithEndpoint(server.URL+"/cgi-bin/sql_search3.cgi"))
}

func TestClient_Count(t *testing.T) {
	up := &upstream{count: countPage}
	c := newTestClient(t, up)

	total, err := c.Count(context.Background(), "god")
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	require.Len(t, up.queries, 1)
	assert.Equal(t, map[string]string{
		"keyword":  "god",
		"boolean":  "and",
		"field":    "all",
		"frank":    "all",
		"database": "all",
	}, up.queries[0])
}

func TestClient_FetchPage(t *testing.T) {
	up := &upstream{page: resultPage}
	c := newTestClient(t, up)

	page, err := c.FetchPage(context.Background(), "god", 50)
	require.NoError(t, err)

	assert.Equal(t, []models.Quote{{Text: "Test quote", Author: "Author Name"}}, page.Quotes)
	assert.True(t, page.HasTotal)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, "50", up.queries[0]["start"])
}

func TestClient_FetchPage_RejectsBadOffset(t *testing.T) {
	c := newTestClient(t, &upstream{})

	_, err := c.FetchPage(context.Background(), "god", 7)
	assert.Error(t, err)
	_, err = c.FetchPage(context.Background(), "god", -50)
	assert.Error(t, err)
}

func TestClient_CountWithoutDigits(t *testing.T) {
	c := newTestClient(t, &upstream{count: `<b>No matches found</b>`})

	_, err := c.Count(context.Background(), "zzzz")
	assert.ErrorIs(t, err, engine.ErrExtraction)
}

func TestDriverOverClient_SingleQuoteScenario(t *testing.T) {
	up := &upstream{count: countPage, page: resultPage}
	c := newTestClient(t, up)

	res, err := NewDriver(c, zerolog.Nop()).FetchAll(context.Background(), "god")
	require.NoError(t, err)

	assert.Equal(t, []models.Quote{{Text: "Test quote", Author: "Author Name"}}, res.Quotes)
	require.Len(t, up.queries, 2)
	assert.NotContains(t, up.queries[0], "start")
	assert.Equal(t, "0", up.queries[1]["start"])
}

func TestDriverOverClient_NoDigitsAbortsBeforePages(t *testing.T) {
	up := &upstream{count: `<b>No matches found</b>`, page: resultPage}
	c := newTestClient(t, up)

	_, err := NewDriver(c, zerolog.Nop()).FetchAll(context.Background(), "god")
	assert.ErrorIs(t, err, engine.ErrExtraction)
	assert.Len(t, up.queries, 1)
}
