package search

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/law-makers/quotes/internal/engine"
	"github.com/law-makers/quotes/pkg/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves a fixed total and synthesises full pages, recording offsets
type fakeSource struct {
	total    int
	countErr error
	failAt   int // offset that fails, -1 for none
	perPage  int // quotes per page, PageSize when zero
	offsets  []int
	counts   int
}

func (f *fakeSource) Count(ctx context.Context, keyword string) (int, error) {
	f.counts++
	return f.total, f.countErr
}

func (f *fakeSource) FetchPage(ctx context.Context, keyword string, offset int) (*models.ResultPage, error) {
	f.offsets = append(f.offsets, offset)
	if offset == f.failAt {
		return nil, engine.NetworkError("connection reset", errors.New("EOF"))
	}

	n := f.perPage
	if n == 0 {
		n = PageSize
	}
	if remaining := f.total - offset; n > remaining && f.perPage == 0 {
		n = remaining
	}

	page := &models.ResultPage{Offset: offset}
	for i := 0; i < n; i++ {
		page.Quotes = append(page.Quotes, models.Quote{
			Text:   fmt.Sprintf("quote %d", offset+i),
			Author: "author",
		})
	}
	return page, nil
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, PageCount(0, 50))
	assert.Equal(t, 0, PageCount(-3, 50))
	assert.Equal(t, 1, PageCount(1, 50))
	assert.Equal(t, 1, PageCount(50, 50))
	assert.Equal(t, 2, PageCount(51, 50))
	assert.Equal(t, 3, PageCount(120, 50))
}

func TestDriver_OffsetsForTotals(t *testing.T) {
	for _, total := range []int{0, 1, 49, 50, 51, 100, 120, 249, 250, 1234} {
		t.Run(fmt.Sprint(total), func(t *testing.T) {
			src := &fakeSource{total: total, failAt: -1}
			res, err := NewDriver(src, zerolog.Nop()).FetchAll(context.Background(), "god")
			require.NoError(t, err)

			pages := PageCount(total, PageSize)
			require.Len(t, src.offsets, pages)
			for i, off := range src.offsets {
				assert.Equal(t, i*PageSize, off)
			}
			assert.Equal(t, 1, src.counts)
			assert.Equal(t, pages, res.Pages)
			assert.Len(t, res.Quotes, total)
		})
	}
}

func TestDriver_Total120FetchesThreePages(t *testing.T) {
	src := &fakeSource{total: 120, failAt: -1}
	_, err := NewDriver(src, zerolog.Nop()).FetchAll(context.Background(), "god")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 50, 100}, src.offsets)
}

func TestDriver_PreservesOrder(t *testing.T) {
	src := &fakeSource{total: 120, failAt: -1}
	res, err := NewDriver(src, zerolog.Nop()).FetchAll(context.Background(), "god")
	require.NoError(t, err)

	for i, q := range res.Quotes {
		assert.Equal(t, fmt.Sprintf("quote %d", i), q.Text)
	}
}

func TestDriver_ShortPagesAreFine(t *testing.T) {
	src := &fakeSource{total: 120, failAt: -1, perPage: 7}
	res, err := NewDriver(src, zerolog.Nop()).FetchAll(context.Background(), "god")
	require.NoError(t, err)
	assert.Len(t, src.offsets, 3)
	assert.Len(t, res.Quotes, 21)
}

func TestDriver_TruncatesToReportedTotal(t *testing.T) {
	var buf bytes.Buffer
	src := &fakeSource{total: 3, failAt: -1, perPage: 10}

	res, err := NewDriver(src, zerolog.New(&buf)).FetchAll(context.Background(), "god")
	require.NoError(t, err)
	assert.Len(t, res.Quotes, 3)
	assert.Contains(t, buf.String(), "truncating")
}

func TestDriver_CountFailureAbortsBeforeAnyPage(t *testing.T) {
	var buf bytes.Buffer
	src := &fakeSource{countErr: engine.ExtractionError("no digits"), failAt: -1}

	res, err := NewDriver(src, zerolog.New(&buf)).FetchAll(context.Background(), "god")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, engine.ErrExtraction)
	assert.Empty(t, src.offsets)
	assert.Contains(t, buf.String(), "layout")
}

func TestDriver_PageFailureReturnsNoPartialResult(t *testing.T) {
	src := &fakeSource{total: 200, failAt: 100}

	res, err := NewDriver(src, zerolog.Nop()).FetchAll(context.Background(), "god")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, engine.ErrNetworkError)
	assert.Equal(t, []int{0, 50, 100}, src.offsets)
}

func TestDriver_LogsBeforeEachPageAndReportsProgress(t *testing.T) {
	var buf bytes.Buffer
	src := &fakeSource{total: 120, failAt: -1}

	var progress []PageProgress
	d := NewDriver(src, zerolog.New(&buf))
	d.OnPage(func(p PageProgress) { progress = append(progress, p) })

	_, err := d.FetchAll(context.Background(), "god")
	require.NoError(t, err)

	assert.Equal(t, 3, strings.Count(buf.String(), "Fetching quotes for keyword"))
	require.Len(t, progress, 3)
	assert.Equal(t, PageProgress{Page: 3, Pages: 3, Offset: 100, Quotes: 20}, progress[2])
}

func TestDriver_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeSource{total: 100, failAt: -1}
	_, err := NewDriver(src, zerolog.Nop()).FetchAll(ctx, "god")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, src.offsets)
}
