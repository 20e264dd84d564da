package search

import (
	"context"
	"fmt"
	"time"

	"github.com/law-makers/quotes/internal/engine"
	"github.com/law-makers/quotes/internal/reqctx"
	"github.com/law-makers/quotes/pkg/models"
	"github.com/rs/zerolog"
)

// PageProgress is reported after every page fetch
type PageProgress struct {
	Page   int // 1-based
	Pages  int
	Offset int
	Quotes int // quotes on this page
}

// Driver walks every result page of a keyword, one request at a time
type Driver struct {
	source Source
	logger zerolog.Logger
	onPage func(PageProgress)
}

// NewDriver creates a Driver over source
func NewDriver(source Source, logger zerolog.Logger) *Driver {
	return &Driver{
		source: source,
		logger: logger,
	}
}

// OnPage registers fn to be called after each page has been fetched
func (d *Driver) OnPage(fn func(PageProgress)) {
	d.onPage = fn
}

// PageCount is ceil(total/size), zero for non-positive totals
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// FetchAll counts the matches for keyword and then fetches every page in
// order. Any failure aborts the run; no partial result is returned.
func (d *Driver) FetchAll(ctx context.Context, keyword string) (*models.ScrapeResult, error) {
	started := time.Now()
	logger := reqctx.Logger(ctx, d.logger)

	total, err := d.source.Count(ctx, keyword)
	if err != nil {
		if engine.IsExtraction(err) {
			logger.Error().Err(err).Msg("Match count not found, the upstream page layout may have changed")
		}
		return nil, fmt.Errorf("count matches for %q: %w", keyword, err)
	}

	pages := PageCount(total, PageSize)
	logger.Debug().Int("total", total).Int("pages", pages).Msg("Matches counted")

	var quotes []models.Quote
	for page, offset := 1, 0; offset < total; page, offset = page+1, offset+PageSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		logger.Info().
			Int("page", page).
			Int("pages", pages).
			Int("offset", offset).
			Msg("Fetching quotes for keyword")

		rp, err := d.source.FetchPage(ctx, keyword, offset)
		if err != nil {
			return nil, fmt.Errorf("fetch page at offset %d: %w", offset, err)
		}
		quotes = append(quotes, rp.Quotes...)

		if d.onPage != nil {
			d.onPage(PageProgress{Page: page, Pages: pages, Offset: offset, Quotes: len(rp.Quotes)})
		}
	}

	if len(quotes) > total {
		logger.Warn().
			Int("total", total).
			Int("extracted", len(quotes)).
			Msg("Pages returned more quotes than reported, truncating")
		quotes = quotes[:total]
	}

	return &models.ScrapeResult{
		Keyword:   keyword,
		Total:     total,
		Pages:     pages,
		Quotes:    quotes,
		StartedAt: started,
		Duration:  time.Since(started),
	}, nil
}
