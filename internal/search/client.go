package search

import (
	"context"
	"fmt"

	"github.com/law-makers/quotes/internal/engine"
	"github.com/law-makers/quotes/pkg/models"
	"github.com/rs/zerolog"
)

// Source is what the pagination driver needs from the upstream search
type Source interface {
	// Count issues a count-only query and returns the reported total
	Count(ctx context.Context, keyword string) (int, error)

	// FetchPage returns the quotes on the page starting at offset
	FetchPage(ctx context.Context, keyword string, offset int) (*models.ResultPage, error)
}

// Client queries the quotation search endpoint through an engine.Fetcher
type Client struct {
	fetcher   engine.Fetcher
	endpoint  string
	extractor ItemExtractor
	logger    zerolog.Logger
}

// ClientOption customises a Client
type ClientOption func(*Client)

// WithExtractor replaces the default PositionalExtractor
func WithExtractor(e ItemExtractor) ClientOption {
	return func(c *Client) {
		c.extractor = e
	}
}

// WithEndpoint points the client at a different search URL
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// NewClient creates a Client that fetches through f
func NewClient(f engine.Fetcher, logger zerolog.Logger, opts ...ClientOption) *Client {
	c := &Client{
		fetcher:   f,
		endpoint:  DefaultEndpoint,
		extractor: PositionalExtractor{},
		logger:    logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Count implements Source
func (c *Client) Count(ctx context.Context, keyword string) (int, error) {
	u, err := RequestURL(c.endpoint, NewCountRequest(keyword))
	if err != nil {
		return 0, engine.NewEngineError(engine.ErrCodeValidation, "build count request", err)
	}

	_, doc, err := c.fetcher.Fetch(ctx, u)
	if err != nil {
		return 0, err
	}

	total, err := ExtractCount(doc)
	if err != nil {
		return 0, err
	}

	c.logger.Debug().Str("keyword", keyword).Int("total", total).Msg("Match count extracted")
	return total, nil
}

// FetchPage implements Source
func (c *Client) FetchPage(ctx context.Context, keyword string, offset int) (*models.ResultPage, error) {
	if offset < 0 || offset%PageSize != 0 {
		return nil, engine.NewEngineError(engine.ErrCodeValidation,
			fmt.Sprintf("offset %d is not a non-negative multiple of %d", offset, PageSize), nil)
	}

	u, err := RequestURL(c.endpoint, NewPageRequest(keyword, offset))
	if err != nil {
		return nil, engine.NewEngineError(engine.ErrCodeValidation, "build page request", err)
	}

	_, doc, err := c.fetcher.Fetch(ctx, u)
	if err != nil {
		return nil, err
	}

	page := &models.ResultPage{
		Offset: offset,
		Quotes: ExtractQuotes(doc, c.extractor),
	}
	if total, err := ExtractCount(doc); err == nil {
		page.Total = total
		page.HasTotal = true
	}

	c.logger.Debug().
		Str("keyword", keyword).
		Int("offset", offset).
		Int("quotes", len(page.Quotes)).
		Msg("Page extracted")

	return page, nil
}
