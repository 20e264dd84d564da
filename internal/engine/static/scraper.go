// internal/engine/static/scraper.go
package static

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/quotes/internal/cache"
	"github.com/law-makers/quotes/internal/engine"
	"github.com/law-makers/quotes/internal/proxy"
	"github.com/law-makers/quotes/internal/ratelimit"
	"github.com/law-makers/quotes/internal/retry"
	"github.com/law-makers/quotes/pkg/models"
	"github.com/rs/zerolog"
)

// Options configures a Scraper beyond its core dependencies
type Options struct {
	UserAgent string
	Headers   map[string]string
	CacheTTL  time.Duration
	Retry     retry.Config
	Proxies   *proxy.ProxyPool
	Logger    zerolog.Logger
}

// Scraper fetches server-rendered HTML with plain HTTP requests and parses it with goquery
type Scraper struct {
	cache   cache.Cache
	limiter ratelimit.RateLimiter
	client  *http.Client
	opts    Options
	logger  zerolog.Logger
}

// New creates a new static Scraper. Cache and limiter may be nil.
func New(c cache.Cache, lim ratelimit.RateLimiter, client *http.Client, opts Options) *Scraper {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "Quotes/1.0 (https://github.com/law-makers/quotes)"
	}
	if opts.Retry.MaxAttempts <= 0 {
		opts.Retry.MaxAttempts = 1
	}
	opts.Retry.Logger = opts.Logger
	return &Scraper{
		cache:   c,
		limiter: lim,
		client:  client,
		opts:    opts,
		logger:  opts.Logger,
	}
}

// Name returns the name of this scraper
func (s *Scraper) Name() string {
	return "StaticScraper"
}

// Fetch retrieves rawURL and parses the body as an HTML document
func (s *Scraper) Fetch(ctx context.Context, rawURL string) (*models.Response, *goquery.Document, error) {
	if s.cache != nil {
		if resp, ok := s.cache.Get(rawURL); ok {
			doc, err := parse(resp.Body)
			if err != nil {
				return nil, nil, err
			}
			return resp, doc, nil
		}
	}

	s.logger.Debug().
		Str("url", rawURL).
		Str("scraper", s.Name()).
		Msg("Starting fetch")

	var resp *models.Response
	err := retry.WithRetry(ctx, s.opts.Retry, func() error {
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx, rawURL); err != nil {
				return err
			}
		}

		r, err := s.do(ctx, rawURL)
		if err != nil {
			if s.opts.Proxies != nil {
				s.opts.Proxies.MarkFailed(s.opts.Proxies.Last())
			}
			return err
		}
		if s.opts.Proxies != nil {
			s.opts.Proxies.MarkHealthy(s.opts.Proxies.Last())
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	doc, err := parse(resp.Body)
	if err != nil {
		return nil, nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(rawURL, resp, s.opts.CacheTTL); err != nil {
			s.logger.Warn().Err(err).Str("url", rawURL).Msg("Failed to cache response")
		}
	}

	s.logger.Debug().
		Str("url", rawURL).
		Int("status", resp.StatusCode).
		Int64("response_time_ms", resp.ResponseTime).
		Int("bytes", len(resp.Body)).
		Msg("Fetch completed")

	return resp, doc, nil
}

func (s *Scraper) do(ctx context.Context, rawURL string) (*models.Response, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, engine.NewEngineError(engine.ErrCodeValidation, "failed to create request", err)
	}

	req.Header.Set("User-Agent", s.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	for key, value := range s.opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, engine.NetworkError("failed to fetch URL", err).WithDetail("url", rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, engine.NetworkError(
			fmt.Sprintf("unexpected status fetching %s", rawURL),
			retry.NewHTTPError(resp.StatusCode, resp.Status, ""),
		).WithStatus(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, engine.NetworkError("failed to read response body", err)
	}

	return &models.Response{
		URL:          rawURL,
		StatusCode:   resp.StatusCode,
		Body:         body,
		FetchedAt:    time.Now(),
		ResponseTime: time.Since(start).Milliseconds(),
	}, nil
}

func parse(body []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, engine.ParseError("failed to parse HTML", err)
	}
	return doc, nil
}
