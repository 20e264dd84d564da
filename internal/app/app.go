// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/law-makers/quotes/internal/cache"
	"github.com/law-makers/quotes/internal/config"
	"github.com/law-makers/quotes/internal/engine/static"
	"github.com/law-makers/quotes/internal/proxy"
	"github.com/law-makers/quotes/internal/ratelimit"
	"github.com/law-makers/quotes/internal/reqctx"
	"github.com/law-makers/quotes/internal/retry"
	"github.com/law-makers/quotes/internal/search"
	"github.com/law-makers/quotes/internal/utils/output"
	urlutil "github.com/law-makers/quotes/internal/utils/url"
	"github.com/law-makers/quotes/pkg/models"
	"github.com/rs/zerolog"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once per command invocation. Use Close() to release
// idle connections and stop the cache janitor.
type Application struct {
	Config      *config.Config
	Logger      zerolog.Logger
	Cache       *cache.MemoryCache
	RateLimiter ratelimit.RateLimiter
	Proxies     *proxy.ProxyPool
	HTTPClient  *http.Client
	Scraper     *static.Scraper
	Search      *search.Client
	Driver      *search.Driver
	startTime   time.Time
}

// New creates and initializes a new Application with all dependencies.
// Logs go to logOut, or stderr when logOut is nil.
//
// It performs the following initialization steps:
//   - Configures logging based on the provided config
//   - Creates the in-memory response cache
//   - Creates the rate limiter and the proxy pool
//   - Initializes the HTTP client with the configured timeout
//   - Creates the static scraper, the search client and the pagination driver
func New(cfg *config.Config, logOut io.Writer) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger, err := newLogger(cfg, logOut)
	if err != nil {
		return nil, err
	}

	memCache := cache.NewMemoryCache(cfg.CacheMaxSizeBytes, logger)
	logger.Debug().
		Int64("max_size_bytes", cfg.CacheMaxSizeBytes).
		Dur("ttl", cfg.CacheTTL).
		Msg("Memory cache initialized")

	rateLimiter := ratelimit.NewDomainLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	logger.Debug().
		Float64("rps", cfg.RateLimitRPS).
		Int("burst", cfg.RateLimitBurst).
		Msg("Rate limiter initialized")

	proxies, err := proxy.ParseList(cfg.Proxy)
	if err != nil {
		return nil, err
	}
	pool := proxy.NewProxyPool(proxies)

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
	}
	if pool.Len() > 0 {
		transport.Proxy = pool.ProxyFunc()
		logger.Debug().Int("proxies", pool.Len()).Msg("Proxy rotation enabled")
	}
	httpClient := &http.Client{
		Timeout:   cfg.HTTPTimeout,
		Transport: transport,
	}

	retryCfg := retry.DefaultConfig()
	retryCfg.MaxAttempts = cfg.RetryAttempts
	retryCfg.InitialBackoff = cfg.RetryBackoff

	scraper := static.New(memCache, rateLimiter, httpClient, static.Options{
		UserAgent: cfg.UserAgent,
		Headers:   cfg.Headers,
		CacheTTL:  cfg.CacheTTL,
		Retry:     retryCfg,
		Proxies:   pool,
		Logger:    logger,
	})

	client := search.NewClient(scraper, logger, search.WithEndpoint(cfg.Endpoint))
	driver := search.NewDriver(client, logger)

	logger.Debug().
		Str("endpoint_host", urlutil.Host(cfg.Endpoint)).
		Dur("timeout", cfg.HTTPTimeout).
		Int("retry_attempts", cfg.RetryAttempts).
		Msg("Application initialized")

	return &Application{
		Config:      cfg,
		Logger:      logger,
		Cache:       memCache,
		RateLimiter: rateLimiter,
		Proxies:     pool,
		HTTPClient:  httpClient,
		Scraper:     scraper,
		Search:      client,
		Driver:      driver,
		startTime:   time.Now(),
	}, nil
}

func newLogger(cfg *config.Config, out io.Writer) (zerolog.Logger, error) {
	if out == nil {
		out = os.Stderr
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	if !cfg.JSONLog {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

// Scrape fetches every quote for keyword and writes them to outputPath.
// The format follows the file extension. Nothing is written when any page fails.
func (a *Application) Scrape(ctx context.Context, keyword, outputPath string) (*models.ScrapeResult, error) {
	ctx = reqctx.WithRun(ctx, keyword)

	result, err := a.Driver.FetchAll(ctx, keyword)
	if err != nil {
		return nil, reqctx.WrapError(ctx, err)
	}

	logger := reqctx.Logger(ctx, a.Logger)
	if err := output.Save(outputPath, keyword, result.Quotes, logger); err != nil {
		return nil, reqctx.WrapError(ctx, err)
	}
	return result, nil
}

// Count returns the number of matches the endpoint reports for keyword
func (a *Application) Count(ctx context.Context, keyword string) (int, error) {
	ctx = reqctx.WithRun(ctx, keyword)
	total, err := a.Search.Count(ctx, keyword)
	if err != nil {
		return 0, reqctx.WrapError(ctx, err)
	}
	return total, nil
}

// Close releases the resources held by the application
func (a *Application) Close() error {
	stats := a.Cache.Stats()
	a.Logger.Debug().
		Int("entries", stats.Entries).
		Uint64("hits", stats.Hits).
		Uint64("misses", stats.Misses).
		Dur("uptime", a.Uptime()).
		Msg("Shutting down application")

	a.Cache.Close()
	a.HTTPClient.CloseIdleConnections()
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
