package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/law-makers/quotes/internal/proxy"
	urlutil "github.com/law-makers/quotes/internal/utils/url"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

func validate(c *Config) error {
	var errs []error

	if err := urlutil.ValidateURL(c.Endpoint); err != nil {
		errs = append(errs, fmt.Errorf("endpoint: %w", err))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, errors.New("http timeout must be > 0"))
	}
	if c.RetryAttempts < 1 || c.RetryAttempts > DefaultMaxRetryAttempts {
		errs = append(errs, fmt.Errorf("retry attempts must be between 1 and %d", DefaultMaxRetryAttempts))
	}
	if c.RetryBackoff <= 0 {
		errs = append(errs, errors.New("retry backoff must be > 0"))
	}
	if c.RateLimitRPS <= 0 {
		errs = append(errs, errors.New("rate limit must be > 0"))
	}
	if c.RateLimitBurst < 1 {
		errs = append(errs, errors.New("rate limit burst must be >= 1"))
	}
	if c.CacheMaxSizeBytes <= 0 {
		errs = append(errs, errors.New("cache max size must be > 0"))
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.LogLevel))
	}
	if _, err := proxy.ParseList(c.Proxy); err != nil {
		errs = append(errs, fmt.Errorf("proxy: %w", err))
	}

	return errors.Join(errs...)
}
