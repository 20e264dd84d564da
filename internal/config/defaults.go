package config

import (
	"time"

	"github.com/law-makers/quotes/internal/search"
)

// Default constants for application configuration
const (
	DefaultLogLevel          = "info"
	DefaultJSONLog           = false
	DefaultEndpoint          = search.DefaultEndpoint
	DefaultKeyword           = "god"
	DefaultUserAgent         = "Quotes/1.0 (https://github.com/law-makers/quotes)"
	DefaultHTTPTimeout       = 30 * time.Second
	DefaultRateLimitRPS      = 2.0
	DefaultRateLimitBurst    = 1
	DefaultRetryAttempts     = 3
	DefaultMaxRetryAttempts  = 10
	DefaultRetryBackoff      = 1 * time.Second
	DefaultCacheTTL          = 10 * time.Minute
	DefaultCacheMaxSizeBytes = 32 * 1024 * 1024 // 32MB
	EnvPrefix                = "QUOTES_"
	DefaultConfigFile        = ".quotes.yaml"
)
