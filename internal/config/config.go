package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/law-makers/quotes/internal/utils/headers"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel   string `yaml:"log_level"`
	JSONLog    bool   `yaml:"json_log"`
	Quiet      bool   `yaml:"quiet"`
	NoProgress bool   `yaml:"no_progress"`

	// Search
	Endpoint string `yaml:"endpoint"`
	Keyword  string `yaml:"keyword"`

	// HTTP/Scraping
	HTTPTimeout time.Duration     `yaml:"http_timeout"`
	UserAgent   string            `yaml:"user_agent"`
	Proxy       string            `yaml:"proxy"`
	Headers     map[string]string `yaml:"headers"`

	// Rate Limiting
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`

	// Retry
	RetryAttempts int           `yaml:"retry_attempts"`
	RetryBackoff  time.Duration `yaml:"retry_backoff"`

	// Caching
	CacheTTL          time.Duration `yaml:"cache_ttl"`
	CacheMaxSizeBytes int64         `yaml:"cache_max_size_bytes"`
}

// Default returns a Config populated with the package defaults
func Default() *Config {
	return &Config{
		LogLevel:          DefaultLogLevel,
		JSONLog:           DefaultJSONLog,
		Endpoint:          DefaultEndpoint,
		Keyword:           DefaultKeyword,
		HTTPTimeout:       DefaultHTTPTimeout,
		UserAgent:         DefaultUserAgent,
		Headers:           map[string]string{},
		RateLimitRPS:      DefaultRateLimitRPS,
		RateLimitBurst:    DefaultRateLimitBurst,
		RetryAttempts:     DefaultRetryAttempts,
		RetryBackoff:      DefaultRetryBackoff,
		CacheTTL:          DefaultCacheTTL,
		CacheMaxSizeBytes: DefaultCacheMaxSizeBytes,
	}
}

// Load builds a Config by combining defaults, an optional YAML file, .env and
// environment variables, and CLI flags, in increasing order of precedence.
// Caller should pass the executing *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := Default()

	// .env is optional; real environment variables win over it
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	path, explicit := configPath(cmd)
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if cmd != nil {
		if err := cfg.applyFlags(cmd); err != nil {
			return nil, err
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadFile merges the YAML file at path into c. Keys absent from the file keep their current value.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// configPath resolves the config file location. explicit is false for the implicit default file.
func configPath(cmd *cobra.Command) (string, bool) {
	if cmd != nil {
		if f := cmd.Flags().Lookup("config"); f != nil && f.Value.String() != "" {
			return f.Value.String(), true
		}
	}
	if v := os.Getenv(EnvPrefix + "CONFIG"); v != "" {
		return v, true
	}
	return DefaultConfigFile, false
}

func (c *Config) applyEnv() error {
	if v := env("LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := env("ENDPOINT"); v != "" {
		c.Endpoint = v
	}
	if v := env("KEYWORD"); v != "" {
		c.Keyword = v
	}
	if v := env("USER_AGENT"); v != "" {
		c.UserAgent = v
	}
	if v := env("PROXY"); v != "" {
		c.Proxy = v
	}
	if v := env("TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sTIMEOUT: %w", EnvPrefix, err)
		}
		c.HTTPTimeout = d
	}
	if v := env("RETRY_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sRETRY_ATTEMPTS: %w", EnvPrefix, err)
		}
		c.RetryAttempts = n
	}
	if v := env("RATE_LIMIT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sRATE_LIMIT_RPS: %w", EnvPrefix, err)
		}
		c.RateLimitRPS = f
	}
	return nil
}

func (c *Config) applyFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}

	if changed("endpoint") {
		c.Endpoint, _ = flags.GetString("endpoint")
	}
	if changed("user-agent") {
		c.UserAgent, _ = flags.GetString("user-agent")
	}
	if changed("proxy") {
		c.Proxy, _ = flags.GetString("proxy")
	}
	if changed("timeout") {
		s, _ := flags.GetString("timeout")
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("--timeout: %w", err)
		}
		c.HTTPTimeout = d
	}
	if changed("retries") {
		c.RetryAttempts, _ = flags.GetInt("retries")
	}
	if changed("rate-limit") {
		c.RateLimitRPS, _ = flags.GetFloat64("rate-limit")
	}
	if changed("header") {
		raw, _ := flags.GetStringArray("header")
		parsed, err := headers.ParseHeaders(raw)
		if err != nil {
			return fmt.Errorf("--header: %w", err)
		}
		if c.Headers == nil {
			c.Headers = map[string]string{}
		}
		for k, v := range parsed {
			c.Headers[k] = v
		}
	}
	if changed("json") {
		c.JSONLog, _ = flags.GetBool("json")
	}
	if changed("no-progress") {
		c.NoProgress, _ = flags.GetBool("no-progress")
	}
	if v, _ := flags.GetBool("verbose"); v && changed("verbose") {
		c.LogLevel = "debug"
	}
	if v, _ := flags.GetBool("quiet"); v && changed("quiet") {
		c.Quiet = true
		c.LogLevel = "error"
	}
	return nil
}

func env(name string) string {
	return os.Getenv(EnvPrefix + name)
}
