package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the storefront core.
// It supports three-layer configuration priority:
//  1. Default values (lowest priority)
//  2. Environment variables (medium priority)
//  3. Functional options (highest priority)
//
// Example usage:
//
//	cfg, err := NewConfig(
//	    WithName("basketw"),
//	    WithCatalog("https://example.supabase.co", apiKey),
//	    WithRedisURL("redis://localhost:6379"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
type Config struct {
	// Name identifies this storefront installation in logs and telemetry.
	Name string `json:"name" yaml:"name"`

	Basket    BasketConfig    `json:"basket" yaml:"basket"`
	Memory    MemoryConfig    `json:"memory" yaml:"memory"`
	Catalog   CatalogConfig   `json:"catalog" yaml:"catalog"`
	Logging   LoggingConfig   `json:"logging" yaml:"logging"`
	Telemetry TelemetryConfig `json:"telemetry" yaml:"telemetry"`
}

// BasketConfig contains basket persistence settings.
type BasketConfig struct {
	// Key is the fixed scoped-store key the basket snapshot lives under.
	Key string `json:"key" yaml:"key"`
}

// MemoryConfig selects the scoped persistence store backend.
// Provider "inmemory" keeps state for the process lifetime only; "redis"
// survives restarts and requires RedisURL.
type MemoryConfig struct {
	Provider  string `json:"provider" yaml:"provider"`
	RedisURL  string `json:"redis_url" yaml:"redis_url"`
	Namespace string `json:"namespace" yaml:"namespace"`
}

// CatalogConfig points at the remote collection accessor.
// Provider "rest" fetches from BaseURL; "static" serves the built-in
// category set and an empty product list (development without a backend).
type CatalogConfig struct {
	Provider string        `json:"provider" yaml:"provider"`
	BaseURL  string        `json:"base_url" yaml:"base_url"`
	APIKey   string        `json:"api_key" yaml:"api_key"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// TelemetryConfig controls the optional telemetry module.
type TelemetryConfig struct {
	Enabled     bool   `json:"enabled" yaml:"enabled"`
	ServiceName string `json:"service_name" yaml:"service_name"`
}

// Option mutates a Config during construction.
type Option func(*Config) error

// DefaultConfig returns a configuration with sensible defaults, adjusted for
// the detected environment (hosted deployments get JSON logs and the cluster
// Redis, local development gets text logs and in-memory storage).
func DefaultConfig() *Config {
	cfg := &Config{
		Name: "storefront",
		Basket: BasketConfig{
			Key: DefaultBasketKey,
		},
		Memory: MemoryConfig{
			Provider:  "inmemory",
			Namespace: "storefront",
		},
		Catalog: CatalogConfig{
			Provider: "rest",
			Timeout:  30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			ServiceName: "storefront",
		},
	}

	cfg.DetectEnvironment()

	return cfg
}

// DetectEnvironment adjusts defaults based on where the process runs.
// Kubernetes is detected via KUBERNETES_SERVICE_HOST.
func (c *Config) DetectEnvironment() {
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		c.Logging.Format = "json"
		c.Memory.Provider = "redis"
		c.Memory.RedisURL = "redis://redis.default.svc.cluster.local:6379"
	}
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables take precedence over defaults but are overridden by
// functional options.
//
// Variable naming convention:
//   - Storefront-specific: STOREFRONT_<SETTING>
//   - Standard variables: REDIS_URL
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("STOREFRONT_NAME"); v != "" {
		c.Name = v
	}
	if v := os.Getenv("STOREFRONT_BASKET_KEY"); v != "" {
		c.Basket.Key = v
	}

	if v := os.Getenv("STOREFRONT_MEMORY_PROVIDER"); v != "" {
		c.Memory.Provider = v
	}
	if v := os.Getenv("STOREFRONT_REDIS_URL"); v != "" {
		c.Memory.RedisURL = v
	} else if v := os.Getenv("REDIS_URL"); v != "" {
		c.Memory.RedisURL = v
	}
	if v := os.Getenv("STOREFRONT_MEMORY_NAMESPACE"); v != "" {
		c.Memory.Namespace = v
	}

	if v := os.Getenv("STOREFRONT_CATALOG_PROVIDER"); v != "" {
		c.Catalog.Provider = v
	}
	if v := os.Getenv("STOREFRONT_CATALOG_URL"); v != "" {
		c.Catalog.BaseURL = v
	}
	if v := os.Getenv("STOREFRONT_CATALOG_API_KEY"); v != "" {
		c.Catalog.APIKey = v
	}
	if v := os.Getenv("STOREFRONT_CATALOG_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Catalog.Timeout = d
		}
	}

	if v := os.Getenv("STOREFRONT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("STOREFRONT_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}

	if v := os.Getenv("STOREFRONT_TELEMETRY_ENABLED"); v != "" {
		c.Telemetry.Enabled = parseBool(v)
	}
	if v := os.Getenv("STOREFRONT_TELEMETRY_SERVICE"); v != "" {
		c.Telemetry.ServiceName = v
	}

	return nil
}

// LoadFromFile loads configuration from a JSON or YAML file, merged over the
// current values.
func (c *Config) LoadFromFile(path string) error {
	cleanPath := filepath.Clean(path)

	ext := filepath.Ext(cleanPath)
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("unsupported config file extension %s: %w", ext, ErrInvalidConfiguration)
	}

	if !filepath.IsAbs(cleanPath) {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		cleanPath = filepath.Join(wd, cleanPath)
	}

	data, err := os.ReadFile(filepath.Clean(cleanPath))
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", cleanPath, err)
	}

	switch ext {
	case ".json":
		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", ErrInvalidConfiguration)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", ErrInvalidConfiguration)
		}
	}

	return nil
}

// Validate checks if the configuration is valid.
//
// Validation rules:
//   - Name is required
//   - Memory provider must be "inmemory" or "redis"; redis requires a URL
//   - Catalog provider must be "rest" or "static"; rest requires a base URL
func (c *Config) Validate() error {
	if c.Name == "" {
		return &StorefrontError{
			Op:      "Config.Validate",
			Kind:    "config",
			Message: "storefront name is required",
			Err:     ErrMissingConfiguration,
		}
	}

	switch c.Memory.Provider {
	case "inmemory":
	case "redis":
		if c.Memory.RedisURL == "" {
			return &StorefrontError{
				Op:      "Config.Validate",
				Kind:    "config",
				Message: "redis URL is required for the redis memory provider",
				Err:     ErrMissingConfiguration,
			}
		}
	default:
		return &StorefrontError{
			Op:      "Config.Validate",
			Kind:    "config",
			Message: fmt.Sprintf("unknown memory provider: %s", c.Memory.Provider),
			Err:     ErrInvalidConfiguration,
		}
	}

	switch c.Catalog.Provider {
	case "static":
	case "rest":
		if c.Catalog.BaseURL == "" {
			return &StorefrontError{
				Op:      "Config.Validate",
				Kind:    "config",
				Message: "catalog base URL is required for the rest catalog provider",
				Err:     ErrMissingConfiguration,
			}
		}
	default:
		return &StorefrontError{
			Op:      "Config.Validate",
			Kind:    "config",
			Message: fmt.Sprintf("unknown catalog provider: %s", c.Catalog.Provider),
			Err:     ErrInvalidConfiguration,
		}
	}

	return nil
}

// parseBool converts a string to a boolean value.
// Accepts: "true", "1", "yes", "on" (case-insensitive) as true.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// Functional Options

// WithName sets the storefront installation name.
func WithName(name string) Option {
	return func(c *Config) error {
		c.Name = name
		return nil
	}
}

// WithBasketKey overrides the scoped-store key for the basket snapshot.
func WithBasketKey(key string) Option {
	return func(c *Config) error {
		c.Basket.Key = key
		return nil
	}
}

// WithMemoryProvider selects the scoped persistence store backend
// ("inmemory" or "redis").
func WithMemoryProvider(provider string) Option {
	return func(c *Config) error {
		c.Memory.Provider = provider
		return nil
	}
}

// WithRedisURL sets the Redis connection URL and switches the memory
// provider to redis.
func WithRedisURL(url string) Option {
	return func(c *Config) error {
		c.Memory.Provider = "redis"
		c.Memory.RedisURL = url
		return nil
	}
}

// WithCatalog points the catalog at a hosted REST backend.
func WithCatalog(baseURL, apiKey string) Option {
	return func(c *Config) error {
		c.Catalog.Provider = "rest"
		c.Catalog.BaseURL = baseURL
		c.Catalog.APIKey = apiKey
		return nil
	}
}

// WithStaticCatalog switches the catalog to the built-in static source.
func WithStaticCatalog() Option {
	return func(c *Config) error {
		c.Catalog.Provider = "static"
		return nil
	}
}

// WithLogLevel sets the logging level (debug, info, warn, error).
func WithLogLevel(level string) Option {
	return func(c *Config) error {
		c.Logging.Level = level
		return nil
	}
}

// WithLogFormat sets the log output format ("json" or "text").
func WithLogFormat(format string) Option {
	return func(c *Config) error {
		c.Logging.Format = format
		return nil
	}
}

// WithTelemetry enables telemetry under the given service name.
func WithTelemetry(serviceName string) Option {
	return func(c *Config) error {
		c.Telemetry.Enabled = true
		if serviceName != "" {
			c.Telemetry.ServiceName = serviceName
		}
		return nil
	}
}

// WithConfigFile loads the given file during construction, after env
// variables and before later options.
func WithConfigFile(path string) Option {
	return func(c *Config) error {
		return c.LoadFromFile(path)
	}
}

// NewConfig creates a validated configuration from defaults, environment
// variables, and functional options, in that order of increasing precedence.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := DefaultConfig()

	if err := cfg.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load env config: %w", err)
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
