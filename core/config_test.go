package core

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "storefront", cfg.Name)
	assert.Equal(t, DefaultBasketKey, cfg.Basket.Key)
	assert.Equal(t, "inmemory", cfg.Memory.Provider)
	assert.Equal(t, "rest", cfg.Catalog.Provider)
	assert.Equal(t, 30*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestDetectEnvironment_Kubernetes(t *testing.T) {
	t.Setenv("KUBERNETES_SERVICE_HOST", "10.0.0.1")

	cfg := DefaultConfig()
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "redis", cfg.Memory.Provider)
	assert.NotEmpty(t, cfg.Memory.RedisURL)
}

func TestNewConfig_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("STOREFRONT_NAME", "env-store")
	t.Setenv("STOREFRONT_LOG_LEVEL", "debug")
	t.Setenv("STOREFRONT_CATALOG_TIMEOUT", "5s")

	cfg, err := NewConfig(WithStaticCatalog())
	require.NoError(t, err)

	assert.Equal(t, "env-store", cfg.Name)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 5*time.Second, cfg.Catalog.Timeout)
}

func TestNewConfig_OptionsOverrideEnv(t *testing.T) {
	t.Setenv("STOREFRONT_NAME", "env-store")

	cfg, err := NewConfig(WithName("option-store"), WithStaticCatalog())
	require.NoError(t, err)

	assert.Equal(t, "option-store", cfg.Name)
}

func TestNewConfig_RedisURLEnvFallback(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://standard:6379")

	cfg, err := NewConfig(WithStaticCatalog())
	require.NoError(t, err)
	assert.Equal(t, "redis://standard:6379", cfg.Memory.RedisURL)

	// The storefront-specific variable wins over the standard one.
	t.Setenv("STOREFRONT_REDIS_URL", "redis://specific:6379")
	cfg, err = NewConfig(WithStaticCatalog())
	require.NoError(t, err)
	assert.Equal(t, "redis://specific:6379", cfg.Memory.RedisURL)
}

func TestWithRedisURL_SwitchesProvider(t *testing.T) {
	cfg, err := NewConfig(WithStaticCatalog(), WithRedisURL("redis://localhost:6379"))
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Memory.Provider)
	assert.Equal(t, "redis://localhost:6379", cfg.Memory.RedisURL)
}

func TestWithCatalog(t *testing.T) {
	cfg, err := NewConfig(WithCatalog("https://example.supabase.co", "anon-key"))
	require.NoError(t, err)

	assert.Equal(t, "rest", cfg.Catalog.Provider)
	assert.Equal(t, "https://example.supabase.co", cfg.Catalog.BaseURL)
	assert.Equal(t, "anon-key", cfg.Catalog.APIKey)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "missing name",
			mutate:  func(c *Config) { c.Name = "" },
			wantErr: ErrMissingConfiguration,
		},
		{
			name:    "unknown memory provider",
			mutate:  func(c *Config) { c.Memory.Provider = "sqlite" },
			wantErr: ErrInvalidConfiguration,
		},
		{
			name:    "redis provider without URL",
			mutate:  func(c *Config) { c.Memory.Provider = "redis"; c.Memory.RedisURL = "" },
			wantErr: ErrMissingConfiguration,
		},
		{
			name:    "rest catalog without base URL",
			mutate:  func(c *Config) { c.Catalog.Provider = "rest"; c.Catalog.BaseURL = "" },
			wantErr: ErrMissingConfiguration,
		},
		{
			name:    "unknown catalog provider",
			mutate:  func(c *Config) { c.Catalog.Provider = "graphql" },
			wantErr: ErrInvalidConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Catalog.Provider = "static"
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

func TestLoadFromFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	content := `
name: file-store
basket:
  key: file:basket
catalog:
  provider: static
logging:
  level: warn
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := NewConfig(WithConfigFile(path))
	require.NoError(t, err)

	assert.Equal(t, "file-store", cfg.Name)
	assert.Equal(t, "file:basket", cfg.Basket.Key)
	assert.Equal(t, "static", cfg.Catalog.Provider)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadFromFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.json")
	content := `{"name":"json-store","catalog":{"provider":"static"}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := NewConfig(WithConfigFile(path))
	require.NoError(t, err)
	assert.Equal(t, "json-store", cfg.Name)
}

func TestLoadFromFile_Errors(t *testing.T) {
	cfg := DefaultConfig()

	err := cfg.LoadFromFile("config.toml")
	assert.True(t, errors.Is(err, ErrInvalidConfiguration), "unsupported extension: got %v", err)

	err = cfg.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o600))
	err = cfg.LoadFromFile(path)
	assert.True(t, errors.Is(err, ErrInvalidConfiguration), "malformed yaml: got %v", err)
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"true", "TRUE", "1", "yes", "on", " true "} {
		assert.True(t, parseBool(v), "parseBool(%q)", v)
	}
	for _, v := range []string{"false", "0", "no", "off", "", "banana"} {
		assert.False(t, parseBool(v), "parseBool(%q)", v)
	}
}
