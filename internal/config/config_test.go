package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "empty config uses defaults",
			yaml: ``,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, "https://dummyjson.com", cfg.Catalog.BaseURL)
				assert.Equal(t, 10, cfg.Catalog.PageSize)
				assert.Equal(t, 30*time.Second, cfg.Catalog.Timeout)
				assert.Equal(t, "catalog-browser", cfg.Catalog.UserAgent)
				assert.Zero(t, cfg.Catalog.RateLimit.PerSecond)
				assert.Equal(t, 10, cfg.Catalog.RateLimit.Burst)
				assert.Equal(t, "Products", cfg.UI.Title)
				assert.InDelta(t, 0.1, cfg.UI.IntersectionThreshold, 0.0001)
				assert.Equal(t, 30*time.Minute, cfg.Sessions.MaxIdle)
				assert.Equal(t, time.Minute, cfg.Sessions.SweepInterval)
				assert.Equal(t, "cb_session", cfg.Sessions.CookieName)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "env var substitution",
			yaml: `
catalog:
  base_url: "${TEST_CATALOG_URL}"
`,
			envVars: map[string]string{
				"TEST_CATALOG_URL": "http://catalog.internal:8089",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "http://catalog.internal:8089", cfg.Catalog.BaseURL)
			},
		},
		{
			name: "relative base url",
			yaml: `
catalog:
  base_url: /products
`,
			wantErr: `catalog.base_url must be an absolute http(s) URL (got "/products")`,
		},
		{
			name: "unsupported base url scheme",
			yaml: `
catalog:
  base_url: ftp://catalog.example.com
`,
			wantErr: "catalog.base_url must be an absolute http(s) URL",
		},
		{
			name: "page size too large",
			yaml: `
catalog:
  page_size: 500
`,
			wantErr: "catalog.page_size must be between 1 and 100 (got 500)",
		},
		{
			name: "negative page size",
			yaml: `
catalog:
  page_size: -1
`,
			wantErr: "catalog.page_size must be between 1 and 100 (got -1)",
		},
		{
			name: "negative rate",
			yaml: `
catalog:
  rate_limit:
    per_second: -2
`,
			wantErr: "catalog.rate_limit.per_second must not be negative",
		},
		{
			name: "threshold out of range",
			yaml: `
ui:
  intersection_threshold: 1.5
`,
			wantErr: "ui.intersection_threshold must be between 0 and 1 (got 1.5)",
		},
		{
			name: "sweep interval longer than max idle",
			yaml: `
sessions:
  max_idle: 30s
  sweep_interval: 5m
`,
			wantErr: "sessions.max_idle must not be shorter than sessions.sweep_interval",
		},
		{
			name: "invalid port",
			yaml: `
server:
  port: 70000
`,
			wantErr: "server.port must be between 1 and 65535 (got 70000)",
		},
		{
			name: "invalid logging format",
			yaml: `
logging:
  format: xml
`,
			wantErr: `logging.format must be one of: text, json, pretty (got "xml")`,
		},
		{
			name:    "invalid YAML",
			yaml:    `{{{not valid yaml`,
			wantErr: "parsing config YAML",
		},
		{
			name: "full config with overrides",
			yaml: `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: 60s
  write_timeout: 45s
catalog:
  base_url: http://localhost:8089/
  page_size: 24
  timeout: 5s
  user_agent: cb-staging
  rate_limit:
    per_second: 5
    burst: 2
ui:
  title: Shop
  intersection_threshold: 0.5
sessions:
  max_idle: 1h
  sweep_interval: 5m
  cookie_name: shop_sid
logging:
  level: debug
  format: pretty
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
				assert.Equal(t, 60*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 45*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, "http://localhost:8089/", cfg.Catalog.BaseURL)
				assert.Equal(t, 24, cfg.Catalog.PageSize)
				assert.Equal(t, 5*time.Second, cfg.Catalog.Timeout)
				assert.Equal(t, "cb-staging", cfg.Catalog.UserAgent)
				assert.InDelta(t, 5.0, cfg.Catalog.RateLimit.PerSecond, 0.0001)
				assert.Equal(t, 2, cfg.Catalog.RateLimit.Burst)
				assert.Equal(t, "Shop", cfg.UI.Title)
				assert.InDelta(t, 0.5, cfg.UI.IntersectionThreshold, 0.0001)
				assert.Equal(t, time.Hour, cfg.Sessions.MaxIdle)
				assert.Equal(t, 5*time.Minute, cfg.Sessions.SweepInterval)
				assert.Equal(t, "shop_sid", cfg.Sessions.CookieName)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "pretty", cfg.Logging.Format)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Only parallelize tests that don't modify env vars.
			if len(tt.envVars) == 0 {
				t.Parallel()
			}

			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			cfg, err := Load(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	const key = "CB_CONFIG_TEST_DOTENV_URL"
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ".env"),
		[]byte(key+"=http://from-dotenv:9000\n"),
		0o600,
	))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(
		path,
		[]byte("catalog:\n  base_url: \"${"+key+"}\"\n"),
		0o644,
	))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-dotenv:9000", cfg.Catalog.BaseURL)
}

func TestLoad_EnvironmentOverridesDotEnv(t *testing.T) {
	const key = "CB_CONFIG_TEST_OVERRIDE_URL"
	t.Setenv(key, "http://from-env:9000")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ".env"),
		[]byte(key+"=http://from-dotenv:9000\n"),
		0o600,
	))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(
		path,
		[]byte("catalog:\n  base_url: \"${"+key+"}\"\n"),
		0o644,
	))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:9000", cfg.Catalog.BaseURL)
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, validate(cfg))
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 10, cfg.Catalog.PageSize)
}
