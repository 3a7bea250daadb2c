package main

import "errors"

// KnownMetrics is the set of metric names exported by catalog-browser
// plus recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"cb_http_request_duration_seconds": true,
	"cb_http_requests_total":           true,

	// Health metrics.
	"cb_healthz_up": true,
	"cb_readyz_up":  true,

	// Catalog API metrics.
	"cb_catalog_requests_total":           true,
	"cb_catalog_request_duration_seconds": true,

	// Pagination metrics.
	"cb_pager_loads_total":            true,
	"cb_pager_skipped_triggers_total": true,
	"cb_pager_products_per_page":      true,

	// Session metrics.
	"cb_sessions_active":        true,
	"cb_sessions_expired_total": true,

	// Recording rules.
	"cb:http_requests:rate5m":     true,
	"cb:http_errors:rate5m":       true,
	"cb:catalog_requests:rate5m":  true,
	"cb:catalog_errors:rate5m":    true,
	"cb:pager_load_errors:rate5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
