package main

import "errors"

// KnownMetrics is the set of metric names exported by the Jet client plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// Request metrics.
	"jet_requests_total":           true,
	"jet_request_duration_seconds": true,
	"jet_transport_errors_total":   true,

	// Authentication metrics.
	"jet_logins_total": true,
	"jet_reauth_total": true,

	// Recording rules.
	"jet:requests:rate5m":         true,
	"jet:server_errors:rate5m":    true,
	"jet:transport_errors:rate5m": true,
	"jet:login_failures:rate5m":   true,

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
