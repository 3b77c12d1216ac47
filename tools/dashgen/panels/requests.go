package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RequestRateByClass returns a timeseries panel showing API requests per
// second split by status class.
func RequestRateByClass() *timeseries.PanelBuilder {
	return breakdown("Request Rate", "Jet API requests per second by status class", "mean", "max").
		WithTarget(PromQuery(`sum by (class) (rate(`+Sel("jet_requests_total")+`[5m]))`, "{{class}}", "A")).
		Unit("reqps")
}

// LatencyPercentiles returns a timeseries panel showing p50, p95, and p99
// API request latencies.
func LatencyPercentiles() *timeseries.PanelBuilder {
	b := breakdown("Latency Percentiles", "Jet API request duration percentiles, login excluded", "mean", "max").
		Unit("s")
	for _, q := range quantiles("jet_request_duration_seconds_bucket", 0.50, 0.95, 0.99) {
		b.WithTarget(q)
	}
	return b
}

// ServerErrorRatio returns a timeseries panel showing 5xx responses as a
// percentage of all responses.
func ServerErrorRatio() *timeseries.PanelBuilder {
	return graph("Server Error %", "5xx responses from Jet as percentage of total requests").
		WithTarget(PromQuery(`jet:server_errors:rate5m / jet:requests:rate5m * 100`, "5xx %", "A")).
		Unit("percent").
		Thresholds(Steps("green", Step{1, "yellow"}, Step{5, "red"})).
		ColorScheme(ByThreshold())
}

// TransportErrors returns a timeseries panel showing requests that never
// produced an HTTP response.
func TransportErrors() *timeseries.PanelBuilder {
	return graph("Transport Errors", "Requests that failed below the HTTP layer (DNS, TLS, timeouts)").
		WithTarget(PromQuery(`jet:transport_errors:rate5m`, "errors/s", "A")).
		Thresholds(Steps("green", Step{0.01, "yellow"}, Step{0.1, "red"})).
		ColorScheme(ByThreshold())
}

// SuccessRatio returns a stat panel showing the share of 2xx responses over
// the last hour.
func SuccessRatio() *stat.PanelBuilder {
	expr := `sum(increase(` + Sel("jet_requests_total", `class="success"`) + `[1h])) / ` +
		`sum(increase(` + Sel("jet_requests_total") + `[1h])) * 100`
	return single("Success % (1h)", "Share of Jet API requests answered with 2xx in the last hour", expr).
		Unit("percent").
		Thresholds(Steps("red", Step{95, "green"})).
		ColorMode(common.BigValueColorModeBackground)
}

// UptimeStat returns a stat panel showing process uptime.
func UptimeStat() *stat.PanelBuilder {
	return single("Uptime", "Time since process start", `time() - `+Sel("process_start_time_seconds")).
		Unit("s").
		Thresholds(Steps("green"))
}

// UpStat returns a stat panel showing whether the metrics endpoint is being
// scraped.
func UpStat() *stat.PanelBuilder {
	return single("Up", "Scrape status of the jetctl metrics endpoint (1 = up)", Sel("up")).
		Thresholds(Steps("red", Step{1, "green"})).
		ColorMode(common.BigValueColorModeBackground).
		TextMode(common.BigValueTextModeValue)
}
