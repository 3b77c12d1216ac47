package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/bargauge"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// LoginOutcomes returns a timeseries panel showing login attempts by result.
func LoginOutcomes() *timeseries.PanelBuilder {
	return breakdown("Logins", "Login attempts per second by result", "sum").
		WithTarget(PromQuery(`sum by (result) (rate(`+Sel("jet_logins_total")+`[5m]))`, "{{result}}", "A")).
		DrawStyle(common.GraphDrawStyleBars)
}

// ReauthOutcomes returns a bar gauge panel breaking down implicit
// reauthentication over the last hour.
func ReauthOutcomes() *bargauge.PanelBuilder {
	return bargauge.NewPanelBuilder().
		Title("Reauthentication (1h)").
		Description("Implicit reauthentication by outcome: refreshed, failed, skipped while another login ran, shared").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`sum by (outcome) (increase(`+Sel("jet_reauth_total")+`[1h]))`, "{{outcome}}", "A")).
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		Thresholds(Steps("green")).
		ColorScheme(Palette())
}

// LoginFailures returns a stat panel showing failed logins in the past
// 24 hours.
func LoginFailures() *stat.PanelBuilder {
	expr := `sum(increase(` + Sel("jet_logins_total", `result!="success"`) + `[24h]))`
	return single("Login Failures (24h)", "Rejected, malformed or unverified logins in the last 24 hours", expr).
		Thresholds(Steps("green", Step{1, "yellow"}, Step{5, "red"})).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
