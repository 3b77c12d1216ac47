// Package panels provides Grafana dashboard panel builders for the Jet
// merchant client metrics.
package panels

import (
	"fmt"
	"math"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/cog"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// Job is the scrape job jetctl's metrics endpoint is registered under.
const Job = "jetctl"

// Grid sizes on a 24-column row: four stats or two graphs per row.
const (
	StatWidth  = 6
	StatHeight = 4

	TSWidth  = 12
	TSHeight = 8
)

// Sel returns a selector for metric scoped to the jetctl job, with any
// extra matchers appended, e.g. Sel("jet_logins_total", `result!="success"`).
func Sel(metric string, matchers ...string) string {
	all := append([]string{fmt.Sprintf("job=%q", Job)}, matchers...)
	return metric + "{" + strings.Join(all, ",") + "}"
}

// DSRef points a panel at the ${datasource} template variable.
func DSRef() dashboard.DataSourceRef {
	return dashboard.DataSourceRef{
		Type: cog.ToPtr("prometheus"),
		Uid:  cog.ToPtr("${datasource}"),
	}
}

// PromQuery builds a Prometheus target.
func PromQuery(expr, legendFormat, refID string) *prometheus.DataqueryBuilder {
	return prometheus.NewDataqueryBuilder().
		Expr(expr).
		LegendFormat(legendFormat).
		RefId(refID)
}

// quantiles returns one latency target per quantile, ref IDs A, B, C...
func quantiles(histogram string, qs ...float64) []*prometheus.DataqueryBuilder {
	out := make([]*prometheus.DataqueryBuilder, 0, len(qs))
	for i, q := range qs {
		expr := fmt.Sprintf(`histogram_quantile(%.2f, sum(rate(%s[5m])) by (le))`, q, Sel(histogram))
		out = append(out, PromQuery(expr, fmt.Sprintf("p%d", int(math.Round(q*100))), string(rune('A'+i))))
	}
	return out
}

// graph is the base for every timeseries panel on the overview: half-width,
// thin lines, light fill.
func graph(title, description string) *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		FillOpacity(10).
		LineWidth(2).
		DrawStyle(common.GraphDrawStyleLine)
}

// breakdown is a graph with one series per label value, colored by palette
// and listed in a table legend.
func breakdown(title, description string, calcs ...string) *timeseries.PanelBuilder {
	return graph(title, description).
		Legend(common.NewVizLegendOptionsBuilder().
			DisplayMode(common.LegendDisplayModeTable).
			Placement(common.LegendPlacementBottom).
			Calcs(calcs)).
		Tooltip(common.NewVizTooltipOptionsBuilder().
			Mode(common.TooltipDisplayModeMulti).
			Sort(common.SortOrderDescending)).
		Thresholds(Steps("green")).
		ColorScheme(Palette())
}

// single is the base for the quarter-width stat panels in the top row.
func single(title, description, expr string) *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(expr, "", "A")).
		ColorScheme(ByThreshold()).
		GraphMode(common.BigValueGraphModeNone)
}

// Step switches to Color once a value reaches At.
type Step struct {
	At    float64
	Color string
}

// Steps builds absolute thresholds starting from base.
func Steps(base string, steps ...Step) cog.Builder[dashboard.ThresholdsConfig] {
	out := []dashboard.Threshold{{Color: base}}
	for _, s := range steps {
		out = append(out, dashboard.Threshold{Value: cog.ToPtr(s.At), Color: s.Color})
	}
	return dashboard.NewThresholdsConfigBuilder().
		Mode(dashboard.ThresholdsModeAbsolute).
		Steps(out)
}

// ByThreshold colors values by the panel's threshold steps.
func ByThreshold() cog.Builder[dashboard.FieldColor] {
	return dashboard.NewFieldColorBuilder().
		Mode(dashboard.FieldColorModeIdThresholds)
}

// Palette colors series from the classic palette.
func Palette() cog.Builder[dashboard.FieldColor] {
	return dashboard.NewFieldColorBuilder().
		Mode(dashboard.FieldColorModeIdPaletteClassic)
}
