// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/jet-merchant-client/tools/dashgen/panels"
)

// BuildOverview constructs the Jet client overview dashboard.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Jet Merchant Client").
		Uid("jet-client-overview").
		Tags([]string{"jet", "jetctl"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.UpStat()).
		WithPanel(panels.UptimeStat()).
		WithPanel(panels.SuccessRatio()).
		WithPanel(panels.LoginFailures()))

	b.WithRow(dashboard.NewRowBuilder("Requests").
		WithPanel(panels.RequestRateByClass()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ServerErrorRatio()).
		WithPanel(panels.TransportErrors()))

	b.WithRow(dashboard.NewRowBuilder("Authentication").
		WithPanel(panels.LoginOutcomes()).
		WithPanel(panels.ReauthOutcomes()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
