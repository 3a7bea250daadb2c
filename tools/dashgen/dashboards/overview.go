// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/catalog-browser/tools/dashgen/panels"
)

// OverviewUID is the stable dashboard UID provisioned into Grafana.
const OverviewUID = "cb-overview"

// BuildOverview constructs the catalog-browser overview dashboard.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Catalog Browser Overview").
		Uid(OverviewUID).
		Tags([]string{"cb", "catalog-browser"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.ActiveSessionsStat()).
		WithPanel(panels.UptimeStat()))

	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	b.WithRow(dashboard.NewRowBuilder("Catalog").
		WithPanel(panels.CatalogRequestRate()).
		WithPanel(panels.CatalogLatency()).
		WithPanel(panels.CatalogErrorRatio()))

	b.WithRow(dashboard.NewRowBuilder("Pagination").
		WithPanel(panels.PageLoads()).
		WithPanel(panels.SkippedTriggers()).
		WithPanel(panels.ProductsPerPage()))

	b.WithRow(dashboard.NewRowBuilder("Sessions").
		WithPanel(panels.ActiveSessions()).
		WithPanel(panels.ExpiredSessions()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
