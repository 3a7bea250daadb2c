package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// CatalogRequestRate returns a timeseries panel showing upstream catalog
// requests per second by outcome.
func CatalogRequestRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Catalog Requests").
		Description("Catalog page requests per second by outcome").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`sum by (outcome) (rate(cb_catalog_requests_total[5m]))`, "{{outcome}}", "A")).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// CatalogLatency returns a timeseries panel showing catalog request latency
// percentiles.
func CatalogLatency() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Catalog Latency").
		Description("Catalog page request duration percentiles").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(Quantile(0.50, "cb_catalog_request_duration_seconds"), "p50", "A")).
		WithTarget(PromQuery(Quantile(0.95, "cb_catalog_request_duration_seconds"), "p95", "B")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// CatalogErrorRatio returns a timeseries panel showing the share of catalog
// requests that failed.
func CatalogErrorRatio() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Catalog Error %").
		Description("Failed catalog requests as percentage of all catalog requests").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`cb:catalog_errors:rate5m / cb:catalog_requests:rate5m * 100`,
			"error %", "A",
		)).
		Unit("percent").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(1, 10)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}
