package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// PageLoads returns a timeseries panel showing page loads by kind and
// outcome.
func PageLoads() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Page Loads").
		Description("First and next page loads per second by outcome").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`sum by (kind, outcome) (rate(cb_pager_loads_total[5m]))`,
			"{{kind}} {{outcome}}", "A",
		)).
		Unit("ops").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// SkippedTriggers returns a timeseries panel showing load triggers that
// were ignored because a fetch was in flight or the catalog was exhausted.
func SkippedTriggers() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Skipped Triggers").
		Description("Ignored load triggers per second by reason").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`sum by (reason) (rate(cb_pager_skipped_triggers_total[5m]))`,
			"{{reason}}", "A",
		)).
		Unit("ops").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ProductsPerPage returns a timeseries panel showing the median page fill.
// Short pages mark the end of the catalog.
func ProductsPerPage() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Products per Page").
		Description("Median number of products returned per loaded page").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(Quantile(0.50, "cb_pager_products_per_page"), "p50", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
