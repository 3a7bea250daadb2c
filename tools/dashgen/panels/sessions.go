package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// ActiveSessions returns a timeseries panel showing sessions held over time.
func ActiveSessions() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Active Sessions").
		Description("Browsing sessions held in memory").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`sum(cb_sessions_active)`, "sessions", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ExpiredSessions returns a timeseries panel showing the idle sweeper's
// expiry rate.
func ExpiredSessions() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Expired Sessions").
		Description("Sessions removed by the idle sweeper per minute").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`sum(rate(cb_sessions_expired_total[5m])) * 60`, "expired/min", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
