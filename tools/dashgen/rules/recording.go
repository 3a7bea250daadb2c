package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name:   "cb-recording-rules",
			Labels: defaultLabels(),
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "cb-recording",
					Rules: []Rule{
						{
							Record: "cb:http_requests:rate5m",
							Expr:   `sum(rate(cb_http_requests_total[5m]))`,
						},
						{
							Record: "cb:http_errors:rate5m",
							Expr:   `sum(rate(cb_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "cb:catalog_requests:rate5m",
							Expr:   `sum(rate(cb_catalog_requests_total[5m]))`,
						},
						{
							Record: "cb:catalog_errors:rate5m",
							Expr:   `sum(rate(cb_catalog_requests_total{outcome!="success"}[5m]))`,
						},
						{
							Record: "cb:pager_load_errors:rate5m",
							Expr:   `sum by (kind) (rate(cb_pager_loads_total{outcome="error"}[5m]))`,
						},
					},
				},
			},
		},
	}
}
