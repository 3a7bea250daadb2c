package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// catalog-browser operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name:   "cb-alerts",
			Labels: defaultLabels(),
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "cb-alerts",
					Rules: []Rule{
						{
							Alert:  "CbDown",
							Expr:   `absent(up{job="catalog-browser"})`,
							For:    "2m",
							Labels: severity("critical"),
							Annotations: map[string]string{
								"summary":     "Catalog Browser is down",
								"description": "The catalog-browser job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert:  "CbCatalogUnreachable",
							Expr:   `cb_readyz_up == 0`,
							For:    "2m",
							Labels: severity("critical"),
							Annotations: map[string]string{
								"summary":     "The product catalog is unreachable",
								"description": "The readiness probe, which pings the catalog, has failed for more than 2 minutes.",
							},
						},
						{
							Alert:  "CbHighErrorRate",
							Expr:   `cb:http_errors:rate5m / cb:http_requests:rate5m > 0.05`,
							For:    "5m",
							Labels: severity("warning"),
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on Catalog Browser",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert:  "CbCatalogErrors",
							Expr:   `cb:catalog_errors:rate5m / cb:catalog_requests:rate5m > 0.1`,
							For:    "5m",
							Labels: severity("warning"),
							Annotations: map[string]string{
								"summary":     "Catalog requests are failing",
								"description": "More than 10% of catalog page requests have failed over the last 5 minutes.",
							},
						},
						{
							Alert:  "CbFirstPageFailures",
							Expr:   `cb:pager_load_errors:rate5m{kind="first"} > 0`,
							For:    "5m",
							Labels: severity("warning"),
							Annotations: map[string]string{
								"summary":     "Visitors are seeing an empty product grid",
								"description": "Initial page loads have been failing for more than 5 minutes.",
							},
						},
					},
				},
			},
		},
	}
}

func severity(level string) map[string]string {
	return map[string]string{"severity": level}
}
