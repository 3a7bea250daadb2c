// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and reference only metrics the service exports.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/catalog-browser/tools/dashgen/rules"
)

// histogramSuffixes are the series a histogram exports besides its name.
var histogramSuffixes = []string{"_bucket", "_sum", "_count"}

// Result collects validation findings. Errors fail generation; warnings
// are reported only.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) merge(other Result) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Expr parses expr and checks every metric it selects against known.
func Expr(where, expr string, known map[string]bool) Result {
	var res Result

	node, err := parser.ParseExpr(expr)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("%s: parsing %q: %v", where, expr, err))
		return res
	}

	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok || vs.Name == "" {
			return nil
		}
		if !knownMetric(vs.Name, known) {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: unknown metric %q", where, vs.Name))
		}
		return nil
	})

	return res
}

func knownMetric(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}

type panelJSON struct {
	Title   string      `json:"title"`
	Type    string      `json:"type"`
	Targets []targetRaw `json:"targets"`
	Panels  []panelJSON `json:"panels"`
}

type targetRaw struct {
	Expr string `json:"expr"`
}

// Dashboard validates every panel target of dash. Panels are read from
// the dashboard's JSON model so any panel type is covered.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var res Result

	data, err := json.Marshal(dash)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("marshaling dashboard: %v", err))
		return res
	}

	var model struct {
		Panels []panelJSON `json:"panels"`
	}
	if err := json.Unmarshal(data, &model); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("decoding dashboard model: %v", err))
		return res
	}

	for i := range model.Panels {
		res.merge(panel(&model.Panels[i], known))
	}
	return res
}

func panel(p *panelJSON, known map[string]bool) Result {
	var res Result

	if p.Type == "row" {
		for i := range p.Panels {
			res.merge(panel(&p.Panels[i], known))
		}
		return res
	}

	if len(p.Targets) == 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("panel %q has no targets", p.Title))
	}
	for _, t := range p.Targets {
		res.merge(Expr("panel "+p.Title, t.Expr, known))
	}
	return res
}

// Rules validates every rule expression in crs. Names recorded by earlier
// rules count as known for later ones.
func Rules(crs []rules.PrometheusRule, known map[string]bool) Result {
	var res Result

	all := make(map[string]bool, len(known))
	for k, v := range known {
		all[k] = v
	}
	for _, cr := range crs {
		for _, g := range cr.Spec.Groups {
			for _, r := range g.Rules {
				if r.Record != "" {
					all[r.Record] = true
				}
			}
		}
	}

	for _, cr := range crs {
		for _, g := range cr.Spec.Groups {
			for _, r := range g.Rules {
				name := r.Record
				if name == "" {
					name = r.Alert
				}
				res.merge(Expr(fmt.Sprintf("%s/%s", g.Name, name), r.Expr, all))
			}
		}
	}
	return res
}
