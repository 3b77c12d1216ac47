// Package validate checks generated dashboards and rule files: every PromQL
// expression must parse and reference only known metrics.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/jet-merchant-client/tools/dashgen/rules"
)

// Result collects validation problems. Errors fail generation; warnings are
// reported but do not.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r Result) Ok() bool { return len(r.Errors) == 0 }

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// histogram series carry these suffixes on top of the registered name.
var seriesSuffixes = []string{"_bucket", "_count", "_sum"}

// Expr parses a PromQL expression and returns the metric names it selects
// that are not in known.
func Expr(expr string, known map[string]bool) ([]string, error) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return nil, err
	}

	var unknown []string
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok {
			return nil
		}
		name := vs.Name
		if name == "" {
			return nil
		}
		if !isKnown(name, known) {
			unknown = append(unknown, name)
		}
		return nil
	})
	return unknown, nil
}

func isKnown(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range seriesSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}

func (r *Result) checkExpr(where, expr string, known map[string]bool) {
	if strings.TrimSpace(expr) == "" {
		r.errorf("%s: empty expression", where)
		return
	}
	unknown, err := Expr(expr, known)
	if err != nil {
		r.errorf("%s: %v", where, err)
		return
	}
	for _, name := range unknown {
		r.errorf("%s: unknown metric %q", where, name)
	}
}

// Dashboard validates every query target in a built dashboard.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var r Result

	// Targets are variant types in the SDK, so walk the JSON form instead.
	data, err := json.Marshal(dash)
	if err != nil {
		r.errorf("marshaling dashboard: %v", err)
		return r
	}
	var tree struct {
		Panels []map[string]any `json:"panels"`
	}
	if err := json.Unmarshal(data, &tree); err != nil {
		r.errorf("decoding dashboard: %v", err)
		return r
	}

	r.walkPanels(tree.Panels, known)
	return r
}

func (r *Result) walkPanels(panels []map[string]any, known map[string]bool) {
	for _, p := range panels {
		if kind, _ := p["type"].(string); kind != "row" {
			r.checkPanel(p, known)
			continue
		}
		children, _ := p["panels"].([]any)
		nested := make([]map[string]any, 0, len(children))
		for _, c := range children {
			if m, ok := c.(map[string]any); ok {
				nested = append(nested, m)
			}
		}
		r.walkPanels(nested, known)
	}
}

func (r *Result) checkPanel(panel map[string]any, known map[string]bool) {
	title, _ := panel["title"].(string)
	targets, _ := panel["targets"].([]any)
	if len(targets) == 0 {
		r.warnf("panel %q has no queries", title)
		return
	}

	refs := make(map[string]bool, len(targets))
	for _, t := range targets {
		target, ok := t.(map[string]any)
		if !ok {
			continue
		}
		ref, _ := target["refId"].(string)
		if refs[ref] {
			r.errorf("panel %q: duplicate refId %q", title, ref)
		}
		refs[ref] = true

		expr, _ := target["expr"].(string)
		r.checkExpr(fmt.Sprintf("panel %q query %s", title, ref), expr, known)
	}
}

// Rules validates a PrometheusRule resource. Recording rules must produce a
// known name so dashboards can rely on them.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var r Result
	if cr.Metadata.Name == "" {
		r.errorf("rule resource has no name")
	}

	for _, g := range cr.Spec.Groups {
		if len(g.Rules) == 0 {
			r.warnf("group %q has no rules", g.Name)
		}
		for i, rule := range g.Rules {
			switch {
			case rule.Record != "" && rule.Alert != "":
				r.errorf("group %q rule %d: both record and alert set", g.Name, i)
				continue
			case rule.Record == "" && rule.Alert == "":
				r.errorf("group %q rule %d: neither record nor alert set", g.Name, i)
				continue
			}

			where := fmt.Sprintf("group %q rule %s%s", g.Name, rule.Record, rule.Alert)
			r.checkExpr(where, rule.Expr, known)

			if rule.Record != "" && !known[rule.Record] {
				r.errorf("%s: recorded name is not in the known metric set", where)
			}
			if rule.For != "" {
				if _, err := time.ParseDuration(rule.For); err != nil {
					r.errorf("%s: invalid for duration: %v", where, err)
				}
			}
			if rule.Alert != "" && rule.Labels["severity"] == "" {
				r.warnf("%s: no severity label", where)
			}
		}
	}
	return r
}
