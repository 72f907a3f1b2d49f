// internal/skills/kpiperformance/params.go
package kpiperformance

import "kpi-performance-skill/internal/analytics"

// buildQuery maps the typed argument bundle onto the engine's query shape.
// This replaces the old free-form environment handoff with an explicit
// field-by-field translation.
func buildQuery(args *Arguments) analytics.Query {
	return analytics.Query{
		Metrics:      args.Metrics,
		MetricGroups: args.MetricGroups,
		Breakouts:    args.Breakouts,
		Periods:      args.Periods,
		GrowthType:   args.GrowthType,
		GrowthTrend:  args.GrowthTrend,
		OtherFilters: args.OtherFilters,
		LimitN:       args.LimitN,
	}
}
