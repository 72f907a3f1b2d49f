// internal/skills/kpiperformance/models.go
package kpiperformance

import (
	"fmt"

	"kpi-performance-skill/internal/analytics"
	commonerrors "kpi-performance-skill/internal/common/errors"
	"kpi-performance-skill/internal/skillfw"
)

// Arguments is the typed parameter bundle for one invocation. Every
// recognized option is an explicit field; nothing is copied dynamically.
type Arguments struct {
	Metrics      []string
	MetricGroups []string
	Breakouts    []string
	Periods      []string
	GrowthType   analytics.GrowthType
	GrowthTrend  analytics.GrowthTrend
	OtherFilters []analytics.Filter

	MaxPrompt      string
	InsightPrompt  string
	TableVizLayout string
	LimitN         int
}

// parseArguments converts the framework's raw argument map into Arguments,
// applying skill-level defaults and rejecting out-of-range values.
func parseArguments(input *skillfw.Input, cfg *Config) (*Arguments, error) {
	raw := input.Arguments

	args := &Arguments{
		Metrics:        toStringSlice(raw["metrics"]),
		MetricGroups:   toStringSlice(raw["metric_groups"]),
		Breakouts:      toStringSlice(raw["breakouts"]),
		Periods:        toStringSlice(raw["periods"]),
		MaxPrompt:      toStringOr(raw["max_prompt"], cfg.MaxPrompt),
		InsightPrompt:  toStringOr(raw["insight_prompt"], cfg.InsightPrompt),
		TableVizLayout: toStringOr(raw["table_viz_layout"], cfg.TableVizLayout),
		LimitN:         toIntOr(raw["limit_n"], cfg.LimitN),
	}

	growthType, err := parseGrowthType(toStringOr(raw["growth_type"], string(analytics.GrowthNone)))
	if err != nil {
		return nil, err
	}
	args.GrowthType = growthType

	if trendStr := toStringOr(raw["growth_trend"], ""); trendStr != "" {
		trend, err := parseGrowthTrend(trendStr)
		if err != nil {
			return nil, err
		}
		args.GrowthTrend = trend
	}

	filters, err := toFilters(raw["other_filters"])
	if err != nil {
		return nil, err
	}
	args.OtherFilters = filters

	if args.LimitN <= 0 {
		return nil, commonerrors.NewInvalidParameterError("limit_n",
			fmt.Sprintf("must be positive, got %d", args.LimitN))
	}

	return args, nil
}

func parseGrowthType(s string) (analytics.GrowthType, error) {
	for _, gt := range analytics.GrowthTypes {
		if string(gt) == s {
			return gt, nil
		}
	}
	return "", commonerrors.NewInvalidParameterError("growth_type",
		fmt.Sprintf("unknown value %q", s))
}

func parseGrowthTrend(s string) (analytics.GrowthTrend, error) {
	for _, tr := range analytics.GrowthTrends {
		if string(tr) == s {
			return tr, nil
		}
	}
	return "", commonerrors.NewInvalidParameterError("growth_trend",
		fmt.Sprintf("unknown value %q", s))
}

// --- raw argument coercion (JSON decoding yields interface{} shapes) ---

func toStringSlice(v interface{}) []string {
	switch vals := v.(type) {
	case nil:
		return nil
	case []string:
		return vals
	case []interface{}:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{vals}
	default:
		return nil
	}
}

func toStringOr(v interface{}, def string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}

func toIntOr(v interface{}, def int) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return def
	}
}

func toFilters(v interface{}) ([]analytics.Filter, error) {
	if v == nil {
		return nil, nil
	}

	items, ok := v.([]interface{})
	if !ok {
		return nil, commonerrors.NewInvalidParameterError("other_filters", "expected a list of filter objects")
	}

	filters := make([]analytics.Filter, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, commonerrors.NewInvalidParameterError("other_filters", "filter entries must be objects")
		}
		f := analytics.Filter{
			Dimension: toStringOr(m["dimension"], ""),
			Values:    toStringSlice(m["values"]),
			Operator:  toStringOr(m["operator"], "in"),
		}
		if f.Dimension == "" || len(f.Values) == 0 {
			return nil, commonerrors.NewInvalidParameterError("other_filters", "filters need a dimension and at least one value")
		}
		filters = append(filters, f)
	}
	return filters, nil
}
