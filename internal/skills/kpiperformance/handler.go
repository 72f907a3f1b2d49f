// internal/skills/kpiperformance/handler.go
package kpiperformance

import (
	"context"
	"strings"

	"kpi-performance-skill/internal/analytics"
	"kpi-performance-skill/internal/common/logger"
	"kpi-performance-skill/internal/llm"
	"kpi-performance-skill/internal/skillfw"
)

// SkillHandler runs the KPI performance analysis: it adapts the invocation
// arguments into an engine query, bounds the result for the LLM, renders the
// prompts and narrative, and wires every display table into a visualization.
type SkillHandler struct {
	cfg       *Config
	engine    analytics.Engine
	generator llm.Generator
	logger    logger.Logger
}

func New(cfg *Config, engine analytics.Engine, generator llm.Generator, log logger.Logger) *SkillHandler {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &SkillHandler{
		cfg:       cfg,
		engine:    engine,
		generator: generator,
		logger:    log.WithFields(map[string]interface{}{"skill": cfg.Name}),
	}
}

// Skill builds the registrable skill descriptor: display metadata, the full
// parameter contract, and the invocation handler.
func (s *SkillHandler) Skill() *skillfw.Skill {
	growthTypes := make([]string, len(analytics.GrowthTypes))
	for i, gt := range analytics.GrowthTypes {
		growthTypes[i] = string(gt)
	}
	growthTrends := make([]string, len(analytics.GrowthTrends))
	for i, tr := range analytics.GrowthTrends {
		growthTrends[i] = string(tr)
	}

	return &skillfw.Skill{
		Name:              s.cfg.Name,
		LLMName:           s.cfg.LLMName,
		Description:       s.cfg.Description,
		Capabilities:      s.cfg.Capabilities,
		Limitations:       s.cfg.Limitations,
		ExampleQuestions:  s.cfg.ExampleQuestions,
		ParameterGuidance: s.cfg.ParameterGuidance,
		Parameters: []skillfw.Parameter{
			{
				Name:          "metrics",
				Description:   "Metrics to analyze.",
				IsMulti:       true,
				ConstrainedTo: "metrics",
			},
			{
				Name:          "metric_groups",
				Description:   "Metric groups to analyze as a whole.",
				IsMulti:       true,
				ConstrainedTo: "metric_groups",
			},
			{
				Name:          "breakouts",
				Description:   "Dimensions to segment the metrics by.",
				IsMulti:       true,
				ConstrainedTo: "dimensions",
			},
			{
				Name:          "periods",
				Description:   "Time periods to analyze.",
				IsMulti:       true,
				ConstrainedTo: "date_filter",
			},
			{
				Name:              "growth_type",
				Description:       "Time comparison mode for the metrics.",
				ConstrainedValues: growthTypes,
				DefaultValue:      string(analytics.GrowthNone),
			},
			{
				Name:              "growth_trend",
				Description:       "Trend category to rank by when a growth type is set.",
				ConstrainedValues: growthTrends,
			},
			{
				Name:          "other_filters",
				Description:   "Additional dimension filters to constrain the analysis.",
				IsMulti:       true,
				ConstrainedTo: "filters",
			},
			{
				Name:          "max_prompt",
				Description:   "Prompt template for the direct answer.",
				DefaultValue:  s.cfg.MaxPrompt,
				ParameterType: skillfw.ParameterTypePrompt,
			},
			{
				Name:          "insight_prompt",
				Description:   "Prompt template for the executive summary narrative.",
				DefaultValue:  s.cfg.InsightPrompt,
				ParameterType: skillfw.ParameterTypePrompt,
			},
			{
				Name:          "table_viz_layout",
				Description:   "Layout template for the result tables.",
				DefaultValue:  s.cfg.TableVizLayout,
				ParameterType: skillfw.ParameterTypeVisualization,
			},
			{
				Name:         "limit_n",
				Description:  "Maximum rows kept for ranking and for the LLM facts.",
				DefaultValue: s.cfg.LimitN,
			},
		},
		Handler: s.Run,
	}
}

// Run executes one invocation end to end.
func (s *SkillHandler) Run(ctx context.Context, input *skillfw.Input) (*skillfw.Output, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	args, err := parseArguments(input, s.cfg)
	if err != nil {
		return nil, err
	}

	log := s.logger.WithFields(map[string]interface{}{"invocation_id": input.InvocationID})
	log.Info("running analysis", map[string]interface{}{
		"metrics":     args.Metrics,
		"breakouts":   args.Breakouts,
		"growth_type": string(args.GrowthType),
		"limit_n":     args.LimitN,
	})

	result, err := s.engine.Run(ctx, buildQuery(args))
	if err != nil {
		log.WithError(err).Error("analysis run failed", nil)
		return nil, err
	}

	factsTable, limitNote := limitFacts(result.FirstTable(), args.LimitN)
	warnings := mergeWarnings(result.Warning, limitNote)

	dimColLabel := ""
	if len(result.Dimensions) > 0 {
		dimColLabel = result.Dimensions[0]
	}

	rendered, err := s.renderLayout(ctx, &renderLayoutInput{
		Tables:        result.Tables,
		Title:         result.Title,
		Subtitle:      result.Subtitle,
		DimColLabel:   dimColLabel,
		InsightTables: []*analytics.Table{result.Notes, factsTable},
		Warnings:      warnings,
		Footnotes:     result.Footnotes,
		MaxPrompt:     args.MaxPrompt,
		InsightPrompt: args.InsightPrompt,
		LayoutJSON:    args.TableVizLayout,
	})
	if err != nil {
		log.WithError(err).Error("layout rendering failed", nil)
		return nil, err
	}

	output := &skillfw.Output{
		FinalPrompt:                  rendered.MaxPrompt,
		Narrative:                    nil,
		Visualizations:               rendered.Visualizations,
		ParameterDisplayDescriptions: displayDescriptions(result.DisplayInfo),
		FollowupQuestions:            followupQuestions(result.Suggestions),
		ExportData:                   rendered.Exports,
	}

	log.Info("analysis complete", map[string]interface{}{
		"visualizations": len(output.Visualizations),
		"exports":        len(output.ExportData),
		"followups":      len(output.FollowupQuestions),
	})
	return output, nil
}

// mergeWarnings joins the engine warning and the fact-limit note with a
// single space, skipping empties.
func mergeWarnings(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

func displayDescriptions(params []analytics.DisplayParam) []skillfw.ParameterDisplayDescription {
	if len(params) == 0 {
		return nil
	}
	out := make([]skillfw.ParameterDisplayDescription, 0, len(params))
	for _, p := range params {
		out = append(out, skillfw.ParameterDisplayDescription{Key: p.Key, Value: p.Value})
	}
	return out
}

// followupQuestions drops suggestions without a label.
func followupQuestions(suggestions []analytics.Suggestion) []skillfw.SuggestedQuestion {
	out := make([]skillfw.SuggestedQuestion, 0, len(suggestions))
	for _, sg := range suggestions {
		if sg.Label == "" {
			continue
		}
		out = append(out, skillfw.SuggestedQuestion{Label: sg.Label, Question: sg.Question})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
