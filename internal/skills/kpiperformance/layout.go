// internal/skills/kpiperformance/layout.go
package kpiperformance

import (
	"context"
	"strings"

	"kpi-performance-skill/internal/analytics"
	commonerrors "kpi-performance-skill/internal/common/errors"
	"kpi-performance-skill/internal/layouts"
	"kpi-performance-skill/internal/skillfw"
)

// fallbackNarrative is displayed when the LLM returns an empty completion.
const fallbackNarrative = "No Insight."

// renderLayoutInput bundles everything the layout pass needs.
type renderLayoutInput struct {
	Tables        []analytics.NamedTable
	Title         string
	Subtitle      string
	DimColLabel   string
	InsightTables []*analytics.Table
	Warnings      string
	Footnotes     map[string]string
	MaxPrompt     string
	InsightPrompt string
	LayoutJSON    string
}

// renderLayoutResult is the layout pass output: one visualization per display
// table in table order, the narrative, the rendered max prompt, and the
// exportable tables.
type renderLayoutResult struct {
	Visualizations []skillfw.Visualization
	Insights       string
	MaxPrompt      string
	Exports        []skillfw.ExportData
}

// renderLayout renders both prompt templates from the facts, obtains the
// narrative insight, and wires every display table into the layout template.
func (s *SkillHandler) renderLayout(ctx context.Context, in *renderLayoutInput) (*renderLayoutResult, error) {
	facts := buildFacts(in.InsightTables...)

	insightPrompt := renderPrompt(in.InsightPrompt, facts)
	maxPrompt := renderPrompt(in.MaxPrompt, facts)

	insights, err := s.generator.Generate(ctx, insightPrompt)
	if err != nil {
		return nil, err
	}

	execSummary := insights
	if execSummary == "" {
		execSummary = fallbackNarrative
	}

	headline := in.Title
	if headline == "" {
		headline = "Total"
	}
	subHeadline := in.Subtitle
	if subHeadline == "" {
		subHeadline = "Trend Analysis"
	}

	generalVars := map[string]interface{}{
		"headline":            headline,
		"sub_headline":        subHeadline,
		"hide_growth_warning": in.Warnings == "",
		"exec_summary":        execSummary,
		"warning":             in.Warnings,
	}

	layout, err := layouts.Parse(in.LayoutJSON)
	if err != nil {
		return nil, commonerrors.NewLayoutTemplateInvalidError(err.Error())
	}
	if err := layouts.Validate(layout); err != nil {
		return nil, commonerrors.NewLayoutTemplateInvalidError(err.Error())
	}

	result := &renderLayoutResult{
		Insights:  insights,
		MaxPrompt: maxPrompt,
	}

	for _, nt := range in.Tables {
		result.Exports = append(result.Exports, skillfw.ExportData{Name: nt.Name, Data: nt.Table})

		tableVars := tableLayoutVars(nt.Table, in.DimColLabel)

		dimNote := in.Footnotes[nt.Name]
		tableVars["hide_footer"] = dimNote == ""
		if dimNote != "" {
			tableVars["footer"] = strings.TrimSpace(dimNote)
		} else {
			tableVars["footer"] = "No additional info."
		}

		vars := make(map[string]interface{}, len(generalVars)+len(tableVars))
		for k, v := range generalVars {
			vars[k] = v
		}
		for k, v := range tableVars {
			vars[k] = v
		}

		rendered := layouts.Wire(layout, vars)
		result.Visualizations = append(result.Visualizations, skillfw.Visualization{
			Title:  nt.Name,
			Layout: rendered,
		})
	}

	return result, nil
}

// tableLayoutVars produces the per-table variable set: column definitions
// (the first column relabeled with the breakout dimension) and row records.
func tableLayoutVars(t *analytics.Table, dimColLabel string) map[string]interface{} {
	if t == nil {
		return map[string]interface{}{
			"columns": []interface{}{},
			"data":    []interface{}{},
		}
	}

	columns := make([]interface{}, 0, len(t.Columns))
	for i, col := range t.Columns {
		label := col
		if i == 0 && dimColLabel != "" {
			label = dimColLabel
		}
		columns = append(columns, map[string]interface{}{
			"field":      col,
			"headerName": label,
		})
	}

	records := t.Records()
	data := make([]interface{}, len(records))
	for i, rec := range records {
		data[i] = rec
	}

	return map[string]interface{}{
		"columns": columns,
		"data":    data,
	}
}
