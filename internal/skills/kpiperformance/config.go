// internal/skills/kpiperformance/config.go
package kpiperformance

import (
	"time"

	"kpi-performance-skill/internal/layouts"
	"kpi-performance-skill/pkg/registry"
)

// DefaultLimitN caps both the engine's Top N filtering and the number of
// fact rows handed to the LLM.
const DefaultLimitN = 10

// DefaultMaxPrompt is the stock prompt for the short "max" response.
const DefaultMaxPrompt = `You are a business analyst assistant. Using ONLY the facts below, give a direct one-paragraph answer about KPI performance. Do not invent numbers.

Facts:
{{facts}}`

// DefaultInsightPrompt is the stock prompt for the detailed insight narrative.
const DefaultInsightPrompt = `You are a business analyst writing an executive summary of KPI performance. Using ONLY the facts below, write 3-5 short bullet points covering the strongest and weakest performers and any notable growth or decline. Do not invent numbers. Keep it under 120 words.

Facts:
{{facts}}`

// Config carries the skill's display metadata, prompt defaults and limits.
type Config struct {
	Name              string
	LLMName           string
	Description       string
	Capabilities      []string
	Limitations       []string
	ExampleQuestions  []string
	ParameterGuidance string

	MaxPrompt      string
	InsightPrompt  string
	TableVizLayout string
	LimitN         int
	Timeout        time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Name:        "kpi-performance",
		LLMName:     "kpi_performance",
		Description: "Analyzes KPI performance across breakout dimensions and time periods, with optional growth trends.",
		Capabilities: []string{
			"Rank breakout values by metric performance",
			"Compare periods with year-over-year or period-over-period growth",
			"Surface fastest or highest growing and declining segments",
		},
		Limitations: []string{
			"Answers only from the metrics and dimensions available to the analytics engine",
			"Growth trends require a growth type other than none",
		},
		ExampleQuestions: []string{
			"How did Spend perform by Region last quarter?",
			"Which brands are the fastest growing year over year?",
		},
		ParameterGuidance: "Pick the metrics the user asked about, the breakout dimension(s) to segment by, and a growth type only when the question compares periods.",
		MaxPrompt:         DefaultMaxPrompt,
		InsightPrompt:     DefaultInsightPrompt,
		TableVizLayout:    layouts.DefaultTableLayout,
		LimitN:            DefaultLimitN,
		Timeout:           120 * time.Second,
	}
}

// ApplyDescriptor overrides display metadata and prompt defaults from a
// catalog entry, keeping config values where the descriptor is silent.
func (c *Config) ApplyDescriptor(d *registry.SkillDescriptor) {
	if d == nil {
		return
	}
	if d.DisplayName != "" {
		c.Name = d.DisplayName
	}
	if d.LLMName != "" {
		c.LLMName = d.LLMName
	}
	if d.Description != "" {
		c.Description = d.Description
	}
	if len(d.Capabilities) > 0 {
		c.Capabilities = d.Capabilities
	}
	if len(d.Limitations) > 0 {
		c.Limitations = d.Limitations
	}
	if len(d.ExampleQuestions) > 0 {
		c.ExampleQuestions = d.ExampleQuestions
	}
	if d.ParameterGuidance != "" {
		c.ParameterGuidance = d.ParameterGuidance
	}
	if d.MaxPrompt != "" {
		c.MaxPrompt = d.MaxPrompt
	}
	if d.InsightPrompt != "" {
		c.InsightPrompt = d.InsightPrompt
	}
}
