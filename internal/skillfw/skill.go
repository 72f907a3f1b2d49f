// Package skillfw is the host-framework surface: skill descriptors,
// registration, argument validation, and the invocation transport.
package skillfw

import (
	"context"

	"kpi-performance-skill/internal/analytics"
)

// ParameterType distinguishes plain values from prompt and visualization
// template parameters.
type ParameterType string

const (
	ParameterTypeValue         ParameterType = "value"
	ParameterTypePrompt        ParameterType = "prompt"
	ParameterTypeVisualization ParameterType = "visualization"
)

// Parameter describes one accepted skill argument.
type Parameter struct {
	Name              string        `json:"name"`
	Description       string        `json:"description,omitempty"`
	IsMulti           bool          `json:"isMulti,omitempty"`
	ConstrainedTo     string        `json:"constrainedTo,omitempty"` // metrics, dimensions, date_filter, filters
	ConstrainedValues []string      `json:"constrainedValues,omitempty"`
	DefaultValue      interface{}   `json:"defaultValue,omitempty"`
	ParameterType     ParameterType `json:"parameterType,omitempty"`
}

// Handler executes one skill invocation.
type Handler func(ctx context.Context, input *Input) (*Output, error)

// Skill is a registered callable unit: metadata for the host framework plus
// the parameter contract and handler.
type Skill struct {
	Name              string
	LLMName           string
	Description       string
	Capabilities      []string
	Limitations       []string
	ExampleQuestions  []string
	ParameterGuidance string
	Parameters        []Parameter
	Handler           Handler
}

// Input is the invocation request handed to a skill handler.
type Input struct {
	SkillName    string                 `json:"skillName"`
	InvocationID string                 `json:"invocationId"`
	Arguments    map[string]interface{} `json:"arguments"`
}

// Output is the structured result a skill hands back to the host framework.
type Output struct {
	FinalPrompt                  string                        `json:"finalPrompt,omitempty"`
	Narrative                    *string                       `json:"narrative,omitempty"`
	Visualizations               []Visualization               `json:"visualizations"`
	ParameterDisplayDescriptions []ParameterDisplayDescription `json:"parameterDisplayDescriptions,omitempty"`
	FollowupQuestions            []SuggestedQuestion           `json:"followupQuestions,omitempty"`
	ExportData                   []ExportData                  `json:"exportData,omitempty"`
}

// Visualization is one renderable layout object with its title.
type Visualization struct {
	Title  string                 `json:"title"`
	Layout map[string]interface{} `json:"layout"`
}

// ParameterDisplayDescription is one key/value row shown to the user to
// explain how the skill interpreted its parameters.
type ParameterDisplayDescription struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SuggestedQuestion is a follow-up the user may ask next.
type SuggestedQuestion struct {
	Label    string `json:"label"`
	Question string `json:"question"`
}

// ExportData names one exportable result table.
type ExportData struct {
	Name string           `json:"name"`
	Data *analytics.Table `json:"data"`
}
