// pkg/registry/schema.go
package registry

// SkillCatalog is the on-disk catalog of skill descriptors.
type SkillCatalog struct {
	Version     string            `json:"version"`
	LastUpdated string            `json:"lastUpdated"`
	Skills      []SkillDescriptor `json:"skills"`
}

// SkillDescriptor carries the display and guidance metadata for one skill.
type SkillDescriptor struct {
	ID                string   `json:"id"`
	DisplayName       string   `json:"displayName"`
	LLMName           string   `json:"llmName"`
	Description       string   `json:"description"`
	Capabilities      []string `json:"capabilities"`
	Limitations       []string `json:"limitations"`
	ExampleQuestions  []string `json:"exampleQuestions"`
	ParameterGuidance string   `json:"parameterGuidance"`
	MaxPrompt         string   `json:"maxPrompt,omitempty"`
	InsightPrompt     string   `json:"insightPrompt,omitempty"`
	Tags              []string `json:"tags,omitempty"`
}
