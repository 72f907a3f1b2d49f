// internal/skills/kpiperformance/prompts.go
package kpiperformance

import (
	"encoding/json"
	"regexp"

	"kpi-performance-skill/internal/analytics"
)

var factsPlaceholder = regexp.MustCompile(`\{\{\s*facts\s*\}\}`)

// buildFacts assembles the prompt facts: one record list per source table,
// in the order given. Nil tables contribute an empty list so the facts
// structure stays stable for the templates.
func buildFacts(tables ...*analytics.Table) []interface{} {
	facts := make([]interface{}, 0, len(tables))
	for _, t := range tables {
		facts = append(facts, t.Records())
	}
	return facts
}

// renderPrompt substitutes the {{facts}} placeholder with the JSON-encoded
// facts. Rendering is deterministic for a fixed template and fact set
// (object keys marshal in sorted order).
func renderPrompt(template string, facts []interface{}) string {
	encoded, err := json.MarshalIndent(facts, "", "  ")
	if err != nil {
		encoded = []byte("[]")
	}
	return factsPlaceholder.ReplaceAllLiteralString(template, string(encoded))
}
