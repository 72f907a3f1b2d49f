// internal/skills/kpiperformance/prompts_test.go
package kpiperformance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kpi-performance-skill/internal/analytics"
)

func TestBuildFacts(t *testing.T) {
	notes := &analytics.Table{
		Columns: []string{"Note"},
		Rows:    [][]interface{}{{"Data excludes returns."}},
	}

	facts := buildFacts(notes, makeTable(2))

	require.Len(t, facts, 2)
	assert.Equal(t, []map[string]interface{}{
		{"Note": "Data excludes returns."},
	}, facts[0])
	assert.Equal(t, []map[string]interface{}{
		{"Region": "A", "Spend": float64(100)},
		{"Region": "B", "Spend": float64(200)},
	}, facts[1])
}

func TestBuildFactsNilTableContributesEmptyList(t *testing.T) {
	facts := buildFacts(nil, makeTable(1))

	require.Len(t, facts, 2)
	assert.Empty(t, facts[0])
	assert.Len(t, facts[1], 1)
}

func TestRenderPrompt(t *testing.T) {
	facts := buildFacts(makeTable(1))

	rendered := renderPrompt("Answer from:\n{{facts}}\nEnd.", facts)

	assert.True(t, strings.HasPrefix(rendered, "Answer from:\n["))
	assert.True(t, strings.HasSuffix(rendered, "]\nEnd."))
	assert.Contains(t, rendered, `"Region": "A"`)
	assert.NotContains(t, rendered, "{{facts}}")
}

func TestRenderPromptIsDeterministic(t *testing.T) {
	facts := buildFacts(makeTable(3))

	first := renderPrompt(DefaultInsightPrompt, facts)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, renderPrompt(DefaultInsightPrompt, facts))
	}
}

func TestRenderPromptWithoutPlaceholder(t *testing.T) {
	rendered := renderPrompt("No placeholder here.", buildFacts(makeTable(1)))

	assert.Equal(t, "No placeholder here.", rendered)
}
