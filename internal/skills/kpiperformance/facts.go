// internal/skills/kpiperformance/facts.go
package kpiperformance

import (
	"fmt"

	"kpi-performance-skill/internal/analytics"
)

// limitFacts bounds the facts table to its first topN rows, order preserved.
// The input table is never mutated. When rows were dropped, the returned
// note states the omitted count; a table that already fits yields no note.
// A nil or empty table degrades to an empty facts table.
func limitFacts(t *analytics.Table, topN int) (*analytics.Table, string) {
	if t == nil || t.RowCount() == 0 {
		return &analytics.Table{}, ""
	}

	if t.RowCount() <= topN {
		return t, ""
	}

	omitted := t.RowCount() - topN
	note := fmt.Sprintf("Insights were generated from the top %d rows; %d rows omitted.", topN, omitted)
	return t.Truncate(topN), note
}
