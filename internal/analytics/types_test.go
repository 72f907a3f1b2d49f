// internal/analytics/types_test.go
package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableRecords(t *testing.T) {
	table := &Table{
		Columns: []string{"Region", "Spend"},
		Rows: [][]interface{}{
			{"North", 500.0},
			{"South"}, // short row: missing cells are skipped
		},
	}

	records := table.Records()

	require.Len(t, records, 2)
	assert.Equal(t, map[string]interface{}{"Region": "North", "Spend": 500.0}, records[0])
	assert.Equal(t, map[string]interface{}{"Region": "South"}, records[1])
}

func TestTableRecordsNilTable(t *testing.T) {
	var table *Table

	assert.Empty(t, table.Records())
	assert.Zero(t, table.RowCount())
}

func TestTableTruncate(t *testing.T) {
	table := &Table{
		Columns: []string{"Region"},
		Rows:    [][]interface{}{{"North"}, {"South"}, {"East"}},
	}

	truncated := table.Truncate(2)

	assert.Equal(t, 2, truncated.RowCount())
	assert.Equal(t, 3, table.RowCount(), "receiver is untouched")
	assert.Equal(t, "North", truncated.Rows[0][0])

	assert.Equal(t, 3, table.Truncate(10).RowCount(), "over-length truncation keeps all rows")
	assert.Zero(t, table.Truncate(-1).RowCount())
}

func TestFirstTable(t *testing.T) {
	primary := &Table{Columns: []string{"Total"}}
	display := &Table{Columns: []string{"Region"}}

	withTables := &RunResult{Primary: primary, Tables: []NamedTable{{Name: "t", Table: display}}}
	assert.Same(t, display, withTables.FirstTable())

	withoutTables := &RunResult{Primary: primary}
	assert.Same(t, primary, withoutTables.FirstTable())
}
