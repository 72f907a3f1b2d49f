// internal/layouts/wire_test.go
package layouts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	layout, err := Parse(`{"type": "Document", "rows": []}`)

	require.NoError(t, err)
	assert.Equal(t, "Document", layout["type"])
}

func TestParseRejectsBadJSON(t *testing.T) {
	_, err := Parse(`{"type": "Document"`)

	assert.Error(t, err)
}

func TestWireExactPlaceholderKeepsType(t *testing.T) {
	layout := map[string]interface{}{
		"hidden": "{{hide}}",
		"count":  "{{n}}",
		"items":  "{{list}}",
	}

	rendered := Wire(layout, map[string]interface{}{
		"hide": false,
		"n":    7,
		"list": []interface{}{"a", "b"},
	})

	assert.Equal(t, false, rendered["hidden"])
	assert.Equal(t, float64(7), rendered["count"], "integers normalize to float64")
	assert.Equal(t, []interface{}{"a", "b"}, rendered["items"])
}

func TestWireEmbeddedPlaceholderInterpolates(t *testing.T) {
	layout := map[string]interface{}{
		"text": "Spend was {{amount}} in {{region}}.",
	}

	rendered := Wire(layout, map[string]interface{}{
		"amount": 500,
		"region": "North",
	})

	assert.Equal(t, "Spend was 500 in North.", rendered["text"])
}

func TestWireMissingVariables(t *testing.T) {
	layout := map[string]interface{}{
		"exact":    "{{missing}}",
		"embedded": "value: {{missing}}!",
	}

	rendered := Wire(layout, map[string]interface{}{})

	assert.Nil(t, rendered["exact"])
	assert.Equal(t, "value: !", rendered["embedded"])
}

func TestWireNestedLookup(t *testing.T) {
	layout := map[string]interface{}{
		"label": "{{table.name}}",
	}

	rendered := Wire(layout, map[string]interface{}{
		"table": map[string]interface{}{"name": "Spend by Region"},
	})

	assert.Equal(t, "Spend by Region", rendered["label"])
}

func TestWireRecursesThroughRowsAndDoesNotMutate(t *testing.T) {
	layout, err := Parse(`{
		"type": "Document",
		"rows": [
			{"type": "Header", "headline": "{{headline}}"},
			{"type": "DataTable", "data": "{{data}}"}
		]
	}`)
	require.NoError(t, err)

	rendered := Wire(layout, map[string]interface{}{
		"headline": "Spend",
		"data":     []interface{}{map[string]interface{}{"Region": "North"}},
	})

	rows := rendered["rows"].([]interface{})
	header := rows[0].(map[string]interface{})
	table := rows[1].(map[string]interface{})
	assert.Equal(t, "Spend", header["headline"])
	assert.Len(t, table["data"], 1)

	// Original template still holds its placeholders.
	origRows := layout["rows"].([]interface{})
	assert.Equal(t, "{{headline}}", origRows[0].(map[string]interface{})["headline"])
}

func TestDefaultTableLayoutParsesAndValidates(t *testing.T) {
	layout, err := Parse(DefaultTableLayout)

	require.NoError(t, err)
	assert.NoError(t, Validate(layout))
}

func TestValidateRejectsLayoutWithoutRows(t *testing.T) {
	assert.Error(t, Validate(map[string]interface{}{"type": "Document"}))
}
