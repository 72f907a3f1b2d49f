package layouts

import "kpi-performance-skill/internal/common/validation"

// DefaultTableLayout is the stock table visualization template. Skills may
// override it through the table_viz_layout parameter.
const DefaultTableLayout = `{
  "type": "Document",
  "rows": [
    {
      "type": "Header",
      "headline": "{{headline}}",
      "sub_headline": "{{sub_headline}}"
    },
    {
      "type": "Callout",
      "variant": "warning",
      "hidden": "{{hide_growth_warning}}",
      "text": "{{warning}}"
    },
    {
      "type": "Markdown",
      "text": "{{exec_summary}}"
    },
    {
      "type": "DataTable",
      "columns": "{{columns}}",
      "data": "{{data}}"
    },
    {
      "type": "Footer",
      "hidden": "{{hide_footer}}",
      "text": "{{footer}}"
    }
  ]
}`

// layoutSchema is the minimal structural contract every layout document must
// satisfy before wiring.
var layoutSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"type": map[string]interface{}{"type": "string"},
		"rows": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":     "object",
				"required": []string{"type"},
			},
		},
	},
	"required": []string{"type", "rows"},
}

// Validate checks that a parsed layout document conforms to the layout schema.
func Validate(layout map[string]interface{}) error {
	return validation.MustBeValid(layoutSchema, layout)
}
