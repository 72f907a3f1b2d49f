// Package layouts renders visualization layout documents: a JSON layout
// template with {{placeholder}} strings is wired with a variable set to
// produce the renderable object handed back to the host framework.
package layouts

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_.]+)\s*\}\}`)

// Parse decodes a layout template from its JSON text form.
func Parse(layoutJSON string) (map[string]interface{}, error) {
	var layout map[string]interface{}
	if err := json.Unmarshal([]byte(layoutJSON), &layout); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return layout, nil
}

// Wire substitutes variables into a layout document and returns the rendered
// copy. The input document is never mutated.
//
// A string that is exactly one placeholder ("{{warning}}") is replaced by the
// variable's typed value, so booleans and arrays survive. Placeholders
// embedded in longer strings are interpolated as text. Missing variables
// resolve to nil (exact) or empty text (embedded).
func Wire(layout map[string]interface{}, vars map[string]interface{}) map[string]interface{} {
	rendered := substitute(layout, vars)
	result, _ := rendered.(map[string]interface{})
	return result
}

func substitute(node interface{}, vars map[string]interface{}) interface{} {
	if node == nil {
		return nil
	}

	switch v := node.(type) {
	case string:
		if m := placeholderPattern.FindStringSubmatch(v); m != nil && m[0] == v {
			value := lookupNestedValue(vars, m[1])
			return normalizeNumber(value)
		}
		if placeholderPattern.MatchString(v) {
			return placeholderPattern.ReplaceAllStringFunc(v, func(ph string) string {
				key := strings.TrimSpace(strings.Trim(ph, "{}"))
				value := lookupNestedValue(vars, key)
				if value == nil {
					return ""
				}
				return fmt.Sprint(value)
			})
		}
		return v
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for k, child := range v {
			result[k] = substitute(child, vars)
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = substitute(item, vars)
		}
		return result
	default:
		return v
	}
}

func lookupNestedValue(data map[string]interface{}, key string) interface{} {
	parts := strings.Split(key, ".")
	current := interface{}(data)

	for _, part := range parts {
		currentMap, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}

		val, exists := currentMap[part]
		if !exists {
			return nil
		}

		current = val
	}

	return current
}

// normalizeNumber converts integer types to float64 for JSON compatibility.
func normalizeNumber(value interface{}) interface{} {
	switch n := value.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	case int16:
		return float64(n)
	case int8:
		return float64(n)
	default:
		return value
	}
}
