package skillfw

// ArgumentsSchema derives a JSON Schema for a skill's arguments from its
// parameter list. Multi-select parameters accept arrays of strings,
// constrained single-select parameters become enums, and unknown argument
// names are rejected.
func ArgumentsSchema(s *Skill) map[string]interface{} {
	properties := make(map[string]interface{}, len(s.Parameters))

	for _, p := range s.Parameters {
		properties[p.Name] = parameterSchema(p)
	}

	return map[string]interface{}{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
}

func parameterSchema(p Parameter) map[string]interface{} {
	// Filter parameters carry structured dimension/values objects.
	if p.ConstrainedTo == "filters" {
		return map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"dimension": map[string]interface{}{"type": "string"},
					"values":    map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
					"operator":  map[string]interface{}{"type": "string"},
				},
				"required": []interface{}{"dimension", "values"},
			},
			"description": p.Description,
		}
	}

	if p.IsMulti {
		items := map[string]interface{}{"type": "string"}
		if len(p.ConstrainedValues) > 0 {
			items["enum"] = toInterfaceSlice(p.ConstrainedValues)
		}
		return map[string]interface{}{
			"type":        "array",
			"items":       items,
			"description": p.Description,
		}
	}

	// Prompts and layouts are free-form text; numerics keep their JSON type.
	switch p.ParameterType {
	case ParameterTypePrompt, ParameterTypeVisualization:
		return map[string]interface{}{
			"type":        "string",
			"description": p.Description,
		}
	}

	if _, isInt := p.DefaultValue.(int); isInt {
		return map[string]interface{}{
			"type":        "integer",
			"description": p.Description,
		}
	}

	schema := map[string]interface{}{
		"type":        "string",
		"description": p.Description,
	}
	if len(p.ConstrainedValues) > 0 {
		schema["enum"] = toInterfaceSlice(p.ConstrainedValues)
	}
	return schema
}

// ApplyDefaults fills missing arguments with parameter defaults, returning a
// new map; the caller's map is left untouched.
func ApplyDefaults(s *Skill, args map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(args)+len(s.Parameters))
	for k, v := range args {
		out[k] = v
	}
	for _, p := range s.Parameters {
		if _, ok := out[p.Name]; !ok && p.DefaultValue != nil {
			out[p.Name] = p.DefaultValue
		}
	}
	return out
}

func toInterfaceSlice(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
