package catalog

// moduleSchema is the JSON schema every catalog document must satisfy.
var moduleSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":             map[string]any{"type": "string", "minLength": 1},
		"title":          map[string]any{"type": "string", "minLength": 1},
		"description":    map[string]any{"type": "string"},
		"difficulty":     map[string]any{"type": "string"},
		"estimated_time": map[string]any{"type": "string"},
		"points":         map[string]any{"type": "integer", "minimum": 0},
		"steps": map[string]any{
			"type":  "array",
			"items": map[string]any{"$ref": "#/$defs/step"},
		},
	},
	"required": []any{"id", "title", "difficulty", "points", "steps"},
	"$defs": map[string]any{
		"step": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{"type": "string"},
				"type": map[string]any{
					"type": "string",
					"enum": []any{"content", "interactive", "drill", "quiz"},
				},
				"text":       map[string]any{"type": "string"},
				"key_points": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"actions": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"action":      map[string]any{"type": "string"},
							"description": map[string]any{"type": "string"},
						},
						"required": []any{"action"},
					},
				},
				"scenario": map[string]any{"type": "string"},
				"options": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"text":     map[string]any{"type": "string"},
							"correct":  map[string]any{"type": "boolean"},
							"feedback": map[string]any{"type": "string"},
						},
						"required": []any{"text"},
					},
				},
				"questions": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"question":    map[string]any{"type": "string"},
							"options":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
							"correct":     map[string]any{"type": "integer"},
							"explanation": map[string]any{"type": "string"},
						},
						"required": []any{"question", "options", "correct"},
					},
				},
			},
			"required": []any{"title", "type"},
			"allOf": []any{
				map[string]any{
					"if":   map[string]any{"properties": map[string]any{"type": map[string]any{"const": "drill"}}},
					"then": map[string]any{"required": []any{"scenario", "options"}},
				},
				map[string]any{
					"if":   map[string]any{"properties": map[string]any{"type": map[string]any{"const": "quiz"}}},
					"then": map[string]any{"required": []any{"questions"}},
				},
			},
		},
	},
}
