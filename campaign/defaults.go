package campaign

// DefaultTemplate returns the values used for every field a new campaign
// leaves unset. Each call builds a fresh tree.
func DefaultTemplate() map[string]any {
	return map[string]any{
		"general_information": map[string]any{
			"status":        "active",
			"pricing_model": "cpc",
			"traffic_type":  "mainstream",
			"adult":         false,
			"notes":         "",
		},
		"budget": map[string]any{
			"daily_budget": 0,
			"pacing":       "even",
		},
		"categories": map[string]any{
			"include": []any{},
			"exclude": []any{},
		},
		"targeting": map[string]any{
			"countries": []any{},
			"devices":   []any{},
			"os":        []any{},
			"browsers":  []any{},
			"languages": []any{},
		},
		"schedule": map[string]any{
			"enabled":  false,
			"timezone": "UTC",
			"days":     []any{},
		},
	}
}
