package coach

import "github.com/abhisek/proyo/internal/llm"

func actionsSchema(description string, minXP, maxXP int) map[string]any {
	return map[string]any{
		"type":        "array",
		"description": description,
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"description": map[string]any{
					"type":        "string",
					"description": "Short, concrete action in Spanish (2-6 words)",
				},
				"xp": map[string]any{
					"type":    "integer",
					"minimum": minXP,
					"maximum": maxXP,
				},
			},
			"required":             []any{"description", "xp"},
			"additionalProperties": false,
		},
	}
}

// PlanSchema is the personalised plan: tracked actions and weekly KPIs.
var PlanSchema = &llm.Schema{
	Name:        "personal-plan",
	Description: "Positive actions, negative actions and weekly KPIs tailored to the user's goals",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"positiveActions": actionsSchema("6-10 habits that move the user toward the objective", 1, 20),
			"negativeActions": actionsSchema("3-5 habits that set the user back", -20, -1),
			"kpis": map[string]any{
				"type":        "array",
				"description": "4-6 measurable weekly indicators",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"area": map[string]any{
							"type":        "string",
							"description": "Life area, one word (Salud, Finanzas, ...)",
						},
						"indicator": map[string]any{
							"type":        "string",
							"description": "Measurable weekly target",
						},
					},
					"required":             []any{"area", "indicator"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"positiveActions", "negativeActions", "kpis"},
		"additionalProperties": false,
	},
}

// SentimentSchema classifies a reflection.
var SentimentSchema = &llm.Schema{
	Name:        "reflection-sentiment",
	Description: "Overall sentiment of a daily reflection",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"sentiment": map[string]any{
				"type": "string",
				"enum": []any{"POSITIVE", "NEUTRAL", "NEGATIVE"},
			},
		},
		"required":             []any{"sentiment"},
		"additionalProperties": false,
	},
}
