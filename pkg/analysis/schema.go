package analysis

import (
	"google.golang.org/genai"
)

// Field names of the result object. All of them are required.
const (
	fieldOverallMood        = "overallMood"
	fieldMoodScore          = "moodScore"
	fieldKeyEmotions        = "keyEmotions"
	fieldFeedback           = "feedback"
	fieldActivitySuggestion = "activitySuggestion"
)

var requiredFields = []string{
	fieldOverallMood,
	fieldMoodScore,
	fieldKeyEmotions,
	fieldFeedback,
	fieldActivitySuggestion,
}

// ResultSchema constrains the model's JSON output.
func ResultSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			fieldOverallMood: {
				Type:        genai.TypeString,
				Description: "A single word describing the user's overall mood (e.g., Joyful, Stressed, Calm, Anxious, Content, Sad).",
			},
			fieldMoodScore: {
				Type:        genai.TypeNumber,
				Description: "A numerical score from 1 (very negative) to 10 (very positive) representing the user's mood.",
			},
			fieldKeyEmotions: {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "An array of 2-3 key emotions detected from the text and other inputs.",
			},
			fieldFeedback: {
				Type:        genai.TypeString,
				Description: "Compassionate and constructive feedback (2-3 sentences). Acknowledge their feelings and offer encouragement, considering their sleep and stress levels.",
			},
			fieldActivitySuggestion: {
				Type:        genai.TypeString,
				Description: "A simple, actionable wellness activity suggestion based on their mood, stress, and sleep (e.g., 'Try a 5-minute guided meditation.', 'Consider a short walk outside.').",
			},
		},
		Required:         requiredFields,
		PropertyOrdering: requiredFields,
	}
}
