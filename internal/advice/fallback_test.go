package advice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"better-life/internal/models"
)

func TestFallbackKeywordPrecedence(t *testing.T) {
	// "anxious" belongs to the stress group, which is declared before the
	// competition group; the stress response must win.
	got := FallbackResponse(models.TopicMentalHealth, "I feel very anxious before competition")
	assert.Contains(t, got, "normal to feel stressed")
	assert.NotContains(t, got, "Pre-competition nerves")
}

func TestFallbackMatchesAreCaseInsensitive(t *testing.T) {
	got := FallbackResponse(models.TopicDiet, "HOW MUCH WATER SHOULD I DRINK?")
	assert.Contains(t, got, "Hydration")
}

func TestFallbackGroups(t *testing.T) {
	tests := []struct {
		name  string
		topic models.Topic
		query string
		want  string
	}{
		{"diet weight", models.TopicDiet, "help me lose a few kilos", "weight management"},
		{"diet energy", models.TopicDiet, "always tired after training", "sustained energy"},
		{"diet muscle", models.TopicDiet, "how do I build strength", "muscle building"},
		{"diet recovery", models.TopicDiet, "what to eat post workout", "Post-workout nutrition"},
		{"mental motivation", models.TopicMentalHealth, "feeling unmotivated lately", "discipline stays"},
		{"mental confidence", models.TopicMentalHealth, "I doubt myself", "Self-doubt"},
		{"mental sleep", models.TopicMentalHealth, "can't sleep before games", "Quality sleep"},
		{"mental injury", models.TopicMentalHealth, "my knee hurts and I'm sad", "injury"},
		{"mental competition", models.TopicMentalHealth, "big race coming up", "Pre-competition nerves"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FallbackResponse(tt.topic, tt.query)
			assert.Contains(t, got, tt.want)
		})
	}
}

func TestFallbackIsTotal(t *testing.T) {
	assert.NotEmpty(t, FallbackResponse(models.TopicDiet, "xyzzy"))
	assert.NotEmpty(t, FallbackResponse(models.TopicMentalHealth, "xyzzy"))
	assert.NotEmpty(t, FallbackResponse(models.TopicDiet, ""))
}
