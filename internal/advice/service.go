package advice

import (
	"context"
	"fmt"

	"better-life/internal/models"
	"better-life/pkg/logger"
)

const (
	dietPromptFormat         = "As a nutrition expert for Kenyan athletes, provide advice for: %s. Consider local foods and cultural preferences."
	mentalHealthPromptFormat = "As a supportive mental health assistant for athletes, provide empathetic guidance for: %s. Focus on wellness and suggest professional help when appropriate."
)

// Service is the advice pipeline: one attempt against the remote generator,
// then the deterministic keyword fallback. The remote model is a nice-to-have
// layered over a guaranteed-available responder, so the chat UI never sees an
// error state.
type Service struct {
	gen Generator
	log *logger.Logger
}

func NewService(gen Generator, log *logger.Logger) *Service {
	return &Service{gen: gen, log: log}
}

// GetAdvice returns a reply for the query. It never returns an error and the
// result is never empty: any generator failure (transport, bad status,
// unusable payload) is logged and downgraded to the fallback bank.
func (s *Service) GetAdvice(ctx context.Context, topic models.Topic, query string, profile *models.UserProfile) string {
	prompt := buildPrompt(topic, query)

	if s.gen != nil {
		text, err := s.gen.Generate(ctx, prompt)
		if err == nil {
			return text
		}
		// The caller never sees this failure; log the cause so operators
		// notice when the remote dependency degrades.
		s.log.Warn("Advice generator failed, using fallback", "topic", topic, "error", err)
	}

	return FallbackResponse(topic, query)
}

func buildPrompt(topic models.Topic, query string) string {
	if topic == models.TopicMentalHealth {
		return fmt.Sprintf(mentalHealthPromptFormat, query)
	}
	return fmt.Sprintf(dietPromptFormat, query)
}
