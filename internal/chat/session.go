package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"better-life/internal/models"
)

// ErrBusy is returned when a session already has a call in flight. It is the
// server-side equivalent of the UI disabling the send button.
var ErrBusy = errors.New("a message is already being processed")

// Advisor answers a query; it is guaranteed to return a non-empty reply.
type Advisor interface {
	GetAdvice(ctx context.Context, topic models.Topic, query string, profile *models.UserProfile) string
}

// Session is one open chat conversation: an append-only ordered transcript
// with at most one in-flight ask at a time. Separate sessions are fully
// independent.
type Session struct {
	mu       sync.Mutex
	topic    models.Topic
	advisor  Advisor
	msgs     []models.ChatMessage
	inFlight bool
}

func NewSession(topic models.Topic, advisor Advisor) *Session {
	return &Session{topic: topic, advisor: advisor}
}

// Ask appends the user message, obtains a reply and appends it. Entries land
// in the transcript in resolution order, which equals submission order since
// only one ask may be in flight. A second Ask while one is pending returns
// ErrBusy.
func (s *Session) Ask(ctx context.Context, query string, profile *models.UserProfile) (models.ChatMessage, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return models.ChatMessage{}, ErrBusy
	}
	s.inFlight = true
	s.msgs = append(s.msgs, newMessage(query, models.SenderUser, s.topic))
	s.mu.Unlock()

	reply := s.advisor.GetAdvice(ctx, s.topic, query, profile)

	s.mu.Lock()
	defer s.mu.Unlock()
	msg := newMessage(reply, models.SenderAssistant, s.topic)
	s.msgs = append(s.msgs, msg)
	s.inFlight = false
	return msg, nil
}

// Messages returns a copy of the transcript in append order.
func (s *Session) Messages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.ChatMessage, len(s.msgs))
	copy(out, s.msgs)
	return out
}

// Clear empties the transcript, as when the chat window is closed and
// reopened.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = nil
}

func newMessage(text string, sender models.Sender, topic models.Topic) models.ChatMessage {
	return models.ChatMessage{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    sender,
		Topic:     topic,
		Timestamp: time.Now().UTC(),
	}
}
