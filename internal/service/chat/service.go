package chat

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/askgrid/backend/internal/model/chat"
	"github.com/askgrid/backend/internal/service/answer"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrMessageNotFound = errors.New("message not found")
	ErrEmptyQuestion   = errors.New("question is required")
)

// Titles derived from a first question are cut to this many runes.
const titleLimit = 50

// Service owns all session state for the process lifetime. Handlers run on
// concurrent goroutines, so every read-modify-write holds the mutex.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*chat.Session
	answers  answer.Source
}

// NewService bootstraps the in-memory session store around an answer source.
func NewService(answers answer.Source) *Service {
	return &Service{
		sessions: make(map[string]*chat.Session),
		answers:  answers,
	}
}

// CreateSession provisions a session. The title falls back from the explicit
// title to a truncated first question to an auto-numbered label. A non-empty
// first question seeds one user message.
func (s *Service) CreateSession(_ context.Context, title, firstQuestion string) (chat.Session, error) {
	now := time.Now().UTC()

	session := &chat.Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		Messages:  make([]chat.Message, 0, 8),
	}

	if firstQuestion != "" {
		session.Messages = append(session.Messages, chat.Message{
			ID:        uuid.NewString(),
			Role:      chat.RoleUser,
			Text:      firstQuestion,
			CreatedAt: now,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case title != "":
		session.Title = title
	case firstQuestion != "":
		session.Title = truncateTitle(firstQuestion)
	default:
		session.Title = fmt.Sprintf("Session %d", len(s.sessions)+1)
	}

	s.sessions[session.ID] = session
	return copySession(session), nil
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (chat.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return chat.Session{}, ErrSessionNotFound
	}
	return copySession(session), nil
}

// ListSessions returns summaries of every session, most recent first.
func (s *Service) ListSessions(_ context.Context) []chat.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]chat.Summary, 0, len(s.sessions))
	for _, session := range s.sessions {
		summaries = append(summaries, chat.Summary{
			ID:           session.ID,
			Title:        session.Title,
			CreatedAt:    session.CreatedAt,
			MessageCount: len(session.Messages),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries
}

// AppendExchange records a question and its canned answer as a user/assistant
// message pair sharing one timestamp. Validation failures leave the session
// untouched.
func (s *Service) AppendExchange(_ context.Context, sessionID, question string) (chat.Message, chat.Message, error) {
	s.mu.RLock()
	_, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return chat.Message{}, chat.Message{}, ErrSessionNotFound
	}
	if strings.TrimSpace(question) == "" {
		return chat.Message{}, chat.Message{}, ErrEmptyQuestion
	}

	payload := s.answers.Fetch()
	now := time.Now().UTC()

	userMsg := chat.Message{
		ID:        uuid.NewString(),
		Role:      chat.RoleUser,
		Text:      question,
		CreatedAt: now,
	}

	table := payload.Table
	assistantMsg := chat.Message{
		ID:          uuid.NewString(),
		Role:        chat.RoleAssistant,
		AnswerText:  payload.AnswerText,
		Table:       &table,
		Description: payload.Description,
		CreatedAt:   now,
		Feedback:    nil,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return chat.Message{}, chat.Message{}, ErrSessionNotFound
	}

	session.Messages = append(session.Messages, userMsg, assistantMsg)
	return userMsg, assistantMsg, nil
}

// SetFeedback stores or clears (nil) the feedback on a message. Any role is
// accepted, matching the permissive behavior the frontend relies on.
func (s *Service) SetFeedback(_ context.Context, sessionID, messageID string, feedback *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}

	for i := range session.Messages {
		if session.Messages[i].ID == messageID {
			session.Messages[i].Feedback = feedback
			return nil
		}
	}
	return ErrMessageNotFound
}

// DeleteSession removes a session and its messages.
func (s *Service) DeleteSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	return nil
}

func truncateTitle(question string) string {
	runes := []rune(question)
	if len(runes) <= titleLimit {
		return question
	}
	return string(runes[:titleLimit]) + "..."
}

func copySession(session *chat.Session) chat.Session {
	copied := *session
	copied.Messages = make([]chat.Message, len(session.Messages))
	copy(copied.Messages, session.Messages)
	return copied
}
