package chat

import (
	"time"

	"github.com/askgrid/backend/internal/model/answer"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversation turn. User turns carry Text; assistant
// turns carry AnswerText, Table and Description. Feedback is the only field
// mutated after creation.
type Message struct {
	ID          string        `json:"id"`
	Role        string        `json:"role"`
	Text        string        `json:"text,omitempty"`
	AnswerText  string        `json:"answerText,omitempty"`
	Table       *answer.Table `json:"table,omitempty"`
	Description string        `json:"description,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	Feedback    *string       `json:"feedback"`
}
