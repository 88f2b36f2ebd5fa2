// Package chat holds the persisted conversation types. The AI side of the
// conversation runs on the client; the server stores turns and answers
// aggregate queries for the badge engine.
package chat

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Modality is the input channel of a message (typed text vs. spoken voice).
type Modality string

const (
	ModalityText  Modality = "text"
	ModalityVoice Modality = "voice"
)

type Message struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Role      Role      `json:"role" db:"role"`
	Content   string    `json:"content" db:"content"`
	Modality  Modality  `json:"modality" db:"modality"`
	Language  string    `json:"language,omitempty" db:"language"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type SaveMessageRequest struct {
	Role     Role     `json:"role"`
	Content  string   `json:"content"`
	Modality Modality `json:"modality"`
	Language string   `json:"language"`
}

func ValidRole(r Role) bool {
	return r == RoleUser || r == RoleAssistant
}

func ValidModality(m Modality) bool {
	return m == ModalityText || m == ModalityVoice
}
