package domain

import (
	"time"

	"github.com/google/uuid"
)

// SentMessage is a message from a user, joined with the recipient's profile.
type SentMessage struct {
	ID     uuid.UUID   `json:"id"`
	Body   string      `json:"body"`
	SentAt time.Time   `json:"sent_at"`
	ReadAt *time.Time  `json:"read_at"`
	ToUser UserSummary `json:"to_user"`
}

// ReceivedMessage is a message to a user, joined with the sender's profile.
type ReceivedMessage struct {
	ID       uuid.UUID   `json:"id"`
	Body     string      `json:"body"`
	SentAt   time.Time   `json:"sent_at"`
	ReadAt   *time.Time  `json:"read_at"`
	FromUser UserSummary `json:"from_user"`
}
