package domain

import (
	"time"

	"github.com/google/uuid"
)

// Sender identifies who authored a message.
type Sender string

const (
	SenderLead  Sender = "lead"
	SenderAI    Sender = "ai"
	SenderAgent Sender = "agent"
)

// Message is one append-only conversation entry. Messages are never mutated
// or deleted; CreatedAt is assigned by the store and defines retrieval order.
type Message struct {
	ID        uuid.UUID
	LeadPhone string
	Sender    Sender
	Message   string
	CreatedAt time.Time
}
