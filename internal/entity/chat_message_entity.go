package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	VisitorId     string
	Role          string
	Content       string
	Mode          string
	Confidence    string
	Metadata      *MessageMetadata
	CreatedAt     time.Time
}

// MessageMetadata is stored alongside assistant messages.
type MessageMetadata struct {
	NextActions []NextAction `json:"next_actions,omitempty"`
	Fallback    *Fallback    `json:"fallback,omitempty"`
}

type NextAction struct {
	Label  string `json:"label"`
	Href   string `json:"href"`
	Reason string `json:"reason"`
}

type Fallback struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
