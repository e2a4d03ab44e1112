package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id        uuid.UUID
	VisitorId string
	CreatedAt time.Time
}

// OwnedBy reports whether the session belongs to the given visitor.
func (s *ChatSession) OwnedBy(visitorId string) bool {
	return s != nil && s.VisitorId == visitorId
}
