package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByChatSessionID struct {
	ChatSessionID uuid.UUID
}

func (s ByChatSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.ChatSessionID)
}

// ByMessageRole filters chat messages by author role (user or assistant).
type ByMessageRole struct {
	Role string
}

func (s ByMessageRole) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role = ?", s.Role)
}
