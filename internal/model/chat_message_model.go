package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatMessage struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ChatSessionId uuid.UUID      `gorm:"column:session_id;type:uuid;not null;index"`
	VisitorId     string         `gorm:"type:varchar(64);not null;index:idx_chat_messages_quota,priority:1"`
	Role          string         `gorm:"type:varchar(20);not null;index:idx_chat_messages_quota,priority:2"`
	Content       string         `gorm:"type:text;not null"`
	Mode          string         `gorm:"type:varchar(20)"`
	Confidence    string         `gorm:"type:varchar(10)"`
	Metadata      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt     time.Time      `gorm:"index;index:idx_chat_messages_quota,priority:3"`

	ChatSession *ChatSession `gorm:"foreignKey:ChatSessionId;references:Id;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
