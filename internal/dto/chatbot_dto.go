package dto

import (
	"time"

	"portfolio-chat-be/internal/entity"

	"github.com/google/uuid"
)

type SendChatRequest struct {
	Message   string `json:"message" validate:"required"`
	SessionId string `json:"session_id"`
}

type SendChatResponse struct {
	Answer      string              `json:"answer"`
	Mode        string              `json:"mode"`
	Confidence  string              `json:"confidence"`
	NextActions []entity.NextAction `json:"next_actions,omitempty"`
	Fallback    *entity.Fallback    `json:"fallback,omitempty"`
	SessionId   uuid.UUID           `json:"session_id"`
}

type ChatHistoryRequest struct {
	SessionId string `query:"session_id" json:"session_id" validate:"required"`
}

type ChatMessageResponse struct {
	Id          uuid.UUID           `json:"id"`
	Role        string              `json:"role"`
	Content     string              `json:"content"`
	Mode        string              `json:"mode,omitempty"`
	Confidence  string              `json:"confidence,omitempty"`
	NextActions []entity.NextAction `json:"next_actions,omitempty"`
	Fallback    *entity.Fallback    `json:"fallback,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

type ChatHistoryResponse struct {
	SessionId uuid.UUID             `json:"session_id"`
	Messages  []ChatMessageResponse `json:"messages"`
}
