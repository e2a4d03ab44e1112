package contract

import (
	"context"

	"portfolio-chat-be/internal/entity"
	"portfolio-chat-be/internal/repository/specification"
)

// ChatMessageRepository is append-only: messages are never updated or deleted.
type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
