package history

import (
	"context"

	"portfolio-chat-be/internal/constant"
	"portfolio-chat-be/internal/dto"
	"portfolio-chat-be/internal/entity"
	"portfolio-chat-be/pkg/llm"

	"github.com/google/uuid"
)

const DefaultLimit = 12

type MessageStore interface {
	RecentMessages(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.ChatMessage, error)
}

// Windower loads the bounded conversation context sent to the assistant.
type Windower struct {
	store MessageStore
	limit int
}

func NewWindower(store MessageStore, limit int) *Windower {
	if limit < 0 {
		limit = DefaultLimit
	}
	return &Windower{store: store, limit: limit}
}

// LoadContext returns up to the configured number of most recent messages of
// the session, oldest first. The inbound message is not included.
func (w *Windower) LoadContext(ctx context.Context, sessionId uuid.UUID) ([]llm.Message, error) {
	stored, err := w.LoadMessages(ctx, sessionId, w.limit)
	if err != nil {
		return nil, err
	}

	messages := make([]llm.Message, 0, len(stored))
	for _, m := range stored {
		role := llm.RoleUser
		if m.Role == constant.ChatMessageRoleAssistant {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: m.Content})
	}
	return messages, nil
}

// LoadMessages returns the stored messages themselves, oldest first.
func (w *Windower) LoadMessages(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.ChatMessage, error) {
	if limit == 0 {
		return []*entity.ChatMessage{}, nil
	}
	stored, err := w.store.RecentMessages(ctx, sessionId, limit)
	if err != nil {
		return nil, &dto.StorageError{Op: "loading chat history", Err: err}
	}
	return stored, nil
}
