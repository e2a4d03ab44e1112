package unitofwork

import (
	"context"

	"portfolio-chat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	EventRepository() contract.EventRepository
	PreferenceRepository() contract.PreferenceRepository
	KnowledgeChunkRepository() contract.KnowledgeChunkRepository
}
