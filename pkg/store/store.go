// Package store is the persistence boundary of the chat service. Each driver
// (gorm, supabase, memory) implements Store; the chat components depend only
// on the narrow slice of it they use.
package store

import (
	"context"
	"errors"
	"time"

	"portfolio-chat-be/internal/entity"

	"github.com/google/uuid"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverSupabase = "supabase"
	DriverMemory   = "memory"
)

// ErrEmptyBatch is returned when AppendMessages is called without messages.
var ErrEmptyBatch = errors.New("store: no messages to append")

type Store interface {
	// ListUserMessageTimes returns creation times of the visitor's user-role
	// messages with created_at >= since.
	ListUserMessageTimes(ctx context.Context, visitorId string, since time.Time) ([]time.Time, error)

	CreateSession(ctx context.Context, visitorId string, now time.Time) (*entity.ChatSession, error)
	// FindSession returns nil, nil when no session has the id.
	FindSession(ctx context.Context, id uuid.UUID) (*entity.ChatSession, error)

	// RecentMessages returns up to limit most recent messages, oldest first.
	RecentMessages(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.ChatMessage, error)
	// AppendMessages persists all messages or none.
	AppendMessages(ctx context.Context, messages ...*entity.ChatMessage) error

	// FindPreference returns nil, nil when the visitor never onboarded.
	FindPreference(ctx context.Context, visitorId string) (*entity.Preference, error)
	UpsertPreference(ctx context.Context, preference *entity.Preference) error

	InsertEvents(ctx context.Context, events ...*entity.Event) error
}

// NewestFirstToOldestFirst reverses a slice fetched newest first, in place.
func NewestFirstToOldestFirst(messages []*entity.ChatMessage) []*entity.ChatMessage {
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages
}

var (
	_ Store = (*GormStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
