package session

import (
	"context"
	"time"

	"portfolio-chat-be/internal/dto"
	"portfolio-chat-be/internal/entity"

	"github.com/google/uuid"
)

type SessionStore interface {
	CreateSession(ctx context.Context, visitorId string, now time.Time) (*entity.ChatSession, error)
	FindSession(ctx context.Context, id uuid.UUID) (*entity.ChatSession, error)
}

// Resolver maps the optional session id of a chat request to a session the
// visitor owns.
type Resolver struct {
	store SessionStore
}

func NewResolver(store SessionStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve creates exactly one new session when suppliedId is empty. A supplied
// id is only looked up, never inserted; an unknown id, a malformed id and an
// id owned by another visitor all return dto.ErrSessionNotOwned.
func (r *Resolver) Resolve(ctx context.Context, visitorId, suppliedId string, now time.Time) (uuid.UUID, error) {
	if suppliedId == "" {
		s, err := r.store.CreateSession(ctx, visitorId, now)
		if err != nil {
			return uuid.Nil, &dto.StorageError{Op: "creating chat session", Err: err}
		}
		return s.Id, nil
	}

	s, err := r.Verify(ctx, visitorId, suppliedId)
	if err != nil {
		return uuid.Nil, err
	}
	return s.Id, nil
}

// Verify returns the session when it exists and belongs to visitorId.
func (r *Resolver) Verify(ctx context.Context, visitorId, sessionId string) (*entity.ChatSession, error) {
	id, err := uuid.Parse(sessionId)
	if err != nil {
		return nil, dto.ErrSessionNotOwned
	}

	s, err := r.store.FindSession(ctx, id)
	if err != nil {
		return nil, &dto.StorageError{Op: "loading chat session", Err: err}
	}
	if !s.OwnedBy(visitorId) {
		return nil, dto.ErrSessionNotOwned
	}
	return s, nil
}
