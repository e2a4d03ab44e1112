package session

import (
	"context"
	"testing"
	"time"

	"portfolio-chat-be/internal/dto"
	"portfolio-chat-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("empty id creates exactly one session", func(t *testing.T) {
		s := store.NewMemoryStore()
		r := NewResolver(s)

		id, err := r.Resolve(ctx, "visitor-a", "", now)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
		assert.Equal(t, 1, s.Sessions())

		found, err := s.FindSession(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "visitor-a", found.VisitorId)
	})

	t.Run("owned id is reused without insert", func(t *testing.T) {
		s := store.NewMemoryStore()
		r := NewResolver(s)
		created, err := s.CreateSession(ctx, "visitor-a", now)
		require.NoError(t, err)

		for i := 0; i < 2; i++ {
			id, err := r.Resolve(ctx, "visitor-a", created.Id.String(), now)
			require.NoError(t, err)
			assert.Equal(t, created.Id, id)
		}
		assert.Equal(t, 1, s.Sessions())
	})

	t.Run("foreign id is rejected", func(t *testing.T) {
		s := store.NewMemoryStore()
		r := NewResolver(s)
		created, err := s.CreateSession(ctx, "visitor-a", now)
		require.NoError(t, err)

		_, err = r.Resolve(ctx, "visitor-b", created.Id.String(), now)
		assert.ErrorIs(t, err, dto.ErrSessionNotOwned)
		assert.Equal(t, 1, s.Sessions())
	})

	t.Run("unknown and malformed ids are rejected", func(t *testing.T) {
		s := store.NewMemoryStore()
		r := NewResolver(s)

		_, err := r.Resolve(ctx, "visitor-a", uuid.NewString(), now)
		assert.ErrorIs(t, err, dto.ErrSessionNotOwned)

		_, err = r.Resolve(ctx, "visitor-a", "not-a-uuid", now)
		assert.ErrorIs(t, err, dto.ErrSessionNotOwned)

		assert.Equal(t, 0, s.Sessions())
	})
}
