package store

import (
	"context"
	"testing"
	"time"

	"portfolio-chat-be/internal/constant"
	"portfolio-chat-be/internal/entity"
	"portfolio-chat-be/internal/repository/unitofwork"
	"portfolio-chat-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) Store {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, false))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewGormStore(unitofwork.NewRepositoryFactory(db))
}

func drivers(t *testing.T) map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return NewMemoryStore() },
		"gorm":   newSQLiteStore,
	}
}

func message(sessionId uuid.UUID, visitorId, role, content string, at time.Time) *entity.ChatMessage {
	return &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		VisitorId:     visitorId,
		Role:          role,
		Content:       content,
		CreatedAt:     at,
	}
}

func TestStoreContract(t *testing.T) {
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	for name, open := range drivers(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("sessions", func(t *testing.T) {
				s := open(t)
				created, err := s.CreateSession(ctx, "visitor-a", base)
				require.NoError(t, err)

				found, err := s.FindSession(ctx, created.Id)
				require.NoError(t, err)
				require.NotNil(t, found)
				assert.Equal(t, "visitor-a", found.VisitorId)
				assert.True(t, found.OwnedBy("visitor-a"))
				assert.False(t, found.OwnedBy("visitor-b"))

				missing, err := s.FindSession(ctx, uuid.New())
				require.NoError(t, err)
				assert.Nil(t, missing)
			})

			t.Run("user message times", func(t *testing.T) {
				s := open(t)
				session, err := s.CreateSession(ctx, "visitor-a", base)
				require.NoError(t, err)
				other, err := s.CreateSession(ctx, "visitor-b", base)
				require.NoError(t, err)

				require.NoError(t, s.AppendMessages(ctx,
					message(session.Id, "visitor-a", constant.ChatMessageRoleUser, "old", base.Add(-25*time.Hour)),
					message(session.Id, "visitor-a", constant.ChatMessageRoleUser, "q1", base.Add(-time.Hour)),
					message(session.Id, "visitor-a", constant.ChatMessageRoleAssistant, "a1", base.Add(-time.Hour+time.Second)),
					message(session.Id, "visitor-a", constant.ChatMessageRoleUser, "q2", base.Add(-24*time.Hour)),
				))
				require.NoError(t, s.AppendMessages(ctx,
					message(other.Id, "visitor-b", constant.ChatMessageRoleUser, "q", base),
				))

				times, err := s.ListUserMessageTimes(ctx, "visitor-a", base.Add(-24*time.Hour))
				require.NoError(t, err)
				assert.Len(t, times, 2, "boundary row included, assistant and older rows excluded")
			})

			t.Run("recent messages window", func(t *testing.T) {
				s := open(t)
				session, err := s.CreateSession(ctx, "visitor-a", base)
				require.NoError(t, err)

				for i := 0; i < 5; i++ {
					require.NoError(t, s.AppendMessages(ctx,
						message(session.Id, "visitor-a", constant.ChatMessageRoleUser, string(rune('a'+i)), base.Add(time.Duration(i)*time.Minute)),
					))
				}

				got, err := s.RecentMessages(ctx, session.Id, 3)
				require.NoError(t, err)
				require.Len(t, got, 3)
				assert.Equal(t, []string{"c", "d", "e"}, []string{got[0].Content, got[1].Content, got[2].Content})

				none, err := s.RecentMessages(ctx, uuid.New(), 3)
				require.NoError(t, err)
				assert.Empty(t, none)
			})

			t.Run("message metadata round trip", func(t *testing.T) {
				s := open(t)
				session, err := s.CreateSession(ctx, "visitor-a", base)
				require.NoError(t, err)

				m := message(session.Id, "visitor-a", constant.ChatMessageRoleAssistant, "answer", base)
				m.Mode = "recruiter"
				m.Confidence = constant.ConfidenceLow
				m.Metadata = &entity.MessageMetadata{
					NextActions: []entity.NextAction{{Label: "View Resume", Href: "/about#resume", Reason: "See full work history"}},
					Fallback:    &entity.Fallback{Type: constant.FallbackTypeEmail, Message: "reach out"},
				}
				require.NoError(t, s.AppendMessages(ctx, m))

				got, err := s.RecentMessages(ctx, session.Id, 1)
				require.NoError(t, err)
				require.Len(t, got, 1)
				assert.Equal(t, "recruiter", got[0].Mode)
				require.NotNil(t, got[0].Metadata)
				assert.Equal(t, "/about#resume", got[0].Metadata.NextActions[0].Href)
				assert.Equal(t, "reach out", got[0].Metadata.Fallback.Message)
			})

			t.Run("empty append", func(t *testing.T) {
				s := open(t)
				assert.ErrorIs(t, s.AppendMessages(ctx), ErrEmptyBatch)
			})

			t.Run("preferences upsert", func(t *testing.T) {
				s := open(t)

				none, err := s.FindPreference(ctx, "visitor-a")
				require.NoError(t, err)
				assert.Nil(t, none)

				require.NoError(t, s.UpsertPreference(ctx, &entity.Preference{
					VisitorId: "visitor-a", Role: "friends", Goal: "just-browsing", CreatedAt: base, UpdatedAt: base,
				}))
				require.NoError(t, s.UpsertPreference(ctx, &entity.Preference{
					VisitorId: "visitor-a", Role: "recruiter", Goal: "view-resume", CreatedAt: base.Add(time.Hour), UpdatedAt: base.Add(time.Hour),
				}))

				got, err := s.FindPreference(ctx, "visitor-a")
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, "recruiter", got.Role)
				assert.Equal(t, "view-resume", got.Goal)
			})

			t.Run("events", func(t *testing.T) {
				s := open(t)
				err := s.InsertEvents(ctx,
					&entity.Event{VisitorId: "visitor-a", EventName: constant.EventResumeClicked, PagePath: "/about", CreatedAt: base},
					&entity.Event{VisitorId: "visitor-a", EventName: constant.EventContactClicked, PagePath: "/contact", Metadata: map[string]interface{}{"k": "v"}, CreatedAt: base},
				)
				require.NoError(t, err)
			})
		})
	}
}

func TestNewestFirstToOldestFirst(t *testing.T) {
	in := []*entity.ChatMessage{{Content: "3"}, {Content: "2"}, {Content: "1"}}
	out := NewestFirstToOldestFirst(in)
	assert.Equal(t, "1", out[0].Content)
	assert.Equal(t, "3", out[2].Content)
	assert.Empty(t, NewestFirstToOldestFirst(nil))
}
