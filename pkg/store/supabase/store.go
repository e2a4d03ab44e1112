// Package supabase implements the chat store over the Supabase REST API, for
// deployments that keep the site's tables in a hosted Supabase project.
package supabase

import (
	"context"
	"fmt"
	"time"

	"portfolio-chat-be/internal/constant"
	"portfolio-chat-be/internal/entity"
	"portfolio-chat-be/pkg/store"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

// Config holds Supabase connection configuration
type Config struct {
	URL    string
	APIKey string
}

// Store implements store.Store using Supabase
type Store struct {
	client *supabase.Client
}

// New creates a new Supabase-backed store
func New(cfg Config) (*Store, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("supabase URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("supabase API key is required")
	}

	client, err := supabase.NewClient(cfg.URL, cfg.APIKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &Store{client: client}, nil
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func (s *Store) ListUserMessageTimes(ctx context.Context, visitorId string, since time.Time) ([]time.Time, error) {
	var rows []struct {
		CreatedAt time.Time `json:"created_at"`
	}
	_, err := s.client.From("chat_messages").
		Select("created_at", "", false).
		Eq("visitor_id", visitorId).
		Eq("role", constant.ChatMessageRoleUser).
		Gte("created_at", timestamp(since)).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent user messages: %w", err)
	}

	times := make([]time.Time, len(rows))
	for i, r := range rows {
		times[i] = r.CreatedAt
	}
	return times, nil
}

func (s *Store) CreateSession(ctx context.Context, visitorId string, now time.Time) (*entity.ChatSession, error) {
	row := sessionRow{ID: uuid.New(), VisitorID: visitorId, CreatedAt: now.UTC()}
	_, _, err := s.client.From("chat_sessions").
		Insert(row, false, "", "minimal", "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to create chat session: %w", err)
	}
	return &entity.ChatSession{Id: row.ID, VisitorId: row.VisitorID, CreatedAt: row.CreatedAt}, nil
}

func (s *Store) FindSession(ctx context.Context, id uuid.UUID) (*entity.ChatSession, error) {
	var rows []sessionRow
	_, err := s.client.From("chat_sessions").
		Select("*", "", false).
		Eq("id", id.String()).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to get chat session: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &entity.ChatSession{Id: rows[0].ID, VisitorId: rows[0].VisitorID, CreatedAt: rows[0].CreatedAt}, nil
}

func (s *Store) RecentMessages(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.ChatMessage, error) {
	if limit <= 0 {
		return []*entity.ChatMessage{}, nil
	}

	var rows []messageRow
	_, err := s.client.From("chat_messages").
		Select("*", "", false).
		Eq("session_id", sessionId.String()).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}

	messages := make([]*entity.ChatMessage, len(rows))
	for i, r := range rows {
		messages[i] = r.toEntity()
	}
	return store.NewestFirstToOldestFirst(messages), nil
}

// AppendMessages sends every row in one bulk insert, which PostgREST runs as
// a single statement.
func (s *Store) AppendMessages(ctx context.Context, messages ...*entity.ChatMessage) error {
	if len(messages) == 0 {
		return store.ErrEmptyBatch
	}

	rows := make([]messageRow, len(messages))
	for i, m := range messages {
		if m.Id == uuid.Nil {
			m.Id = uuid.New()
		}
		rows[i] = toMessageRow(m)
	}

	_, _, err := s.client.From("chat_messages").
		Insert(rows, false, "", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to save chat messages: %w", err)
	}
	return nil
}

func (s *Store) FindPreference(ctx context.Context, visitorId string) (*entity.Preference, error) {
	var rows []preferenceRow
	_, err := s.client.From("preferences").
		Select("*", "", false).
		Eq("visitor_id", visitorId).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	r := rows[0]
	return &entity.Preference{
		VisitorId: r.VisitorID,
		Role:      r.Role,
		Goal:      r.Goal,
		FromWhere: r.FromWhere,
		Message:   r.Message,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

func (s *Store) UpsertPreference(ctx context.Context, preference *entity.Preference) error {
	row := preferenceRow{
		VisitorID: preference.VisitorId,
		Role:      preference.Role,
		Goal:      preference.Goal,
		FromWhere: preference.FromWhere,
		Message:   preference.Message,
		CreatedAt: preference.CreatedAt.UTC(),
		UpdatedAt: preference.UpdatedAt.UTC(),
	}
	_, _, err := s.client.From("preferences").
		Upsert(row, "visitor_id", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

func (s *Store) InsertEvents(ctx context.Context, events ...*entity.Event) error {
	if len(events) == 0 {
		return nil
	}

	rows := make([]eventRow, len(events))
	for i, e := range events {
		if e.Id == uuid.Nil {
			e.Id = uuid.New()
		}
		rows[i] = toEventRow(e)
	}

	_, _, err := s.client.From("events").
		Insert(rows, false, "", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to save events: %w", err)
	}
	return nil
}

// Compile-time check that Store implements store.Store
var _ store.Store = (*Store)(nil)
