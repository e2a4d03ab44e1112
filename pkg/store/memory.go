package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"portfolio-chat-be/internal/constant"
	"portfolio-chat-be/internal/entity"

	"github.com/google/uuid"
)

// MemoryStore keeps everything in process. It backs local runs without a
// database and the service tests.
type MemoryStore struct {
	mu          sync.RWMutex
	sessions    map[uuid.UUID]*entity.ChatSession
	messages    []*entity.ChatMessage
	preferences map[string]*entity.Preference
	events      []*entity.Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions:    make(map[uuid.UUID]*entity.ChatSession),
		preferences: make(map[string]*entity.Preference),
	}
}

func (s *MemoryStore) ListUserMessageTimes(ctx context.Context, visitorId string, since time.Time) ([]time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var times []time.Time
	for _, m := range s.messages {
		if m.VisitorId == visitorId && m.Role == constant.ChatMessageRoleUser && !m.CreatedAt.Before(since) {
			times = append(times, m.CreatedAt)
		}
	}
	return times, nil
}

func (s *MemoryStore) CreateSession(ctx context.Context, visitorId string, now time.Time) (*entity.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := &entity.ChatSession{Id: uuid.New(), VisitorId: visitorId, CreatedAt: now}
	s.sessions[session.Id] = session
	copied := *session
	return &copied, nil
}

func (s *MemoryStore) FindSession(ctx context.Context, id uuid.UUID) (*entity.ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (s *MemoryStore) RecentMessages(ctx context.Context, sessionId uuid.UUID, limit int) ([]*entity.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*entity.ChatMessage{}
	if limit <= 0 {
		return out, nil
	}
	for _, m := range s.messages {
		if m.ChatSessionId == sessionId {
			copied := *m
			out = append(out, &copied)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (s *MemoryStore) AppendMessages(ctx context.Context, messages ...*entity.ChatMessage) error {
	if len(messages) == 0 {
		return ErrEmptyBatch
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range messages {
		if m.Id == uuid.Nil {
			m.Id = uuid.New()
		}
		copied := *m
		s.messages = append(s.messages, &copied)
	}
	return nil
}

func (s *MemoryStore) FindPreference(ctx context.Context, visitorId string) (*entity.Preference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.preferences[visitorId]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (s *MemoryStore) UpsertPreference(ctx context.Context, preference *entity.Preference) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.preferences[preference.VisitorId]; ok {
		preference.CreatedAt = existing.CreatedAt
	}
	copied := *preference
	s.preferences[preference.VisitorId] = &copied
	return nil
}

func (s *MemoryStore) InsertEvents(ctx context.Context, events ...*entity.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range events {
		if e.Id == uuid.Nil {
			e.Id = uuid.New()
		}
		copied := *e
		s.events = append(s.events, &copied)
	}
	return nil
}

// Messages returns a snapshot of every stored message in insertion order.
func (s *MemoryStore) Messages() []*entity.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entity.ChatMessage, len(s.messages))
	for i, m := range s.messages {
		copied := *m
		out[i] = &copied
	}
	return out
}

// Sessions returns the number of stored sessions.
func (s *MemoryStore) Sessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Events returns a snapshot of stored events.
func (s *MemoryStore) Events() []*entity.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entity.Event, len(s.events))
	for i, e := range s.events {
		copied := *e
		out[i] = &copied
	}
	return out
}
