package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"portfolio-chat-be/internal/constant"
	"portfolio-chat-be/internal/dto"
	"portfolio-chat-be/internal/entity"
	"portfolio-chat-be/internal/pkg/logger"
	"portfolio-chat-be/internal/repository/memory"
	"portfolio-chat-be/pkg/assistant"
	"portfolio-chat-be/pkg/chat/quota"
	"portfolio-chat-be/pkg/llm"
	"portfolio-chat-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAssistant struct {
	mu       sync.Mutex
	reply    *assistant.Reply
	err      error
	block    bool
	requests []assistant.Request
}

func (f *fakeAssistant) Reply(ctx context.Context, req assistant.Request) (*assistant.Reply, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.reply, nil
}

func (f *fakeAssistant) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

type recordingTracker struct {
	mu     sync.Mutex
	events []*entity.Event
}

func (r *recordingTracker) Track(ctx context.Context, events ...*entity.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
}

func (r *recordingTracker) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.events {
		out = append(out, e.EventName)
	}
	return out
}

type failingAppendStore struct {
	*store.MemoryStore
}

func (failingAppendStore) AppendMessages(ctx context.Context, messages ...*entity.ChatMessage) error {
	return errors.New("pq: duplicate key value violates unique constraint")
}

type chatFixture struct {
	store     *store.MemoryStore
	assistant *fakeAssistant
	tracker   *recordingTracker
	service   *chatbotService
}

func newChatFixture(t *testing.T, chatStore store.Store, mem *store.MemoryStore) *chatFixture {
	t.Helper()
	fa := &fakeAssistant{reply: &assistant.Reply{Text: "Frank built several Go services.", UsedRetrieval: true}}
	tracker := &recordingTracker{}

	svc := NewChatbotService(
		chatStore,
		fa,
		memory.NewPreferenceCache(time.Minute),
		tracker,
		logger.NewNopLogger(),
		ChatbotConfig{
			Policy:           quota.DefaultPolicy(),
			HistoryLimit:     12,
			OwnerName:        "Frank",
			OwnerContact:     "+1 555 0100",
			AssistantTimeout: time.Second,
		},
	).(*chatbotService)

	return &chatFixture{store: mem, assistant: fa, tracker: tracker, service: svc}
}

func newMemoryFixture(t *testing.T) *chatFixture {
	mem := store.NewMemoryStore()
	return newChatFixture(t, mem, mem)
}

func TestSendChat(t *testing.T) {
	ctx := context.Background()

	t.Run("new conversation", func(t *testing.T) {
		f := newMemoryFixture(t)

		res, err := f.service.SendChat(ctx, "visitor-a", &dto.SendChatRequest{Message: "What has he built?"})
		require.NoError(t, err)

		assert.Equal(t, "Frank built several Go services.", res.Answer)
		assert.Equal(t, "casual", res.Mode)
		assert.Equal(t, constant.ConfidenceHigh, res.Confidence)
		assert.Nil(t, res.Fallback)
		assert.NotEqual(t, uuid.Nil, res.SessionId)
		require.Len(t, res.NextActions, 1)
		assert.Equal(t, "/projects", res.NextActions[0].Href)

		msgs := f.store.Messages()
		require.Len(t, msgs, 2)
		assert.Equal(t, constant.ChatMessageRoleUser, msgs[0].Role)
		assert.Equal(t, "What has he built?", msgs[0].Content)
		assert.Equal(t, constant.ChatMessageRoleAssistant, msgs[1].Role)
		assert.Equal(t, "casual", msgs[1].Mode)
		assert.True(t, msgs[1].CreatedAt.After(msgs[0].CreatedAt))
		assert.Equal(t, 1, f.store.Sessions())

		assert.Equal(t, []string{constant.EventChatMessageSent, constant.EventChatResponseReceived}, f.tracker.names())
	})

	t.Run("continuing a conversation sends the window", func(t *testing.T) {
		f := newMemoryFixture(t)

		first, err := f.service.SendChat(ctx, "visitor-a", &dto.SendChatRequest{Message: "hi"})
		require.NoError(t, err)
		f.service.now = func() time.Time { return time.Now().UTC().Add(time.Minute) }

		second, err := f.service.SendChat(ctx, "visitor-a", &dto.SendChatRequest{Message: "and then?", SessionId: first.SessionId.String()})
		require.NoError(t, err)
		assert.Equal(t, first.SessionId, second.SessionId)
		assert.Equal(t, 1, f.store.Sessions())

		require.Equal(t, 2, f.assistant.calls())
		last := f.assistant.requests[1]
		require.Len(t, last.History, 2)
		assert.Equal(t, llm.RoleUser, last.History[0].Role)
		assert.Equal(t, "hi", last.History[0].Content)
		assert.Equal(t, llm.RoleAssistant, last.History[1].Role)
		assert.Equal(t, "and then?", last.Message)
	})

	t.Run("low confidence attaches fallback", func(t *testing.T) {
		f := newMemoryFixture(t)
		f.assistant.reply = &assistant.Reply{Text: "I'm not sure about his salary expectations."}

		res, err := f.service.SendChat(ctx, "visitor-a", &dto.SendChatRequest{Message: "salary?"})
		require.NoError(t, err)

		assert.Equal(t, constant.ConfidenceLow, res.Confidence)
		require.NotNil(t, res.Fallback)
		assert.Equal(t, constant.FallbackTypePhone, res.Fallback.Type)
		assert.Contains(t, res.Fallback.Message, "+1 555 0100")

		assert.Contains(t, f.tracker.names(), constant.EventChatFallbackPhoneShared)
		stored := f.store.Messages()[1]
		require.NotNil(t, stored.Metadata)
		assert.Equal(t, res.Fallback.Message, stored.Metadata.Fallback.Message)
	})

	t.Run("recruiter preference switches mode", func(t *testing.T) {
		f := newMemoryFixture(t)
		require.NoError(t, f.store.UpsertPreference(ctx, &entity.Preference{VisitorId: "visitor-a", Role: "recruiter", Goal: "view-resume"}))

		res, err := f.service.SendChat(ctx, "visitor-a", &dto.SendChatRequest{Message: "experience?"})
		require.NoError(t, err)
		assert.Equal(t, "recruiter", res.Mode)
		assert.Contains(t, f.assistant.requests[0].SystemPrompt, constant.RecruiterVoicePrompt)
		assert.Contains(t, f.assistant.requests[0].SystemPrompt, "view-resume")
	})

	t.Run("visitor without preference is not pinned to casual", func(t *testing.T) {
		f := newMemoryFixture(t)

		res, err := f.service.SendChat(ctx, "visitor-a", &dto.SendChatRequest{Message: "hi"})
		require.NoError(t, err)
		assert.Equal(t, "casual", res.Mode)

		// stored without going through the cache, as a concurrent save would be
		require.NoError(t, f.store.UpsertPreference(ctx, &entity.Preference{VisitorId: "visitor-a", Role: "recruiter", Goal: "contact"}))

		res, err = f.service.SendChat(ctx, "visitor-a", &dto.SendChatRequest{Message: "hello again"})
		require.NoError(t, err)
		assert.Equal(t, "recruiter", res.Mode)
	})

	t.Run("daily limit denies before any call", func(t *testing.T) {
		f := newMemoryFixture(t)
		now := time.Now().UTC()
		for i := 0; i < 10; i++ {
			require.NoError(t, f.store.AppendMessages(ctx, &entity.ChatMessage{
				ChatSessionId: uuid.New(),
				VisitorId:     "visitor-a",
				Role:          constant.ChatMessageRoleUser,
				Content:       "q",
				CreatedAt:     now.Add(-time.Duration(i+1) * time.Hour),
			}))
		}

		_, err := f.service.SendChat(ctx, "visitor-a", &dto.SendChatRequest{Message: "one more"})

		var rateErr *dto.RateLimitError
		require.ErrorAs(t, err, &rateErr)
		assert.Equal(t, dto.RateLimitDaily, rateErr.Reason)
		assert.Equal(t, 0, f.assistant.calls())
		assert.Equal(t, 0, f.store.Sessions())
		assert.Len(t, f.store.Messages(), 10)
	})

	t.Run("burst denies", func(t *testing.T) {
		f := newMemoryFixture(t)
		for i := 0; i < 3; i++ {
			_, err := f.service.SendChat(ctx, "visitor-a", &dto.SendChatRequest{Message: "spam"})
			require.NoError(t, err)
		}

		_, err := f.service.SendChat(ctx, "visitor-a", &dto.SendChatRequest{Message: "spam"})
		var rateErr *dto.RateLimitError
		require.ErrorAs(t, err, &rateErr)
		assert.Equal(t, dto.RateLimitBurst, rateErr.Reason)
		assert.Equal(t, 3, f.assistant.calls())
	})

	t.Run("foreign session writes nothing", func(t *testing.T) {
		f := newMemoryFixture(t)
		owned, err := f.store.CreateSession(ctx, "visitor-a", time.Now().UTC())
		require.NoError(t, err)

		_, err = f.service.SendChat(ctx, "visitor-b", &dto.SendChatRequest{Message: "hi", SessionId: owned.Id.String()})
		assert.ErrorIs(t, err, dto.ErrSessionNotOwned)
		assert.Equal(t, 0, f.assistant.calls())
		assert.Empty(t, f.store.Messages())
		assert.Equal(t, 1, f.store.Sessions())
		assert.Empty(t, f.tracker.names())
	})

	t.Run("assistant timeout", func(t *testing.T) {
		f := newMemoryFixture(t)
		f.assistant.block = true
		f.service.config.AssistantTimeout = 20 * time.Millisecond

		_, err := f.service.SendChat(ctx, "visitor-a", &dto.SendChatRequest{Message: "hi"})
		assert.ErrorIs(t, err, dto.ErrAssistantTimeout)
		assert.Empty(t, f.store.Messages())
		assert.Empty(t, f.tracker.names())
	})

	t.Run("assistant status error", func(t *testing.T) {
		f := newMemoryFixture(t)
		f.assistant.err = &llm.StatusError{Provider: "openai", StatusCode: 502, Body: "bad gateway"}

		_, err := f.service.SendChat(ctx, "visitor-a", &dto.SendChatRequest{Message: "hi"})
		var downstreamErr *dto.DownstreamError
		require.ErrorAs(t, err, &downstreamErr)
		assert.Equal(t, 502, downstreamErr.StatusCode)
		assert.Equal(t, "assistant returned status 502", downstreamErr.PublicDetails())
		assert.Empty(t, f.store.Messages())
	})

	t.Run("persistence failure is a storage error", func(t *testing.T) {
		mem := store.NewMemoryStore()
		f := newChatFixture(t, failingAppendStore{mem}, mem)

		_, err := f.service.SendChat(ctx, "visitor-a", &dto.SendChatRequest{Message: "hi"})
		var storageErr *dto.StorageError
		require.ErrorAs(t, err, &storageErr)
		assert.NotContains(t, storageErr.PublicDetails(), "duplicate key")
		assert.Empty(t, f.tracker.names())
	})
}

func TestGetChatHistory(t *testing.T) {
	ctx := context.Background()
	f := newMemoryFixture(t)

	res, err := f.service.SendChat(ctx, "visitor-a", &dto.SendChatRequest{Message: "Where can I read his blog?"})
	require.NoError(t, err)

	history, err := f.service.GetChatHistory(ctx, "visitor-a", &dto.ChatHistoryRequest{SessionId: res.SessionId.String()})
	require.NoError(t, err)
	require.Len(t, history.Messages, 2)
	assert.Equal(t, "Where can I read his blog?", history.Messages[0].Content)
	assert.Equal(t, res.Answer, history.Messages[1].Content)

	_, err = f.service.GetChatHistory(ctx, "visitor-b", &dto.ChatHistoryRequest{SessionId: res.SessionId.String()})
	assert.ErrorIs(t, err, dto.ErrSessionNotOwned)
}
