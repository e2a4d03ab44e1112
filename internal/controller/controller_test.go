package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"portfolio-chat-be/internal/controller"
	"portfolio-chat-be/internal/entity"
	"portfolio-chat-be/internal/pkg/logger"
	"portfolio-chat-be/internal/pkg/serverutils"
	"portfolio-chat-be/internal/repository/memory"
	"portfolio-chat-be/internal/service"
	"portfolio-chat-be/pkg/assistant"
	"portfolio-chat-be/pkg/chat/quota"
	"portfolio-chat-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

const visitorCookie = "ft_vid"

type stubAssistant struct {
	text string
}

func (s stubAssistant) Reply(ctx context.Context, req assistant.Request) (*assistant.Reply, error) {
	return &assistant.Reply{Text: s.text}, nil
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

func (r *recordingTracker) all() []*entity.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.Event(nil), r.events...)
}

type testEnv struct {
	app     *fiber.App
	store   *store.MemoryStore
	tracker *recordingTracker
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	chatStore := store.NewMemoryStore()
	tracker := &recordingTracker{}
	cache := memory.NewPreferenceCache(time.Minute)
	log := logger.NewNopLogger()

	chatbot := service.NewChatbotService(chatStore, stubAssistant{text: "He has built a lot of Go."}, cache, tracker, log, service.ChatbotConfig{
		Policy:           quota.DefaultPolicy(),
		HistoryLimit:     12,
		OwnerName:        "Frank",
		OwnerContact:     "hello@example.com",
		AssistantTimeout: time.Second,
	})

	app := fiber.New(fiber.Config{ErrorHandler: serverutils.ErrorHandlerMiddleware()})
	api := app.Group("/api", serverutils.VisitorMiddleware(serverutils.VisitorCookieConfig{Name: visitorCookie}))
	controller.NewChatbotController(chatbot).RegisterRoutes(api)
	controller.NewPreferenceController(service.NewPreferenceService(chatStore, cache, tracker, log)).RegisterRoutes(api)
	controller.NewEventController(service.NewEventService(tracker)).RegisterRoutes(api)

	return &testEnv{app: app, store: chatStore, tracker: tracker}
}

func (e *testEnv) do(t *testing.T, method, path, visitorId string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if visitorId != "" {
		req.AddCookie(&http.Cookie{Name: visitorCookie, Value: visitorId})
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}
