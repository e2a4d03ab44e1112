package service

import (
	"context"
	"errors"
	"time"

	"portfolio-chat-be/internal/constant"
	"portfolio-chat-be/internal/dto"
	"portfolio-chat-be/internal/entity"
	"portfolio-chat-be/internal/pkg/logger"
	"portfolio-chat-be/internal/repository/memory"
	"portfolio-chat-be/pkg/analytics"
	"portfolio-chat-be/pkg/assistant"
	"portfolio-chat-be/pkg/chat/classifier"
	"portfolio-chat-be/pkg/chat/history"
	"portfolio-chat-be/pkg/chat/mode"
	"portfolio-chat-be/pkg/chat/prompt"
	"portfolio-chat-be/pkg/chat/quota"
	"portfolio-chat-be/pkg/chat/session"
	"portfolio-chat-be/pkg/llm"
	"portfolio-chat-be/pkg/store"

	"github.com/google/uuid"
)

// chatHistoryPageSize caps the transcript returned to the widget. The
// assistant window is configured separately.
const chatHistoryPageSize = 100

type IChatbotService interface {
	SendChat(ctx context.Context, visitorId string, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetChatHistory(ctx context.Context, visitorId string, request *dto.ChatHistoryRequest) (*dto.ChatHistoryResponse, error)
}

type ChatbotConfig struct {
	Policy           quota.Policy
	HistoryLimit     int
	OwnerName        string
	OwnerContact     string
	AssistantTimeout time.Duration
}

type chatbotService struct {
	store       store.Store
	accountant  *quota.Accountant
	sessions    *session.Resolver
	windower    *history.Windower
	classifier  *classifier.Classifier
	prompts     *prompt.Builder
	assistant   assistant.Assistant
	preferences *memory.PreferenceCache
	tracker     analytics.Tracker
	logger      logger.ILogger
	config      ChatbotConfig
	now         func() time.Time
}

func NewChatbotService(
	chatStore store.Store,
	chatAssistant assistant.Assistant,
	preferences *memory.PreferenceCache,
	tracker analytics.Tracker,
	log logger.ILogger,
	config ChatbotConfig,
) IChatbotService {
	return &chatbotService{
		store:       chatStore,
		accountant:  quota.NewAccountant(chatStore, config.Policy),
		sessions:    session.NewResolver(chatStore),
		windower:    history.NewWindower(chatStore, config.HistoryLimit),
		classifier:  classifier.NewClassifier(nil),
		prompts:     prompt.NewBuilder(config.OwnerName),
		assistant:   chatAssistant,
		preferences: preferences,
		tracker:     tracker,
		logger:      log,
		config:      config,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (cs *chatbotService) SendChat(ctx context.Context, visitorId string, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	now := cs.now()

	// 1. Admission
	decision, err := cs.accountant.CheckAdmission(ctx, visitorId, now)
	if err != nil {
		cs.logStorageFailure(err, visitorId)
		return nil, err
	}
	if !decision.Allowed() {
		cs.logger.Info("CHATBOT", "Chat admission denied", map[string]interface{}{
			"visitor_id": visitorId,
			"outcome":    decision.Outcome.String(),
			"count":      decision.Count,
		})
		return nil, decision.Err(cs.accountant.Policy())
	}

	// 2. Session
	sessionId, err := cs.sessions.Resolve(ctx, visitorId, request.SessionId, now)
	if err != nil {
		if errors.Is(err, dto.ErrSessionNotOwned) {
			cs.logger.Warn("CHATBOT", "Rejected session not owned by visitor", map[string]interface{}{
				"visitor_id": visitorId,
				"session_id": request.SessionId,
			})
		}
		return nil, err
	}

	// 3. Voice
	preference, err := cs.loadPreference(ctx, visitorId)
	if err != nil {
		return nil, err
	}
	chatMode := mode.FromPreference(preference)
	systemPrompt := cs.prompts.Build(chatMode, preference)

	// 4. Context window
	window, err := cs.windower.LoadContext(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	// 5. Assistant
	reply, err := cs.ask(ctx, assistant.Request{
		SystemPrompt: systemPrompt,
		History:      window,
		Message:      request.Message,
	})
	if err != nil {
		cs.logger.Error("CHATBOT", "Assistant call failed", map[string]interface{}{
			"visitor_id": visitorId,
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		return nil, err
	}

	// 6. Grade
	result := cs.classifier.Classify(reply.Text, reply.UsedRetrieval)
	var fallback *entity.Fallback
	if result.Confidence == constant.ConfidenceLow {
		fallback = classifier.Fallback(cs.config.OwnerName, cs.config.OwnerContact)
	}

	// 7. Persist
	userCreated := now
	assistantCreated := cs.now()
	if !assistantCreated.After(userCreated) {
		assistantCreated = userCreated.Add(time.Millisecond)
	}

	userMessage := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		VisitorId:     visitorId,
		Role:          constant.ChatMessageRoleUser,
		Content:       request.Message,
		CreatedAt:     userCreated,
	}
	assistantMessage := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		VisitorId:     visitorId,
		Role:          constant.ChatMessageRoleAssistant,
		Content:       reply.Text,
		Mode:          chatMode.String(),
		Confidence:    result.Confidence,
		Metadata: &entity.MessageMetadata{
			NextActions: result.Actions,
			Fallback:    fallback,
		},
		CreatedAt: assistantCreated,
	}

	if err := cs.store.AppendMessages(ctx, userMessage, assistantMessage); err != nil {
		storageErr := &dto.StorageError{Op: "saving chat messages", Err: err}
		cs.logStorageFailure(storageErr, visitorId)
		return nil, storageErr
	}

	// 8. Analytics
	cs.track(ctx, visitorId, sessionId, chatMode, result.Confidence, request.Message, fallback != nil)

	return &dto.SendChatResponse{
		Answer:      reply.Text,
		Mode:        chatMode.String(),
		Confidence:  result.Confidence,
		NextActions: result.Actions,
		Fallback:    fallback,
		SessionId:   sessionId,
	}, nil
}

func (cs *chatbotService) GetChatHistory(ctx context.Context, visitorId string, request *dto.ChatHistoryRequest) (*dto.ChatHistoryResponse, error) {
	chatSession, err := cs.sessions.Verify(ctx, visitorId, request.SessionId)
	if err != nil {
		return nil, err
	}

	messages, err := cs.windower.LoadMessages(ctx, chatSession.Id, chatHistoryPageSize)
	if err != nil {
		return nil, err
	}

	res := &dto.ChatHistoryResponse{
		SessionId: chatSession.Id,
		Messages:  make([]dto.ChatMessageResponse, 0, len(messages)),
	}
	for _, m := range messages {
		item := dto.ChatMessageResponse{
			Id:         m.Id,
			Role:       m.Role,
			Content:    m.Content,
			Mode:       m.Mode,
			Confidence: m.Confidence,
			CreatedAt:  m.CreatedAt,
		}
		if m.Metadata != nil {
			item.NextActions = m.Metadata.NextActions
			item.Fallback = m.Metadata.Fallback
		}
		res.Messages = append(res.Messages, item)
	}
	return res, nil
}

// ask bounds the assistant call by the configured deadline and maps its
// failures onto the public error types.
func (cs *chatbotService) ask(ctx context.Context, req assistant.Request) (*assistant.Reply, error) {
	callCtx := ctx
	if cs.config.AssistantTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, cs.config.AssistantTimeout)
		defer cancel()
	}

	reply, err := cs.assistant.Reply(callCtx, req)
	if err == nil {
		return reply, nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return nil, dto.ErrAssistantTimeout
	}

	var statusErr *llm.StatusError
	if errors.As(err, &statusErr) {
		return nil, &dto.DownstreamError{StatusCode: statusErr.StatusCode, Err: err}
	}
	return nil, &dto.DownstreamError{Err: err}
}

func (cs *chatbotService) loadPreference(ctx context.Context, visitorId string) (*entity.Preference, error) {
	if cs.preferences != nil {
		if p, found := cs.preferences.Get(visitorId); found {
			return p, nil
		}
	}

	p, err := cs.store.FindPreference(ctx, visitorId)
	if err != nil {
		return nil, &dto.StorageError{Op: "loading visitor preferences", Err: err}
	}

	if cs.preferences != nil {
		cs.preferences.Save(visitorId, p)
	}
	return p, nil
}

func (cs *chatbotService) track(ctx context.Context, visitorId string, sessionId uuid.UUID, chatMode mode.Mode, confidence, question string, fallbackShared bool) {
	if cs.tracker == nil {
		return
	}

	sid := sessionId.String()
	evts := []*entity.Event{
		{
			VisitorId: visitorId,
			EventName: constant.EventChatMessageSent,
			PagePath:  constant.ChatPagePath,
			Metadata:  map[string]interface{}{"session_id": sid, "mode": chatMode.String()},
		},
		{
			VisitorId: visitorId,
			EventName: constant.EventChatResponseReceived,
			PagePath:  constant.ChatPagePath,
			Metadata:  map[string]interface{}{"session_id": sid, "mode": chatMode.String(), "confidence": confidence},
		},
	}
	if fallbackShared {
		evts = append(evts, &entity.Event{
			VisitorId: visitorId,
			EventName: constant.EventChatFallbackPhoneShared,
			PagePath:  constant.ChatPagePath,
			Metadata:  map[string]interface{}{"session_id": sid, "question": question},
		})
	}

	cs.tracker.Track(ctx, evts...)
}

func (cs *chatbotService) logStorageFailure(err error, visitorId string) {
	var storageErr *dto.StorageError
	if errors.As(err, &storageErr) {
		cs.logger.Error("CHATBOT", "Storage failure", map[string]interface{}{
			"visitor_id": visitorId,
			"op":         storageErr.Op,
			"error":      storageErr.Err.Error(),
		})
	}
}
