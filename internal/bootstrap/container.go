package bootstrap

import (
	"context"
	"log"

	"portfolio-chat-be/internal/config"
	"portfolio-chat-be/internal/controller"
	"portfolio-chat-be/internal/handler"
	"portfolio-chat-be/internal/pkg/logger"
	"portfolio-chat-be/internal/pkg/mailer"
	"portfolio-chat-be/internal/repository/implementation"
	"portfolio-chat-be/internal/repository/memory"
	"portfolio-chat-be/internal/repository/unitofwork"
	"portfolio-chat-be/internal/service"
	"portfolio-chat-be/internal/websocket"
	"portfolio-chat-be/pkg/analytics"
	"portfolio-chat-be/pkg/assistant"
	"portfolio-chat-be/pkg/chat/quota"
	"portfolio-chat-be/pkg/embedding"
	"portfolio-chat-be/pkg/knowledge"
	"portfolio-chat-be/pkg/llm/factory"
	"portfolio-chat-be/pkg/store"

	pktNats "portfolio-chat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatbotController    controller.IChatbotController
	PreferenceController controller.IPreferenceController
	EventController      controller.IEventController
	DashboardController  controller.IDashboardController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	WebSocketHub    *websocket.Hub
	LiveHandler     *handler.LiveHandler
	AlertService    *service.AlertService

	Logger logger.ILogger
	Store  store.Store

	db      *gorm.DB
	rdb     *redis.Client
	pubSub  *gochannel.GoChannel
	natsPub *pktNats.Publisher
	natsSub *pktNats.Subscriber
}

func NewContainer(cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction())

	storage, err := openStorage(cfg)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] Using store driver: %s", cfg.Database.StoreDriver)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermillLogger,
	)
	tracker := analytics.NewChannelTracker(pubSub, analytics.DefaultTopic, sysLogger)

	var natsPub *pktNats.Publisher
	var natsSub *pktNats.Subscriber
	if cfg.App.NatsURL != "" {
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		}
		natsSub, err = pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
			natsSub = nil
		}
	}
	// both halves or neither, so no event is published without a listener
	if natsPub == nil || natsSub == nil {
		if natsPub != nil {
			natsPub.Close()
		}
		if natsSub != nil {
			natsSub.Close()
		}
		natsPub, natsSub = nil, nil
	}

	rdb := openRedis(cfg.App.RedisURL)

	// 3. Assistant
	llmBaseURL := cfg.Ai.LLMBaseURL
	if llmBaseURL == "" && cfg.Ai.LLMProvider == "ollama" {
		llmBaseURL = cfg.Ai.OllamaBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(cfg.Ai.LLMProvider, cfg.Ai.LLMModel, llmBaseURL, cfg.Ai.OpenAIAPIKey)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	var retriever assistant.KnowledgeRetriever
	if storage.db != nil && cfg.Database.StoreDriver == store.DriverPostgres && cfg.Ai.EmbeddingProvider == "ollama" {
		embedder := embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
		retriever = knowledge.NewRetriever(
			embedder,
			implementation.NewKnowledgeChunkRepository(storage.db),
			cfg.Ai.RetrievalTopK,
			cfg.Ai.RetrievalMinScore,
		)
		log.Printf("[INFO] Knowledge retrieval enabled (%s)", cfg.Ai.EmbeddingModel)
	}
	chatAssistant := assistant.NewRetrievalAssistant(llmProvider, retriever, sysLogger)

	// 4. Services
	preferenceCache := memory.NewPreferenceCache(0)

	chatbotService := service.NewChatbotService(
		storage.store,
		chatAssistant,
		preferenceCache,
		tracker,
		sysLogger,
		service.ChatbotConfig{
			Policy: quota.Policy{
				DailyLimit:  cfg.Chat.DailyLimit,
				DailyWindow: quota.DefaultPolicy().DailyWindow,
				BurstLimit:  cfg.Chat.BurstLimit,
				BurstWindow: cfg.Chat.BurstWindow,
			},
			HistoryLimit:     cfg.Chat.HistoryLimit,
			OwnerName:        cfg.Chat.OwnerName,
			OwnerContact:     cfg.Chat.OwnerContact,
			AssistantTimeout: cfg.Ai.AssistantTimeout,
		},
	)
	preferenceService := service.NewPreferenceService(storage.store, preferenceCache, tracker, sysLogger)
	eventService := service.NewEventService(tracker)

	var uowFactory unitofwork.RepositoryFactory
	if storage.db != nil {
		uowFactory = unitofwork.NewRepositoryFactory(storage.db)
	}
	dashboardService := service.NewDashboardService(uowFactory, rdb, sysLogger, service.DashboardConfig{
		PasswordHash: cfg.Dashboard.PasswordHash,
		JWTSecret:    cfg.Dashboard.JWTSecret,
		TokenTTL:     cfg.Dashboard.TokenTTL,
		StatsTTL:     cfg.Dashboard.StatsTTL,
	})

	// 5. Live feed & owner alert
	liveLogger := logger.NewIsolatedLogger(cfg.App.LiveLogFilePath)
	wsHub := websocket.NewHub(rdb, liveLogger)

	var alertService *service.AlertService
	if cfg.SMTP.Enabled() && cfg.Chat.OwnerEmail != "" {
		emailService := mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.Email,
			cfg.SMTP.SenderName,
		)
		alertService = service.NewAlertService(emailService, cfg.Chat.OwnerEmail, sysLogger)
	}

	var busPublisher service.EventPublisher
	if natsPub != nil {
		busPublisher = natsPub
	}
	var notifier service.FallbackNotifier
	if alertService != nil {
		notifier = alertService
	}
	consumerService := service.NewConsumerService(
		pubSub,
		analytics.DefaultTopic,
		storage.store,
		busPublisher,
		wsHub,
		notifier,
		sysLogger,
	)

	// 6. Controllers
	return &Container{
		ChatbotController:    controller.NewChatbotController(chatbotService),
		PreferenceController: controller.NewPreferenceController(preferenceService),
		EventController:      controller.NewEventController(eventService),
		DashboardController:  controller.NewDashboardController(dashboardService, wsHub, cfg.Dashboard.JWTSecret, liveLogger),

		ConsumerService: consumerService,
		WebSocketHub:    wsHub,
		LiveHandler:     handler.NewLiveHandler(wsHub, liveLogger),
		AlertService:    alertService,

		Logger: sysLogger,
		Store:  storage.store,

		db:      storage.db,
		rdb:     rdb,
		pubSub:  pubSub,
		natsPub: natsPub,
		natsSub: natsSub,
	}, nil
}

// Start runs the background workers: the hub, the analytics consumer and,
// with NATS, the bus subscriptions.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)

	if err := c.ConsumerService.Consume(ctx); err != nil {
		return err
	}

	if c.natsSub != nil {
		if err := c.LiveHandler.Start(c.natsSub); err != nil {
			return err
		}
		if c.AlertService != nil {
			if err := c.AlertService.Start(c.natsSub); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Container) Close() {
	if c.natsSub != nil {
		c.natsSub.Close()
	}
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if c.pubSub != nil {
		_ = c.pubSub.Close()
	}
	if c.rdb != nil {
		_ = c.rdb.Close()
	}
	if c.db != nil {
		if sqlDB, err := c.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = c.Logger.Sync()
}
