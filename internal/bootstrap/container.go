package bootstrap

import (
	"context"
	"log"

	"ai-schoolplay-be/internal/config"
	"ai-schoolplay-be/internal/controller"
	"ai-schoolplay-be/internal/handler"
	"ai-schoolplay-be/internal/pkg/logger"
	"ai-schoolplay-be/internal/repository/memory"
	"ai-schoolplay-be/internal/repository/unitofwork"
	"ai-schoolplay-be/internal/service"
	"ai-schoolplay-be/internal/websocket"
	"ai-schoolplay-be/pkg/content"
	"ai-schoolplay-be/pkg/llm/factory"
	"ai-schoolplay-be/pkg/redislock"
	"ai-schoolplay-be/pkg/schema"
	"ai-schoolplay-be/pkg/storage"

	pktNats "ai-schoolplay-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DocumentController controller.IDocumentController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	ProgressHandler *handler.ProgressHandler
	WebSocketHub    *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	redisUp := true
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		redisUp = false
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/progress.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Pipeline Collaborators
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.BaseURL,
		cfg.Ai.APIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	sysLogger.Info("Bootstrap", "LLM provider initialized", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
	})

	visionModel := cfg.Ai.VisionModel
	if visionModel == "" {
		visionModel = cfg.Ai.LLMModel
	}
	visionProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		visionModel,
		cfg.Ai.BaseURL,
		cfg.Ai.APIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize vision LLM Provider: %v", err)
	}

	store := storage.NewLocalStore(cfg.Storage.BasePath)
	classifier := content.NewLLMClassifier(visionProvider, store, visionModel)
	textExtractor := content.NewLLMTextExtractor(visionProvider, store)
	conceptExtractor := content.NewLLMConceptExtractor(llmProvider)
	generator := content.NewLLMContentGenerator(llmProvider, visionProvider, store)
	validator := schema.NewValidator()

	// Single-node fallback: without Redis the validation lock degrades to an
	// in-process lock, which is only safe for one instance.
	var locker service.DocumentLocker = redislock.NewLocker(rdb)
	if !redisUp {
		log.Printf("[WARN] Redis unavailable, using in-process document lock")
		locker = memory.NewMemoryLocker()
	}

	// 4. Services
	dispatcher := service.NewStageDispatcher(pubSub, cfg.Queue)

	var eventPublisher service.IEventPublisher
	if natsPub != nil {
		eventPublisher = natsPub
	}

	documentService := service.NewDocumentService(uowFactory, store, dispatcher, eventPublisher)
	validationService := service.NewValidationService(uowFactory, locker, dispatcher, cfg.Lock)

	scanService := service.NewScanService(uowFactory, classifier, wsHub, eventPublisher)
	extractionService := service.NewExtractionService(uowFactory, textExtractor, dispatcher)
	conceptService := service.NewConceptService(uowFactory, conceptExtractor, dispatcher, wsHub)
	packService := service.NewPackService(uowFactory, generator, validator, dispatcher, wsHub)
	gameService := service.NewGameService(uowFactory, generator, validator, wsHub, eventPublisher)

	dedupe := memory.NewDedupeRepository(cfg.Queue.DedupeTTL)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Queue,
		dedupe,
		scanService,
		extractionService,
		conceptService,
		packService,
		gameService,
	)

	progressHandler := handler.NewProgressHandler(wsHub, wsLogger)

	return &Container{
		DocumentController: controller.NewDocumentController(documentService, validationService),
		ConsumerService:    consumerService,
		ProgressHandler:    progressHandler,
		WebSocketHub:       wsHub,
	}
}
