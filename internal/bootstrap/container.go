package bootstrap

import (
	"context"
	"log"
	"time"

	"scouting-agent-be/internal/config"
	"scouting-agent-be/internal/controller"
	"scouting-agent-be/internal/pkg/logger"
	"scouting-agent-be/internal/repository/implementation"
	"scouting-agent-be/internal/repository/memory"
	"scouting-agent-be/internal/repository/unitofwork"
	"scouting-agent-be/internal/service"
	"scouting-agent-be/pkg/agent/graph"
	"scouting-agent-be/pkg/agent/node"
	"scouting-agent-be/pkg/agent/sessionguard"
	"scouting-agent-be/pkg/llm/factory"
	pkgNats "scouting-agent-be/pkg/nats"
	"scouting-agent-be/pkg/pdfrender"
	"scouting-agent-be/pkg/statsdb"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AgentController  controller.IAgentController
	SearchController controller.ISearchController
	DataController   controller.IDataController
	ReportController controller.IReportController

	// Background Services (Exposed for main.go to run)
	ReportService service.IReportService

	// Shared resources needing shutdown
	StatsRegistry *statsdb.Registry
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	stdLogger := log.Default()

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Stats databases
	statsRegistry := statsdb.NewRegistry(cfg.Datasets.Dir, stdLogger)

	// 5. Infrastructure
	// NATS
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// Redis
	var locker sessionguard.Locker
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Falling back to in-process turn locks", err)
		locker = sessionguard.NewMemoryLocker()
	} else {
		locker = sessionguard.NewRedisLocker(rdb, 5*time.Minute)
	}

	// PDF renderer
	renderer := pdfrender.NewClient(cfg.Pdf.RendererURL, time.Duration(cfg.Pdf.TimeoutSeconds)*time.Second)

	// 6. Checkpoint store (Postgres + hot cache)
	checkpointCache := memory.NewCheckpointCache()
	checkpointStore := implementation.NewGormCheckpointStore(db, checkpointCache)

	// 7. Services
	searchService := service.NewSearchService(statsRegistry, sysLogger)
	reportService := service.NewReportService(uowFactory, pubSub, renderer, natsPub, sysLogger)
	dataService := service.NewDataService(statsRegistry, sysLogger)

	// 8. Workflow engine
	engine := graph.NewEngine(
		checkpointStore,
		locker,
		stdLogger,
		node.NewRouter(llmProvider, stdLogger),
		node.NewStatsLookup(llmProvider, statsRegistry, stdLogger),
		node.NewTextLookup(llmProvider, searchService, searchService, stdLogger),
		node.NewConfirmScouting(searchService, stdLogger),
		node.NewScout(llmProvider, searchService, reportService, stdLogger),
		node.NewGenerateResponse(llmProvider, stdLogger),
	)

	agentService := service.NewAgentService(engine, uowFactory, sysLogger)

	// 9. Controllers
	return &Container{
		AgentController:  controller.NewAgentController(agentService),
		SearchController: controller.NewSearchController(searchService),
		DataController:   controller.NewDataController(dataService),
		ReportController: controller.NewReportController(reportService),
		ReportService:    reportService,
		StatsRegistry:    statsRegistry,
	}
}
