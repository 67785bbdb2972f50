package bootstrap

import (
	"log"

	"docintel-be/internal/config"
	"docintel-be/internal/controller"
	"docintel-be/internal/pkg/logger"
	"docintel-be/internal/repository"
	"docintel-be/internal/repository/implementation"
	"docintel-be/internal/service"
	"docintel-be/pkg/chunker"
	"docintel-be/pkg/embedding"
	"docintel-be/pkg/embedding/jina"
	"docintel-be/pkg/insight"
	"docintel-be/pkg/retrieval"
	"docintel-be/pkg/timeline"
	"docintel-be/pkg/vectorstore"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DocumentController controller.IDocumentController
	AnalysisController controller.IAnalysisController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

// NewContainer wires the whole application. db may be nil when the vector
// store backend is "memory".
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Event bus for async bulk ingestion
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Embedding provider selection
	var embeddingProvider embedding.Provider
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	case "jina":
		embeddingProvider = jina.NewJinaProvider(cfg.Keys.Jina)
		log.Printf("[INFO] Using Embedding Provider: JINA AI")
	default:
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	// Vector store selection
	var store vectorstore.Store
	if cfg.Engine.VectorStore == "postgres" && db != nil {
		store = repository.NewVectorStoreAdapter(implementation.NewVectorDocumentRepository(db))
		log.Printf("[INFO] Using Vector Store: POSTGRES (pgvector)")
	} else {
		store = vectorstore.NewMemoryStore()
		log.Printf("[INFO] Using Vector Store: MEMORY")
	}

	// Engine
	engine := retrieval.NewService(
		chunker.New(cfg.Engine.ChunkTargetSize),
		embeddingProvider,
		store,
		sysLogger,
	)
	insightProcessor := insight.NewProcessor(sysLogger)
	timelineProcessor := timeline.NewProcessor(sysLogger, nil)

	// Services
	publisherService := service.NewPublisherService(cfg.Keys.IngestTopic, pubSub)
	documentService := service.NewDocumentService(engine, publisherService, sysLogger, cfg.Engine.DefaultTopK, cfg.Engine.MinScore)
	analysisService := service.NewAnalysisService(insightProcessor, timelineProcessor)
	consumerService := service.NewConsumerService(pubSub, cfg.Keys.IngestTopic, documentService, sysLogger)

	return &Container{
		DocumentController: controller.NewDocumentController(documentService),
		AnalysisController: controller.NewAnalysisController(analysisService),
		ConsumerService:    consumerService,
		Logger:             sysLogger,
	}
}
