package di

import (
	"context"
	"log/slog"
	"time"

	"booking-orchestrator/internal/adapter/llm"
	"booking-orchestrator/internal/adapter/repository"
	"booking-orchestrator/internal/domain"
	"booking-orchestrator/internal/infra/config"
	"booking-orchestrator/internal/infra/httpclient"
	"booking-orchestrator/internal/usecase"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	generateTimeout = 120 * time.Second
	embedTimeout    = 60 * time.Second
)

// Container wires configuration, adapters and usecases into one object graph.
type Container struct {
	Config *config.Config
	Log    *slog.Logger

	Generator *llm.OllamaClient
	Embedder  *llm.OllamaEmbedder
	Passages  *repository.PassageRepo
	Bookings  *repository.BookingDataSource

	Validator    usecase.ValidateQuestionUsecase
	Router       usecase.RouteQuestionUsecase
	Structured   usecase.StructuredAnswerUsecase
	Document     usecase.DocumentAnswerUsecase
	Orchestrator usecase.OrchestratorUsecase
	Indexer      usecase.IndexCorpusUsecase
}

// NewContainer builds the full graph. It fails when the passage index is
// unreachable or empty, so a misconfigured deployment dies at startup instead
// of refusing every document question at runtime.
func NewContainer(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, log *slog.Logger) (*Container, error) {
	generator := llm.NewOllamaClient(cfg.OllamaURL, cfg.GeneratorModel,
		httpclient.NewPooledClient(generateTimeout), cfg.LLMRateLimit)
	embedder := llm.NewOllamaEmbedder(cfg.OllamaURL, cfg.EmbeddingModel,
		httpclient.NewPooledClient(embedTimeout))

	passages := repository.NewPassageRepo(pool, embedder)
	bookings := repository.NewBookingDataSource(pool, "bookings")

	prompts := usecase.NewPromptBuilder(cfg.ContextBudget, cfg.SummaryReserved)

	validator := usecase.NewValidateQuestionUsecase(generator, prompts, log)
	router := usecase.NewRouteQuestionUsecase(generator, prompts, log)
	structured := usecase.NewStructuredAnswerUsecase(bookings, generator, prompts, cfg.AnswerMaxTokens, log)

	document, err := usecase.NewDocumentAnswerUsecase(
		ctx, passages, generator, prompts, cfg.AnswerTopK, cfg.AnswerMaxTokens, log)
	if err != nil {
		return nil, err
	}

	orchestrator := usecase.NewOrchestratorUsecase(
		validator, router, structured, document,
		usecase.MetricParams{RoomCount: cfg.RoomCount, DaysInPeriod: cfg.DaysInPeriod},
		cfg.CacheSize, cfg.CacheTTL, log,
	)

	indexer := usecase.NewIndexCorpusUsecase(passages, domain.NewChunker(), embedder, log)

	return &Container{
		Config:       cfg,
		Log:          log,
		Generator:    generator,
		Embedder:     embedder,
		Passages:     passages,
		Bookings:     bookings,
		Validator:    validator,
		Router:       router,
		Structured:   structured,
		Document:     document,
		Orchestrator: orchestrator,
		Indexer:      indexer,
	}, nil
}

// IndexerContainer carries only what corpus indexing needs. Unlike the full
// container it tolerates an empty index, since its whole job is to fill it.
type IndexerContainer struct {
	Config  *config.Config
	Log     *slog.Logger
	Indexer usecase.IndexCorpusUsecase
}

func NewIndexerContainer(cfg *config.Config, pool *pgxpool.Pool, log *slog.Logger) *IndexerContainer {
	embedder := llm.NewOllamaEmbedder(cfg.OllamaURL, cfg.EmbeddingModel,
		httpclient.NewPooledClient(embedTimeout))
	passages := repository.NewPassageRepo(pool, embedder)

	return &IndexerContainer{
		Config:  cfg,
		Log:     log,
		Indexer: usecase.NewIndexCorpusUsecase(passages, domain.NewChunker(), embedder, log),
	}
}
