package builder

import (
	"fmt"
	"net/http"
	"time"

	"github.com/edurag/tutor-backend/internal/api"
	queryapi "github.com/edurag/tutor-backend/internal/api/query"
	tenantapi "github.com/edurag/tutor-backend/internal/api/tenant"
	"github.com/edurag/tutor-backend/internal/config"
	"github.com/edurag/tutor-backend/internal/conversation"
	"github.com/edurag/tutor-backend/internal/integration/embedder"
	"github.com/edurag/tutor-backend/internal/integration/extractor"
	"github.com/edurag/tutor-backend/internal/integration/generator"
	"github.com/edurag/tutor-backend/internal/integration/translator"
	"github.com/edurag/tutor-backend/internal/integration/videosearch"
	"github.com/edurag/tutor-backend/internal/pkg/validator"
	"github.com/edurag/tutor-backend/internal/repository"
	ingestuc "github.com/edurag/tutor-backend/internal/usecase/ingest"
	queryuc "github.com/edurag/tutor-backend/internal/usecase/query"
	retrievaluc "github.com/edurag/tutor-backend/internal/usecase/retrieval"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
		zap.Int("tenant_count", len(cfg.Tenants.All())),
	)

	deps, err := buildDependencies(cfg, logger)
	if err != nil {
		return nil, err
	}

	// Setup API handlers
	tenantHandler := tenantapi.NewHandler(deps.retrievalUC)
	queryHandler := queryapi.NewHandler(deps.queryUC, validator.NewValidator())
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(tenantHandler, queryHandler, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: logger,
	}, nil
}

// Dependencies is the wired core shared by the HTTP server and the CLI.
type Dependencies struct {
	artifacts   *repository.ArtifactStore
	ingestUC    *ingestuc.Usecase
	retrievalUC *retrievaluc.Usecase
	queryUC     *queryuc.Usecase
}

// IngestUsecase exposes the ingestion pipeline to CLI frontends.
func (d *Dependencies) IngestUsecase() *ingestuc.Usecase { return d.ingestUC }

// RetrievalUsecase exposes tenant status and retrieval to CLI frontends.
func (d *Dependencies) RetrievalUsecase() *retrievaluc.Usecase { return d.retrievalUC }

// ArtifactStore exposes the artifact store to CLI frontends.
func (d *Dependencies) ArtifactStore() *repository.ArtifactStore { return d.artifacts }

// BuildDependencies wires the core without the HTTP surface. Used by the
// operator CLI, which loads config for a named environment.
func BuildDependencies(environment string) (*Dependencies, *config.Config, *zap.Logger, error) {
	cfg, err := config.Load(environment)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	deps, err := buildDependencies(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return deps, cfg, logger, nil
}

func buildDependencies(cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	// Initialize stores
	artifactStore := repository.NewArtifactStore(logger)
	contextStore := conversation.NewStore()
	logger.Info("Stores initialized")

	// Initialize external service connectors (with mock support)
	var generatorConn queryuc.Generator
	var translatorConn queryuc.Translator
	var extractorConn ingestuc.TextExtractor
	var videoConn queryuc.VideoSearcher
	var embedderClient retrievaluc.Embedder
	var batchEmbedder ingestuc.Embedder

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		generatorConn = generator.NewMockConnector(logger)
		translatorConn = translator.NewMockConnector(logger)
		extractorConn = extractor.NewMockConnector(logger)
		videoConn = videosearch.NewMockConnector(logger)
		mock := embedder.NewMockEmbedder(logger)
		embedderClient, batchEmbedder = mock, mock
	} else {
		logger.Info("Using real connectors for external services")
		generatorConn = generator.NewConnector(cfg.GeneratorCfg, logger)
		translatorConn = translator.NewConnector(cfg.TranslatorCfg, logger)
		extractorConn = extractor.NewConnector(cfg.ExtractorCfg, logger)
		videoConn = videosearch.NewConnector(cfg.VideoSearchCfg, logger)

		openAI, err := embedder.NewOpenAIEmbedder(cfg.EmbedderCfg, logger)
		if err != nil {
			return nil, fmt.Errorf("initialize embedder: %w", err)
		}
		embedderClient, batchEmbedder = openAI, openAI
	}

	// Initialize use cases
	ingestUC := ingestuc.NewUsecase(cfg.Tenants, extractorConn, batchEmbedder, artifactStore, cfg.ChunkMaxWords, logger)
	retrievalUC := retrievaluc.NewUsecase(cfg.Tenants, embedderClient, artifactStore, logger)
	queryUC := queryuc.NewUsecase(
		cfg.Tenants,
		generatorConn,
		translatorConn,
		retrievalUC,
		videoConn,
		contextStore,
		artifactStore,
		cfg.TopK,
		logger,
	)
	logger.Info("Use cases initialized")

	return &Dependencies{
		artifacts:   artifactStore,
		ingestUC:    ingestUC,
		retrievalUC: retrievalUC,
		queryUC:     queryUC,
	}, nil
}
