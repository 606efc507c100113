// Package ingest builds a tenant's searchable corpus: documents are
// chunked, embedded and indexed, then persisted as one atomic artifact
// replacement. Re-ingestion fully replaces prior state, never merges.
package ingest

import (
	"context"
	"fmt"

	"github.com/edurag/tutor-backend/internal/config"
	"github.com/edurag/tutor-backend/internal/entity"
	"github.com/edurag/tutor-backend/internal/pkg/logger"
	"github.com/edurag/tutor-backend/internal/rag"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Usecase implements the ingestion pipeline.
type Usecase struct {
	tenants   config.Tenants
	extractor TextExtractor
	embedder  Embedder
	artifacts ArtifactStore
	chunker   *rag.Chunker
	logger    *zap.Logger
}

// NewUsecase creates the ingestion use case.
func NewUsecase(
	tenants config.Tenants,
	extractor TextExtractor,
	embedder Embedder,
	artifacts ArtifactStore,
	maxChunkWords int,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		tenants:   tenants,
		extractor: extractor,
		embedder:  embedder,
		artifacts: artifacts,
		chunker:   rag.NewChunker(maxChunkWords),
		logger:    logger,
	}
}

// Ingest rebuilds the tenant's corpus from its documents directory.
func (uc *Usecase) Ingest(ctx context.Context, tenantID string) (*entity.IngestReport, error) {
	runID := uuid.New().String()
	ctx = logger.AddFields(ctx,
		zap.String("tenant_id", tenantID),
		zap.String("ingest_run_id", runID),
	)

	tenant, err := uc.tenants.Get(tenantID)
	if err != nil {
		return nil, err
	}

	docs, err := uc.discoverDocuments(tenant)
	if err != nil {
		return nil, fmt.Errorf("discover documents: %w", err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrNoDocuments, tenant.DocumentsDir)
	}

	ctxzap.Info(ctx, "starting ingestion", zap.Int("document_count", len(docs)))

	// One ordered chunk sequence across all documents, in discovery order.
	// Position in the sequence is the chunk's retrieval identifier.
	var chunks []string
	for _, path := range docs {
		text, err := uc.loadDocument(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("load document %s: %w", path, err)
		}
		chunks = append(chunks, uc.chunker.Chunk(text)...)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: documents contained no text", entity.ErrNoDocuments)
	}

	ctxzap.Info(ctx, "documents chunked", zap.Int("chunk_count", len(chunks)))

	embeddings, err := uc.embedder.EmbedBatch(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return nil, fmt.Errorf("embedding count %d does not match chunk count %d", len(embeddings), len(chunks))
	}

	index, err := rag.NewFlatIndex(len(embeddings[0]))
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}
	if err := index.Add(embeddings...); err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	if err := uc.artifacts.Save(tenant, chunks, embeddings, index); err != nil {
		return nil, fmt.Errorf("persist artifacts: %w", err)
	}

	ctxzap.Info(ctx, "ingestion completed",
		zap.Int("chunk_count", len(chunks)),
		zap.Int("dimension", index.Dimension()),
	)

	return &entity.IngestReport{
		RunID:         runID,
		TenantID:      tenant.ID,
		DocumentCount: len(docs),
		ChunkCount:    len(chunks),
		Dimension:     index.Dimension(),
	}, nil
}
