// Package retrieval answers "which chunks are closest to this query" over
// a tenant's persisted corpus.
package retrieval

import (
	"context"
	"fmt"

	"github.com/edurag/tutor-backend/internal/config"
	"github.com/edurag/tutor-backend/internal/entity"
	"github.com/edurag/tutor-backend/internal/repository"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Embedder maps a single query to a vector in the corpus embedding space.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// ArtifactLoader loads a tenant's persisted chunk store and index.
type ArtifactLoader interface {
	Load(tenant entity.Tenant) (*repository.Artifacts, error)
	IsIngested(tenant entity.Tenant) bool
}

// Usecase performs top-K nearest-chunk retrieval.
type Usecase struct {
	tenants   config.Tenants
	embedder  Embedder
	artifacts ArtifactLoader
	logger    *zap.Logger
}

func NewUsecase(tenants config.Tenants, embedder Embedder, artifacts ArtifactLoader, logger *zap.Logger) *Usecase {
	return &Usecase{
		tenants:   tenants,
		embedder:  embedder,
		artifacts: artifacts,
		logger:    logger,
	}
}

// Retrieve returns the min(k, corpus size) chunks nearest to the query,
// ordered nearest first.
func (uc *Usecase) Retrieve(ctx context.Context, tenantID, query string, k int) ([]string, error) {
	tenant, err := uc.tenants.Get(tenantID)
	if err != nil {
		return nil, err
	}

	artifacts, err := uc.artifacts.Load(tenant)
	if err != nil {
		return nil, err
	}

	vector, err := uc.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	neighbors, err := artifacts.Index.Search(vector, k)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}

	chunks := make([]string, 0, len(neighbors))
	for _, n := range neighbors {
		if n.Position < 0 || n.Position >= len(artifacts.Chunks) {
			return nil, fmt.Errorf("index position %d outside chunk store of size %d", n.Position, len(artifacts.Chunks))
		}
		chunks = append(chunks, artifacts.Chunks[n.Position])
	}

	ctxzap.Debug(ctx, "chunks retrieved",
		zap.String("tenant_id", tenantID),
		zap.Int("requested", k),
		zap.Int("returned", len(chunks)),
	)
	return chunks, nil
}

// Status reports each configured tenant together with its ingestion state.
func (uc *Usecase) Status() []entity.TenantStatus {
	tenants := uc.tenants.All()
	statuses := make([]entity.TenantStatus, 0, len(tenants))
	for _, t := range tenants {
		statuses = append(statuses, entity.TenantStatus{
			Tenant:  t,
			IsSetup: uc.artifacts.IsIngested(t),
		})
	}
	return statuses
}
