package ingest

import (
	"context"

	"github.com/edurag/tutor-backend/internal/entity"
	"github.com/edurag/tutor-backend/internal/rag"
)

// TextExtractor turns a PDF document into plain text. The extraction
// service is an external collaborator.
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// Embedder maps chunk texts to fixed-dimension vectors.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// ArtifactStore persists the chunk store, embeddings and index as one
// atomic replacement.
type ArtifactStore interface {
	Save(tenant entity.Tenant, chunks []string, embeddings [][]float32, index *rag.FlatIndex) error
}
