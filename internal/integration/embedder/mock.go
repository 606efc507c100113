package embedder

import (
	"context"
	"hash/fnv"
	"math"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockDimension is the vector dimension produced by the mock embedder.
const MockDimension = 64

// MockEmbedder produces deterministic pseudo-embeddings from a text hash,
// so the full pipeline runs offline. Identical texts map to identical
// vectors, which keeps the exact-match retrieval property observable.
type MockEmbedder struct {
	logger *zap.Logger
}

func NewMockEmbedder(logger *zap.Logger) *MockEmbedder {
	return &MockEmbedder{logger: logger}
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	ctxzap.Debug(ctx, "[MOCK] embedding text", zap.Int("text_length", len(text)))

	h := fnv.New64a()
	h.Write([]byte(text))
	seed := h.Sum64()

	vector := make([]float32, MockDimension)
	for i := range vector {
		seed = seed*6364136223846793005 + 1442695040888963407
		vector[i] = float32(math.Sin(float64(seed % 10007)))
	}
	return vector, nil
}

func (m *MockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := m.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = v
	}
	return vectors, nil
}
