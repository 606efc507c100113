package videosearch

import (
	"context"

	"github.com/edurag/tutor-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector returns canned video results.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) Search(ctx context.Context, query string) ([]entity.Video, error) {
	ctxzap.Info(ctx, "[MOCK] searching videos", zap.String("query", query))
	return []entity.Video{
		{
			ID:      "mock1",
			Title:   "Introduction to " + query,
			URL:     "https://www.youtube.com/watch?v=mock1",
			Channel: "Mock Academy",
		},
		{
			ID:      "mock2",
			Title:   query + " explained",
			URL:     "https://www.youtube.com/watch?v=mock2",
			Channel: "Mock Academy",
		},
	}, nil
}
