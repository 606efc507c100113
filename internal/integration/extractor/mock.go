package extractor

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector returns canned text instead of calling the extraction
// service.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) ExtractText(ctx context.Context, path string) (string, error) {
	ctxzap.Info(ctx, "[MOCK] extracting text", zap.String("file", filepath.Base(path)))
	return fmt.Sprintf("Mock extracted text for %s.\n\nA second mock paragraph.", filepath.Base(path)), nil
}
