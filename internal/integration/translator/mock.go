package translator

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector treats every input as English and translates by identity.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) DetectAndTranslate(ctx context.Context, text string) (string, string, error) {
	ctxzap.Info(ctx, "[MOCK] detecting language")
	return text, "en", nil
}

func (m *MockConnector) TranslateTo(ctx context.Context, text, targetLang string) (string, error) {
	ctxzap.Info(ctx, "[MOCK] translating text", zap.String("target_lang", targetLang))
	return text, nil
}
