package generator

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector is an offline stand-in for the generative service.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) Generate(ctx context.Context, prompt string) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating text")

	switch {
	case strings.Contains(prompt, "JSON object"):
		return `{
  "description": "A mock explanation of the requested concept.",
  "videos": [
    {"title": "Mock video one", "url": "https://www.youtube.com/watch?v=mock1"},
    {"title": "Mock video two", "url": "https://www.youtube.com/watch?v=mock2"}
  ]
}`, nil
	case strings.Contains(prompt, "step by step"):
		return "1. Read the problem\n2. Apply the relevant operation\nAnswer: 42", nil
	case strings.Contains(prompt, "JSON array"):
		return `[
  {"id": "q1", "question": "Mock question?", "options": ["A", "B", "C", "D"], "correctAnswer": 0, "explanation": "A is correct."},
  {"id": "q2", "question": "Another mock question?", "options": ["A", "B", "C", "D"], "correctAnswer": 1, "explanation": "B is correct."}
]`, nil
	default:
		return "This is a mock answer generated without calling the external service.", nil
	}
}

func (m *MockConnector) GenerateImage(ctx context.Context, prompt string) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating image")
	// 1x1 transparent PNG
	return "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg==", nil
}
