package query

import (
	"context"

	"github.com/edurag/tutor-backend/internal/entity"
)

// QueryUsecase is the query orchestrator surface used by the handlers.
type QueryUsecase interface {
	Ask(ctx context.Context, req entity.QueryRequest) (*entity.QueryResult, error)
	ResetContext(tenantID string)
	GenerateQuiz(ctx context.Context, chatHistory []entity.ChatMessage) []entity.QuizQuestion
	SearchVideos(ctx context.Context, query string) ([]entity.Video, error)
	TopDoubts(ctx context.Context) string
}
