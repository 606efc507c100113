package tenant

import (
	"net/http"

	"github.com/edurag/tutor-backend/internal/pkg/logger"
	"github.com/edurag/tutor-backend/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase StatusUsecase
}

func NewHandler(usecase StatusUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// GetSystems handles GET /systems - list tenants with ingestion status
func (h *Handler) GetSystems(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetSystems")

	statuses := h.usecase.Status()
	ctxzap.Debug(ctx, "tenants listed", zap.Int("count", len(statuses)))

	response.Success(w, toSystemsResponse(statuses))
}
