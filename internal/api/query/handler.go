package query

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/edurag/tutor-backend/internal/entity"
	"github.com/edurag/tutor-backend/internal/pkg/logger"
	"github.com/edurag/tutor-backend/internal/pkg/response"
	"github.com/edurag/tutor-backend/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   QueryUsecase
	validator *validator.Validator
}

func NewHandler(usecase QueryUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// Query handles POST /query - answer a question for a tenant
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Query")

	var req entity.QueryHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateQuery(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx = logger.AddFields(ctx,
		zap.String("system_id", req.SystemID),
		zap.String("response_type", req.ResponseType),
	)
	ctxzap.Info(ctx, "answering question", zap.Bool("is_new_block", req.IsNewBlock))

	result, err := h.usecase.Ask(ctx, toQueryRequest(&req))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "question answered", zap.String("answer_kind", string(result.Answer.Kind)))
	response.Success(w, toQueryResponse(result))
}

// ResetContext handles POST /reset-context - drop a tenant's conversation
func (h *Handler) ResetContext(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ResetContext")

	var req entity.ResetContextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateResetContext(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	h.usecase.ResetContext(req.SystemID)
	ctxzap.Info(ctx, "conversation context reset", zap.String("system_id", req.SystemID))

	response.Success(w, map[string]string{
		"status":  "success",
		"message": "Conversation context reset successfully",
	})
}

// GenerateQuiz handles POST /generate-quiz - build a quiz from chat history
func (h *Handler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GenerateQuiz")

	var req entity.GenerateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateGenerateQuiz(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	quizzes := h.usecase.GenerateQuiz(ctx, req.ChatHistory)
	ctxzap.Info(ctx, "quiz generated", zap.Int("question_count", len(quizzes)))

	response.Success(w, entity.GenerateQuizResponse{
		Status:  "success",
		Quizzes: quizzes,
	})
}

// SearchVideos handles POST /youtube-search - query the video provider
func (h *Handler) SearchVideos(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SearchVideos")

	var req entity.VideoSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateVideoSearch(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	videos, err := h.usecase.SearchVideos(ctx, req.Query)
	if err != nil {
		ctxzap.Error(ctx, "video search failed", zap.Error(err))
		response.Error(w, http.StatusBadGateway, "failed to fetch videos")
		return
	}

	ctxzap.Info(ctx, "videos fetched", zap.Int("count", len(videos)))
	response.Success(w, entity.VideoSearchResponse{Videos: videos})
}

// TopDoubts handles GET /get-top-doubts - suggest commonly misunderstood topics
func (h *Handler) TopDoubts(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "TopDoubts")

	suggestions := h.usecase.TopDoubts(ctx)

	response.Success(w, entity.TopDoubtsResponse{
		Status:      "success",
		Suggestions: suggestions,
	})
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	ctxzap.Error(ctx, "usecase error", zap.Error(err))

	switch {
	case errors.Is(err, entity.ErrUnknownTenant), errors.Is(err, entity.ErrNotIngested):
		response.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, entity.ErrMissingField), errors.Is(err, entity.ErrInvalidParameter):
		response.Error(w, http.StatusBadRequest, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
