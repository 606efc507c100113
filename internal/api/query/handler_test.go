package query

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/edurag/tutor-backend/internal/entity"
	"github.com/edurag/tutor-backend/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsecase struct {
	askResult *entity.QueryResult
	askErr    error
	resetID   string
	videos    []entity.Video
	videosErr error
}

func (f *fakeUsecase) Ask(_ context.Context, req entity.QueryRequest) (*entity.QueryResult, error) {
	if f.askErr != nil {
		return nil, f.askErr
	}
	if f.askResult != nil {
		return f.askResult, nil
	}
	return &entity.QueryResult{
		TenantID:     req.TenantID,
		Question:     req.Question,
		ResponseMode: req.ResponseMode,
		Answer:       entity.TextAnswer("the answer"),
	}, nil
}

func (f *fakeUsecase) ResetContext(tenantID string) { f.resetID = tenantID }

func (f *fakeUsecase) GenerateQuiz(context.Context, []entity.ChatMessage) []entity.QuizQuestion {
	return entity.FallbackQuiz()
}

func (f *fakeUsecase) SearchVideos(context.Context, string) ([]entity.Video, error) {
	return f.videos, f.videosErr
}

func (f *fakeUsecase) TopDoubts(context.Context) string { return "1. Fractions" }

func doRequest(t *testing.T, h http.HandlerFunc, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestQueryHappyPath(t *testing.T) {
	h := NewHandler(&fakeUsecase{}, validator.NewValidator())

	rec := doRequest(t, h.Query, http.MethodPost, "/query", entity.QueryHTTPRequest{
		Question: "what is gravity",
		SystemID: "7th",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp entity.QueryHTTPResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "7th", resp.SystemID)
	assert.Equal(t, "the answer", resp.Answer)
	assert.Empty(t, resp.Image)
	assert.Empty(t, resp.Videos)
}

func TestQueryVideosVariantOnWire(t *testing.T) {
	uc := &fakeUsecase{askResult: &entity.QueryResult{
		TenantID:     "7th",
		Question:     "q",
		ResponseMode: entity.ModeYoutube,
		Answer: entity.VideosAnswer("description", []entity.Video{
			{Title: "Video", URL: "https://www.youtube.com/watch?v=x"},
		}),
	}}
	h := NewHandler(uc, validator.NewValidator())

	rec := doRequest(t, h.Query, http.MethodPost, "/query", entity.QueryHTTPRequest{
		Question: "q", SystemID: "7th", ResponseType: "youtube",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp entity.QueryHTTPResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "description", resp.Answer)
	require.Len(t, resp.Videos, 1)
	assert.Equal(t, "Video", resp.Videos[0].Title)
}

func TestQueryMissingFields(t *testing.T) {
	h := NewHandler(&fakeUsecase{}, validator.NewValidator())

	rec := doRequest(t, h.Query, http.MethodPost, "/query", entity.QueryHTTPRequest{SystemID: "7th"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQueryInvalidBody(t *testing.T) {
	h := NewHandler(&fakeUsecase{}, validator.NewValidator())

	req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	h.Query(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQueryUnknownTenantIs404(t *testing.T) {
	h := NewHandler(&fakeUsecase{askErr: fmt.Errorf("wrap: %w", entity.ErrUnknownTenant)}, validator.NewValidator())

	rec := doRequest(t, h.Query, http.MethodPost, "/query", entity.QueryHTTPRequest{
		Question: "q", SystemID: "12th",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQueryNotIngestedIs404(t *testing.T) {
	h := NewHandler(&fakeUsecase{askErr: fmt.Errorf("wrap: %w", entity.ErrNotIngested)}, validator.NewValidator())

	rec := doRequest(t, h.Query, http.MethodPost, "/query", entity.QueryHTTPRequest{
		Question: "q", SystemID: "7th",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResetContext(t *testing.T) {
	uc := &fakeUsecase{}
	h := NewHandler(uc, validator.NewValidator())

	rec := doRequest(t, h.ResetContext, http.MethodPost, "/reset-context", entity.ResetContextRequest{SystemID: "7th"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7th", uc.resetID)
}

func TestGenerateQuizAlwaysSucceeds(t *testing.T) {
	h := NewHandler(&fakeUsecase{}, validator.NewValidator())

	rec := doRequest(t, h.GenerateQuiz, http.MethodPost, "/generate-quiz", entity.GenerateQuizRequest{
		ChatHistory: []entity.ChatMessage{{Role: "user", Content: "hi"}},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp entity.GenerateQuizResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.NotEmpty(t, resp.Quizzes)
}

func TestSearchVideosUpstreamFailure(t *testing.T) {
	h := NewHandler(&fakeUsecase{videosErr: fmt.Errorf("quota exceeded")}, validator.NewValidator())

	rec := doRequest(t, h.SearchVideos, http.MethodPost, "/youtube-search", entity.VideoSearchRequest{Query: "gravity"})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestTopDoubts(t *testing.T) {
	h := NewHandler(&fakeUsecase{}, validator.NewValidator())

	req := httptest.NewRequest(http.MethodGet, "/get-top-doubts", nil)
	rec := httptest.NewRecorder()
	h.TopDoubts(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp entity.TopDoubtsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Suggestions, "Fractions")
}
