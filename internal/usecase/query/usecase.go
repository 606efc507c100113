// Package query orchestrates a single question end to end: conversation
// bookkeeping, the language bridge, mode dispatch and failure containment.
// Downstream failures surface inside the answer payload, never as request
// errors.
package query

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/edurag/tutor-backend/internal/config"
	"github.com/edurag/tutor-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Usecase is the query orchestrator.
type Usecase struct {
	tenants    config.Tenants
	generator  Generator
	translator Translator
	retriever  Retriever
	videos     VideoSearcher
	contexts   ContextStore
	ingested   IngestChecker
	topK       int
	logger     *zap.Logger
}

func NewUsecase(
	tenants config.Tenants,
	generator Generator,
	translator Translator,
	retriever Retriever,
	videos VideoSearcher,
	contexts ContextStore,
	ingested IngestChecker,
	topK int,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		tenants:    tenants,
		generator:  generator,
		translator: translator,
		retriever:  retriever,
		videos:     videos,
		contexts:   contexts,
		ingested:   ingested,
		topK:       topK,
		logger:     logger,
	}
}

// Ask answers one question. Tenant and ingestion checks are the only request
// errors; everything downstream is contained in the answer payload.
func (uc *Usecase) Ask(ctx context.Context, req entity.QueryRequest) (*entity.QueryResult, error) {
	tenant, err := uc.tenants.Get(req.TenantID)
	if err != nil {
		return nil, err
	}
	if !uc.ingested.IsIngested(tenant) {
		return nil, fmt.Errorf("%w: %s", entity.ErrNotIngested, tenant.ID)
	}

	// Context bookkeeping happens before anything that can fail, so the
	// question is recorded even when the answer path degrades.
	convo := uc.contexts.Update(req.TenantID, req.Question, req.IsNewBlock, req.IsInSyllabus)

	question, lang := uc.toEnglish(ctx, req.Question)

	var answer entity.Answer
	switch req.ResponseMode {
	case entity.ModeMath:
		answer = uc.answerMath(ctx, question, lang)
	case entity.ModeYoutube:
		answer = uc.answerYoutube(ctx, question, lang)
	case entity.ModeDiagram:
		answer = uc.answerDiagram(ctx, tenant, question, lang)
	default:
		answer = uc.answerFromCorpus(ctx, tenant, req.ResponseMode, question, lang)
	}

	return &entity.QueryResult{
		TenantID:     req.TenantID,
		Question:     req.Question,
		ResponseMode: req.ResponseMode,
		Answer:       answer,
		IsInSyllabus: convo.IsInSyllabus,
	}, nil
}

// ResetContext drops the tenant's conversation context. Unknown tenants are
// a no-op.
func (uc *Usecase) ResetContext(tenantID string) {
	uc.contexts.Reset(tenantID)
}

// SearchVideos queries the external video provider directly.
func (uc *Usecase) SearchVideos(ctx context.Context, query string) ([]entity.Video, error) {
	return uc.videos.Search(ctx, query)
}

// TopDoubts asks the generator for commonly misunderstood topics. Generation
// failures are contained in the suggestion text.
func (uc *Usecase) TopDoubts(ctx context.Context) string {
	suggestions, err := uc.generator.Generate(ctx, topDoubtsPrompt())
	if err != nil {
		ctxzap.Warn(ctx, "top doubts generation failed", zap.Error(err))
		return fmt.Sprintf("Error generating suggestions: %v", err)
	}
	return suggestions
}

// toEnglish runs the inbound half of the language bridge. On failure the
// question passes through untranslated and the language defaults to English.
func (uc *Usecase) toEnglish(ctx context.Context, question string) (string, string) {
	translated, lang, err := uc.translator.DetectAndTranslate(ctx, question)
	if err != nil {
		ctxzap.Warn(ctx, "language detection failed, assuming English", zap.Error(err))
		return question, "en"
	}
	return translated, lang
}

// fromEnglish runs the outbound half: identity for English, identity
// fallback on translation failure.
func (uc *Usecase) fromEnglish(ctx context.Context, text, lang string) string {
	if lang == "en" {
		return text
	}
	translated, err := uc.translator.TranslateTo(ctx, text, lang)
	if err != nil {
		ctxzap.Warn(ctx, "response translation failed, returning English", zap.Error(err))
		return text
	}
	return translated
}

func (uc *Usecase) answerMath(ctx context.Context, question, lang string) entity.Answer {
	text, err := uc.generator.Generate(ctx, mathPrompt(question))
	if err != nil {
		ctxzap.Warn(ctx, "math generation failed", zap.Error(err))
		return entity.TextAnswer(fmt.Sprintf("Error: %v", err))
	}
	return entity.TextAnswer(uc.fromEnglish(ctx, text, lang))
}

// youtubePayload is the JSON shape the generator is instructed to emit.
type youtubePayload struct {
	Description string         `json:"description"`
	Videos      []entity.Video `json:"videos"`
}

func (uc *Usecase) answerYoutube(ctx context.Context, question, lang string) entity.Answer {
	text, err := uc.generator.Generate(ctx, youtubePrompt(question))
	if err != nil {
		ctxzap.Warn(ctx, "youtube generation failed", zap.Error(err))
		return entity.VideosAnswer(fmt.Sprintf("Error: %v", err), nil)
	}

	span := extractJSONObject(text)
	if span == "" {
		return entity.VideosAnswer(uc.fromEnglish(ctx, text, lang), nil)
	}

	var payload youtubePayload
	if err := json.Unmarshal([]byte(span), &payload); err != nil {
		ctxzap.Warn(ctx, "youtube payload parse failed", zap.Error(err))
		return entity.VideosAnswer(uc.fromEnglish(ctx, text, lang), nil)
	}

	// Video titles stay in English; only the description crosses the bridge.
	return entity.VideosAnswer(uc.fromEnglish(ctx, payload.Description, lang), payload.Videos)
}

func (uc *Usecase) answerDiagram(ctx context.Context, tenant entity.Tenant, question, lang string) entity.Answer {
	audience := audienceFor(tenant)

	description, err := uc.generator.Generate(ctx, diagramDescriptionPrompt(question, audience))
	if err != nil {
		ctxzap.Warn(ctx, "diagram description generation failed", zap.Error(err))
		return entity.TextAnswer(fmt.Sprintf("Error: %v", err))
	}

	translated := uc.fromEnglish(ctx, description, lang)

	image, err := uc.generator.GenerateImage(ctx, diagramImagePrompt(description, question, audience))
	if err != nil {
		ctxzap.Warn(ctx, "diagram image generation failed, returning description only", zap.Error(err))
		return entity.TextAnswer(translated)
	}
	return entity.ImageAnswer(translated, image)
}

func (uc *Usecase) answerFromCorpus(ctx context.Context, tenant entity.Tenant, mode entity.ResponseMode, question, lang string) entity.Answer {
	chunks, err := uc.retriever.Retrieve(ctx, tenant.ID, question, uc.topK)
	if err != nil {
		ctxzap.Warn(ctx, "retrieval failed", zap.Error(err))
		return entity.TextAnswer(fmt.Sprintf("Error: %v", err))
	}

	prompt := buildPrompt(mode, question, strings.Join(chunks, "\n"))
	text, err := uc.generator.Generate(ctx, prompt)
	if err != nil {
		ctxzap.Warn(ctx, "answer generation failed", zap.Error(err))
		return entity.TextAnswer(fmt.Sprintf("Error: %v", err))
	}
	return entity.TextAnswer(uc.fromEnglish(ctx, text, lang))
}

// audienceFor names the student audience used in diagram prompts.
func audienceFor(tenant entity.Tenant) string {
	if tenant.Name != "" {
		return tenant.Name
	}
	return tenant.ID
}
