package query

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/edurag/tutor-backend/internal/config"
	"github.com/edurag/tutor-backend/internal/conversation"
	"github.com/edurag/tutor-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGenerator struct {
	prompts   []string
	reply     func(prompt string) (string, error)
	image     string
	imageErr  error
	imageUsed bool
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.reply != nil {
		return f.reply(prompt)
	}
	return "generated answer", nil
}

func (f *fakeGenerator) GenerateImage(_ context.Context, prompt string) (string, error) {
	f.imageUsed = true
	if f.imageErr != nil {
		return "", f.imageErr
	}
	return f.image, nil
}

type fakeTranslator struct {
	lang       string
	detectErr  error
	backErr    error
	backCalled int
}

func (f *fakeTranslator) DetectAndTranslate(_ context.Context, text string) (string, string, error) {
	if f.detectErr != nil {
		return "", "", f.detectErr
	}
	lang := f.lang
	if lang == "" {
		lang = "en"
	}
	return text, lang, nil
}

func (f *fakeTranslator) TranslateTo(_ context.Context, text, targetLang string) (string, error) {
	f.backCalled++
	if f.backErr != nil {
		return "", f.backErr
	}
	return "[" + targetLang + "] " + text, nil
}

type fakeRetriever struct {
	chunks []string
	err    error
	calls  int
	lastK  int
}

func (f *fakeRetriever) Retrieve(_ context.Context, _, _ string, k int) ([]string, error) {
	f.calls++
	f.lastK = k
	return f.chunks, f.err
}

type fakeVideos struct {
	videos []entity.Video
	err    error
}

func (f *fakeVideos) Search(context.Context, string) ([]entity.Video, error) {
	return f.videos, f.err
}

type alwaysIngested struct{}

func (alwaysIngested) IsIngested(entity.Tenant) bool { return true }

type neverIngested struct{}

func (neverIngested) IsIngested(entity.Tenant) bool { return false }

type testEnv struct {
	uc         *Usecase
	generator  *fakeGenerator
	translator *fakeTranslator
	retriever  *fakeRetriever
	contexts   *conversation.Store
}

func newTestEnv(t *testing.T, opts ...func(*testEnv)) *testEnv {
	t.Helper()
	env := &testEnv{
		generator:  &fakeGenerator{},
		translator: &fakeTranslator{},
		retriever:  &fakeRetriever{chunks: []string{"chunk one", "chunk two"}},
		contexts:   conversation.NewStore(),
	}
	for _, opt := range opts {
		opt(env)
	}

	tenants := config.Tenants{
		"7th": {ID: "7th", Name: "Class 7 Study Materials"},
	}
	env.uc = NewUsecase(
		tenants,
		env.generator,
		env.translator,
		env.retriever,
		&fakeVideos{},
		env.contexts,
		alwaysIngested{},
		5,
		zap.NewNop(),
	)
	return env
}

func ask(t *testing.T, env *testEnv, mode entity.ResponseMode, question string) *entity.QueryResult {
	t.Helper()
	result, err := env.uc.Ask(context.Background(), entity.QueryRequest{
		TenantID:     "7th",
		Question:     question,
		ResponseMode: mode,
		IsNewBlock:   true,
	})
	require.NoError(t, err)
	return result
}

func TestAskUnknownTenant(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.Ask(context.Background(), entity.QueryRequest{TenantID: "nope", Question: "q"})
	assert.ErrorIs(t, err, entity.ErrUnknownTenant)
}

func TestAskNotIngested(t *testing.T) {
	env := newTestEnv(t)
	env.uc.ingested = neverIngested{}

	_, err := env.uc.Ask(context.Background(), entity.QueryRequest{TenantID: "7th", Question: "q"})
	assert.ErrorIs(t, err, entity.ErrNotIngested)
}

func TestAskDefaultModeUsesRetrieval(t *testing.T) {
	env := newTestEnv(t)

	result := ask(t, env, entity.ModeExplain, "what is osmosis")

	assert.Equal(t, entity.AnswerKindText, result.Answer.Kind)
	assert.Equal(t, "generated answer", result.Answer.Text)
	assert.Equal(t, 1, env.retriever.calls)
	assert.Equal(t, 5, env.retriever.lastK)

	require.Len(t, env.generator.prompts, 1)
	assert.Contains(t, env.generator.prompts[0], "chunk one\nchunk two")
	assert.Contains(t, env.generator.prompts[0], "what is osmosis")
}

func TestAskUnknownModeFallsBackToDefaultTemplate(t *testing.T) {
	env := newTestEnv(t)

	ask(t, env, entity.ResponseMode("nonsense"), "question")

	require.Len(t, env.generator.prompts, 1)
	assert.Contains(t, env.generator.prompts[0], "clear and educational answer")
	assert.Equal(t, 1, env.retriever.calls)
}

func TestAskMathSkipsRetrieval(t *testing.T) {
	env := newTestEnv(t)
	env.generator.reply = func(string) (string, error) {
		return "1. Add\n2. Multiply\nAnswer: 42", nil
	}

	result := ask(t, env, entity.ModeMath, "2+2*20")

	assert.Equal(t, 0, env.retriever.calls)
	assert.Contains(t, result.Answer.Text, "Answer: 42")
	require.Len(t, env.generator.prompts, 1)
	assert.Contains(t, env.generator.prompts[0], "step by step")
}

func TestAskMathGenerationFailureContained(t *testing.T) {
	env := newTestEnv(t)
	env.generator.reply = func(string) (string, error) {
		return "", fmt.Errorf("model overloaded")
	}

	result := ask(t, env, entity.ModeMath, "2+2")

	assert.Equal(t, entity.AnswerKindText, result.Answer.Kind)
	assert.True(t, strings.HasPrefix(result.Answer.Text, "Error: "), result.Answer.Text)
}

func TestAskRetrievalFailureContained(t *testing.T) {
	env := newTestEnv(t)
	env.retriever.err = fmt.Errorf("index corrupted")
	env.retriever.chunks = nil

	result := ask(t, env, entity.ModeExplain, "q")

	assert.True(t, strings.HasPrefix(result.Answer.Text, "Error: "), result.Answer.Text)
	assert.Empty(t, env.generator.prompts)
}

func TestAskYoutubeParsesPayload(t *testing.T) {
	env := newTestEnv(t)
	env.generator.reply = func(string) (string, error) {
		return `Sure! Here you go: {"description": "Gravity pulls things down.", "videos": [{"title": "Gravity 101", "url": "https://www.youtube.com/watch?v=abc"}]} hope that helps`, nil
	}

	result := ask(t, env, entity.ModeYoutube, "what is gravity")

	assert.Equal(t, entity.AnswerKindWithVideos, result.Answer.Kind)
	assert.Equal(t, "Gravity pulls things down.", result.Answer.Text)
	require.Len(t, result.Answer.Videos, 1)
	assert.Equal(t, "Gravity 101", result.Answer.Videos[0].Title)
	assert.Equal(t, 0, env.retriever.calls)
}

func TestAskYoutubeNonJSONFallsBack(t *testing.T) {
	env := newTestEnv(t)
	env.generator.reply = func(string) (string, error) {
		return "I cannot produce JSON today, but gravity is a force.", nil
	}

	result := ask(t, env, entity.ModeYoutube, "what is gravity")

	assert.Equal(t, entity.AnswerKindWithVideos, result.Answer.Kind)
	assert.Contains(t, result.Answer.Text, "gravity is a force")
	assert.NotNil(t, result.Answer.Videos)
	assert.Empty(t, result.Answer.Videos)
}

func TestAskYoutubeMalformedJSONFallsBack(t *testing.T) {
	env := newTestEnv(t)
	env.generator.reply = func(string) (string, error) {
		return `{"description": "broken", "videos": [}`, nil
	}

	result := ask(t, env, entity.ModeYoutube, "q")

	assert.Equal(t, entity.AnswerKindWithVideos, result.Answer.Kind)
	assert.Empty(t, result.Answer.Videos)
	assert.Contains(t, result.Answer.Text, "broken")
}

func TestAskDiagramReturnsImage(t *testing.T) {
	env := newTestEnv(t)
	env.generator.reply = func(string) (string, error) {
		return "A cell with labeled nucleus.", nil
	}
	env.generator.image = "base64image=="

	result := ask(t, env, entity.ModeDiagram, "draw a cell")

	assert.Equal(t, entity.AnswerKindWithImage, result.Answer.Kind)
	assert.Equal(t, "A cell with labeled nucleus.", result.Answer.Text)
	assert.Equal(t, "base64image==", result.Answer.ImageBase64)
	assert.True(t, env.generator.imageUsed)
	assert.Equal(t, 0, env.retriever.calls)
}

func TestAskDiagramImageFailureReturnsDescription(t *testing.T) {
	env := newTestEnv(t)
	env.generator.reply = func(string) (string, error) {
		return "A labeled water cycle.", nil
	}
	env.generator.imageErr = fmt.Errorf("image service down")

	result := ask(t, env, entity.ModeDiagram, "draw the water cycle")

	assert.Equal(t, entity.AnswerKindText, result.Answer.Kind)
	assert.Equal(t, "A labeled water cycle.", result.Answer.Text)
}

func TestAskTranslatesBackForNonEnglish(t *testing.T) {
	env := newTestEnv(t)
	env.translator.lang = "hi"

	result := ask(t, env, entity.ModeExplain, "question in hindi")

	assert.Equal(t, "[hi] generated answer", result.Answer.Text)
	assert.Equal(t, 1, env.translator.backCalled)
}

func TestAskSkipsTranslationForEnglish(t *testing.T) {
	env := newTestEnv(t)

	ask(t, env, entity.ModeExplain, "plain english")

	assert.Equal(t, 0, env.translator.backCalled)
}

func TestAskDetectFailureFallsBackToEnglish(t *testing.T) {
	env := newTestEnv(t)
	env.translator.detectErr = fmt.Errorf("translator down")

	result := ask(t, env, entity.ModeExplain, "still answered")

	assert.Equal(t, "generated answer", result.Answer.Text)
	assert.Equal(t, 0, env.translator.backCalled)
}

func TestAskTranslateBackFailureReturnsEnglish(t *testing.T) {
	env := newTestEnv(t)
	env.translator.lang = "ta"
	env.translator.backErr = fmt.Errorf("translator down")

	result := ask(t, env, entity.ModeExplain, "q")

	assert.Equal(t, "generated answer", result.Answer.Text)
}

func TestAskRecordsConversation(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.uc.Ask(context.Background(), entity.QueryRequest{
		TenantID:     "7th",
		Question:     "first",
		ResponseMode: entity.ModeExplain,
		IsNewBlock:   true,
		IsInSyllabus: true,
	})
	require.NoError(t, err)
	assert.True(t, result.IsInSyllabus)

	result, err = env.uc.Ask(context.Background(), entity.QueryRequest{
		TenantID:     "7th",
		Question:     "second",
		ResponseMode: entity.ModeExplain,
	})
	require.NoError(t, err)
	assert.True(t, result.IsInSyllabus)

	ctx, ok := env.contexts.Get("7th")
	require.True(t, ok)
	assert.Equal(t, []string{"first", "second"}, ctx.QuestionBlock)
}

func TestResetContext(t *testing.T) {
	env := newTestEnv(t)

	ask(t, env, entity.ModeExplain, "q")
	env.uc.ResetContext("7th")

	_, ok := env.contexts.Get("7th")
	assert.False(t, ok)
}

func TestTopDoubtsContainment(t *testing.T) {
	env := newTestEnv(t)
	env.generator.reply = func(string) (string, error) {
		return "", fmt.Errorf("quota exceeded")
	}

	suggestions := env.uc.TopDoubts(context.Background())
	assert.Contains(t, suggestions, "Error generating suggestions")
}
