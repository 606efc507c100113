package query

import (
	"context"
	"fmt"
	"testing"

	"github.com/edurag/tutor-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validQuizJSON = `[
  {
    "id": "q1",
    "question": "What gas do plants absorb?",
    "options": ["Oxygen", "Carbon dioxide", "Nitrogen", "Helium"],
    "correctAnswer": 1,
    "explanation": "Plants absorb carbon dioxide for photosynthesis."
  },
  {
    "id": "q2",
    "question": "What is H2O?",
    "options": ["Salt", "Sugar", "Water", "Acid"],
    "correctAnswer": 2,
    "explanation": "H2O is the chemical formula of water."
  }
]`

var history = []entity.ChatMessage{
	{Role: "user", Content: "teach me about photosynthesis"},
	{Role: "assistant", Content: "plants convert light into energy"},
}

func TestGenerateQuizParsesValidOutput(t *testing.T) {
	env := newTestEnv(t)
	env.generator.reply = func(string) (string, error) { return validQuizJSON, nil }

	quiz := env.uc.GenerateQuiz(context.Background(), history)

	require.Len(t, quiz, 2)
	assert.Equal(t, "q1", quiz[0].ID)
	assert.Equal(t, 1, quiz[0].CorrectAnswer)
}

func TestGenerateQuizStripsCodeFences(t *testing.T) {
	env := newTestEnv(t)
	env.generator.reply = func(string) (string, error) {
		return "```json\n" + validQuizJSON + "\n```", nil
	}

	quiz := env.uc.GenerateQuiz(context.Background(), history)
	require.Len(t, quiz, 2)
	assert.Equal(t, "q2", quiz[1].ID)
}

func TestGenerateQuizPromptContainsHistory(t *testing.T) {
	env := newTestEnv(t)
	env.generator.reply = func(string) (string, error) { return validQuizJSON, nil }

	env.uc.GenerateQuiz(context.Background(), history)

	require.Len(t, env.generator.prompts, 1)
	assert.Contains(t, env.generator.prompts[0], "photosynthesis")
	assert.Contains(t, env.generator.prompts[0], "correctAnswer")
}

func TestGenerateQuizFallbackOnGeneratorError(t *testing.T) {
	env := newTestEnv(t)
	env.generator.reply = func(string) (string, error) {
		return "", fmt.Errorf("model unavailable")
	}

	quiz := env.uc.GenerateQuiz(context.Background(), history)
	assert.Equal(t, entity.FallbackQuiz(), quiz)
}

func TestGenerateQuizFallbackOnNonJSON(t *testing.T) {
	env := newTestEnv(t)
	env.generator.reply = func(string) (string, error) {
		return "Here are some questions: 1) What is water?", nil
	}

	quiz := env.uc.GenerateQuiz(context.Background(), history)
	assert.Equal(t, entity.FallbackQuiz(), quiz)
}

func TestGenerateQuizFallbackOnWrongOptionCount(t *testing.T) {
	env := newTestEnv(t)
	env.generator.reply = func(string) (string, error) {
		return `[{"id":"q1","question":"Q?","options":["a","b","c"],"correctAnswer":0,"explanation":"e"}]`, nil
	}

	quiz := env.uc.GenerateQuiz(context.Background(), history)
	assert.Equal(t, entity.FallbackQuiz(), quiz)
}

func TestGenerateQuizFallbackOnBadAnswerIndex(t *testing.T) {
	env := newTestEnv(t)
	env.generator.reply = func(string) (string, error) {
		return `[{"id":"q1","question":"Q?","options":["a","b","c","d"],"correctAnswer":7,"explanation":"e"}]`, nil
	}

	quiz := env.uc.GenerateQuiz(context.Background(), history)
	assert.Equal(t, entity.FallbackQuiz(), quiz)
}

func TestParseQuizRejectsEmptyArray(t *testing.T) {
	_, err := parseQuiz("[]")
	assert.ErrorIs(t, err, entity.ErrInvalidParameter)
}
