package query

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/edurag/tutor-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// GenerateQuiz builds a multiple-choice quiz from a chat history. Every
// failure path, from generation through validation, returns the fixed
// fallback quiz; a malformed quiz never reaches the caller.
func (uc *Usecase) GenerateQuiz(ctx context.Context, chatHistory []entity.ChatMessage) []entity.QuizQuestion {
	prompt, err := quizPrompt(chatHistory)
	if err != nil {
		ctxzap.Warn(ctx, "quiz prompt construction failed", zap.Error(err))
		return entity.FallbackQuiz()
	}

	text, err := uc.generator.Generate(ctx, prompt)
	if err != nil {
		ctxzap.Warn(ctx, "quiz generation failed", zap.Error(err))
		return entity.FallbackQuiz()
	}

	quiz, err := parseQuiz(text)
	if err != nil {
		ctxzap.Warn(ctx, "quiz output rejected", zap.Error(err))
		return entity.FallbackQuiz()
	}
	return quiz
}

// parseQuiz strips code fences, extracts the JSON array span and validates
// the fixed quiz shape.
func parseQuiz(text string) ([]entity.QuizQuestion, error) {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	span := extractJSONArray(cleaned)
	if span == "" {
		return nil, fmt.Errorf("%w: no JSON array in generator output", entity.ErrParseFailed)
	}

	var quiz []entity.QuizQuestion
	if err := json.Unmarshal([]byte(span), &quiz); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrParseFailed, err)
	}
	if err := entity.ValidateQuiz(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func quizPrompt(chatHistory []entity.ChatMessage) (string, error) {
	history, err := json.MarshalIndent(chatHistory, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode chat history: %w", err)
	}

	return fmt.Sprintf(`Based on the following conversation history, generate 5 multiple-choice questions that test understanding of the discussed topics.
Each question MUST have EXACTLY 4 options and include an explanation for the correct answer.

IMPORTANT FORMAT RULES:
1. Each question MUST have exactly 4 options, no more and no less
2. The correctAnswer must be an integer between 0 and 3 (representing the index of the correct option)
3. Return ONLY the JSON array, without any markdown formatting or code block markers
4. Each option should be a single, clear answer choice

Format your response as a JSON array of question objects, where each object has:
- id: a unique string identifier (q1, q2, etc.)
- question: the question text
- options: array of EXACTLY 4 possible answers
- correctAnswer: index of the correct answer (0-3)
- explanation: explanation of why the answer is correct

Conversation History:
%s

Your response must be a valid JSON array that looks exactly like this:
[
    {
        "id": "q1",
        "question": "Question text here",
        "options": ["Option A", "Option B", "Option C", "Option D"],
        "correctAnswer": 0,
        "explanation": "Explanation of why this is correct"
    }
]`, history), nil
}
