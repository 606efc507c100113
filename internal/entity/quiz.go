package entity

import "fmt"

// QuizQuestion is one multiple-choice question generated from a chat
// history. The wire format is fixed: exactly four options and a correct
// answer index in [0,3].
type QuizQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// Validate checks the fixed quiz shape for a single question.
func (q *QuizQuestion) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("%w: id", ErrMissingField)
	}
	if q.Question == "" {
		return fmt.Errorf("%w: question", ErrMissingField)
	}
	if len(q.Options) != 4 {
		return fmt.Errorf("%w: must have exactly 4 options, got %d", ErrInvalidParameter, len(q.Options))
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer > 3 {
		return fmt.Errorf("%w: correctAnswer must be between 0 and 3, got %d", ErrInvalidParameter, q.CorrectAnswer)
	}
	if q.Explanation == "" {
		return fmt.Errorf("%w: explanation", ErrMissingField)
	}
	return nil
}

// ValidateQuiz checks every question of a generated quiz.
func ValidateQuiz(quiz []QuizQuestion) error {
	if len(quiz) == 0 {
		return fmt.Errorf("%w: quiz contains no questions", ErrInvalidParameter)
	}
	for i := range quiz {
		if err := quiz[i].Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}

// FallbackQuiz returns the fixed quiz used when the generator output cannot
// be parsed or fails validation. Malformed output never reaches the caller.
func FallbackQuiz() []QuizQuestion {
	return []QuizQuestion{
		{
			ID:            "q1",
			Question:      "What is the capital of France?",
			Options:       []string{"London", "Berlin", "Paris", "Madrid"},
			CorrectAnswer: 2,
			Explanation:   "Paris is the capital city of France.",
		},
		{
			ID:            "q2",
			Question:      "Which planet is closest to the Sun?",
			Options:       []string{"Venus", "Mercury", "Mars", "Earth"},
			CorrectAnswer: 1,
			Explanation:   "Mercury is the closest planet to the Sun in our solar system.",
		},
	}
}
