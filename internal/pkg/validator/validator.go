// Package validator checks request DTOs before they reach the use cases.
package validator

import (
	"fmt"

	"github.com/edurag/tutor-backend/internal/entity"
)

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateQuery validates the POST /query body.
func (v *Validator) ValidateQuery(req *entity.QueryHTTPRequest) error {
	if req.Question == "" {
		return fmt.Errorf("%w: question", entity.ErrMissingField)
	}
	if req.SystemID == "" {
		return fmt.Errorf("%w: system_id", entity.ErrMissingField)
	}
	return nil
}

// ValidateResetContext validates the POST /reset-context body.
func (v *Validator) ValidateResetContext(req *entity.ResetContextRequest) error {
	if req.SystemID == "" {
		return fmt.Errorf("%w: system_id", entity.ErrMissingField)
	}
	return nil
}

// ValidateGenerateQuiz validates the POST /generate-quiz body.
func (v *Validator) ValidateGenerateQuiz(req *entity.GenerateQuizRequest) error {
	if len(req.ChatHistory) == 0 {
		return fmt.Errorf("%w: chat_history", entity.ErrMissingField)
	}
	return nil
}

// ValidateVideoSearch validates the POST /youtube-search body.
func (v *Validator) ValidateVideoSearch(req *entity.VideoSearchRequest) error {
	if req.Query == "" {
		return fmt.Errorf("%w: query", entity.ErrMissingField)
	}
	return nil
}
