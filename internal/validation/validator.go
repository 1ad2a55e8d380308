package validation

import (
	"regexp"
	"strings"

	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
)

const maxAnswerLength = 2000

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateQuizRequest validates the quiz generation request
func (v *Validator) ValidateGenerateQuizRequest(contentID string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(contentID) == "" {
		errors = append(errors, domain.ValidationError{Field: "contentId", Message: "contentId is required"})
	} else if !isValidULID(contentID) {
		errors = append(errors, domain.ValidationError{Field: "contentId", Message: "contentId must be a ULID"})
	}

	return errors
}

// ValidateSubmitScoreRequest validates the score submission request
func (v *Validator) ValidateSubmitScoreRequest(req *dto.SubmitScoreRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.ChallengeID) == "" {
		errors = append(errors, domain.ValidationError{Field: "challengeId", Message: "challengeId is required"})
	} else if !isValidULID(req.ChallengeID) {
		errors = append(errors, domain.ValidationError{Field: "challengeId", Message: "challengeId must be a ULID"})
	}

	if req.Answers == nil {
		errors = append(errors, domain.ValidationError{Field: "answers", Message: "answers must be an array"})
		return errors
	}

	for _, answer := range req.Answers {
		if strings.TrimSpace(answer.Question) == "" {
			errors = append(errors, domain.ValidationError{Field: "answers", Message: "every answer needs its question text"})
			break
		}
	}
	for _, answer := range req.Answers {
		if len(answer.Answer) > maxAnswerLength {
			errors = append(errors, domain.ValidationError{Field: "answers", Message: "an answer exceeds the 2000 character limit"})
			break
		}
	}

	return errors
}

// ValidateQuizIDParam validates a quiz id path parameter
func (v *Validator) ValidateQuizIDParam(quizID string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(quizID) == "" {
		errors = append(errors, domain.ValidationError{Field: "id", Message: "quiz id is required"})
	} else if !isValidULID(quizID) {
		errors = append(errors, domain.ValidationError{Field: "id", Message: "quiz id must be a ULID"})
	}

	return errors
}

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	if len(s) != 26 {
		return false
	}
	validULID := regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	return validULID.MatchString(s)
}
