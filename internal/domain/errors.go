package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Pipeline specific errors
	CodeQuizNotFound        ErrorCode = "QUIZ_NOT_FOUND"
	CodeChallengeNotFound   ErrorCode = "CHALLENGE_NOT_FOUND"
	CodeContentNotFound     ErrorCode = "CONTENT_NOT_FOUND"
	CodeInsufficientContent ErrorCode = "INSUFFICIENT_CONTENT"
	CodeModelUnavailable    ErrorCode = "MODEL_UNAVAILABLE"
	CodeGenerationFailed    ErrorCode = "GENERATION_FAILED"
	CodeScoringFailed       ErrorCode = "SCORING_FAILED"
)

// DomainError represents a domain-specific error. Context carries
// structured details safe to expose to callers; Cause is internal only.
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Context map[string]interface{} `json:"context,omitempty"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
		Context: e.Context,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithContext attaches a key/value detail and returns the same error.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors aggregates field errors so a request can report all of
// them at once.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewForbiddenError(message string) *DomainError {
	return NewError(CodeForbidden, message, nil)
}

func NewMissingFieldError(field string) *DomainError {
	return NewError(CodeMissingField, fmt.Sprintf("Required field is missing: %s", field), nil).
		WithContext("field", field)
}

func NewInvalidFormatError(field, expected string) *DomainError {
	return NewError(CodeInvalidFormat, fmt.Sprintf("Invalid format for field %s, expected %s", field, expected), nil).
		WithContext("field", field).
		WithContext("expected", expected)
}

func NewOutOfRangeError(field string, min, max interface{}) *DomainError {
	return NewError(CodeOutOfRange, fmt.Sprintf("Field %s is out of range", field), nil).
		WithContext("field", field).
		WithContext("min", min).
		WithContext("max", max)
}

func NewChallengeNotFoundError(challengeID string) *DomainError {
	return NewError(CodeChallengeNotFound, "Challenge not found", nil).
		WithContext("challenge_id", challengeID)
}

func NewContentNotFoundError(contentID string) *DomainError {
	return NewError(CodeContentNotFound, "Learning content not found", nil).
		WithContext("content_id", contentID)
}

func NewQuizNotFoundError(quizID string) *DomainError {
	return NewError(CodeQuizNotFound, "Quiz not found", nil).
		WithContext("quiz_id", quizID)
}

func NewInsufficientContentError(length, minimum int) *DomainError {
	return NewError(CodeInsufficientContent, "Content has too little text to generate a quiz from", nil).
		WithContext("extracted_length", length).
		WithContext("minimum_length", minimum)
}

func NewModelUnavailableError(cause error) *DomainError {
	return NewError(CodeModelUnavailable, "Generative model service is unavailable", cause)
}

func NewGenerationFailedError(cause error) *DomainError {
	return NewError(CodeGenerationFailed, "Quiz generation produced no usable result", cause)
}

func NewScoringFailedError(cause error) *DomainError {
	return NewError(CodeScoringFailed, "Answer scoring produced no usable result", cause)
}

// ErrDuplicateQuizRecord signals the persistence layer refused a second
// QuizRecord for the same (owner, content) key. The generation flow treats
// it as losing a race, re-reads, and returns the surviving record.
var ErrDuplicateQuizRecord = errors.New("quiz record already exists for owner and content")
