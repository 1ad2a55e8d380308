// Package validator enforces the output contract on raw model responses.
// Exactly two parse strategies are allowed: a top-level JSON array, or a
// JSON object wrapping exactly one valid array. Anything else is rejected
// whole; no element is ever coerced or partially accepted.
package validator

import (
	"encoding/json"
	"fmt"
	"math"

	"quizcraft/internal/domain"
)

// ParseErrorKind classifies why a model response was rejected.
type ParseErrorKind string

const (
	KindNotJSON       ParseErrorKind = "not-json"
	KindShapeMismatch ParseErrorKind = "shape-mismatch"
)

// ParseError reports a rejected model response. Detail is for logs only
// and never reaches the caller as data.
type ParseError struct {
	Kind   ParseErrorKind
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("model output rejected (%s): %s", e.Kind, e.Detail)
}

func notJSON(detail string) *ParseError {
	return &ParseError{Kind: KindNotJSON, Detail: detail}
}

func shapeMismatch(detail string) *ParseError {
	return &ParseError{Kind: KindShapeMismatch, Detail: detail}
}

// ValidateQuizQuestions parses rawText into quiz questions. When
// expectedCount is positive the array length must match it exactly.
func ValidateQuizQuestions(rawText string, expectedCount int) ([]domain.QuizQuestion, error) {
	elements, err := extractArray(rawText, validQuestionElement)
	if err != nil {
		return nil, err
	}
	if expectedCount > 0 && len(elements) != expectedCount {
		return nil, shapeMismatch(fmt.Sprintf("expected %d questions, got %d", expectedCount, len(elements)))
	}

	questions := make([]domain.QuizQuestion, len(elements))
	for i, el := range elements {
		if err := json.Unmarshal(el, &questions[i]); err != nil {
			return nil, shapeMismatch(err.Error())
		}
	}
	return questions, nil
}

// ValidateEvaluations parses rawText into answer evaluations.
func ValidateEvaluations(rawText string) ([]domain.AnswerEvaluation, error) {
	elements, err := extractArray(rawText, validEvaluationElement)
	if err != nil {
		return nil, err
	}

	evaluations := make([]domain.AnswerEvaluation, len(elements))
	for i, el := range elements {
		if err := json.Unmarshal(el, &evaluations[i]); err != nil {
			return nil, shapeMismatch(err.Error())
		}
	}
	return evaluations, nil
}

// Score derives the integer score from a validated evaluation list.
// An empty list scores 0.
func Score(evaluations []domain.AnswerEvaluation) int {
	total := len(evaluations)
	if total == 0 {
		return 0
	}
	correct := 0
	for _, e := range evaluations {
		if e.IsCorrect {
			correct++
		}
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

// extractArray applies the two parse strategies and returns the raw array
// elements once every one of them passes validElement.
func extractArray(rawText string, validElement func(json.RawMessage) bool) ([]json.RawMessage, error) {
	var value json.RawMessage
	if err := json.Unmarshal([]byte(rawText), &value); err != nil {
		return nil, notJSON(err.Error())
	}

	// Strategy 1: the value is the array itself.
	var elements []json.RawMessage
	if err := json.Unmarshal(value, &elements); err == nil {
		if !allValid(elements, validElement) {
			return nil, shapeMismatch("top-level array has invalid elements")
		}
		return elements, nil
	}

	// Strategy 2: an object wrapping exactly one valid array. Only the
	// object's own keys are searched; nothing nested deeper counts.
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(value, &wrapper); err != nil {
		return nil, shapeMismatch("value is neither an array nor an object")
	}

	var found []json.RawMessage
	matches := 0
	for _, raw := range wrapper {
		var candidate []json.RawMessage
		if err := json.Unmarshal(raw, &candidate); err != nil {
			continue
		}
		if allValid(candidate, validElement) {
			found = candidate
			matches++
		}
	}
	if matches != 1 {
		return nil, shapeMismatch(fmt.Sprintf("object wraps %d valid arrays, need exactly 1", matches))
	}
	return found, nil
}

func allValid(elements []json.RawMessage, validElement func(json.RawMessage) bool) bool {
	if len(elements) == 0 {
		return false
	}
	for _, el := range elements {
		if !validElement(el) {
			return false
		}
	}
	return true
}

// validQuestionElement checks for exactly the fields question and answer,
// both non-empty strings.
func validQuestionElement(raw json.RawMessage) bool {
	fields, ok := objectFields(raw)
	if !ok || len(fields) != 2 {
		return false
	}
	return nonEmptyString(fields["question"]) && nonEmptyString(fields["answer"])
}

// validEvaluationElement checks for exactly question, userAnswer and
// isCorrect. userAnswer may be blank; the prompt marks blanks incorrect.
func validEvaluationElement(raw json.RawMessage) bool {
	fields, ok := objectFields(raw)
	if !ok || len(fields) != 3 {
		return false
	}
	return nonEmptyString(fields["question"]) &&
		isString(fields["userAnswer"]) &&
		isBool(fields["isCorrect"])
}

func objectFields(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, false
	}
	return fields, true
}

func nonEmptyString(raw json.RawMessage) bool {
	var s string
	if raw == nil || json.Unmarshal(raw, &s) != nil {
		return false
	}
	return s != ""
}

func isString(raw json.RawMessage) bool {
	var s string
	return raw != nil && json.Unmarshal(raw, &s) == nil
}

func isBool(raw json.RawMessage) bool {
	var b bool
	return raw != nil && json.Unmarshal(raw, &b) == nil
}
