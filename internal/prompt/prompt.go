// Package prompt renders the instruction templates sent to the generative
// model. Builders are pure functions so identical inputs always produce
// identical prompt text.
package prompt

import (
	"fmt"
	"strings"

	"quizcraft/internal/domain"
)

// MaxSourceChars caps how much source text is embedded in a generation
// prompt. Text beyond the cap is cut and marked, never silently dropped.
const MaxSourceChars = 8000

const truncationMarker = "\n[source truncated]"

// BuildGenerationPrompt renders the quiz generation instruction for the
// given title and extracted content text.
func BuildGenerationPrompt(title, contentText string, questionCount int) string {
	source := contentText
	if len(source) > MaxSourceChars {
		source = source[:MaxSourceChars] + truncationMarker
	}

	var b strings.Builder
	b.WriteString("You are a quiz generator for a learning platform.\n")
	fmt.Fprintf(&b, "Create exactly %d short-answer questions from the study material below.\n\n", questionCount)
	fmt.Fprintf(&b, "Title: %s\n", title)
	b.WriteString("Material:\n\"\"\"\n")
	b.WriteString(source)
	b.WriteString("\n\"\"\"\n\n")
	b.WriteString("Respond with a JSON array of exactly ")
	fmt.Fprintf(&b, "%d objects. Each object must have exactly two string fields:\n", questionCount)
	b.WriteString("  \"question\": the question text\n")
	b.WriteString("  \"answer\": the ideal answer\n")
	b.WriteString("Every question and every answer must be non-empty.\n")
	b.WriteString("Return ONLY the JSON array. No prose, no commentary, no markdown code fences.\n")
	return b.String()
}

// BuildScoringPrompt renders the semantic grading instruction for an
// answer key and the learner's submissions.
func BuildScoringPrompt(key []domain.QuizQuestion, submissions []domain.AnswerEvaluation) string {
	var b strings.Builder
	b.WriteString("You are grading a learner's quiz answers.\n")
	b.WriteString("Judge each answer on meaning, not exact wording. ")
	b.WriteString("An answer is correct when it conveys the same fact as the ideal answer. ")
	b.WriteString("A blank answer is always incorrect.\n\n")
	b.WriteString("Questions and ideal answers:\n")
	for i, q := range key {
		fmt.Fprintf(&b, "%d. Q: %s\n   Ideal: %s\n", i+1, q.Question, q.Answer)
	}
	b.WriteString("\nLearner submissions:\n")
	for i, s := range submissions {
		fmt.Fprintf(&b, "%d. Q: %s\n   Answer: %s\n", i+1, s.Question, s.UserAnswer)
	}
	b.WriteString("\nRespond with a JSON array containing one object per question, in order. ")
	b.WriteString("Each object must have exactly these fields:\n")
	b.WriteString("  \"question\": string, the question text\n")
	b.WriteString("  \"userAnswer\": string, the learner's answer as submitted\n")
	b.WriteString("  \"isCorrect\": boolean\n")
	b.WriteString("Return ONLY the JSON array. No prose, no commentary, no markdown code fences.\n")
	return b.String()
}
