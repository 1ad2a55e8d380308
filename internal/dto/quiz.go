package dto

import (
	"time"

	"quizcraft/internal/domain"
)

// GenerateQuizRequest asks for a quiz over one learning content item.
type GenerateQuizRequest struct {
	ContentID string `json:"contentId"`
}

// QuizQuestionResponse is one question of a generated quiz.
type QuizQuestionResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QuizResponse is the external view of a QuizRecord.
type QuizResponse struct {
	ID        string                 `json:"id"`
	ContentID string                 `json:"contentId"`
	Questions []QuizQuestionResponse `json:"questions"`
	CreatedAt time.Time              `json:"createdAt"`
}

// NewQuizResponse converts a domain record to its external view.
func NewQuizResponse(record *domain.QuizRecord) *QuizResponse {
	questions := make([]QuizQuestionResponse, len(record.Questions))
	for i, q := range record.Questions {
		questions[i] = QuizQuestionResponse{Question: q.Question, Answer: q.Answer}
	}
	return &QuizResponse{
		ID:        record.ID,
		ContentID: record.ContentID,
		Questions: questions,
		CreatedAt: record.CreatedAt,
	}
}

// AnswerSubmissionRequest is one submitted answer.
type AnswerSubmissionRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// SubmitScoreRequest submits a learner's answers for a challenge.
type SubmitScoreRequest struct {
	ChallengeID string                    `json:"challengeId"`
	Answers     []AnswerSubmissionRequest `json:"answers"`
}

// AnswerEvaluationResponse is one graded answer.
type AnswerEvaluationResponse struct {
	Question   string `json:"question"`
	UserAnswer string `json:"userAnswer"`
	IsCorrect  bool   `json:"isCorrect"`
}

// ScoreResponse is the external view of a ScoreRecord.
type ScoreResponse struct {
	ID          string                     `json:"id"`
	ChallengeID string                     `json:"challengeId"`
	Score       int                        `json:"score"`
	Answers     []AnswerEvaluationResponse `json:"answers"`
	CreatedAt   time.Time                  `json:"createdAt"`
}

// NewScoreResponse converts a domain record to its external view.
func NewScoreResponse(record *domain.ScoreRecord) *ScoreResponse {
	answers := make([]AnswerEvaluationResponse, len(record.Answers))
	for i, a := range record.Answers {
		answers[i] = AnswerEvaluationResponse{
			Question:   a.Question,
			UserAnswer: a.UserAnswer,
			IsCorrect:  a.IsCorrect,
		}
	}
	return &ScoreResponse{
		ID:          record.ID,
		ChallengeID: record.ChallengeID,
		Score:       record.Score,
		Answers:     answers,
		CreatedAt:   record.CreatedAt,
	}
}
