package domain

import "time"

// QuizQuestion is one generated question with its ideal answer.
type QuizQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QuizRecord is the persisted result of one quiz generation. At most one
// exists per (OwnerID, ContentID); it is never mutated after creation.
type QuizRecord struct {
	ID        string
	OwnerID   string
	ContentID string
	Questions []QuizQuestion
	CreatedAt time.Time
}

// Challenge status values.
const (
	ChallengeStatusPending   = "pending"
	ChallengeStatusCompleted = "completed"
)

// Challenge is a content item paired with an idealized answer key. It is
// authored elsewhere; this subsystem only reads it and flips Status to
// completed after a successful scoring run.
type Challenge struct {
	ID        string
	OwnerID   string
	ContentID string
	Title     string
	Questions []QuizQuestion
	Status    string
	CreatedAt time.Time
}

// AnswerSubmission is one answer as submitted by a learner.
type AnswerSubmission struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// AnswerEvaluation is the model's verdict on one submitted answer.
type AnswerEvaluation struct {
	Question   string `json:"question"`
	UserAnswer string `json:"userAnswer"`
	IsCorrect  bool   `json:"isCorrect"`
}

// ScoreRecord is the persisted result of one scoring submission. Score is
// always an integer in [0,100] derived from the IsCorrect counts.
type ScoreRecord struct {
	ID          string
	OwnerID     string
	ChallengeID string
	Score       int
	Answers     []AnswerEvaluation
	CreatedAt   time.Time
}

// Progress status values.
const (
	ProgressStatusNotStarted = "not-started"
	ProgressStatusInProgress = "in-progress"
	ProgressStatusCompleted  = "completed"
)

// ProgressRecord tracks a learner's completion state for a content item.
// Both pipeline flows upsert it as a best-effort side effect.
type ProgressRecord struct {
	OwnerID     string
	ContentID   string
	ContentType string
	Status      string
	Progress    int
	UpdatedAt   time.Time
}

// LearningContent is a structured document a quiz is generated from.
// Body holds the raw block-document JSON produced by the editor.
type LearningContent struct {
	ID        string
	OwnerID   string
	Title     string
	Body      string
	CreatedAt time.Time
}

// Learner is an authenticated end user.
type Learner struct {
	ID        string
	GoogleID  string
	Email     string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
