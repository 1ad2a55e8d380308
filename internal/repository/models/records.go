package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quizcraft/internal/domain"
)

// QuestionList stores a question/answer list as a JSON CLOB column.
type QuestionList []domain.QuizQuestion

// Value implements the driver.Valuer interface
func (q QuestionList) Value() (driver.Value, error) {
	if q == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}
	// go-ora binds CLOBs from strings, not []byte
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (q *QuestionList) Scan(value interface{}) error {
	bytesToParse, err := clobBytes(value, "QuestionList")
	if err != nil {
		return err
	}
	if bytesToParse == nil {
		*q = QuestionList{}
		return nil
	}
	return json.Unmarshal(bytesToParse, q)
}

// AnswerList stores an evaluation list as a JSON CLOB column.
type AnswerList []domain.AnswerEvaluation

// Value implements the driver.Valuer interface
func (a AnswerList) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (a *AnswerList) Scan(value interface{}) error {
	bytesToParse, err := clobBytes(value, "AnswerList")
	if err != nil {
		return err
	}
	if bytesToParse == nil {
		*a = AnswerList{}
		return nil
	}
	return json.Unmarshal(bytesToParse, a)
}

// clobBytes normalizes a scanned CLOB value. A nil return with nil error
// means the column was NULL or empty.
func clobBytes(value interface{}, typeName string) ([]byte, error) {
	if value == nil {
		return nil, nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return nil, errors.New(typeName + " Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		return nil, nil
	}
	return bytesToParse, nil
}

// QuizRecord mirrors the quizzes table.
type QuizRecord struct {
	ID        string       `db:"id"`
	OwnerID   string       `db:"owner_id"`
	ContentID string       `db:"content_id"`
	Questions QuestionList `db:"questions"`
	CreatedAt time.Time    `db:"created_at"`
}

func (QuizRecord) TableName() string {
	return "quizzes"
}

// Challenge mirrors the challenges table.
type Challenge struct {
	ID        string       `db:"id"`
	OwnerID   string       `db:"owner_id"`
	ContentID string       `db:"content_id"`
	Title     string       `db:"title"`
	Questions QuestionList `db:"questions"`
	Status    string       `db:"status"`
	CreatedAt time.Time    `db:"created_at"`
}

func (Challenge) TableName() string {
	return "challenges"
}

// ScoreRecord mirrors the scores table.
type ScoreRecord struct {
	ID          string     `db:"id"`
	OwnerID     string     `db:"owner_id"`
	ChallengeID string     `db:"challenge_id"`
	Score       int        `db:"score"`
	Answers     AnswerList `db:"answers"`
	CreatedAt   time.Time  `db:"created_at"`
}

func (ScoreRecord) TableName() string {
	return "scores"
}

// ProgressRecord mirrors the learner_progress table.
type ProgressRecord struct {
	OwnerID     string    `db:"owner_id"`
	ContentID   string    `db:"content_id"`
	ContentType string    `db:"content_type"`
	Status      string    `db:"status"`
	Progress    int       `db:"progress"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (ProgressRecord) TableName() string {
	return "learner_progress"
}

// LearningContent mirrors the learning_contents table.
type LearningContent struct {
	ID        string    `db:"id"`
	OwnerID   string    `db:"owner_id"`
	Title     string    `db:"title"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
}

func (LearningContent) TableName() string {
	return "learning_contents"
}

// Learner mirrors the learners table.
type Learner struct {
	ID        string         `db:"id"`
	GoogleID  sql.NullString `db:"google_id"`
	Email     string         `db:"email"`
	Name      sql.NullString `db:"name"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (Learner) TableName() string {
	return "learners"
}
