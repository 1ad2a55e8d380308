// Package repository implements the domain persistence ports on sqlx
// against Oracle.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"quizcraft/internal/domain"
	"quizcraft/internal/repository/models"
	"quizcraft/internal/util"
)

// QuizRecordDatabaseAdapter implements domain.QuizRecordRepository using sqlx.DB
type QuizRecordDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuizRecordDatabaseAdapter creates a new instance of QuizRecordDatabaseAdapter
func NewQuizRecordDatabaseAdapter(db *sqlx.DB) domain.QuizRecordRepository {
	return &QuizRecordDatabaseAdapter{db: db}
}

const quizRecordColumns = `
	id "id",
	owner_id "owner_id",
	content_id "content_id",
	questions "questions",
	created_at "created_at"`

// GetByID implements domain.QuizRecordRepository
func (a *QuizRecordDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.QuizRecord, error) {
	var model models.QuizRecord
	query := `SELECT ` + quizRecordColumns + `
	FROM quizzes
	WHERE id = :1`

	err := a.db.GetContext(ctx, &model, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz record by ID %s: %w", id, err)
	}
	return toDomainQuizRecord(&model), nil
}

// GetByOwnerAndContent implements domain.QuizRecordRepository. This is the
// idempotency lookup; a nil record with nil error means no quiz exists yet.
func (a *QuizRecordDatabaseAdapter) GetByOwnerAndContent(ctx context.Context, ownerID, contentID string) (*domain.QuizRecord, error) {
	var model models.QuizRecord
	query := `SELECT ` + quizRecordColumns + `
	FROM quizzes
	WHERE owner_id = :1
	AND content_id = :2`

	err := a.db.GetContext(ctx, &model, query, ownerID, contentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz record for owner %s content %s: %w", ownerID, contentID, err)
	}
	return toDomainQuizRecord(&model), nil
}

// Create implements domain.QuizRecordRepository. The unique constraint on
// (owner_id, content_id) is the race arbiter; a violation comes back as
// domain.ErrDuplicateQuizRecord.
func (a *QuizRecordDatabaseAdapter) Create(ctx context.Context, record *domain.QuizRecord) error {
	if record == nil {
		return fmt.Errorf("cannot save nil quiz record")
	}
	model := toModelQuizRecord(record)
	if model.ID == "" {
		model.ID = util.NewULID()
	}
	model.CreatedAt = time.Now()

	query := `INSERT INTO quizzes (
		id, owner_id, content_id, questions, created_at
	) VALUES (
		:1, :2, :3, :4, :5
	)`

	_, err := a.db.ExecContext(ctx, query,
		model.ID,
		model.OwnerID,
		model.ContentID,
		model.Questions,
		model.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateQuizRecord
		}
		return fmt.Errorf("failed to insert quiz record: %w", err)
	}

	record.ID = model.ID
	record.CreatedAt = model.CreatedAt
	return nil
}

// isUniqueViolation detects Oracle's unique constraint error.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "ORA-00001")
}

func toDomainQuizRecord(m *models.QuizRecord) *domain.QuizRecord {
	return &domain.QuizRecord{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		ContentID: m.ContentID,
		Questions: []domain.QuizQuestion(m.Questions),
		CreatedAt: m.CreatedAt,
	}
}

func toModelQuizRecord(r *domain.QuizRecord) *models.QuizRecord {
	return &models.QuizRecord{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		ContentID: r.ContentID,
		Questions: models.QuestionList(r.Questions),
		CreatedAt: r.CreatedAt,
	}
}
