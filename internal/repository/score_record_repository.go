package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"quizcraft/internal/domain"
	"quizcraft/internal/repository/models"
	"quizcraft/internal/util"
)

// ScoreRecordDatabaseAdapter implements domain.ScoreRecordRepository using sqlx.DB
type ScoreRecordDatabaseAdapter struct {
	db *sqlx.DB
}

// NewScoreRecordDatabaseAdapter creates a new instance of ScoreRecordDatabaseAdapter
func NewScoreRecordDatabaseAdapter(db *sqlx.DB) domain.ScoreRecordRepository {
	return &ScoreRecordDatabaseAdapter{db: db}
}

const scoreRecordColumns = `
	id "id",
	owner_id "owner_id",
	challenge_id "challenge_id",
	score "score",
	answers "answers",
	created_at "created_at"`

// Create implements domain.ScoreRecordRepository. Every submission gets a
// fresh row; resubmission policy belongs to callers.
func (a *ScoreRecordDatabaseAdapter) Create(ctx context.Context, record *domain.ScoreRecord) error {
	if record == nil {
		return fmt.Errorf("cannot save nil score record")
	}
	model := toModelScoreRecord(record)
	if model.ID == "" {
		model.ID = util.NewULID()
	}
	model.CreatedAt = time.Now()

	query := `INSERT INTO scores (
		id, owner_id, challenge_id, score, answers, created_at
	) VALUES (
		:1, :2, :3, :4, :5, :6
	)`

	_, err := a.db.ExecContext(ctx, query,
		model.ID,
		model.OwnerID,
		model.ChallengeID,
		model.Score,
		model.Answers,
		model.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert score record: %w", err)
	}

	record.ID = model.ID
	record.CreatedAt = model.CreatedAt
	return nil
}

// GetByID implements domain.ScoreRecordRepository
func (a *ScoreRecordDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.ScoreRecord, error) {
	var model models.ScoreRecord
	query := `SELECT ` + scoreRecordColumns + `
	FROM scores
	WHERE id = :1`

	err := a.db.GetContext(ctx, &model, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get score record by ID %s: %w", id, err)
	}
	return toDomainScoreRecord(&model), nil
}

// ListByOwner implements domain.ScoreRecordRepository
func (a *ScoreRecordDatabaseAdapter) ListByOwner(ctx context.Context, ownerID string) ([]*domain.ScoreRecord, error) {
	var rows []models.ScoreRecord
	query := `SELECT ` + scoreRecordColumns + `
	FROM scores
	WHERE owner_id = :1
	ORDER BY created_at DESC`

	err := a.db.SelectContext(ctx, &rows, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list score records for owner %s: %w", ownerID, err)
	}

	records := make([]*domain.ScoreRecord, len(rows))
	for i := range rows {
		records[i] = toDomainScoreRecord(&rows[i])
	}
	return records, nil
}

func toDomainScoreRecord(m *models.ScoreRecord) *domain.ScoreRecord {
	return &domain.ScoreRecord{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		ChallengeID: m.ChallengeID,
		Score:       m.Score,
		Answers:     []domain.AnswerEvaluation(m.Answers),
		CreatedAt:   m.CreatedAt,
	}
}

func toModelScoreRecord(r *domain.ScoreRecord) *models.ScoreRecord {
	return &models.ScoreRecord{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		ChallengeID: r.ChallengeID,
		Score:       r.Score,
		Answers:     models.AnswerList(r.Answers),
		CreatedAt:   r.CreatedAt,
	}
}
