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

// LearnerDatabaseAdapter implements domain.LearnerRepository using sqlx.DB
type LearnerDatabaseAdapter struct {
	db *sqlx.DB
}

// NewLearnerDatabaseAdapter creates a new instance of LearnerDatabaseAdapter
func NewLearnerDatabaseAdapter(db *sqlx.DB) domain.LearnerRepository {
	return &LearnerDatabaseAdapter{db: db}
}

const learnerColumns = `
	id "id",
	google_id "google_id",
	email "email",
	name "name",
	created_at "created_at",
	updated_at "updated_at"`

// GetByID implements domain.LearnerRepository
func (a *LearnerDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.Learner, error) {
	var model models.Learner
	query := `SELECT ` + learnerColumns + `
	FROM learners
	WHERE id = :1`

	err := a.db.GetContext(ctx, &model, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get learner by ID %s: %w", id, err)
	}
	return toDomainLearner(&model), nil
}

// GetByGoogleID implements domain.LearnerRepository
func (a *LearnerDatabaseAdapter) GetByGoogleID(ctx context.Context, googleID string) (*domain.Learner, error) {
	var model models.Learner
	query := `SELECT ` + learnerColumns + `
	FROM learners
	WHERE google_id = :1`

	err := a.db.GetContext(ctx, &model, query, googleID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get learner by google ID: %w", err)
	}
	return toDomainLearner(&model), nil
}

// Create implements domain.LearnerRepository
func (a *LearnerDatabaseAdapter) Create(ctx context.Context, learner *domain.Learner) error {
	if learner == nil {
		return fmt.Errorf("cannot save nil learner")
	}
	if learner.ID == "" {
		learner.ID = util.NewULID()
	}
	now := time.Now()
	learner.CreatedAt = now
	learner.UpdatedAt = now

	query := `INSERT INTO learners (
		id, google_id, email, name, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6
	)`

	_, err := a.db.ExecContext(ctx, query,
		learner.ID,
		util.NullString(learner.GoogleID),
		learner.Email,
		util.NullString(learner.Name),
		learner.CreatedAt,
		learner.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert learner: %w", err)
	}
	return nil
}

// Update implements domain.LearnerRepository
func (a *LearnerDatabaseAdapter) Update(ctx context.Context, learner *domain.Learner) error {
	if learner == nil {
		return fmt.Errorf("cannot update nil learner")
	}
	learner.UpdatedAt = time.Now()

	query := `UPDATE learners
	SET google_id = :1, email = :2, name = :3, updated_at = :4
	WHERE id = :5`

	_, err := a.db.ExecContext(ctx, query,
		util.NullString(learner.GoogleID),
		learner.Email,
		util.NullString(learner.Name),
		learner.UpdatedAt,
		learner.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update learner %s: %w", learner.ID, err)
	}
	return nil
}

func toDomainLearner(m *models.Learner) *domain.Learner {
	return &domain.Learner{
		ID:        m.ID,
		GoogleID:  util.StringValue(m.GoogleID),
		Email:     m.Email,
		Name:      util.StringValue(m.Name),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
