package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"quizcraft/internal/domain"
	"quizcraft/internal/repository/models"
)

// ChallengeDatabaseAdapter implements domain.ChallengeRepository using sqlx.DB
type ChallengeDatabaseAdapter struct {
	db *sqlx.DB
}

// NewChallengeDatabaseAdapter creates a new instance of ChallengeDatabaseAdapter
func NewChallengeDatabaseAdapter(db *sqlx.DB) domain.ChallengeRepository {
	return &ChallengeDatabaseAdapter{db: db}
}

// GetByID implements domain.ChallengeRepository
func (a *ChallengeDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.Challenge, error) {
	var model models.Challenge
	query := `SELECT
		id "id",
		owner_id "owner_id",
		content_id "content_id",
		title "title",
		questions "questions",
		status "status",
		created_at "created_at"
	FROM challenges
	WHERE id = :1`

	err := a.db.GetContext(ctx, &model, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get challenge by ID %s: %w", id, err)
	}

	return &domain.Challenge{
		ID:        model.ID,
		OwnerID:   model.OwnerID,
		ContentID: model.ContentID,
		Title:     model.Title,
		Questions: []domain.QuizQuestion(model.Questions),
		Status:    model.Status,
		CreatedAt: model.CreatedAt,
	}, nil
}

// UpdateStatus implements domain.ChallengeRepository
func (a *ChallengeDatabaseAdapter) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE challenges SET status = :1 WHERE id = :2`

	_, err := a.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update challenge %s status: %w", id, err)
	}
	return nil
}
