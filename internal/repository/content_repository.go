package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"quizcraft/internal/domain"
	"quizcraft/internal/repository/models"
)

// ContentDatabaseAdapter implements domain.ContentRepository using sqlx.DB
type ContentDatabaseAdapter struct {
	db *sqlx.DB
}

// NewContentDatabaseAdapter creates a new instance of ContentDatabaseAdapter
func NewContentDatabaseAdapter(db *sqlx.DB) domain.ContentRepository {
	return &ContentDatabaseAdapter{db: db}
}

// GetByID implements domain.ContentRepository
func (a *ContentDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.LearningContent, error) {
	var model models.LearningContent
	query := `SELECT
		id "id",
		owner_id "owner_id",
		title "title",
		body "body",
		created_at "created_at"
	FROM learning_contents
	WHERE id = :1`

	err := a.db.GetContext(ctx, &model, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get learning content by ID %s: %w", id, err)
	}

	return &domain.LearningContent{
		ID:        model.ID,
		OwnerID:   model.OwnerID,
		Title:     model.Title,
		Body:      model.Body,
		CreatedAt: model.CreatedAt,
	}, nil
}
