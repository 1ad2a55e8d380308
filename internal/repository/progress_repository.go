package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"quizcraft/internal/domain"
)

// ProgressDatabaseAdapter implements domain.ProgressRepository using sqlx.DB
type ProgressDatabaseAdapter struct {
	db *sqlx.DB
}

// NewProgressDatabaseAdapter creates a new instance of ProgressDatabaseAdapter
func NewProgressDatabaseAdapter(db *sqlx.DB) domain.ProgressRepository {
	return &ProgressDatabaseAdapter{db: db}
}

// Upsert implements domain.ProgressRepository with an Oracle MERGE keyed
// on (owner_id, content_id).
func (a *ProgressDatabaseAdapter) Upsert(ctx context.Context, record *domain.ProgressRecord) error {
	if record == nil {
		return fmt.Errorf("cannot upsert nil progress record")
	}

	query := `MERGE INTO learner_progress p
	USING (SELECT :1 owner_id, :2 content_id FROM dual) src
	ON (p.owner_id = src.owner_id AND p.content_id = src.content_id)
	WHEN MATCHED THEN
		UPDATE SET p.content_type = :3, p.status = :4, p.progress = :5, p.updated_at = :6
	WHEN NOT MATCHED THEN
		INSERT (owner_id, content_id, content_type, status, progress, updated_at)
		VALUES (:7, :8, :9, :10, :11, :12)`

	now := time.Now()
	_, err := a.db.ExecContext(ctx, query,
		record.OwnerID, record.ContentID,
		record.ContentType, record.Status, record.Progress, now,
		record.OwnerID, record.ContentID, record.ContentType, record.Status, record.Progress, now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert progress for owner %s content %s: %w",
			record.OwnerID, record.ContentID, err)
	}
	return nil
}
