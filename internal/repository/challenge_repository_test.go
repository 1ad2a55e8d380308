package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizcraft/internal/domain"
)

func TestChallengeAdapter_GetByID(t *testing.T) {
	t.Run("returns challenge with answer key", func(t *testing.T) {
		db, mock := setupTestDB(t)
		defer db.Close()
		adapter := NewChallengeDatabaseAdapter(db)

		questionsJSON := `[{"question":"Capital of France?","answer":"Paris"},{"question":"2+2?","answer":"4"}]`
		mock.ExpectQuery(`SELECT(.|\s)*FROM challenges(.|\s)*WHERE id = :1`).
			WithArgs("challenge1").
			WillReturnRows(sqlmock.NewRows(
				[]string{"id", "owner_id", "content_id", "title", "questions", "status", "created_at"}).
				AddRow("challenge1", "owner1", "content1", "Geography", questionsJSON,
					domain.ChallengeStatusPending, time.Now()))

		challenge, err := adapter.GetByID(context.Background(), "challenge1")
		require.NoError(t, err)
		require.NotNil(t, challenge)
		assert.Equal(t, "owner1", challenge.OwnerID)
		require.Len(t, challenge.Questions, 2)
		assert.Equal(t, "Paris", challenge.Questions[0].Answer)
	})

	t.Run("returns nil when missing", func(t *testing.T) {
		db, mock := setupTestDB(t)
		defer db.Close()
		adapter := NewChallengeDatabaseAdapter(db)

		mock.ExpectQuery(`SELECT(.|\s)*FROM challenges`).
			WithArgs("nope").
			WillReturnRows(sqlmock.NewRows(
				[]string{"id", "owner_id", "content_id", "title", "questions", "status", "created_at"}))

		challenge, err := adapter.GetByID(context.Background(), "nope")
		require.NoError(t, err)
		assert.Nil(t, challenge)
	})
}

func TestChallengeAdapter_UpdateStatus(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	adapter := NewChallengeDatabaseAdapter(db)

	mock.ExpectExec(`UPDATE challenges SET status = :1 WHERE id = :2`).
		WithArgs(domain.ChallengeStatusCompleted, "challenge1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := adapter.UpdateStatus(context.Background(), "challenge1", domain.ChallengeStatusCompleted)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
