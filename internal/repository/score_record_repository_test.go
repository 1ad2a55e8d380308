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

func scoreRecordRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "owner_id", "challenge_id", "score", "answers", "created_at"})
}

func TestScoreRecordAdapter_Create(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	adapter := NewScoreRecordDatabaseAdapter(db)

	mock.ExpectExec(`INSERT INTO scores`).
		WithArgs(sqlmock.AnyArg(), "owner1", "challenge1", 50, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	record := &domain.ScoreRecord{
		OwnerID:     "owner1",
		ChallengeID: "challenge1",
		Score:       50,
		Answers: []domain.AnswerEvaluation{
			{Question: "Capital of France?", UserAnswer: "The capital city is Paris.", IsCorrect: true},
			{Question: "2+2?", UserAnswer: "3", IsCorrect: false},
		},
	}

	err := adapter.Create(context.Background(), record)
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScoreRecordAdapter_ListByOwner(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	adapter := NewScoreRecordDatabaseAdapter(db)

	answersJSON := `[{"question":"Q","userAnswer":"A","isCorrect":true}]`
	mock.ExpectQuery(`SELECT(.|\s)*FROM scores(.|\s)*WHERE owner_id = :1`).
		WithArgs("owner1").
		WillReturnRows(scoreRecordRows().
			AddRow("score2", "owner1", "challenge1", 100, answersJSON, time.Now()).
			AddRow("score1", "owner1", "challenge2", 0, `[]`, time.Now().Add(-time.Hour)))

	records, err := adapter.ListByOwner(context.Background(), "owner1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 100, records[0].Score)
	assert.True(t, records[0].Answers[0].IsCorrect)
	assert.Empty(t, records[1].Answers)
}
