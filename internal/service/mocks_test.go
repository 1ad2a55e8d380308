package service

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/mock"

	"quizcraft/internal/domain"
	"quizcraft/internal/logger"
)

// TestMain initializes the logger for all tests in this package.
func TestMain(m *testing.M) {
	if err := logger.Initialize("test"); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}

	exitVal := m.Run()

	logger.Sync()
	os.Exit(exitVal)
}

// --- Mocks ---

type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) GetByID(ctx context.Context, id string) (*domain.LearningContent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LearningContent), args.Error(1)
}

type MockQuizRecordRepository struct {
	mock.Mock
}

func (m *MockQuizRecordRepository) GetByID(ctx context.Context, id string) (*domain.QuizRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizRecord), args.Error(1)
}

func (m *MockQuizRecordRepository) GetByOwnerAndContent(ctx context.Context, ownerID, contentID string) (*domain.QuizRecord, error) {
	args := m.Called(ctx, ownerID, contentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizRecord), args.Error(1)
}

func (m *MockQuizRecordRepository) Create(ctx context.Context, record *domain.QuizRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type MockChallengeRepository struct {
	mock.Mock
}

func (m *MockChallengeRepository) GetByID(ctx context.Context, id string) (*domain.Challenge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Challenge), args.Error(1)
}

func (m *MockChallengeRepository) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockScoreRecordRepository struct {
	mock.Mock
}

func (m *MockScoreRecordRepository) Create(ctx context.Context, record *domain.ScoreRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockScoreRecordRepository) GetByID(ctx context.Context, id string) (*domain.ScoreRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScoreRecord), args.Error(1)
}

func (m *MockScoreRecordRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.ScoreRecord, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ScoreRecord), args.Error(1)
}

type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Upsert(ctx context.Context, record *domain.ProgressRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// MockModelClient counts its invocations so tests can assert the model
// was never reached on guarded paths.
type MockModelClient struct {
	mock.Mock
	CallCount int
}

func (m *MockModelClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.CallCount++
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) Extract(body string) (string, error) {
	args := m.Called(body)
	return args.String(0), args.Error(1)
}

// noopRecordCache disables caching in tests that exercise the database path.
type noopRecordCache struct{}

func (noopRecordCache) GetQuizRecord(ctx context.Context, ownerID, contentID string) *domain.QuizRecord {
	return nil
}

func (noopRecordCache) PutQuizRecord(ctx context.Context, record *domain.QuizRecord) {}
