package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"quizcraft/internal/domain"
)

const validQuizOutput = `[
	{"question": "Q1", "answer": "A1"},
	{"question": "Q2", "answer": "A2"},
	{"question": "Q3", "answer": "A3"},
	{"question": "Q4", "answer": "A4"},
	{"question": "Q5", "answer": "A5"}
]`

type generationFixture struct {
	contents  *MockContentRepository
	quizzes   *MockQuizRecordRepository
	progress  *MockProgressRepository
	extractor *MockTextExtractor
	model     *MockModelClient
	service   QuizGenerationService
}

func newGenerationFixture() *generationFixture {
	f := &generationFixture{
		contents:  new(MockContentRepository),
		quizzes:   new(MockQuizRecordRepository),
		progress:  new(MockProgressRepository),
		extractor: new(MockTextExtractor),
		model:     new(MockModelClient),
	}
	f.service = NewQuizGenerationService(
		f.contents, f.quizzes, f.progress, f.extractor, f.model,
		NewRecordCacheService(nil, 0), 5, 50,
	)
	return f
}

func TestGenerateQuiz_ExistingRecordSkipsModel(t *testing.T) {
	f := newGenerationFixture()
	existing := &domain.QuizRecord{ID: "quiz1", OwnerID: "owner1", ContentID: "content1"}
	f.quizzes.On("GetByOwnerAndContent", mock.Anything, "owner1", "content1").Return(existing, nil)

	record, created, err := f.service.GenerateQuiz(context.Background(), "owner1", "content1")

	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "quiz1", record.ID)
	assert.Equal(t, 0, f.model.CallCount)
	f.quizzes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGenerateQuiz_Idempotence(t *testing.T) {
	f := newGenerationFixture()
	existing := &domain.QuizRecord{ID: "quiz1", OwnerID: "owner1", ContentID: "content1"}
	f.quizzes.On("GetByOwnerAndContent", mock.Anything, "owner1", "content1").Return(existing, nil)

	first, _, err1 := f.service.GenerateQuiz(context.Background(), "owner1", "content1")
	second, _, err2 := f.service.GenerateQuiz(context.Background(), "owner1", "content1")

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 0, f.model.CallCount)
}

func TestGenerateQuiz_CreatesOnMiss(t *testing.T) {
	f := newGenerationFixture()
	f.quizzes.On("GetByOwnerAndContent", mock.Anything, "owner1", "content1").Return(nil, nil)
	f.contents.On("GetByID", mock.Anything, "content1").
		Return(&domain.LearningContent{ID: "content1", Title: "Solar System", Body: "doc"}, nil)
	f.extractor.On("Extract", "doc").
		Return("The sun is a star at the center of the solar system and it is quite large.", nil)
	f.model.On("Generate", mock.Anything, mock.Anything).Return(validQuizOutput, nil)
	f.quizzes.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.QuizRecord) bool {
		return r.OwnerID == "owner1" && r.ContentID == "content1" && len(r.Questions) == 5
	})).Return(nil)
	f.progress.On("Upsert", mock.Anything, mock.MatchedBy(func(p *domain.ProgressRecord) bool {
		return p.Status == domain.ProgressStatusNotStarted && p.Progress == 0
	})).Return(nil)

	record, created, err := f.service.GenerateQuiz(context.Background(), "owner1", "content1")

	require.NoError(t, err)
	assert.True(t, created)
	assert.Len(t, record.Questions, 5)
	f.quizzes.AssertExpectations(t)
	f.progress.AssertExpectations(t)
}

func TestGenerateQuiz_InsufficientContent(t *testing.T) {
	f := newGenerationFixture()
	f.quizzes.On("GetByOwnerAndContent", mock.Anything, "owner1", "content1").Return(nil, nil)
	f.contents.On("GetByID", mock.Anything, "content1").
		Return(&domain.LearningContent{ID: "content1", Title: "Cats", Body: "doc"}, nil)
	// 17 characters, below the 50-character minimum
	f.extractor.On("Extract", "doc").Return("Cats are mammals.", nil)

	_, _, err := f.service.GenerateQuiz(context.Background(), "owner1", "content1")

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeInsufficientContent, domainErr.Code)
	assert.Equal(t, 0, f.model.CallCount)
	f.quizzes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGenerateQuiz_ContentNotFound(t *testing.T) {
	f := newGenerationFixture()
	f.quizzes.On("GetByOwnerAndContent", mock.Anything, "owner1", "missing").Return(nil, nil)
	f.contents.On("GetByID", mock.Anything, "missing").Return(nil, nil)

	_, _, err := f.service.GenerateQuiz(context.Background(), "owner1", "missing")

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeContentNotFound, domainErr.Code)
	assert.Equal(t, 0, f.model.CallCount)
}

func TestGenerateQuiz_UnconfiguredModel(t *testing.T) {
	f := newGenerationFixture()
	f.quizzes.On("GetByOwnerAndContent", mock.Anything, "owner1", "content1").Return(nil, nil)
	f.contents.On("GetByID", mock.Anything, "content1").
		Return(&domain.LearningContent{ID: "content1", Title: "T", Body: "doc"}, nil)
	f.extractor.On("Extract", "doc").
		Return("Some sufficiently long extracted text for generating a quiz from.", nil)
	f.model.On("Generate", mock.Anything, mock.Anything).Return("", domain.ErrModelUnconfigured)

	_, _, err := f.service.GenerateQuiz(context.Background(), "owner1", "content1")

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeModelUnavailable, domainErr.Code)
	assert.Equal(t, 1, f.model.CallCount)
	f.quizzes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGenerateQuiz_MalformedOutputPersistsNothing(t *testing.T) {
	for name, raw := range map[string]string{
		"non-json":       "Sure! Here are your questions.",
		"missing fields": `[{"question": "Q1"}]`,
		"wrong count":    `[{"question": "Q1", "answer": "A1"}]`,
	} {
		t.Run(name, func(t *testing.T) {
			f := newGenerationFixture()
			f.quizzes.On("GetByOwnerAndContent", mock.Anything, "owner1", "content1").Return(nil, nil)
			f.contents.On("GetByID", mock.Anything, "content1").
				Return(&domain.LearningContent{ID: "content1", Title: "T", Body: "doc"}, nil)
			f.extractor.On("Extract", "doc").
				Return("Some sufficiently long extracted text for generating a quiz from.", nil)
			f.model.On("Generate", mock.Anything, mock.Anything).Return(raw, nil)

			_, _, err := f.service.GenerateQuiz(context.Background(), "owner1", "content1")

			var domainErr *domain.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, domain.CodeGenerationFailed, domainErr.Code)
			f.quizzes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			f.progress.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		})
	}
}

func TestGenerateQuiz_DuplicateInsertReturnsWinner(t *testing.T) {
	f := newGenerationFixture()
	winner := &domain.QuizRecord{ID: "winner", OwnerID: "owner1", ContentID: "content1"}

	f.quizzes.On("GetByOwnerAndContent", mock.Anything, "owner1", "content1").Return(nil, nil).Once()
	f.contents.On("GetByID", mock.Anything, "content1").
		Return(&domain.LearningContent{ID: "content1", Title: "T", Body: "doc"}, nil)
	f.extractor.On("Extract", "doc").
		Return("Some sufficiently long extracted text for generating a quiz from.", nil)
	f.model.On("Generate", mock.Anything, mock.Anything).Return(validQuizOutput, nil)
	f.quizzes.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateQuizRecord)
	f.quizzes.On("GetByOwnerAndContent", mock.Anything, "owner1", "content1").Return(winner, nil).Once()

	record, created, err := f.service.GenerateQuiz(context.Background(), "owner1", "content1")

	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "winner", record.ID)
}

func TestGenerateQuiz_TransportErrorRetriesOnce(t *testing.T) {
	t.Run("second attempt succeeds", func(t *testing.T) {
		f := newGenerationFixture()
		f.quizzes.On("GetByOwnerAndContent", mock.Anything, "owner1", "content1").Return(nil, nil)
		f.contents.On("GetByID", mock.Anything, "content1").
			Return(&domain.LearningContent{ID: "content1", Title: "T", Body: "doc"}, nil)
		f.extractor.On("Extract", "doc").
			Return("Some sufficiently long extracted text for generating a quiz from.", nil)
		f.model.On("Generate", mock.Anything, mock.Anything).
			Return("", &domain.TransportError{Err: errors.New("timeout")}).Once()
		f.model.On("Generate", mock.Anything, mock.Anything).Return(validQuizOutput, nil).Once()
		f.quizzes.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.progress.On("Upsert", mock.Anything, mock.Anything).Return(nil)

		_, created, err := f.service.GenerateQuiz(context.Background(), "owner1", "content1")

		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, 2, f.model.CallCount)
	})

	t.Run("second failure is terminal", func(t *testing.T) {
		f := newGenerationFixture()
		f.quizzes.On("GetByOwnerAndContent", mock.Anything, "owner1", "content1").Return(nil, nil)
		f.contents.On("GetByID", mock.Anything, "content1").
			Return(&domain.LearningContent{ID: "content1", Title: "T", Body: "doc"}, nil)
		f.extractor.On("Extract", "doc").
			Return("Some sufficiently long extracted text for generating a quiz from.", nil)
		f.model.On("Generate", mock.Anything, mock.Anything).
			Return("", &domain.TransportError{Err: errors.New("timeout")})

		_, _, err := f.service.GenerateQuiz(context.Background(), "owner1", "content1")

		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeModelUnavailable, domainErr.Code)
		assert.Equal(t, 2, f.model.CallCount)
	})

	t.Run("empty response is not retried", func(t *testing.T) {
		f := newGenerationFixture()
		f.quizzes.On("GetByOwnerAndContent", mock.Anything, "owner1", "content1").Return(nil, nil)
		f.contents.On("GetByID", mock.Anything, "content1").
			Return(&domain.LearningContent{ID: "content1", Title: "T", Body: "doc"}, nil)
		f.extractor.On("Extract", "doc").
			Return("Some sufficiently long extracted text for generating a quiz from.", nil)
		f.model.On("Generate", mock.Anything, mock.Anything).Return("", domain.ErrEmptyResponse)

		_, _, err := f.service.GenerateQuiz(context.Background(), "owner1", "content1")

		require.Error(t, err)
		assert.Equal(t, 1, f.model.CallCount)
	})
}

func TestGenerateQuiz_ProgressFailureDoesNotFailRequest(t *testing.T) {
	f := newGenerationFixture()
	f.quizzes.On("GetByOwnerAndContent", mock.Anything, "owner1", "content1").Return(nil, nil)
	f.contents.On("GetByID", mock.Anything, "content1").
		Return(&domain.LearningContent{ID: "content1", Title: "T", Body: "doc"}, nil)
	f.extractor.On("Extract", "doc").
		Return("Some sufficiently long extracted text for generating a quiz from.", nil)
	f.model.On("Generate", mock.Anything, mock.Anything).Return(validQuizOutput, nil)
	f.quizzes.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.progress.On("Upsert", mock.Anything, mock.Anything).Return(errors.New("db down"))

	record, created, err := f.service.GenerateQuiz(context.Background(), "owner1", "content1")

	require.NoError(t, err)
	assert.True(t, created)
	assert.NotNil(t, record)
}

func TestGetQuizRecord(t *testing.T) {
	t.Run("enforces ownership", func(t *testing.T) {
		f := newGenerationFixture()
		f.quizzes.On("GetByID", mock.Anything, "quiz1").
			Return(&domain.QuizRecord{ID: "quiz1", OwnerID: "someone-else"}, nil)

		_, err := f.service.GetQuizRecord(context.Background(), "owner1", "quiz1")

		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeForbidden, domainErr.Code)
	})

	t.Run("missing quiz is not found", func(t *testing.T) {
		f := newGenerationFixture()
		f.quizzes.On("GetByID", mock.Anything, "nope").Return(nil, nil)

		_, err := f.service.GetQuizRecord(context.Background(), "owner1", "nope")

		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeQuizNotFound, domainErr.Code)
	})
}
