package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"quizcraft/internal/domain"
	"quizcraft/internal/logger"
	"quizcraft/internal/prompt"
	"quizcraft/internal/validator"
)

// QuizGenerationService turns learning content into a persisted quiz.
// Generation is idempotent per (owner, content): a second request returns
// the existing record without touching the model.
type QuizGenerationService interface {
	GenerateQuiz(ctx context.Context, ownerID, contentID string) (*domain.QuizRecord, bool, error)
	GetQuizRecord(ctx context.Context, ownerID, quizID string) (*domain.QuizRecord, error)
}

type quizGenerationServiceImpl struct {
	contents        domain.ContentRepository
	quizzes         domain.QuizRecordRepository
	progress        domain.ProgressRepository
	extractor       domain.TextExtractor
	model           domain.ModelClient
	recordCache     RecordCacheService
	questionCount   int
	minContentChars int
}

// NewQuizGenerationService creates a new QuizGenerationService.
func NewQuizGenerationService(
	contents domain.ContentRepository,
	quizzes domain.QuizRecordRepository,
	progress domain.ProgressRepository,
	textExtractor domain.TextExtractor,
	model domain.ModelClient,
	recordCache RecordCacheService,
	questionCount int,
	minContentChars int,
) QuizGenerationService {
	return &quizGenerationServiceImpl{
		contents:        contents,
		quizzes:         quizzes,
		progress:        progress,
		extractor:       textExtractor,
		model:           model,
		recordCache:     recordCache,
		questionCount:   questionCount,
		minContentChars: minContentChars,
	}
}

// GenerateQuiz returns the quiz for (ownerID, contentID), creating it on
// first call. The boolean is true only when a new record was persisted.
func (s *quizGenerationServiceImpl) GenerateQuiz(ctx context.Context, ownerID, contentID string) (*domain.QuizRecord, bool, error) {
	log := logger.Get().With(
		zap.String("owner_id", ownerID),
		zap.String("content_id", contentID),
	)

	if cached := s.recordCache.GetQuizRecord(ctx, ownerID, contentID); cached != nil {
		return cached, false, nil
	}

	existing, err := s.quizzes.GetByOwnerAndContent(ctx, ownerID, contentID)
	if err != nil {
		return nil, false, domain.NewInternalError("failed to look up existing quiz", err)
	}
	if existing != nil {
		s.recordCache.PutQuizRecord(ctx, existing)
		return existing, false, nil
	}

	content, err := s.contents.GetByID(ctx, contentID)
	if err != nil {
		return nil, false, domain.NewInternalError("failed to load learning content", err)
	}
	if content == nil {
		return nil, false, domain.NewContentNotFoundError(contentID)
	}

	text, err := s.extractor.Extract(content.Body)
	if err != nil {
		return nil, false, domain.NewInternalError("failed to extract content text", err)
	}
	text = strings.TrimSpace(text)
	if length := utf8.RuneCountInString(text); length < s.minContentChars {
		return nil, false, domain.NewInsufficientContentError(length, s.minContentChars)
	}

	raw, err := callModel(ctx, s.model, prompt.BuildGenerationPrompt(content.Title, text, s.questionCount))
	if err != nil {
		return nil, false, classifyModelFailure(err, false)
	}

	questions, err := validator.ValidateQuizQuestions(raw, s.questionCount)
	if err != nil {
		// Raw output is kept in logs only for offline diagnosis; it never
		// reaches the caller.
		log.Error("Model output failed validation",
			zap.Error(err),
			zap.String("raw_output", raw),
		)
		return nil, false, domain.NewGenerationFailedError(err)
	}

	record := &domain.QuizRecord{
		OwnerID:   ownerID,
		ContentID: contentID,
		Questions: questions,
	}
	if err := s.quizzes.Create(ctx, record); err != nil {
		if err == domain.ErrDuplicateQuizRecord {
			// A concurrent request won the insert race. The unique
			// constraint guarantees exactly one record survives; return it.
			winner, readErr := s.quizzes.GetByOwnerAndContent(ctx, ownerID, contentID)
			if readErr != nil || winner == nil {
				return nil, false, domain.NewInternalError("failed to read quiz after duplicate insert", readErr)
			}
			s.recordCache.PutQuizRecord(ctx, winner)
			return winner, false, nil
		}
		return nil, false, domain.NewInternalError("failed to persist quiz", err)
	}

	// The quiz is durable; progress and cache writes are best effort.
	if err := s.progress.Upsert(ctx, &domain.ProgressRecord{
		OwnerID:     ownerID,
		ContentID:   contentID,
		ContentType: "quiz",
		Status:      domain.ProgressStatusNotStarted,
		Progress:    0,
	}); err != nil {
		log.Warn("Failed to upsert progress after quiz creation", zap.Error(err))
	}
	s.recordCache.PutQuizRecord(ctx, record)

	log.Info("Generated quiz", zap.String("quiz_id", record.ID))
	return record, true, nil
}

// GetQuizRecord loads a quiz by id, enforcing ownership.
func (s *quizGenerationServiceImpl) GetQuizRecord(ctx context.Context, ownerID, quizID string) (*domain.QuizRecord, error) {
	record, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load quiz", err)
	}
	if record == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}
	if record.OwnerID != ownerID {
		return nil, domain.NewForbiddenError("quiz belongs to another learner")
	}
	return record, nil
}
