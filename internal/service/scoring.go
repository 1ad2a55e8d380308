package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"quizcraft/internal/domain"
	"quizcraft/internal/logger"
	"quizcraft/internal/prompt"
	"quizcraft/internal/validator"
)

// ScoringService grades a learner's free-text answers against a
// challenge's answer key using the model as a semantic judge.
type ScoringService interface {
	SubmitScore(ctx context.Context, ownerID, challengeID string, submissions []domain.AnswerSubmission) (*domain.ScoreRecord, error)
	ListScores(ctx context.Context, ownerID string) ([]*domain.ScoreRecord, error)
}

type scoringServiceImpl struct {
	challenges domain.ChallengeRepository
	scores     domain.ScoreRecordRepository
	progress   domain.ProgressRepository
	model      domain.ModelClient
}

// NewScoringService creates a new ScoringService.
func NewScoringService(
	challenges domain.ChallengeRepository,
	scores domain.ScoreRecordRepository,
	progress domain.ProgressRepository,
	model domain.ModelClient,
) ScoringService {
	return &scoringServiceImpl{
		challenges: challenges,
		scores:     scores,
		progress:   progress,
		model:      model,
	}
}

// SubmitScore evaluates the submissions and persists a new ScoreRecord.
// The ownership check runs before any model call; a challenge owned by
// someone else never reaches the model.
func (s *scoringServiceImpl) SubmitScore(ctx context.Context, ownerID, challengeID string, submissions []domain.AnswerSubmission) (*domain.ScoreRecord, error) {
	log := logger.Get().With(
		zap.String("owner_id", ownerID),
		zap.String("challenge_id", challengeID),
	)

	challenge, err := s.challenges.GetByID(ctx, challengeID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load challenge", err)
	}
	if challenge == nil {
		return nil, domain.NewChallengeNotFoundError(challengeID)
	}
	if challenge.OwnerID != ownerID {
		return nil, domain.NewForbiddenError("challenge belongs to another learner")
	}

	evaluations, err := s.evaluate(ctx, challenge, submissions, log)
	if err != nil {
		return nil, err
	}

	record := &domain.ScoreRecord{
		OwnerID:     ownerID,
		ChallengeID: challengeID,
		Score:       validator.Score(evaluations),
		Answers:     evaluations,
	}
	if err := s.scores.Create(ctx, record); err != nil {
		return nil, domain.NewInternalError("failed to persist score", err)
	}

	// The score record is the source of truth from here on. Status and
	// progress failures are logged for out-of-band retry, never rolled back.
	if err := s.challenges.UpdateStatus(ctx, challengeID, domain.ChallengeStatusCompleted); err != nil {
		log.Warn("Failed to mark challenge completed after scoring", zap.Error(err))
	}
	if err := s.progress.Upsert(ctx, &domain.ProgressRecord{
		OwnerID:     ownerID,
		ContentID:   challenge.ContentID,
		ContentType: "challenge",
		Status:      domain.ProgressStatusCompleted,
		Progress:    100,
	}); err != nil {
		log.Warn("Failed to upsert progress after scoring", zap.Error(err))
	}

	log.Info("Scored challenge",
		zap.String("score_id", record.ID),
		zap.Int("score", record.Score),
	)
	return record, nil
}

// evaluate runs the model over the answer key. A challenge with no
// questions scores zero without invoking the model at all.
func (s *scoringServiceImpl) evaluate(ctx context.Context, challenge *domain.Challenge, submissions []domain.AnswerSubmission, log *zap.Logger) ([]domain.AnswerEvaluation, error) {
	if len(challenge.Questions) == 0 {
		return nil, nil
	}

	answers := make([]domain.AnswerEvaluation, len(challenge.Questions))
	for i, q := range challenge.Questions {
		answers[i] = domain.AnswerEvaluation{Question: q.Question}
		for _, sub := range submissions {
			if sub.Question == q.Question {
				answers[i].UserAnswer = sub.Answer
				break
			}
		}
	}

	raw, err := callModel(ctx, s.model, prompt.BuildScoringPrompt(challenge.Questions, answers))
	if err != nil {
		return nil, classifyModelFailure(err, true)
	}

	evaluations, err := validator.ValidateEvaluations(raw)
	if err != nil {
		log.Error("Model output failed validation",
			zap.Error(err),
			zap.String("raw_output", raw),
		)
		return nil, domain.NewScoringFailedError(err)
	}
	if len(evaluations) != len(challenge.Questions) {
		log.Error("Model returned wrong evaluation count",
			zap.Int("expected", len(challenge.Questions)),
			zap.Int("got", len(evaluations)),
			zap.String("raw_output", raw),
		)
		return nil, domain.NewScoringFailedError(
			fmt.Errorf("expected %d evaluations, got %d", len(challenge.Questions), len(evaluations)))
	}
	return evaluations, nil
}

// ListScores returns the learner's score history, newest first.
func (s *scoringServiceImpl) ListScores(ctx context.Context, ownerID string) ([]*domain.ScoreRecord, error) {
	records, err := s.scores.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list scores", err)
	}
	return records, nil
}
