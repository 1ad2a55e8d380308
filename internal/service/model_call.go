package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"quizcraft/internal/domain"
	"quizcraft/internal/logger"
)

// callModel invokes the model client with a single bounded retry. Only
// transport failures are retried; validation and content failures never
// are, since a second identical call cannot fix a schema mismatch.
func callModel(ctx context.Context, client domain.ModelClient, prompt string) (string, error) {
	raw, err := client.Generate(ctx, prompt)
	if err == nil {
		return raw, nil
	}
	if !domain.IsRetryable(err) {
		return "", err
	}

	logger.Get().Warn("Model call hit a transport failure, retrying once", zap.Error(err))
	raw, retryErr := client.Generate(ctx, prompt)
	if retryErr != nil {
		return "", retryErr
	}
	return raw, nil
}

// classifyModelFailure maps a model-client failure onto the stable error
// taxonomy. Unconfigured and transport failures surface as
// service-unavailable; blocked or empty responses are generation failures.
func classifyModelFailure(err error, scoring bool) *domain.DomainError {
	var blocked *domain.ContentBlockedError
	switch {
	case errors.Is(err, domain.ErrModelUnconfigured):
		return domain.NewModelUnavailableError(err)
	case domain.IsRetryable(err):
		return domain.NewModelUnavailableError(err)
	case errors.As(err, &blocked), errors.Is(err, domain.ErrEmptyResponse):
		if scoring {
			return domain.NewScoringFailedError(err)
		}
		return domain.NewGenerationFailedError(err)
	default:
		return domain.NewModelUnavailableError(err)
	}
}
