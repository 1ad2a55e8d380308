package modelclient

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizcraft/internal/config"
	"quizcraft/internal/domain"
)

func TestUnconfigured_Generate(t *testing.T) {
	client := &Unconfigured{}

	out, err := client.Generate(context.Background(), "any prompt")

	assert.Empty(t, out)
	assert.ErrorIs(t, err, domain.ErrModelUnconfigured)
}

func TestNew(t *testing.T) {
	t.Run("empty api key yields unconfigured client", func(t *testing.T) {
		client, err := New(context.Background(), config.ModelConfig{Provider: "openai"})
		require.NoError(t, err)
		assert.IsType(t, &Unconfigured{}, client)
	})

	t.Run("openai provider", func(t *testing.T) {
		client, err := New(context.Background(), config.ModelConfig{
			Provider: "openai",
			APIKey:   "sk-test",
			Name:     "gpt-4o-mini",
		})
		require.NoError(t, err)
		assert.IsType(t, &OpenAIClient{}, client)
	})

	t.Run("unknown provider is rejected", func(t *testing.T) {
		_, err := New(context.Background(), config.ModelConfig{
			Provider: "carrier-pigeon",
			APIKey:   "key",
		})
		assert.Error(t, err)
	})
}

func TestClassifyOpenAIError(t *testing.T) {
	t.Run("deadline is a transport error", func(t *testing.T) {
		err := classifyOpenAIError(context.DeadlineExceeded)
		assert.True(t, domain.IsRetryable(err))
	})

	t.Run("5xx is a transport error", func(t *testing.T) {
		err := classifyOpenAIError(&openai.APIError{HTTPStatusCode: 503, Message: "overloaded"})
		assert.True(t, domain.IsRetryable(err))
	})

	t.Run("rate limit is a transport error", func(t *testing.T) {
		err := classifyOpenAIError(&openai.APIError{HTTPStatusCode: 429, Message: "slow down"})
		assert.True(t, domain.IsRetryable(err))
	})

	t.Run("content filter is a blocked error", func(t *testing.T) {
		err := classifyOpenAIError(&openai.APIError{HTTPStatusCode: 400, Message: "content filter triggered"})
		var blocked *domain.ContentBlockedError
		assert.ErrorAs(t, err, &blocked)
		assert.False(t, domain.IsRetryable(err))
	})

	t.Run("auth failure is not retryable", func(t *testing.T) {
		err := classifyOpenAIError(&openai.APIError{HTTPStatusCode: 401, Message: "invalid api key"})
		assert.False(t, domain.IsRetryable(err))
	})
}

func TestClassifyGoogleAIError(t *testing.T) {
	t.Run("deadline is a transport error", func(t *testing.T) {
		err := classifyGoogleAIError(context.DeadlineExceeded)
		assert.True(t, domain.IsRetryable(err))
	})

	t.Run("safety block is a blocked error", func(t *testing.T) {
		err := classifyGoogleAIError(errors.New("candidate blocked due to safety settings"))
		var blocked *domain.ContentBlockedError
		assert.ErrorAs(t, err, &blocked)
		assert.False(t, domain.IsRetryable(err))
	})

	t.Run("no candidates is an empty response", func(t *testing.T) {
		err := classifyGoogleAIError(errors.New("no candidates in response"))
		assert.ErrorIs(t, err, domain.ErrEmptyResponse)
	})

	t.Run("connection failure is a transport error", func(t *testing.T) {
		err := classifyGoogleAIError(errors.New("connection refused"))
		assert.True(t, domain.IsRetryable(err))
	})

	t.Run("invalid key is not retryable", func(t *testing.T) {
		err := classifyGoogleAIError(errors.New("API key not valid"))
		assert.False(t, domain.IsRetryable(err))
	})
}
