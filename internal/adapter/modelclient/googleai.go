package modelclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"quizcraft/internal/config"
	"quizcraft/internal/domain"
)

const defaultTimeout = 20 * time.Second

// GoogleAIClient calls the Gemini API through langchaingo with JSON output
// mode and a low temperature.
type GoogleAIClient struct {
	llm     llms.Model
	timeout time.Duration
}

func NewGoogleAIClient(ctx context.Context, cfg config.ModelConfig) (*GoogleAIClient, error) {
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Name),
		googleai.WithHarmThreshold(googleai.HarmBlockMediumAndAbove),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize googleai client: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &GoogleAIClient{llm: llm, timeout: timeout}, nil
}

func (c *GoogleAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	response, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt,
		llms.WithTemperature(0.2),
		llms.WithJSONMode(),
	)
	if err != nil {
		return "", classifyGoogleAIError(err)
	}
	if strings.TrimSpace(response) == "" {
		return "", domain.ErrEmptyResponse
	}
	return response, nil
}

func classifyGoogleAIError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &domain.TransportError{Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &domain.TransportError{Err: err}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "blocked") || strings.Contains(msg, "safety"):
		return &domain.ContentBlockedError{Reason: err.Error()}
	case strings.Contains(msg, "no candidates") || strings.Contains(msg, "empty response"):
		return domain.ErrEmptyResponse
	case strings.Contains(msg, "connection") || strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "unavailable") || strings.Contains(msg, "eof"):
		return &domain.TransportError{Err: err}
	default:
		// Auth and quota failures are not transport errors; retrying them
		// cannot help.
		return fmt.Errorf("model call failed: %w", err)
	}
}

var _ domain.ModelClient = (*GoogleAIClient)(nil)
