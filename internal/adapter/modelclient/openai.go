package modelclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"quizcraft/internal/config"
	"quizcraft/internal/domain"
)

// OpenAIClient calls an OpenAI-compatible chat completion endpoint with
// the JSON-object response format.
type OpenAIClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewOpenAIClient(cfg config.ModelConfig) *OpenAIClient {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &OpenAIClient{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   cfg.Name,
		timeout: timeout,
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", classifyOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", domain.ErrEmptyResponse
	}
	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonContentFilter {
		return "", &domain.ContentBlockedError{Reason: "content filter rejected the completion"}
	}
	if strings.TrimSpace(choice.Message.Content) == "" {
		return "", domain.ErrEmptyResponse
	}
	return choice.Message.Content, nil
}

func classifyOpenAIError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &domain.TransportError{Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &domain.TransportError{Err: err}
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode >= 500 || apiErr.HTTPStatusCode == 429:
			return &domain.TransportError{Err: err}
		case strings.Contains(strings.ToLower(apiErr.Message), "content filter"):
			return &domain.ContentBlockedError{Reason: apiErr.Message}
		default:
			return fmt.Errorf("model call failed: %w", err)
		}
	}
	return &domain.TransportError{Err: err}
}

var _ domain.ModelClient = (*OpenAIClient)(nil)
