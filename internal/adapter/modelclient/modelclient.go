// Package modelclient provides domain.ModelClient adapters over external
// generative text services. Adapters return raw response text only;
// parsing belongs to the validator.
package modelclient

import (
	"context"
	"fmt"

	"quizcraft/internal/config"
	"quizcraft/internal/domain"
)

// New builds the model client selected by cfg.Provider. A missing API key
// yields the Unconfigured client so the pipeline fails fast without ever
// reaching the network.
func New(ctx context.Context, cfg config.ModelConfig) (domain.ModelClient, error) {
	if cfg.APIKey == "" {
		return &Unconfigured{}, nil
	}

	switch cfg.Provider {
	case "googleai", "":
		return NewGoogleAIClient(ctx, cfg)
	case "openai":
		return NewOpenAIClient(cfg), nil
	default:
		return nil, fmt.Errorf("unknown model provider: %q", cfg.Provider)
	}
}

// Unconfigured is the sentinel client used when no credentials are set.
type Unconfigured struct{}

func (u *Unconfigured) Generate(ctx context.Context, prompt string) (string, error) {
	return "", domain.ErrModelUnconfigured
}

var _ domain.ModelClient = (*Unconfigured)(nil)
