package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned when a provider client is constructed without a credential.
var ErrMissingAPIKey = errors.New("API key is required")

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateContent generates text content using the specified model tier
	GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GetModel returns the provider model name for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderOpenAI:
		client, err := NewOpenAIClient(config, apiKey)
		if err != nil {
			return nil, err
		}
		return client, nil
	case ProviderGemini, "":
		client, err := NewGeminiClient(ctx, config, apiKey)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}

// unavailableClient fails every call with the error that prevented the real
// client from being built.
type unavailableClient struct {
	config *Config
	err    error
}

// NewUnavailableClient returns a Client whose calls all fail with err. It lets
// a process start without a usable credential and surface the problem on the
// first generation request instead.
func NewUnavailableClient(config *Config, err error) Client {
	if config == nil {
		config = DefaultConfig()
	}
	return &unavailableClient{config: config, err: err}
}

func (c *unavailableClient) GenerateContent(_ context.Context, _ string, _ ModelTier) (string, error) {
	return "", c.err
}

func (c *unavailableClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

func (c *unavailableClient) Close() error {
	return nil
}
