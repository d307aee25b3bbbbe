package enhancement

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-optimax/internal/llm"
)

// Enhancer sends enhancement prompts to an LLM provider.
// It is safe for concurrent use when the underlying client is.
type Enhancer struct {
	client llm.Client
	tier   llm.ModelTier
	logger *zap.Logger
}

// Option configures an Enhancer
type Option func(*Enhancer)

// WithTier selects the model tier used for enhancement (default TierStandard)
func WithTier(tier llm.ModelTier) Option {
	return func(e *Enhancer) {
		e.tier = tier
	}
}

// WithLogger sets the logger (default no-op)
func WithLogger(logger *zap.Logger) Option {
	return func(e *Enhancer) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEnhancer creates an Enhancer around an already constructed provider client.
func NewEnhancer(client llm.Client, opts ...Option) *Enhancer {
	e := &Enhancer{
		client: client,
		tier:   llm.TierStandard,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enhance rewrites resume to align with jobDescription and returns the
// provider's plain-text completion. A provider error is returned unchanged;
// there is no retry.
func (e *Enhancer) Enhance(ctx context.Context, resume, jobDescription string) (string, error) {
	prompt := BuildPrompt(resume, jobDescription)

	start := time.Now()
	text, err := e.client.GenerateContent(ctx, prompt, e.tier)
	if err != nil {
		e.logger.Error("provider call failed",
			zap.String("model", e.Model()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return "", err
	}

	e.logger.Debug("provider call succeeded",
		zap.String("model", e.Model()),
		zap.Int("prompt_chars", len(prompt)),
		zap.Int("completion_chars", len(text)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return text, nil
}

// Model returns the provider model name used for enhancement
func (e *Enhancer) Model() string {
	return e.client.GetModel(e.tier)
}
