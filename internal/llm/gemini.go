package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gl "cloud.google.com/go/ai/generativelanguage/apiv1beta"
	pb "cloud.google.com/go/ai/generativelanguage/apiv1beta/generativelanguagepb"
	"google.golang.org/api/option"
)

// GeminiClient implements Client for Google Gemini over the Generative
// Language REST API. Calls are made once, with no client-side deadline; the
// caller's context is the only bound.
type GeminiClient struct {
	client *gl.GenerativeClient
	config *Config
}

// NewGeminiClient creates a new Gemini client. config.BaseURL, when set,
// replaces the public endpoint.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if config == nil {
		config = DefaultGeminiConfig()
	}

	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if config.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(config.BaseURL))
	}

	client, err := gl.NewGenerativeRESTClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	// The generated defaults retry 503s with backoff under a 10 minute timeout
	client.CallOptions.GenerateContent = nil

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// GenerateContent sends the prompt as a single user turn. Errors from the API
// are returned as-is.
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	req := &pb.GenerateContentRequest{
		Model: qualifiedModelName(modelName),
		Contents: []*pb.Content{{
			Role:  "user",
			Parts: []*pb.Part{{Data: &pb.Part_Text{Text: prompt}}},
		}},
	}
	if c.config.Temperature != nil {
		temperature := *c.config.Temperature
		req.GenerationConfig = &pb.GenerationConfig{Temperature: &temperature}
	}

	resp, err := c.client.GenerateContent(ctx, req)
	if err != nil {
		return "", err
	}

	return extractTextFromResponse(resp)
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// qualifiedModelName prefixes bare model names with "models/"
func qualifiedModelName(name string) string {
	if strings.Contains(name, "/") {
		return name
	}
	return "models/" + name
}

// extractTextFromResponse concatenates the text parts of the first candidate
func extractTextFromResponse(resp *pb.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.GetCandidates()) == 0 {
		if reason := resp.GetPromptFeedback().GetBlockReason(); reason != pb.GenerateContentResponse_PromptFeedback_BLOCK_REASON_UNSPECIFIED {
			return "", fmt.Errorf("prompt blocked: %s", reason)
		}
		return "", errors.New("no candidates in response")
	}

	candidate := resp.GetCandidates()[0]
	if len(candidate.GetContent().GetParts()) == 0 {
		return "", errors.New("no content in response")
	}

	var sb strings.Builder
	found := false
	for _, part := range candidate.GetContent().GetParts() {
		if text, ok := part.GetData().(*pb.Part_Text); ok {
			sb.WriteString(text.Text)
			found = true
		}
	}

	if !found {
		return "", errors.New("no text parts in response")
	}

	return sb.String(), nil
}
