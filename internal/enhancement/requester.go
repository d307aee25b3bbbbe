package enhancement

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jonathan/resume-optimax/internal/catalog"
)

// DefaultBaseURL is where the relay listens by default.
const DefaultBaseURL = "http://localhost:5000"

// EnhancePath is the relay route for enhancement requests.
const EnhancePath = "/api/enhance"

// FailureNotice is the message shown to users when an enhancement request fails.
const FailureNotice = "Something went wrong while enhancing your resume."

var (
	// ErrMissingInput is returned, without any network call, when the resume
	// text or job description is blank.
	ErrMissingInput = errors.New("resume text and job description are required")
	// ErrEnhancementFailed wraps every transport-level failure: a non-2xx
	// status, an unreachable relay, or an unreadable response.
	ErrEnhancementFailed = errors.New("resume enhancement failed")
)

// maxErrorBody bounds how much of a failed response body is kept for logs.
const maxErrorBody = 4 << 10

// Requester posts enhancement requests to the relay.
type Requester struct {
	baseURL    string
	httpClient *http.Client
}

// NewRequester creates a Requester for the relay at baseURL. A nil httpClient
// uses a client without a timeout.
func NewRequester(baseURL string, httpClient *http.Client) *Requester {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Requester{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Enhance sends req to the relay and returns its response.
func (r *Requester) Enhance(ctx context.Context, req Request) (*Response, error) {
	if !req.Ready() {
		return nil, ErrMissingInput
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+EnhancePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEnhancementFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEnhancementFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: HTTP status %d: %s", ErrEnhancementFailed, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", ErrEnhancementFailed, err)
	}
	if out.Tips == nil {
		out.Tips = []catalog.Tip{}
	}

	return &out, nil
}
