package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/resume-optimax/internal/catalog"
	"github.com/jonathan/resume-optimax/internal/server/middleware"
)

// mockEnhancer implements Enhancer for testing
type mockEnhancer struct {
	EnhanceFunc func(ctx context.Context, resume, jobDescription string) (string, error)
	calls       int
	resume      string
	job         string
}

func (m *mockEnhancer) Enhance(ctx context.Context, resume, jobDescription string) (string, error) {
	m.calls++
	m.resume = resume
	m.job = jobDescription
	if m.EnhanceFunc != nil {
		return m.EnhanceFunc(ctx, resume, jobDescription)
	}
	return "Optimized resume text", nil
}

func newTestServer(t *testing.T, enhancer *mockEnhancer, cfg Config) *Server {
	t.Helper()
	s, err := New(cfg, enhancer, zap.NewNop())
	require.NoError(t, err)
	return s
}

func doRequest(s *Server, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestNew_RequiresEnhancer(t *testing.T) {
	_, err := New(Config{}, nil, nil)
	assert.Error(t, err)
}

func TestNew_Defaults(t *testing.T) {
	s := newTestServer(t, &mockEnhancer{}, Config{Port: 5000})
	assert.Equal(t, "*", s.allowedOrigin)
	assert.Equal(t, DefaultMaxBodyBytes, s.maxBodyBytes)
	assert.Equal(t, ":5000", s.httpServer.Addr)
	assert.Zero(t, s.httpServer.WriteTimeout)
	assert.NotZero(t, s.httpServer.ReadTimeout)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, &mockEnhancer{}, Config{})

	w := doRequest(s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestEnhanceEndpoint_Success(t *testing.T) {
	mock := &mockEnhancer{
		EnhanceFunc: func(_ context.Context, _, _ string) (string, error) {
			return "Optimized resume text", nil
		},
	}
	s := newTestServer(t, mock, Config{})

	body := `{"resumeText":"Experienced engineer.","jobDescription":"Looking for a senior engineer with AWS skills.","selectedSkills":["AWS"],"jobTitle":"Software Engineer","unknown":true}`
	w := doRequest(s, http.MethodPost, "/api/enhance", body)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"enhancedResume":"Optimized resume text","tips":[]}`, w.Body.String())

	assert.Equal(t, 1, mock.calls)
	assert.Equal(t, "Experienced engineer.", mock.resume)
	assert.Equal(t, "Looking for a senior engineer with AWS skills.", mock.job)
}

func TestEnhanceEndpoint_ProviderFailure(t *testing.T) {
	mock := &mockEnhancer{
		EnhanceFunc: func(_ context.Context, _, _ string) (string, error) {
			return "", errors.New("provider unavailable: secret detail")
		},
	}
	core, logs := observer.New(zap.InfoLevel)
	s, err := New(Config{}, mock, zap.New(core))
	require.NoError(t, err)

	w := doRequest(s, http.MethodPost, "/api/enhance", `{"resumeText":"r","jobDescription":"j"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Resume enhancement failed."}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "secret detail")
	assert.Equal(t, 1, mock.calls, "provider must not be retried")

	failures := logs.FilterMessage("resume enhancement failed").All()
	require.Len(t, failures, 1)
	assert.Equal(t, w.Header().Get(middleware.HeaderRequestID), failures[0].ContextMap()["request_id"])
	assert.Contains(t, failures[0].ContextMap()["error"], "secret detail")
}

func TestEnhanceEndpoint_BadRequests(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{name: "empty body", body: "", wantField: "body"},
		{name: "invalid JSON", body: `{invalid json}`, wantField: "body"},
		{name: "truncated JSON", body: `{"resumeText":"r"`, wantField: "body"},
		{name: "wrong type", body: `{"resumeText":5,"jobDescription":"j"}`, wantField: "resumeText"},
		{name: "missing resume", body: `{"jobDescription":"j"}`, wantField: "resumeText"},
		{name: "missing job description", body: `{"resumeText":"r"}`, wantField: "jobDescription"},
		{name: "blank resume", body: `{"resumeText":"  \n ","jobDescription":"j"}`, wantField: "resumeText"},
		{name: "skills not an array", body: `{"resumeText":"r","jobDescription":"j","selectedSkills":"AWS"}`, wantField: "selectedSkills"},
		{name: "trailing garbage", body: `{"resumeText":"r","jobDescription":"j"} garbage`, wantField: "body"},
		{name: "second JSON value", body: `{"resumeText":"r","jobDescription":"j"}{"resumeText":"x"}`, wantField: "body"},
		{name: "stray closing brace", body: `{"resumeText":"r","jobDescription":"j"}}`, wantField: "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockEnhancer{}
			s := newTestServer(t, mock, Config{})

			w := doRequest(s, http.MethodPost, "/api/enhance", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Contains(t, resp["error"], "validation error: "+tt.wantField+" - ")
			assert.Equal(t, 0, mock.calls, "provider must not be called")
		})
	}
}

func TestEnhanceEndpoint_AcceptsUnusedFieldsOfAnyLength(t *testing.T) {
	mock := &mockEnhancer{}
	s := newTestServer(t, mock, Config{})

	body := `{"resumeText":"r","jobDescription":"j","selectedSkills":["` + strings.Repeat("s", 500) + `"],"jobTitle":"` + strings.Repeat("t", 1000) + `"}` + "\n"
	w := doRequest(s, http.MethodPost, "/api/enhance", body)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, mock.calls)
}

func TestEnhanceEndpoint_BodyTooLarge(t *testing.T) {
	mock := &mockEnhancer{}
	s := newTestServer(t, mock, Config{MaxBodyBytes: 64})

	body := `{"resumeText":"` + strings.Repeat("x", 200) + `","jobDescription":"j"}`
	w := doRequest(s, http.MethodPost, "/api/enhance", body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.JSONEq(t, `{"error":"request body exceeds 64 bytes"}`, w.Body.String())
	assert.Equal(t, 0, mock.calls)
}

func TestEnhanceEndpoint_DefaultBodyLimit(t *testing.T) {
	mock := &mockEnhancer{}
	s := newTestServer(t, mock, Config{})

	fits := `{"resumeText":"` + strings.Repeat("x", 90<<10) + `","jobDescription":"j"}`
	w := doRequest(s, http.MethodPost, "/api/enhance", fits)
	assert.Equal(t, http.StatusOK, w.Code)

	tooLarge := `{"resumeText":"` + strings.Repeat("x", 100<<10) + `","jobDescription":"j"}`
	w = doRequest(s, http.MethodPost, "/api/enhance", tooLarge)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "exceeds 102400 bytes")
	assert.Equal(t, 1, mock.calls)
}

func TestEnhanceEndpoint_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t, &mockEnhancer{}, Config{})

	w := doRequest(s, http.MethodGet, "/api/enhance", "")

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestEnhanceEndpoint_UsesRequestContext(t *testing.T) {
	mock := &mockEnhancer{
		EnhanceFunc: func(ctx context.Context, _, _ string) (string, error) {
			return "", ctx.Err()
		},
	}
	s := newTestServer(t, mock, Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/enhance", bytes.NewBufferString(`{"resumeText":"r","jobDescription":"j"}`)).WithContext(ctx)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCORS(t *testing.T) {
	s := newTestServer(t, &mockEnhancer{}, Config{AllowedOrigin: "https://app.example.com"})

	w := doRequest(s, http.MethodOptions, "/api/enhance", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type")

	w = doRequest(s, http.MethodGet, "/health", "")
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t, &mockEnhancer{}, Config{})

	w := doRequest(s, http.MethodGet, "/health", "")
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-42")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get(middleware.HeaderRequestID))
}

func TestSkillsEndpoint(t *testing.T) {
	s := newTestServer(t, &mockEnhancer{}, Config{})

	w := doRequest(s, http.MethodGet, "/api/skills?q=script", "")
	require.Equal(t, http.StatusOK, w.Code)
	var skills []catalog.Skill
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &skills))
	require.Len(t, skills, 1)
	assert.Equal(t, "TypeScript", skills[0].Name)
	assert.Equal(t, catalog.CategoryTechnical, skills[0].Category)

	w = doRequest(s, http.MethodGet, "/api/skills?exclude=React,%20AWS,,", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &skills))
	assert.Len(t, skills, 18)
	for _, skill := range skills {
		assert.NotEqual(t, "React", skill.Name)
		assert.NotEqual(t, "AWS", skill.Name)
	}
}

func TestJobTitlesEndpoint(t *testing.T) {
	s := newTestServer(t, &mockEnhancer{}, Config{})

	w := doRequest(s, http.MethodGet, "/api/job-titles?q=DEVOPS", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["DevOps Engineer"]`, w.Body.String())

	w = doRequest(s, http.MethodGet, "/api/job-titles?q=astronaut", "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestTipsEndpoint(t *testing.T) {
	s := newTestServer(t, &mockEnhancer{}, Config{})

	w := doRequest(s, http.MethodGet, "/api/tips", "")

	require.Equal(t, http.StatusOK, w.Code)
	var tips []catalog.Tip
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tips))
	assert.Equal(t, catalog.StaticTips(), tips)
}

func TestMetrics(t *testing.T) {
	mock := &mockEnhancer{}
	s := newTestServer(t, mock, Config{})

	doRequest(s, http.MethodPost, "/api/enhance", `{"resumeText":"r","jobDescription":"j"}`)
	doRequest(s, http.MethodPost, "/api/enhance", `{}`)
	doRequest(s, http.MethodGet, "/health", "")
	doRequest(s, http.MethodGet, "/nope", "")

	w := doRequest(s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	exposition := w.Body.String()

	assert.Contains(t, exposition, `resume_enhancements_total{result="success"} 1`)
	assert.Contains(t, exposition, `resume_enhancements_total{result="invalid"} 1`)
	assert.NotContains(t, exposition, `resume_enhancements_total{result="failure"}`)
	assert.Contains(t, exposition, `http_requests_total{method="POST",path="POST /api/enhance",status_code="200"} 1`)
	assert.Contains(t, exposition, `http_requests_total{method="POST",path="POST /api/enhance",status_code="400"} 1`)
	assert.Contains(t, exposition, `http_requests_total{method="GET",path="GET /health",status_code="200"} 1`)
	assert.Contains(t, exposition, `http_requests_total{method="GET",path="unmatched",status_code="404"} 1`)
	assert.Contains(t, exposition, "http_request_duration_seconds")
}

func TestServe_GracefulShutdown(t *testing.T) {
	s := newTestServer(t, &mockEnhancer{}, Config{})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRun_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = ln.Close() }()

	s := newTestServer(t, &mockEnhancer{}, Config{})
	s.httpServer.Addr = ln.Addr().String()

	err = s.Run(context.Background())
	assert.Error(t, err)
}
