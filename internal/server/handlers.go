package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-optimax/internal/catalog"
	"github.com/jonathan/resume-optimax/internal/enhancement"
	"github.com/jonathan/resume-optimax/internal/server/middleware"
)

// handleEnhance rewrites the submitted resume against the job description.
// Bad input is rejected before the provider is called; provider failures are
// logged and reported with a fixed message.
func (s *Server) handleEnhance(w http.ResponseWriter, r *http.Request) {
	logger := s.logger.With(zap.String("request_id", middleware.GetRequestID(r)))

	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)

	var req enhancement.Request
	if err := decodeBody(r.Body, &req); err != nil {
		logger.Info("rejected enhancement request", zap.Error(err))
		s.metrics.observeEnhancement(outcomeInvalid)
		s.errorResponse(w, r, HTTPStatus(err), err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		verr := extractValidationErrors(err)
		logger.Info("rejected enhancement request", zap.Error(verr))
		s.metrics.observeEnhancement(outcomeInvalid)
		s.errorResponse(w, r, HTTPStatus(verr), verr.Error())
		return
	}

	text, err := s.enhancer.Enhance(r.Context(), req.ResumeText, req.JobDescription)
	if err != nil {
		eerr := &ErrEnhancement{Err: err}
		logger.Error("resume enhancement failed", zap.Error(eerr))
		s.metrics.observeEnhancement(outcomeFailure)
		s.errorResponse(w, r, HTTPStatus(eerr), enhancementFailedMessage)
		return
	}

	s.metrics.observeEnhancement(outcomeSuccess)
	s.jsonResponse(w, r, http.StatusOK, enhancement.NewResponse(text))
}

// handleSkills lists predefined skills matching ?q=, minus those in ?exclude=a,b
func (s *Server) handleSkills(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	s.jsonResponse(w, r, http.StatusOK, catalog.SearchSkills(query.Get("q"), splitList(query.Get("exclude"))))
}

// handleJobTitles lists popular job titles matching ?q=
func (s *Server) handleJobTitles(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, r, http.StatusOK, catalog.SearchJobTitles(r.URL.Query().Get("q")))
}

// handleTips returns the static improvement tips
func (s *Server) handleTips(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, r, http.StatusOK, catalog.StaticTips())
}

// splitList parses a comma-separated query value, dropping blank entries
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// decodeBody decodes body into v, which must be the only JSON value in it
func decodeBody(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		return decodeError(err)
	}

	var extra json.RawMessage
	switch err := dec.Decode(&extra); {
	case errors.Is(err, io.EOF):
		return nil
	case err == nil:
		return &ErrValidation{Field: "body", Message: "unexpected data after JSON object"}
	default:
		return decodeError(err)
	}
}
