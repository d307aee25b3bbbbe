package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// enhancementFailedMessage is the only detail a client sees when the provider fails.
const enhancementFailedMessage = "Resume enhancement failed."

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrEnhancement indicates the provider call behind an enhancement failed.
// The cause is kept for logs and never sent to the client.
type ErrEnhancement struct {
	Err error
}

func (e *ErrEnhancement) Error() string {
	return fmt.Sprintf("enhancement failed: %v", e.Err)
}

func (e *ErrEnhancement) Unwrap() error {
	return e.Err
}

// ErrBodyTooLarge indicates the request body exceeded the configured limit
type ErrBodyTooLarge struct {
	Limit int64
}

func (e *ErrBodyTooLarge) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		verr    *ErrValidation
		sizeErr *ErrBodyTooLarge
	)
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.As(err, &sizeErr):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// extractValidationErrors converts the first failed field rule into an ErrValidation
func extractValidationErrors(err error) *ErrValidation {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return &ErrValidation{Field: ve.Field(), Message: ve.Tag()}
	}
	return &ErrValidation{Field: "body", Message: "invalid request"}
}

// decodeError describes why a JSON request body could not be decoded
func decodeError(err error) error {
	var (
		syntaxErr  *json.SyntaxError
		typeErr    *json.UnmarshalTypeError
		maxByteErr *http.MaxBytesError
	)
	switch {
	case errors.As(err, &maxByteErr):
		return &ErrBodyTooLarge{Limit: maxByteErr.Limit}
	case errors.As(err, &syntaxErr):
		return &ErrValidation{Field: "body", Message: fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)}
	case errors.As(err, &typeErr):
		return &ErrValidation{Field: typeErr.Field, Message: "expected " + typeErr.Type.String()}
	case errors.Is(err, io.EOF):
		return &ErrValidation{Field: "body", Message: "empty"}
	case errors.Is(err, io.ErrUnexpectedEOF):
		return &ErrValidation{Field: "body", Message: "malformed JSON"}
	default:
		return &ErrValidation{Field: "body", Message: "invalid request"}
	}
}
