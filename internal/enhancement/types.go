// Package enhancement rewrites a resume against a job description using a
// generative-language provider. It holds the prompt builder, the provider-facing
// Enhancer, and the client-side Requester that talks to the HTTP relay.
package enhancement

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/jonathan/resume-optimax/internal/catalog"
)

// Request is the body of POST /api/enhance.
// SelectedSkills and JobTitle are accepted but not used when building the prompt.
type Request struct {
	ResumeText     string   `json:"resumeText" validate:"required,notblank"`
	JobDescription string   `json:"jobDescription" validate:"required,notblank"`
	SelectedSkills []string `json:"selectedSkills,omitempty"`
	JobTitle       string   `json:"jobTitle,omitempty"`
}

// Response is the body returned by a successful enhancement.
type Response struct {
	EnhancedResume string        `json:"enhancedResume"`
	Tips           []catalog.Tip `json:"tips"`
}

// NewResponse wraps provider output. Tips are always empty (never nil) so the
// field serialises as [].
func NewResponse(enhancedResume string) Response {
	return Response{
		EnhancedResume: enhancedResume,
		Tips:           []catalog.Tip{},
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	// Report JSON field names in validation errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the request against its struct tags. The returned error is a
// validator.ValidationErrors when a field rule fails.
func (r *Request) Validate() error {
	return validate.Struct(r)
}

// Ready reports whether both inputs are non-empty after trimming whitespace.
func (r *Request) Ready() bool {
	return strings.TrimSpace(r.ResumeText) != "" && strings.TrimSpace(r.JobDescription) != ""
}
