package errors

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestPipelineErrorHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      *PipelineError
		expected int
	}{
		{"missing credential", MissingCredential("no key"), http.StatusUnauthorized},
		{"empty input", EmptyInput("enter text"), http.StatusBadRequest},
		{"extraction failed", ExtractionFailed("llm call failed", errors.New("401")), http.StatusBadGateway},
		{"rate limited", RateLimitExceeded("slow down"), http.StatusTooManyRequests},
		{"render failed", RenderFailed("template", errors.New("boom")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.HTTPStatus())
		})
	}
}

func TestPipelineErrorMessage(t *testing.T) {
	cause := errors.New("invalid api key")
	err := ExtractionFailed("Groq API request failed", cause)

	assert.Equal(t, "[EXTRACTION_FAILED] Groq API request failed: invalid api key", err.Error())
	assert.Equal(t, "Groq API request failed: invalid api key", err.UserMessage())
	assert.Equal(t, cause, errors.Cause(errors.Unwrap(err)))
}

func TestUserMessageHidesUnexpectedCauses(t *testing.T) {
	err := RenderFailed("failed to render graph", errors.New("template: parse error"))
	assert.Equal(t, "failed to render graph", err.UserMessage())
}
