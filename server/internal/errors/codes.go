package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode represents a specific failure mode of the generation pipeline.
type ErrorCode string

const (
	// ErrCodeMissingCredential indicates no API credential could be resolved.
	ErrCodeMissingCredential ErrorCode = "MISSING_CREDENTIAL"
	// ErrCodeEmptyInput indicates the request carried no text to analyze.
	ErrCodeEmptyInput ErrorCode = "EMPTY_INPUT"
	// ErrCodeExtractionFailed indicates the LLM call or response parsing failed.
	ErrCodeExtractionFailed ErrorCode = "EXTRACTION_FAILED"
	// ErrCodeRenderFailed indicates the visualization markup could not be produced.
	ErrCodeRenderFailed ErrorCode = "RENDER_FAILED"
	// ErrCodeRateLimitExceeded indicates the client is generating too fast.
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
)

// PipelineError represents a structured error for one pipeline run.
// Every PipelineError is terminal for its request only; the server keeps
// serving subsequent requests normally.
type PipelineError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// GetCode returns the error code.
func (e *PipelineError) GetCode() ErrorCode {
	return e.Code
}

// UserMessage returns the message shown to the user, including the cause
// for extraction failures where the provider detail matters.
func (e *PipelineError) UserMessage() string {
	if e.Code == ErrCodeExtractionFailed && e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// HTTPStatus maps the error code to an HTTP response status.
func (e *PipelineError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeMissingCredential:
		return http.StatusUnauthorized
	case ErrCodeEmptyInput:
		return http.StatusBadRequest
	case ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case ErrCodeExtractionFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Convenience constructors for common error types.

// MissingCredential creates a missing credential error.
func MissingCredential(msg string) *PipelineError {
	return &PipelineError{Code: ErrCodeMissingCredential, Message: msg}
}

// EmptyInput creates an empty input error.
func EmptyInput(msg string) *PipelineError {
	return &PipelineError{Code: ErrCodeEmptyInput, Message: msg}
}

// ExtractionFailed creates an extraction failed error.
func ExtractionFailed(msg string, cause error) *PipelineError {
	return &PipelineError{Code: ErrCodeExtractionFailed, Message: msg, Cause: cause}
}

// RenderFailed creates a render failed error.
func RenderFailed(msg string, cause error) *PipelineError {
	return &PipelineError{Code: ErrCodeRenderFailed, Message: msg, Cause: cause}
}

// RateLimitExceeded creates a rate limit exceeded error.
func RateLimitExceeded(msg string) *PipelineError {
	return &PipelineError{Code: ErrCodeRateLimitExceeded, Message: msg}
}
