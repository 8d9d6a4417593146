// Package errors provides standardized error handling for the outreach pipeline.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Loader errors
const (
	ErrCodeFileNotAccessible ErrorCode = "FILE_NOT_ACCESSIBLE"
	ErrCodeDataFileInvalid   ErrorCode = "DATA_FILE_INVALID"
)

// Recommendation client errors
const (
	ErrCodeUpstreamError     ErrorCode = "UPSTREAM_ERROR"
	ErrCodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"
)

// Outreach errors
const (
	ErrCodeDeliveryError        ErrorCode = "DELIVERY_ERROR"
	ErrCodeTemplateRenderFailed ErrorCode = "TEMPLATE_RENDER_FAILED"
)

// Run errors
const (
	ErrCodeConfigurationInvalid ErrorCode = "CONFIGURATION_INVALID"
	ErrCodeInputAborted         ErrorCode = "INPUT_ABORTED"
	ErrCodeInternal             ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Cause     error                  `json:"-"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.Cause
}

// WithMetadata attaches a metadata entry and returns the same error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. Error Constructors
// ==========================

// NewFileNotAccessibleError creates a non-retryable loader error for a path
// that does not resolve or cannot be read.
func NewFileNotAccessibleError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeFileNotAccessible,
		Message:   "Data file not accessible",
		Details:   fmt.Sprintf("path: %s, error: %s", path, errText(err)),
		Retryable: false,
		Metadata:  map[string]interface{}{"path": path},
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// NewDataFileInvalidError creates a non-retryable loader error for a file
// whose header or cells cannot be read as influencer records.
func NewDataFileInvalidError(path, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDataFileInvalid,
		Message:   "Data file is not a valid influencer table",
		Details:   details,
		Retryable: false,
		Metadata:  map[string]interface{}{"path": path},
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamError creates an error for a failed call to the generative AI service.
func NewUpstreamError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamError,
		Message:   fmt.Sprintf("%s request failed", service),
		Details:   errText(err),
		Retryable: true,
		Metadata:  map[string]interface{}{"service": service},
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// NewMalformedResponseError creates a non-retryable error for model output
// that is not the expected JSON structure. The received text is kept in the
// metadata, truncated, for the operator diagnostic.
func NewMalformedResponseError(details, received string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedResponse,
		Message:   "AI response could not be parsed",
		Details:   details,
		Retryable: false,
		Metadata:  map[string]interface{}{"received": truncate(received, 2000)},
		Timestamp: time.Now().UTC(),
	}
}

// NewDeliveryError creates a per-recipient mail delivery error.
func NewDeliveryError(recipient string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDeliveryError,
		Message:   "Failed to deliver email",
		Details:   fmt.Sprintf("recipient: %s, error: %s", recipient, errText(err)),
		Retryable: true,
		Metadata:  map[string]interface{}{"recipient": recipient},
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// NewTemplateRenderFailedError creates a per-recipient template error.
func NewTemplateRenderFailedError(recipient string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTemplateRenderFailed,
		Message:   "Failed to render invitation template",
		Details:   fmt.Sprintf("recipient: %s, error: %s", recipient, errText(err)),
		Retryable: false,
		Metadata:  map[string]interface{}{"recipient": recipient},
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// NewConfigurationInvalidError creates a non-retryable configuration error.
func NewConfigurationInvalidError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigurationInvalid,
		Message:   "Invalid configuration",
		Details:   errText(err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// NewInputAbortedError is returned when operator input ends before a valid answer.
func NewInputAbortedError(prompt string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInputAborted,
		Message:   "Operator input ended",
		Details:   fmt.Sprintf("prompt: %s, error: %s", prompt, errText(err)),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// AsStandardError extracts a StandardError from an error chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// HasCode reports whether err wraps a StandardError with the given code.
func HasCode(err error, code ErrorCode) bool {
	stdErr, ok := AsStandardError(err)
	return ok && stdErr.Code == code
}

// IsTerminal reports whether an error code ends the run.
func IsTerminal(code ErrorCode) bool {
	switch code {
	case ErrCodeDeliveryError, ErrCodeTemplateRenderFailed:
		return false
	default:
		return true
	}
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeFileNotAccessible, ErrCodeDataFileInvalid:
		return "LOADER"
	case ErrCodeUpstreamError, ErrCodeMalformedResponse:
		return "AI_CLIENT"
	case ErrCodeDeliveryError, ErrCodeTemplateRenderFailed:
		return "OUTREACH"
	case ErrCodeConfigurationInvalid, ErrCodeInputAborted:
		return "RUN"
	default:
		return "UNKNOWN"
	}
}

func errText(err error) string {
	if err == nil {
		return "<nil>"
	}
	return err.Error()
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "...(truncated)"
}
