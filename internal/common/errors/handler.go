// internal/common/errors/handler.go
package errors

import "time"

// ErrorHandler normalises errors and reports them with their category.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Report logs err and returns its normalised form. Terminal errors are
// logged at error level, per-recipient errors at warn level.
func (h *ErrorHandler) Report(stage string, err error) *StandardError {
	if err == nil {
		return nil
	}
	stdErr := Normalize(err)

	fields := map[string]interface{}{
		"stage":         stage,
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"errorCategory": GetErrorCategory(stdErr.Code),
	}
	for k, v := range stdErr.Metadata {
		fields[k] = v
	}

	if IsTerminal(stdErr.Code) {
		h.logger.Error("Stage failed", fields)
	} else {
		h.logger.Warn("Stage item failed", fields)
	}
	return stdErr
}

// Normalize ensures we always have a StandardError
func Normalize(err error) *StandardError {
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}
