package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	errors []map[string]interface{}
	warns  []map[string]interface{}
}

func (r *recordingLogger) Error(msg string, fields map[string]interface{}) {
	r.errors = append(r.errors, fields)
}

func (r *recordingLogger) Warn(msg string, fields map[string]interface{}) {
	r.warns = append(r.warns, fields)
}

func TestStandardError_WrapsCause(t *testing.T) {
	cause := fmt.Errorf("open influencers.csv: %w", os.ErrNotExist)
	err := NewFileNotAccessibleError("influencers.csv", cause)

	assert.True(t, stderrors.Is(err, os.ErrNotExist))
	assert.Equal(t, ErrCodeFileNotAccessible, err.Code)
	assert.Contains(t, err.Error(), "FILE_NOT_ACCESSIBLE")
	assert.Equal(t, "influencers.csv", err.Metadata["path"])
}

func TestHasCode(t *testing.T) {
	wrapped := fmt.Errorf("recommend: %w", NewMalformedResponseError("not json", "hello"))

	assert.True(t, HasCode(wrapped, ErrCodeMalformedResponse))
	assert.False(t, HasCode(wrapped, ErrCodeUpstreamError))
	assert.False(t, HasCode(stderrors.New("plain"), ErrCodeMalformedResponse))
}

func TestMalformedResponse_TruncatesReceivedText(t *testing.T) {
	err := NewMalformedResponseError("bad", strings.Repeat("x", 5000))

	received, ok := err.Metadata["received"].(string)
	require.True(t, ok)
	assert.Less(t, len(received), 5000)
	assert.True(t, strings.HasSuffix(received, "...(truncated)"))
}

func TestMalformedResponse_TruncationKeepsRunesWhole(t *testing.T) {
	// 1999 ASCII bytes followed by 3-byte runes puts the 2000-byte cut
	// inside the first "€".
	text := strings.Repeat("x", 1999) + strings.Repeat("€", 10)
	err := NewMalformedResponseError("bad", text)

	received, ok := err.Metadata["received"].(string)
	require.True(t, ok)
	assert.True(t, utf8.ValidString(received))
	assert.Equal(t, strings.Repeat("x", 1999)+"...(truncated)", received)
}

func TestStandardError_WithMetadata(t *testing.T) {
	err := NewInputAbortedError("category", nil).WithMetadata("attempts", 3)
	assert.Equal(t, 3, err.Metadata["attempts"])
}

func TestGetErrorCategory(t *testing.T) {
	tests := map[ErrorCode]string{
		ErrCodeFileNotAccessible:    "LOADER",
		ErrCodeDataFileInvalid:      "LOADER",
		ErrCodeUpstreamError:        "AI_CLIENT",
		ErrCodeMalformedResponse:    "AI_CLIENT",
		ErrCodeDeliveryError:        "OUTREACH",
		ErrCodeConfigurationInvalid: "RUN",
		ErrorCode("SOMETHING_ELSE"): "UNKNOWN",
	}
	for code, want := range tests {
		assert.Equal(t, want, GetErrorCategory(code), string(code))
	}
}

func TestErrorHandler_Report(t *testing.T) {
	t.Run("terminal error logged at error level", func(t *testing.T) {
		log := &recordingLogger{}
		h := NewErrorHandler(log)

		stdErr := h.Report("load", NewFileNotAccessibleError("missing.csv", os.ErrNotExist))

		require.NotNil(t, stdErr)
		require.Len(t, log.errors, 1)
		assert.Empty(t, log.warns)
		assert.Equal(t, "LOADER", log.errors[0]["errorCategory"])
		assert.Equal(t, "missing.csv", log.errors[0]["path"])
	})

	t.Run("delivery error logged at warn level", func(t *testing.T) {
		log := &recordingLogger{}
		h := NewErrorHandler(log)

		h.Report("send", NewDeliveryError("a@example.com", stderrors.New("535 auth failed")))

		assert.Empty(t, log.errors)
		require.Len(t, log.warns, 1)
		assert.Equal(t, "DELIVERY_ERROR", log.warns[0]["errorCode"])
	})

	t.Run("plain error normalised to internal", func(t *testing.T) {
		log := &recordingLogger{}
		stdErr := NewErrorHandler(log).Report("run", stderrors.New("boom"))

		assert.Equal(t, ErrCodeInternal, stdErr.Code)
		assert.Equal(t, "boom", stdErr.Details)
	})

	t.Run("nil error", func(t *testing.T) {
		assert.Nil(t, NewErrorHandler(&recordingLogger{}).Report("run", nil))
	})
}
