package pipeline

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"influencer-outreach/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_Ask(t *testing.T) {
	out := &bytes.Buffer{}
	p := NewPrompter(strings.NewReader("  Technology \r\nsecond\n"), out)

	answer, err := p.Ask(context.Background(), "Category: ")
	require.NoError(t, err)
	assert.Equal(t, "Technology", answer)

	answer, err = p.Ask(context.Background(), "Next: ")
	require.NoError(t, err)
	assert.Equal(t, "second", answer)

	_, err = p.Ask(context.Background(), "Again: ")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInputAborted))
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "Category: Next: Again: \n", out.String())
}

func TestPrompter_AskCancelled(t *testing.T) {
	reader, writer := io.Pipe()
	defer writer.Close()

	p := NewPrompter(reader, io.Discard)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.Ask(ctx, "Category: ")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInputAborted))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPrompter_ReaderExitsAfterLastAnswer(t *testing.T) {
	p := NewPrompter(strings.NewReader("Technology\n"), io.Discard)

	answer, err := p.Ask(context.Background(), "Category: ")
	require.NoError(t, err)
	assert.Equal(t, "Technology", answer)

	// With no further Ask, the reader parks the end-of-input result and
	// closes the channel.
	assert.Eventually(t, func() bool { return len(p.lines) == 1 }, time.Second, 5*time.Millisecond)
	res := <-p.lines
	assert.ErrorIs(t, res.err, io.EOF)

	select {
	case _, ok := <-p.lines:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("reader goroutine did not exit")
	}
}
