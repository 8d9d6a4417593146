// internal/pipeline/prompt.go
package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"influencer-outreach/internal/common/errors"
)

type lineResult struct {
	text string
	err  error
}

// Prompter asks the operator questions on a line-oriented terminal. Reads
// happen on a background goroutine so a cancelled context unblocks Ask.
type Prompter struct {
	in    io.Reader
	out   io.Writer
	lines chan lineResult
	once  sync.Once
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:    in,
		out:   out,
		lines: make(chan lineResult, 1),
	}
}

// start runs the reader. The buffered channel lets it deliver the final
// end-of-input result and exit even when no further Ask follows.
func (p *Prompter) start() {
	go func() {
		defer close(p.lines)
		scanner := bufio.NewScanner(p.in)
		for scanner.Scan() {
			p.lines <- lineResult{text: scanner.Text()}
		}
		err := scanner.Err()
		if err == nil {
			err = io.EOF
		}
		p.lines <- lineResult{err: err}
	}()
}

// Ask prints question and returns the next input line with surrounding
// whitespace removed. End of input or cancellation yields INPUT_ABORTED.
func (p *Prompter) Ask(ctx context.Context, question string) (string, error) {
	p.once.Do(p.start)
	fmt.Fprint(p.out, question)

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return "", errors.NewInputAbortedError(strings.TrimSpace(question), ctx.Err())
	case res, ok := <-p.lines:
		if !ok {
			return "", errors.NewInputAbortedError(strings.TrimSpace(question), io.EOF)
		}
		if res.err != nil {
			fmt.Fprintln(p.out)
			return "", errors.NewInputAbortedError(strings.TrimSpace(question), res.err)
		}
		return strings.TrimSpace(res.text), nil
	}
}

// Printf writes operator-facing text.
func (p *Prompter) Printf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format, args...)
}
