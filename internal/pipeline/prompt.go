package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the operator a yes/no question.
type Prompter interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// ParseAnswer reports whether response is an affirmative "y" or "yes",
// ignoring case and surrounding space.
func ParseAnswer(response string) bool {
	switch strings.ToLower(strings.TrimSpace(response)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// LinePrompter writes the question to out and reads one line from in.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter builds a prompter over the given streams.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Confirm returns true only for an affirmative answer. EOF counts as no.
func (p *LinePrompter) Confirm(ctx context.Context, question string) (bool, error) {
	if _, err := fmt.Fprint(p.out, question); err != nil {
		return false, err
	}

	type reply struct {
		line string
		err  error
	}
	// A blocked read cannot be interrupted. On cancellation this goroutine
	// stays parked until in yields a line or closes; the prompt runs once
	// per process, so the leak is accepted.
	ch := make(chan reply, 1)
	go func() {
		line, err := p.in.ReadString('\n')
		ch <- reply{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return false, ctx.Err()
	case r := <-ch:
		if r.err != nil && r.err != io.EOF {
			return false, r.err
		}
		if r.err == io.EOF && r.line == "" {
			fmt.Fprintln(p.out)
		}
		return ParseAnswer(r.line), nil
	}
}

// Answer is a Prompter with a fixed reply, used for --clear-input and
// --keep-input.
type Answer bool

// Confirm returns the fixed answer.
func (a Answer) Confirm(context.Context, string) (bool, error) {
	return bool(a), nil
}
