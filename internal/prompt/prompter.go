package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter shows a prompt and returns the line the user entered.
type Prompter interface {
	Prompt(text string) (string, error)
}

// LinePrompter prompts on a writer and reads answers line by line.
type LinePrompter struct {
	r *bufio.Reader
	w io.Writer
}

// NewLinePrompter returns a Prompter writing to w and reading from r,
// normally os.Stdout and os.Stdin.
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{r: bufio.NewReader(r), w: w}
}

// Prompt writes text without a trailing newline and reads one line. Hitting
// end of input counts as entering whatever was typed so far.
func (p *LinePrompter) Prompt(text string) (string, error) {
	if _, err := io.WriteString(p.w, text); err != nil {
		return "", fmt.Errorf("writing prompt: %w", err)
	}

	line, err := p.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Scripted answers prompts from a fixed list, recording every prompt shown.
// It is meant for tests and non-interactive runs.
type Scripted struct {
	Answers []string
	Shown   []string
}

// Prompt returns the next scripted answer.
func (s *Scripted) Prompt(text string) (string, error) {
	s.Shown = append(s.Shown, text)
	if len(s.Answers) == 0 {
		return "", fmt.Errorf("no scripted answer for prompt %q", text)
	}
	answer := s.Answers[0]
	s.Answers = s.Answers[1:]
	return answer, nil
}
