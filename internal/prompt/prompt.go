// Package prompt implements core.Prompter against a terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/darmiel/homeyctl/internal/core"
)

var ErrNoInput = fmt.Errorf("no input")

type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

var _ core.Prompter = (*Terminal)(nil)

func NewTerminal() *Terminal {
	return &Terminal{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stderr,
	}
}

// Input asks for a single line of free text.
func (t *Terminal) Input(label string) (string, error) {
	_, _ = fmt.Fprintf(t.out, "%s\n%s ", label, color.New(color.Faint).Sprint(">"))
	return t.readLine()
}

// Select presents a numbered single-choice list and returns the chosen
// option's value. An empty answer or an out-of-range number fails.
func (t *Terminal) Select(label string, options []core.SelectOption) (string, error) {
	if len(options) == 0 {
		return "", ErrNoInput
	}

	_, _ = fmt.Fprintf(t.out, "%s\n", label)
	for i, opt := range options {
		_, _ = fmt.Fprintf(t.out, "  %s %s\n", color.New(color.Faint).Sprintf("[%d]", i+1), opt.Label)
	}
	_, _ = fmt.Fprintf(t.out, "%s ", color.New(color.Faint).Sprintf("choice [1-%d]:", len(options)))

	answer, err := t.readLine()
	if err != nil {
		return "", err
	}
	choice, err := strconv.Atoi(answer)
	if err != nil || choice < 1 || choice > len(options) {
		return "", fmt.Errorf("invalid choice %q", answer)
	}
	return options[choice-1].Value, nil
}

func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading input: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", ErrNoInput
	}
	return line, nil
}
