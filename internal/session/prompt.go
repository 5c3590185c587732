package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"
)

// ErrEndOfInput reports that no more input will arrive (EOF or Ctrl+C at
// the prompt).
var ErrEndOfInput = errors.New("end of input")

// Prompter reads one line of user input.
type Prompter interface {
	Prompt(ctx context.Context, message string) (string, error)
}

// NewPrompter picks a terminal prompt when in is a TTY and a plain line
// reader otherwise.
func NewPrompter(in io.Reader, out io.Writer) Prompter {
	if f, ok := in.(*os.File); ok && isTerminal(f) {
		if w, ok := out.(terminal.FileWriter); ok {
			return &surveyPrompter{in: f, out: w, err: os.Stderr}
		}
	}
	return NewLinePrompter(in, out)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type surveyPrompter struct {
	in  terminal.FileReader
	out terminal.FileWriter
	err io.Writer
}

func (p *surveyPrompter) Prompt(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var answer string
	prompt := &survey.Input{
		Message: message,
		Help:    "Drag a file onto this window or type its path. Type exit to quit.",
	}
	if err := survey.AskOne(prompt, &answer, survey.WithStdio(p.in, p.out, p.err)); err != nil {
		return "", translateSurveyErr(err)
	}
	return answer, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) || errors.Is(err, io.EOF) {
		return ErrEndOfInput
	}
	return err
}

// LinePrompter reads newline-terminated input, for piped stdin and tests.
type LinePrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewLinePrompter returns a prompter reading lines from in.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{reader: bufio.NewReader(in), out: out}
}

// Prompt writes message and returns the next line without its terminator.
func (p *LinePrompter) Prompt(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.out != nil && message != "" {
		fmt.Fprintf(p.out, "%s ", message)
	}
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrEndOfInput
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
