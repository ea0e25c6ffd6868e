// Package prompt reads the operator's decisions from a line-oriented terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/handiism/stem-splitter/internal/model"
)

// Prompter asks questions on out and reads one line per answer from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Folder asks for the folder holding the audio files. The answer is returned
// with surrounding whitespace removed.
func (p *Prompter) Folder() (string, error) {
	return p.ask("Enter the folder path containing audio files: ")
}

// Mode prints the split menu and returns the trimmed choice verbatim.
// Validation is left to the command builder.
func (p *Prompter) Mode() (string, error) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "Split options:")
	for _, m := range model.Modes() {
		fmt.Fprintf(p.out, "%s. %s\n", m.Token(), m)
	}
	return p.ask(fmt.Sprintf("Enter your choice (%s or %s): ", model.TokenFourStems, model.TokenTwoStems))
}

// ask reads one line. A final line without a newline is accepted; EOF with
// nothing typed is an error.
func (p *Prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)

	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || line == "" {
			return "", fmt.Errorf("read answer: %w", err)
		}
	}

	return strings.TrimSpace(line), nil
}
