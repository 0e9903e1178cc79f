package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the user to confirm a destructive operation.
type Prompter interface {
	// Confirm requires the user to type expectedValue back before the
	// operation proceeds.
	Confirm(message string, expectedValue string) (bool, error)
}

// StandardPrompter reads the confirmation from the given input stream
// and writes the question to the given output stream.
type StandardPrompter struct {
	reader io.Reader
	writer io.Writer
}

func NewStandardPrompter(in io.Reader, out io.Writer) *StandardPrompter {
	return &StandardPrompter{
		reader: in,
		writer: out,
	}
}

func (p *StandardPrompter) Confirm(message string, expectedValue string) (bool, error) {
	if expectedValue == "" {
		return false, fmt.Errorf("expected confirmation value cannot be empty")
	}

	fmt.Fprintln(p.writer, message)
	fmt.Fprintf(p.writer, "To confirm, type '%s': ", expectedValue)

	input, err := bufio.NewReader(p.reader).ReadString('\n')
	if err != nil {
		// Treat a closed input stream as a declined confirmation.
		if err == io.EOF {
			return false, nil
		}
		return false, fmt.Errorf("error reading user input: %w", err)
	}

	return strings.TrimSpace(input) == expectedValue, nil
}
