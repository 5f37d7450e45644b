// Package input contains the line readers used to get player input from a
// console.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// Reader reads lines of player input.
type Reader interface {
	// ReadLine blocks until a line is read. At end of input it returns io.EOF.
	ReadLine() (string, error)

	// AllowBlank sets whether blank lines are returned instead of skipped.
	AllowBlank(allow bool)

	// Close releases any resources held by the reader.
	Close() error
}

// DirectLineReader implements Reader and reads lines from any generic input
// stream directly. It does not sanitize the input of control and escape
// sequences.
//
// DirectLineReader should not be used directly; instead, create one with
// [NewDirectReader].
type DirectLineReader struct {
	r             *bufio.Reader
	blanksAllowed bool
}

// InteractiveLineReader implements Reader and reads lines from stdin using a
// go implementation of the GNU Readline library. This keeps input clear of all
// typing and editing escape sequences and enables the use of line history. It
// should in general only be used when directly connected to a TTY.
//
// InteractiveLineReader should not be used directly; instead, create one with
// [NewInteractiveReader].
type InteractiveLineReader struct {
	rl            *readline.Instance
	blanksAllowed bool
}

// NewDirectReader creates a DirectLineReader over a buffered reader on r.
func NewDirectReader(r io.Reader) *DirectLineReader {
	return &DirectLineReader{
		r: bufio.NewReader(r),
	}
}

// NewInteractiveReader creates an InteractiveLineReader and initializes
// readline. The returned reader must have Close() called on it before disposal
// to properly teardown readline resources.
func NewInteractiveReader(prompt string) (*InteractiveLineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveLineReader{
		rl: rl,
	}, nil
}

// Close is a no-op; it exists so DirectLineReader implements Reader.
func (dlr *DirectLineReader) Close() error {
	return nil
}

// Close cleans up readline resources.
func (ilr *InteractiveLineReader) Close() error {
	return ilr.rl.Close()
}

// ReadLine reads the next line from the stream. Unless blanks are allowed,
// lines holding only whitespace are skipped.
//
// If at end of input, the returned string will be empty and error will be
// io.EOF. If any other error occurs, the returned string will be empty and
// error will be that error.
func (dlr *DirectLineReader) ReadLine() (string, error) {
	for {
		line, err := dlr.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)
		if line != "" || dlr.blanksAllowed {
			return line, nil
		}
	}
}

// ReadLine reads the next line from stdin. Unless blanks are allowed, lines
// holding only whitespace are skipped. An interrupt (Ctrl-C) is reported as
// io.EOF.
func (ilr *InteractiveLineReader) ReadLine() (string, error) {
	for {
		line, err := ilr.rl.Readline()
		if err == readline.ErrInterrupt {
			return "", io.EOF
		}
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)
		if line != "" || ilr.blanksAllowed {
			return line, nil
		}
	}
}

// AllowBlank sets whether blank input is returned. By default it is not.
func (dlr *DirectLineReader) AllowBlank(allow bool) {
	dlr.blanksAllowed = allow
}

// AllowBlank sets whether blank input is returned. By default it is not.
func (ilr *InteractiveLineReader) AllowBlank(allow bool) {
	ilr.blanksAllowed = allow
}

// Stdout returns a writer for output that should not garble the prompt while a
// line is being typed.
func (ilr *InteractiveLineReader) Stdout() io.Writer {
	return ilr.rl.Stdout()
}

// Line is one result of reading from a Reader.
type Line struct {
	Text string
	Err  error
}

// Pump reads lines from r on its own goroutine and sends each one on the
// returned channel. After the first error is sent the channel is closed. The
// next line is not read until the previous one has been received.
func Pump(r Reader) <-chan Line {
	lines := make(chan Line)
	go func() {
		defer close(lines)
		for {
			text, err := r.ReadLine()
			lines <- Line{Text: text, Err: err}
			if err != nil {
				return
			}
		}
	}()
	return lines
}
