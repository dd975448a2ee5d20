package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrInterrupt is returned by a LineReader when the user interrupts input.
var ErrInterrupt = errors.New("interrupted")

// LineReader reads one line of user input after showing prompt. The returned
// line has its line terminator removed. At end of input it returns io.EOF.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// NewLineReader picks a line editor for terminals and a plain reader otherwise.
func NewLineReader(ctx context.Context, in *os.File, out io.Writer) LineReader {
	if term.IsTerminal(int(in.Fd())) {
		return newTerminalReader(in, out)
	}
	return newPlainReader(ctx, in, out)
}

// terminalReader edits lines with golang.org/x/term. The terminal is only in
// raw mode while a line is being read, so Ctrl-C raises SIGINT while the
// compiler runs.
type terminalReader struct {
	fd int
	t  *term.Terminal
}

func newTerminalReader(in *os.File, out io.Writer) *terminalReader {
	rw := struct {
		io.Reader
		io.Writer
	}{in, out}
	return &terminalReader{fd: int(in.Fd()), t: term.NewTerminal(rw, "")}
}

func (r *terminalReader) ReadLine(prompt string) (string, error) {
	state, err := term.MakeRaw(r.fd)
	if err != nil {
		return "", fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer term.Restore(r.fd, state)

	r.t.SetPrompt(prompt)
	// Ctrl-C and Ctrl-D on an empty line both come back as io.EOF.
	return r.t.ReadLine()
}

func (r *terminalReader) Close() error {
	return nil
}

type readResult struct {
	line string
	err  error
}

// plainReader reads newline separated input from a pipe or file. Reads happen
// on a separate goroutine so an interrupt can end a blocked read.
type plainReader struct {
	ctx     context.Context
	br      *bufio.Reader
	out     io.Writer
	results chan readResult
	pending bool
}

func newPlainReader(ctx context.Context, in io.Reader, out io.Writer) *plainReader {
	return &plainReader{
		ctx:     ctx,
		br:      bufio.NewReader(in),
		out:     out,
		results: make(chan readResult, 1),
	}
}

func (r *plainReader) start() {
	go func() {
		line, err := r.br.ReadString('\n')
		if err == io.EOF && line != "" {
			// Hand over the unterminated last line, EOF comes on the next read.
			err = nil
		}
		r.results <- readResult{line: trimNewline(line), err: err}
	}()
}

func (r *plainReader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	if !r.pending {
		r.pending = true
		r.start()
	}
	select {
	case <-r.ctx.Done():
		return "", ErrInterrupt
	case res := <-r.results:
		r.pending = false
		return res.line, res.err
	}
}

func (r *plainReader) Close() error {
	return nil
}

func trimNewline(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
