package session

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// LineReader yields one line of user input per call. *term.Terminal
// satisfies it, as does the reader returned by NewLineReader.
type LineReader interface {
	ReadLine() (string, error)
}

type bufferedLines struct {
	r *bufio.Reader
}

// NewLineReader reads newline-terminated lines from r.
func NewLineReader(r io.Reader) LineReader {
	return &bufferedLines{r: bufio.NewReader(r)}
}

func (b *bufferedLines) ReadLine() (string, error) {
	line, err := b.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

type lineResult struct {
	line string
	err  error
}

// input reads lines on a goroutine, one per request. Nothing is read from
// the terminal unless the session asked for a line, so another program
// (a pager) can own the terminal between requests.
type input struct {
	src     LineReader
	want    chan struct{}
	lines   chan lineResult
	pending bool
}

func newInput(src LineReader) *input {
	return &input{
		src:   src,
		want:  make(chan struct{}, 1),
		lines: make(chan lineResult),
	}
}

func (in *input) start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-in.want:
			}
			line, err := in.src.ReadLine()
			select {
			case in.lines <- lineResult{line: line, err: err}:
			case <-ctx.Done():
				return
			}
		}
	}()
}

// request asks for the next line unless a request is already outstanding.
func (in *input) request() {
	if in.pending {
		return
	}
	in.pending = true
	in.want <- struct{}{}
}

func (in *input) received() {
	in.pending = false
}
