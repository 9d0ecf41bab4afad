// Package inputreader implements the dedicated stdin-reading thread
// (spec.md §4.6): one line at a time onto the stdin-line channel, and a
// signal-pipe token on end-of-input so the reactor synthesizes the
// shutdown ERR as if SIGINT had fired.
package inputreader

import (
	"bufio"
	"io"
	"os"

	libatm "github.com/jakubvsetecka/ipk24chat-client/atomic"
)

// Reader owns the blocking stdin loop. It runs on its own goroutine
// (the "Input reader thread" of spec.md §5).
type Reader struct {
	in      io.Reader
	lines   chan<- string
	sigPipe chan<- struct{}

	stopped libatm.Value[bool]
}

// New returns a Reader that scans in line by line, publishing each line on
// lines and, on EOF, one token on sigPipe.
func New(in io.Reader, lines chan<- string, sigPipe chan<- struct{}) *Reader {
	return &Reader{in: in, lines: lines, sigPipe: sigPipe, stopped: libatm.NewValue[bool]()}
}

// Run blocks until the input is exhausted or Stop is called. Go has no
// portable way to poll a stdin read with a timeout the way the original's
// poll(2)-based reader does (spec.md §4.6); instead Stop closes the
// underlying file descriptor when it is one, which unblocks the pending
// read immediately. A genuine end-of-input (the user's own EOF, not a
// Stop-induced close) still emits the required signal-pipe token.
func (r *Reader) Run() {
	scanner := bufio.NewScanner(r.in)

	for scanner.Scan() {
		r.lines <- scanner.Text()
	}

	close(r.lines)

	if !r.stopped.Load() {
		select {
		case r.sigPipe <- struct{}{}:
		default:
		}
	}
}

// Stop requests the reader to give up the blocking stdin read. If the
// underlying reader is an *os.File (the real os.Stdin case), closing it
// is the only portable way to unblock a pending Read.
func (r *Reader) Stop() {
	r.stopped.Store(true)

	if f, ok := r.in.(*os.File); ok {
		_ = f.Close()
	}
}
