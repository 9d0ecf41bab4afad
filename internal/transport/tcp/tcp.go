// Package tcp implements the stream Transport variant (spec.md §4.1,
// "Stream variant"): resolve host, connect, full-buffer send, and
// reassembled-line receive.
package tcp

import (
	"bufio"
	"bytes"
	"net"
	"strconv"

	libtr "github.com/jakubvsetecka/ipk24chat-client/internal/transport"
)

const receiveBufSize = 1500

// Transport is the stream (TCP) Transport. Failure to connect is treated
// as fatal by the caller, per spec.md §4.1.
type Transport struct {
	host string
	port int

	conn    net.Conn
	scanner *bufio.Scanner
}

// New returns a Transport configured to connect to host:port on Open.
func New(host string, port int) *Transport {
	return &Transport{host: host, port: port}
}

var _ libtr.Transport = (*Transport)(nil)

func (t *Transport) Open() error {
	conn, err := net.Dial("tcp", net.JoinHostPort(t.host, strconv.Itoa(t.port)))
	if err != nil {
		return libtr.ErrOpenFailed.Error(err)
	}

	t.conn = conn

	s := bufio.NewScanner(conn)
	s.Buffer(make([]byte, 0, receiveBufSize), receiveBufSize*4)
	s.Split(scanCRLF)
	t.scanner = s

	return nil
}

func (t *Transport) Close() error {
	if t.conn == nil {
		return nil
	}
	return t.conn.Close()
}

// Send writes the full serialized buffer in one call (spec.md §4.1).
func (t *Transport) Send(b []byte) error {
	if t.conn == nil {
		return libtr.ErrClosed.Error()
	}

	if _, err := t.conn.Write(b); err != nil {
		return libtr.ErrSendFailed.Error(err)
	}

	return nil
}

// Receive reassembles and returns one logical line, with its trailing
// "\r\n" already stripped, irrespective of how TCP happened to split it
// across reads (SPEC_FULL.md §4, "Stream receive framing").
func (t *Transport) Receive() ([]byte, error) {
	if t.scanner == nil {
		return nil, libtr.ErrClosed.Error()
	}

	if !t.scanner.Scan() {
		if err := t.scanner.Err(); err != nil {
			return nil, libtr.ErrReceiveFailed.Error(err)
		}
		return nil, libtr.ErrReceiveFailed.Error()
	}

	return t.scanner.Bytes(), nil
}

// scanCRLF is a bufio.SplitFunc that splits on "\r\n", dropping it from the
// returned token, so every Receive call yields exactly one logical line
// even when the server's writes don't line up with TCP segment boundaries.
func scanCRLF(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.Index(data, []byte("\r\n")); i >= 0 {
		return i + 2, data[:i], nil
	}

	if atEOF {
		return len(data), data, nil
	}

	return 0, nil, nil
}
