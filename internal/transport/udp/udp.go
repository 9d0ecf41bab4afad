// Package udp implements the datagram Transport variant (spec.md §4.1,
// "Datagram variant"): an unconnected UDP socket bound to an ephemeral
// local port, with server-port adoption after the first reply.
package udp

import (
	"net"
	"strconv"
	"sync"

	libtr "github.com/jakubvsetecka/ipk24chat-client/internal/transport"
)

const receiveBufSize = 1500

// Transport is the datagram (UDP) Transport. It deliberately avoids
// connected-datagram semantics (spec.md §4.1) so it can follow the server
// when it reassigns the session to a new per-client port.
type Transport struct {
	host       string
	port       int
	timeoutMS  int
	maxRetries int

	conn *net.UDPConn

	mu   sync.Mutex
	dest *net.UDPAddr
}

// New returns a Transport configured to exchange datagrams with host:port,
// using timeoutMS/maxRetries for the reactor's stop-and-wait engine.
func New(host string, port, timeoutMS, maxRetries int) *Transport {
	return &Transport{host: host, port: port, timeoutMS: timeoutMS, maxRetries: maxRetries}
}

var _ libtr.Datagram = (*Transport)(nil)

func (t *Transport) Open() error {
	serverAddr, err := net.ResolveUDPAddr("udp", net.JoinHostPort(t.host, strconv.Itoa(t.port)))
	if err != nil {
		return libtr.ErrOpenFailed.Error(err)
	}

	conn, err := net.ListenUDP("udp", &net.UDPAddr{Port: 0})
	if err != nil {
		return libtr.ErrOpenFailed.Error(err)
	}

	t.conn = conn
	t.dest = serverAddr

	return nil
}

func (t *Transport) Close() error {
	if t.conn == nil {
		return nil
	}
	return t.conn.Close()
}

// Send uses sendto against the currently recorded destination, which may
// have been updated by a prior Receive (port adoption).
func (t *Transport) Send(b []byte) error {
	if t.conn == nil {
		return libtr.ErrClosed.Error()
	}

	t.mu.Lock()
	dest := t.dest
	t.mu.Unlock()

	if _, err := t.conn.WriteToUDP(b, dest); err != nil {
		return libtr.ErrSendFailed.Error(err)
	}

	return nil
}

// Receive reads one datagram via recvfrom and applies the port-adoption
// rule: if the sender's port differs from the currently recorded
// destination port, subsequent sends follow the new port (spec.md §4.1,
// "Port adoption").
func (t *Transport) Receive() ([]byte, error) {
	if t.conn == nil {
		return nil, libtr.ErrClosed.Error()
	}

	buf := make([]byte, receiveBufSize)
	n, from, err := t.conn.ReadFromUDP(buf)
	if err != nil {
		return nil, libtr.ErrReceiveFailed.Error(err)
	}

	t.mu.Lock()
	if from.Port != t.dest.Port {
		t.dest = from
	}
	t.mu.Unlock()

	return buf[:n], nil
}

func (t *Transport) TimeoutMS() int {
	return t.timeoutMS
}

func (t *Transport) MaxRetries() int {
	return t.maxRetries
}
