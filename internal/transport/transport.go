// Package transport defines the shared Transport contract for the stream
// (tcp) and datagram (udp) variants (spec.md §4.1).
package transport

// Transport abstracts opening a session socket, closing it, and exchanging
// raw bytes. Receive returns one message worth of bytes: one reassembled
// line for the stream variant, one datagram for the datagram variant.
type Transport interface {
	Open() error
	Close() error
	Send(b []byte) error
	Receive() ([]byte, error)
}

// Datagram extends Transport with the retry configuration the reactor's
// stop-and-wait engine needs (spec.md §4.4); the stream variant has no
// such notion and does not implement it.
type Datagram interface {
	Transport

	TimeoutMS() int
	MaxRetries() int
}
