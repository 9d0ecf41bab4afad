package transport

import (
	liberr "github.com/jakubvsetecka/ipk24chat-client/errors"
)

// Error codes shared by the tcp and udp variants, registered once here.
const (
	ErrOpenFailed liberr.CodeError = liberr.MinPkgTransport + iota
	ErrSendFailed
	ErrReceiveFailed
	ErrClosed
)

//nolint:gochecknoinits
func init() {
	liberr.RegisterIdFctMessage(liberr.MinPkgTransport, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrOpenFailed:
		return "failed to open the session socket"
	case ErrSendFailed:
		return "failed to send on the session socket"
	case ErrReceiveFailed:
		return "failed to receive on the session socket"
	case ErrClosed:
		return "transport is closed"
	default:
		return ""
	}
}
