package reactor

import (
	liberr "github.com/jakubvsetecka/ipk24chat-client/errors"
)

// Error codes reserved for this package, registered once from init().
const (
	ErrServerNotResponding liberr.CodeError = liberr.MinPkgReactor + iota
	ErrSocketRead
)

//nolint:gochecknoinits
func init() {
	liberr.RegisterIdFctMessage(liberr.MinPkgReactor, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrServerNotResponding:
		return "Server not responding"
	case ErrSocketRead:
		return "failed reading from the socket"
	default:
		return ""
	}
}
