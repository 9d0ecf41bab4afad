package mailbox

import (
	liberr "github.com/jakubvsetecka/ipk24chat-client/errors"
)

// Error codes reserved for this package, registered once from init().
const (
	ErrMalformedCommand liberr.CodeError = liberr.MinPkgMailbox + iota
	ErrUnknownCommand
)

//nolint:gochecknoinits
func init() {
	liberr.RegisterIdFctMessage(liberr.MinPkgMailbox, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrMalformedCommand:
		return "malformed command"
	case ErrUnknownCommand:
		return "unknown command"
	default:
		return ""
	}
}
