// Package message defines the IPK24-CHAT tagged-union Message type, its
// per-kind payload fields, and the field validators shared by both codecs.
package message

import (
	liberr "github.com/jakubvsetecka/ipk24chat-client/errors"
)

// Error codes reserved for this package, registered once from init().
const (
	ErrUsernameInvalid liberr.CodeError = liberr.MinPkgMessage + iota
	ErrChannelIDInvalid
	ErrSecretInvalid
	ErrDisplayNameInvalid
	ErrMessageContentInvalid
)

//nolint:gochecknoinits
func init() {
	liberr.RegisterIdFctMessage(liberr.MinPkgMessage, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrUsernameInvalid:
		return "username must be 1-20 characters from [A-Za-z0-9-]"
	case ErrChannelIDInvalid:
		return "channel id must be 1-20 characters from [A-Za-z0-9-.]"
	case ErrSecretInvalid:
		return "secret must be 1-128 characters from [A-Za-z0-9-]"
	case ErrDisplayNameInvalid:
		return "display name must be 1-20 printable characters"
	case ErrMessageContentInvalid:
		return "message content must be 1-1400 printable characters"
	default:
		return ""
	}
}
