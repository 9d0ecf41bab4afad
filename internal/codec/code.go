package codec

import (
	liberr "github.com/jakubvsetecka/ipk24chat-client/errors"
)

// Error codes shared by both codec implementations, registered once here.
const (
	ErrUnsupportedKind liberr.CodeError = liberr.MinPkgCodec + iota
	ErrTruncated
	ErrMalformed
)

//nolint:gochecknoinits
func init() {
	liberr.RegisterIdFctMessage(liberr.MinPkgCodec, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrUnsupportedKind:
		return "codec does not support serializing this message kind"
	case ErrTruncated:
		return "wire data ended before the expected field was fully read"
	case ErrMalformed:
		return "wire data does not match the expected grammar"
	default:
		return ""
	}
}
