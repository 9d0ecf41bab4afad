package config

import (
	liberr "github.com/jakubvsetecka/ipk24chat-client/errors"
)

// Error codes reserved for this package, registered once from init().
const (
	ErrMissingHost liberr.CodeError = liberr.MinPkgConfig + iota
	ErrInvalidTransport
	ErrInvalidPort
)

//nolint:gochecknoinits
func init() {
	liberr.RegisterIdFctMessage(liberr.MinPkgConfig, getMessage)
}

func getMessage(code liberr.CodeError) string {
	switch code {
	case ErrMissingHost:
		return "server host (-s) is required"
	case ErrInvalidTransport:
		return "transport (-t) must be \"tcp\" or \"udp\""
	case ErrInvalidPort:
		return "port must be between 1 and 65535"
	default:
		return ""
	}
}
