// Package codec defines the shared Codec contract implemented by the
// binary (datagram) and text (stream) wire bindings (spec.md §4.2).
package codec

import (
	"github.com/jakubvsetecka/ipk24chat-client/internal/message"
)

// Codec serializes a Message to wire bytes and parses wire bytes back into
// a Message. The two implementations (binary, text) share this contract
// but diverge on byte layout and on whether MessageID ever reaches the
// wire (spec.md §4.2, §9 "stream has no IDs").
type Codec interface {
	Serialize(m message.Message) ([]byte, error)
	Parse(raw []byte) (message.Message, error)
}
