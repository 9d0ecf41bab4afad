// Package text implements the line-oriented text wire binding used over
// the stream transport (spec.md §4.2, "Text codec (stream)"). This binding
// carries no MessageID/RefMessageID on the wire at all; Serialize omits
// them and Parse always returns MessageID 0. No surrogate ID is assigned
// afterwards either: Mailbox.ParseInbound passes the parsed Message through
// unchanged, so every inbound stream message keeps MessageID 0.
package text

import (
	"strings"

	libcdc "github.com/jakubvsetecka/ipk24chat-client/internal/codec"
	"github.com/jakubvsetecka/ipk24chat-client/internal/message"
)

// Codec implements libcdc.Codec for the text/stream wire binding.
type Codec struct{}

// New returns a ready text Codec. It carries no state.
func New() *Codec {
	return &Codec{}
}

var _ libcdc.Codec = (*Codec)(nil)

func (c *Codec) Serialize(m message.Message) ([]byte, error) {
	switch m.Kind {
	case message.KindAuth:
		return []byte("AUTH " + m.Username + " AS " + m.DisplayName + " USING " + m.Secret + "\r\n"), nil

	case message.KindJoin:
		return []byte("JOIN " + m.ChannelID + " AS " + m.DisplayName + "\r\n"), nil

	case message.KindMsg:
		return []byte("MSG FROM " + m.DisplayName + " IS " + m.MessageContent + "\r\n"), nil

	case message.KindErr:
		return []byte("ERR FROM " + m.DisplayName + " IS " + m.MessageContent + "\r\n"), nil

	case message.KindReply:
		status := "NOK"
		if m.Result {
			status = "OK"
		}
		return []byte("REPLY " + status + " IS " + m.MessageContent + "\r\n"), nil

	case message.KindBye:
		return []byte("BYE\r\n"), nil

	default:
		return nil, libcdc.ErrUnsupportedKind.Error()
	}
}

// Parse accepts one line, with or without its trailing "\r\n" already
// stripped (the stream Transport's line-reassembly strips it; this codec
// tolerates either so it can also be unit-tested directly on wire text).
func (c *Codec) Parse(raw []byte) (message.Message, error) {
	line := strings.TrimSuffix(strings.TrimSuffix(string(raw), "\n"), "\r")

	keyword, rest, hasRest := strings.Cut(line, " ")

	switch keyword {
	case "AUTH":
		return parseAuth(rest, hasRest)
	case "JOIN":
		return parseJoin(rest, hasRest)
	case "MSG":
		return parseFromIs(rest, hasRest, message.KindMsg)
	case "ERR":
		return parseFromIs(rest, hasRest, message.KindErr)
	case "REPLY":
		return parseReply(rest, hasRest)
	case "BYE":
		if hasRest {
			return message.Message{}, libcdc.ErrMalformed.Error()
		}
		return message.NewBye(), nil
	default:
		// Unrecognized first token: UNKNOWN, non-enqueued diagnostic.
		return message.NewUnknown(0), nil
	}
}

func parseAuth(rest string, hasRest bool) (message.Message, error) {
	if !hasRest {
		return message.Message{}, libcdc.ErrMalformed.Error()
	}

	fields := strings.Split(rest, " ")
	if len(fields) != 5 || fields[1] != "AS" || fields[3] != "USING" {
		return message.Message{}, libcdc.ErrMalformed.Error()
	}

	return message.NewAuth(fields[0], fields[2], fields[4])
}

func parseJoin(rest string, hasRest bool) (message.Message, error) {
	if !hasRest {
		return message.Message{}, libcdc.ErrMalformed.Error()
	}

	fields := strings.Split(rest, " ")
	if len(fields) != 3 || fields[1] != "AS" {
		return message.Message{}, libcdc.ErrMalformed.Error()
	}

	return message.NewJoin(fields[0], fields[2])
}

func parseFromIs(rest string, hasRest bool, kind message.Kind) (message.Message, error) {
	if !hasRest {
		return message.Message{}, libcdc.ErrMalformed.Error()
	}

	literal, tail, ok := strings.Cut(rest, " ")
	if !ok || literal != "FROM" {
		return message.Message{}, libcdc.ErrMalformed.Error()
	}

	name, content, ok := strings.Cut(tail, " IS ")
	if !ok {
		return message.Message{}, libcdc.ErrMalformed.Error()
	}

	if kind == message.KindErr {
		if err := message.ValidateDisplayName(name); err != nil {
			return message.Message{}, err
		}
		if err := message.ValidateMessageContent(content); err != nil {
			return message.Message{}, err
		}
		return message.NewErr(name, content, false), nil
	}

	return message.NewMsg(name, content, false)
}

func parseReply(rest string, hasRest bool) (message.Message, error) {
	if !hasRest {
		return message.Message{}, libcdc.ErrMalformed.Error()
	}

	status, tail, ok := strings.Cut(rest, " ")
	if !ok {
		return message.Message{}, libcdc.ErrMalformed.Error()
	}

	var result bool
	switch status {
	case "OK":
		result = true
	case "NOK":
		result = false
	default:
		return message.Message{}, libcdc.ErrMalformed.Error()
	}

	content, ok := strings.CutPrefix(tail, "IS ")
	if !ok {
		return message.Message{}, libcdc.ErrMalformed.Error()
	}

	if err := message.ValidateMessageContent(content); err != nil {
		return message.Message{}, err
	}

	return message.NewReply(0, result, 0, content), nil
}
