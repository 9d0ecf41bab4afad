// Package binary implements the length-tagged binary wire binding used over
// the datagram transport (spec.md §4.2, "Binary codec (datagram)").
package binary

import (
	"bytes"
	"encoding/binary"

	libcdc "github.com/jakubvsetecka/ipk24chat-client/internal/codec"
	"github.com/jakubvsetecka/ipk24chat-client/internal/message"
)

const (
	tagConfirm byte = 0x00
	tagReply   byte = 0x01
	tagAuth    byte = 0x02
	tagJoin    byte = 0x03
	tagMsg     byte = 0x04
	tagErr     byte = 0xFE
	tagBye     byte = 0xFF
)

// Codec implements libcdc.Codec for the binary/datagram wire binding.
type Codec struct{}

// New returns a ready binary Codec. It carries no state.
func New() *Codec {
	return &Codec{}
}

var _ libcdc.Codec = (*Codec)(nil)

func (c *Codec) Serialize(m message.Message) ([]byte, error) {
	buf := &bytes.Buffer{}

	switch m.Kind {
	case message.KindConfirm:
		buf.WriteByte(tagConfirm)
		writeU16(buf, m.RefMessageID)

	case message.KindReply:
		buf.WriteByte(tagReply)
		writeU16(buf, m.MessageID)
		writeBool(buf, m.Result)
		writeU16(buf, m.RefMessageID)
		writeCString(buf, m.MessageContent)

	case message.KindAuth:
		buf.WriteByte(tagAuth)
		writeU16(buf, m.MessageID)
		writeCString(buf, m.Username)
		writeCString(buf, m.DisplayName)
		writeCString(buf, m.Secret)

	case message.KindJoin:
		buf.WriteByte(tagJoin)
		writeU16(buf, m.MessageID)
		writeCString(buf, m.ChannelID)
		writeCString(buf, m.DisplayName)

	case message.KindMsg:
		buf.WriteByte(tagMsg)
		writeU16(buf, m.MessageID)
		writeCString(buf, m.DisplayName)
		writeCString(buf, m.MessageContent)

	case message.KindErr:
		buf.WriteByte(tagErr)
		writeU16(buf, m.MessageID)
		writeCString(buf, m.DisplayName)
		writeCString(buf, m.MessageContent)

	case message.KindBye:
		buf.WriteByte(tagBye)
		writeU16(buf, m.MessageID)

	default:
		return nil, libcdc.ErrUnsupportedKind.Error()
	}

	return buf.Bytes(), nil
}

func (c *Codec) Parse(raw []byte) (message.Message, error) {
	if len(raw) == 0 {
		return message.Message{}, libcdc.ErrTruncated.Error()
	}

	tag, rest := raw[0], raw[1:]

	switch tag {
	case tagConfirm:
		ref, _, err := readU16(rest)
		if err != nil {
			return message.Message{}, err
		}
		return message.NewConfirm(ref), nil

	case tagReply:
		return parseReply(rest)

	case tagAuth:
		return parseAuth(rest)

	case tagJoin:
		return parseJoin(rest)

	case tagMsg:
		return parseMsgOrErr(rest, message.KindMsg)

	case tagErr:
		return parseMsgOrErr(rest, message.KindErr)

	case tagBye:
		id, _, err := readU16(rest)
		if err != nil {
			return message.Message{}, err
		}
		m := message.NewBye()
		m.MessageID = id
		return m, nil

	default:
		// Unknown tag: parse MessageID if possible, yield UNKNOWN (spec.md §4.2).
		if id, _, err := readU16(rest); err == nil {
			return message.NewUnknown(id), nil
		}
		return message.NewUnknown(0), nil
	}
}

func parseReply(rest []byte) (message.Message, error) {
	id, rest, err := readU16(rest)
	if err != nil {
		return message.Message{}, err
	}

	result, rest, err := readBool(rest)
	if err != nil {
		return message.Message{}, err
	}

	ref, rest, err := readU16(rest)
	if err != nil {
		return message.Message{}, err
	}

	content, _, err := readCString(rest)
	if err != nil {
		return message.Message{}, err
	}

	if err := message.ValidateMessageContent(content); err != nil {
		return message.Message{}, err
	}

	return message.NewReply(id, result, ref, content), nil
}

func parseAuth(rest []byte) (message.Message, error) {
	id, rest, err := readU16(rest)
	if err != nil {
		return message.Message{}, err
	}

	username, rest, err := readCString(rest)
	if err != nil {
		return message.Message{}, err
	}

	displayName, rest, err := readCString(rest)
	if err != nil {
		return message.Message{}, err
	}

	secret, _, err := readCString(rest)
	if err != nil {
		return message.Message{}, err
	}

	m, err := message.NewAuth(username, displayName, secret)
	if err != nil {
		return message.Message{}, err
	}
	m.MessageID = id

	return m, nil
}

func parseJoin(rest []byte) (message.Message, error) {
	id, rest, err := readU16(rest)
	if err != nil {
		return message.Message{}, err
	}

	channelID, rest, err := readCString(rest)
	if err != nil {
		return message.Message{}, err
	}

	displayName, _, err := readCString(rest)
	if err != nil {
		return message.Message{}, err
	}

	m, err := message.NewJoin(channelID, displayName)
	if err != nil {
		return message.Message{}, err
	}
	m.MessageID = id

	return m, nil
}

func parseMsgOrErr(rest []byte, kind message.Kind) (message.Message, error) {
	id, rest, err := readU16(rest)
	if err != nil {
		return message.Message{}, err
	}

	displayName, rest, err := readCString(rest)
	if err != nil {
		return message.Message{}, err
	}

	content, _, err := readCString(rest)
	if err != nil {
		return message.Message{}, err
	}

	var m message.Message
	if kind == message.KindErr {
		if err := message.ValidateDisplayName(displayName); err != nil {
			return message.Message{}, err
		}
		if err := message.ValidateMessageContent(content); err != nil {
			return message.Message{}, err
		}
		m = message.NewErr(displayName, content, false)
	} else {
		m, err = message.NewMsg(displayName, content, false)
		if err != nil {
			return message.Message{}, err
		}
	}
	m.MessageID = id

	return m, nil
}

func writeU16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeBool(buf *bytes.Buffer, v bool) {
	if v {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
}

func writeCString(buf *bytes.Buffer, s string) {
	buf.WriteString(s)
	buf.WriteByte(0)
}

func readU16(b []byte) (uint16, []byte, error) {
	if len(b) < 2 {
		return 0, b, libcdc.ErrTruncated.Error()
	}
	return binary.BigEndian.Uint16(b[:2]), b[2:], nil
}

func readBool(b []byte) (bool, []byte, error) {
	if len(b) < 1 {
		return false, b, libcdc.ErrTruncated.Error()
	}
	return b[0] != 0, b[1:], nil
}

func readCString(b []byte) (string, []byte, error) {
	idx := bytes.IndexByte(b, 0)
	if idx < 0 {
		return "", b, libcdc.ErrTruncated.Error()
	}
	return string(b[:idx]), b[idx+1:], nil
}
