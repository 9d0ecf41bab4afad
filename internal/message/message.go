package message

// Message is the IPK24-CHAT tagged union. Every kind uses only the subset of
// fields its payload needs (spec.md §3); unused fields stay at their zero
// value. Runtime dispatch happens on Kind, matching the "pattern matching
// over a sum type" replacement for the original's generic tagged value
// (spec.md §9).
type Message struct {
	Kind Kind

	MessageID    uint16
	RefMessageID uint16

	Username       string
	DisplayName    string
	Secret         string
	ChannelID      string
	MessageContent string
	Result         bool

	// ToSend distinguishes an outbound MSG (originated by the local user)
	// from an inbound one (from the server). Meaningful only for KindMsg.
	ToSend bool

	// AddToMailQueue is the envelope flag deciding whether this Message is
	// enqueued to the FSM or dropped after handling (spec.md §3).
	AddToMailQueue bool

	// SIGINT marks a Message synthesized in response to an interrupt.
	SIGINT bool
}

// NewConfirm builds a local CONFIRM acknowledging refMessageID. CONFIRM never
// carries its own MessageID and never enters the FSM queue.
func NewConfirm(refMessageID uint16) Message {
	return Message{Kind: KindConfirm, RefMessageID: refMessageID}
}

// NewAuth validates and builds an AUTH payload.
func NewAuth(username, displayName, secret string) (Message, error) {
	if err := ValidateUsername(username); err != nil {
		return Message{}, err
	}
	if err := ValidateDisplayName(displayName); err != nil {
		return Message{}, err
	}
	if err := ValidateSecret(secret); err != nil {
		return Message{}, err
	}

	return Message{
		Kind:           KindAuth,
		Username:       username,
		DisplayName:    displayName,
		Secret:         secret,
		AddToMailQueue: true,
	}, nil
}

// NewJoin validates and builds a JOIN payload.
func NewJoin(channelID, displayName string) (Message, error) {
	if err := ValidateChannelID(channelID); err != nil {
		return Message{}, err
	}
	if err := ValidateDisplayName(displayName); err != nil {
		return Message{}, err
	}

	return Message{
		Kind:           KindJoin,
		ChannelID:      channelID,
		DisplayName:    displayName,
		AddToMailQueue: true,
	}, nil
}

// NewMsg validates and builds a MSG payload. toSend marks it as outbound
// (user-originated) rather than inbound (server-originated).
func NewMsg(displayName, content string, toSend bool) (Message, error) {
	if err := ValidateDisplayName(displayName); err != nil {
		return Message{}, err
	}
	if err := ValidateMessageContent(content); err != nil {
		return Message{}, err
	}

	return Message{
		Kind:           KindMsg,
		DisplayName:    displayName,
		MessageContent: content,
		ToSend:         toSend,
		AddToMailQueue: true,
	}, nil
}

// NewReply builds a REPLY payload. REPLY is always server-originated; the
// codec is responsible for validating MessageContent before calling this.
func NewReply(messageID uint16, result bool, refMessageID uint16, content string) Message {
	return Message{
		Kind:           KindReply,
		MessageID:      messageID,
		Result:         result,
		RefMessageID:   refMessageID,
		MessageContent: content,
		AddToMailQueue: true,
	}
}

// NewErr builds a local ERR, optionally marking it as interrupt-synthesized.
// ERR synthesized locally is always enqueued so the FSM can act on it.
func NewErr(displayName, content string, sigint bool) Message {
	return Message{
		Kind:           KindErr,
		DisplayName:    displayName,
		MessageContent: content,
		SIGINT:         sigint,
		AddToMailQueue: true,
	}
}

// NewBye builds a local BYE.
func NewBye() Message {
	return Message{Kind: KindBye, AddToMailQueue: true}
}

// NewUnknown builds the fallback for an unrecognized wire message.
func NewUnknown(messageID uint16) Message {
	return Message{Kind: KindUnknown, MessageID: messageID}
}

// IsCONFIRMable reports whether this kind, when received from the server,
// requires a CONFIRM to be sent back (every kind except CONFIRM itself).
func (m Message) IsCONFIRMable() bool {
	return m.Kind != KindConfirm
}
