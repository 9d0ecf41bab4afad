package reactor

import (
	"github.com/jakubvsetecka/ipk24chat-client/internal/message"
)

// handleDatagramInbound implements spec.md §4.4 bullet 4 ("On inbound
// socket datagram") for the datagram transport. CONFIRM never reaches the
// FSM queue. A REPLY whose RefMessageID does not match refAuthID is dropped
// without a CONFIRM; every other message is CONFIRMed immediately and
// duplicate suppression decides whether it also reaches the queue.
func (r *Reactor) handleDatagramInbound(m message.Message) {
	switch m.Kind {
	case message.KindConfirm:
		if !r.receivedConfirm && m.RefMessageID == r.refMsgID {
			r.receivedConfirm = true
			r.retries = 0
		}

	case message.KindReply:
		if m.RefMessageID != r.refAuthID {
			r.log.Warning("dropping REPLY with unexpected RefMessageID %d (want %d)", m.RefMessageID, r.refAuthID)
			return
		}

		dup := r.mb.ObserveServerID(m.MessageID)
		r.sendConfirm(m.MessageID)

		if !dup {
			r.mb.AddMail(m)
		}

	default:
		dup := r.mb.ObserveServerID(m.MessageID)
		r.sendConfirm(m.MessageID)

		if !dup {
			r.mb.AddMail(m)
		}
	}
}

// sendConfirm serializes and sends a CONFIRM immediately, bypassing the
// outgoing queue: CONFIRM is not subject to the one-in-flight rule and
// must never itself wait on a CONFIRM (spec.md §3, §4.4).
func (r *Reactor) sendConfirm(refMessageID uint16) {
	b, err := r.codec.Serialize(r.mb.SynthesizeConfirm(refMessageID))
	if err != nil {
		r.log.Error("failed to serialize CONFIRM for %d: %v", refMessageID, err)
		return
	}

	if err := r.tr.Send(b); err != nil {
		r.log.Error("failed to send CONFIRM for %d: %v", refMessageID, err)
	}
}
