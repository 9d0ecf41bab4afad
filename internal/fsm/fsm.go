// Package fsm implements the session state machine (spec.md §4.5): Start,
// Authenticating, Open, Error, End. It is the sole consumer of the Mailbox's
// incoming queue.
package fsm

import (
	"fmt"

	"github.com/jakubvsetecka/ipk24chat-client/console"
	"github.com/jakubvsetecka/ipk24chat-client/internal/mailbox"
	"github.com/jakubvsetecka/ipk24chat-client/internal/message"
	"github.com/jakubvsetecka/ipk24chat-client/logger"
)

// FSM drives one chat session to completion. Its Run method returns once
// the End state is reached; the client entrypoint calls it on a goroutine
// of its own, not on the main goroutine.
type FSM struct {
	mb    *mailbox.Mailbox
	cw    console.Writer
	log   logger.Logger
	state State
}

// New returns an FSM in the Start state.
func New(mb *mailbox.Mailbox, cw console.Writer, log logger.Logger) *FSM {
	return &FSM{mb: mb, cw: cw, log: log, state: StateStart}
}

// State reports the FSM's current state.
func (f *FSM) State() State {
	return f.state
}

// Run blocks on the Mailbox's incoming queue, dispatching each event to the
// current state's handler, until End is reached. It never returns an error:
// every protocol-level failure is handled internally by transitioning to
// Error and then End (spec.md §4.5, §7).
func (f *FSM) Run() error {
	for {
		m := f.mb.WaitMail()

		f.dispatch(m)

		if f.state == StateEnd {
			return nil
		}
	}
}

func (f *FSM) dispatch(m message.Message) {
	switch f.state {
	case StateStart:
		f.handleStart(m)
	case StateAuthenticating:
		f.handleAuthenticating(m)
	case StateOpen:
		f.handleOpen(m)
	default:
		// Error and End have no further event-driven behavior: Error's
		// single transition already runs inline via toErrorThenEnd, and
		// End is the terminal state Run() checks for after every dispatch.
	}
}

func (f *FSM) handleStart(m message.Message) {
	switch m.Kind {
	case message.KindAuth:
		f.mb.SendMail(m)
		f.state = StateAuthenticating

	case message.KindErr:
		if m.SIGINT {
			f.mb.SendMail(f.mb.SynthesizeBye())
			f.state = StateEnd
			return
		}
		f.toErrorThenEnd(fmt.Sprintf("unexpected ERR in %s", f.state))

	case message.KindMsg, message.KindJoin:
		f.cw.Hint(fmt.Sprintf("%s ignored before authentication", m.Kind))

	default:
		f.toErrorThenEnd(fmt.Sprintf("unexpected %s in %s", m.Kind, f.state))
	}
}

func (f *FSM) handleAuthenticating(m message.Message) {
	switch m.Kind {
	case message.KindReply:
		if m.Result {
			f.state = StateOpen
		}
		// Result=false: diagnostic already printed by Mailbox.WaitMail;
		// stay in Authenticating so the user can retry /auth.

	case message.KindAuth:
		f.mb.SendMail(m)

	case message.KindErr:
		f.mb.SendMail(f.mb.SynthesizeBye())
		f.state = StateEnd

	default:
		f.toErrorThenEnd(fmt.Sprintf("unexpected %s in %s", m.Kind, f.state))
	}
}

func (f *FSM) handleOpen(m message.Message) {
	switch m.Kind {
	case message.KindMsg:
		if m.ToSend {
			f.mb.SendMail(m)
		}
		// Inbound MSG's diagnostic is already printed by Mailbox.WaitMail.

	case message.KindJoin:
		f.mb.SendMail(m)

	case message.KindReply:
		// Soft no-op (spec.md §9 Open Question decision, DESIGN.md).

	case message.KindAuth:
		f.cw.Hint("already authenticated, /auth has no effect")

	case message.KindErr:
		f.mb.SendMail(f.mb.SynthesizeBye())
		f.state = StateEnd

	case message.KindBye:
		// Covers both the user's own /bye (the popped Message is the one to
		// transmit) and a server-initiated BYE (every other path to End
		// also sends its own BYE, so echoing one back here is consistent
		// rather than a special case).
		f.mb.SendMail(m)
		f.state = StateEnd

	default:
		f.toErrorThenEnd(fmt.Sprintf("unexpected %s in %s", m.Kind, f.state))
	}
}

// toErrorThenEnd implements the Error state's single unconditional
// transition inline: Error's only documented behavior is "synth BYE →
// End" with no event condition of its own, so rather than loop back
// through WaitMail a second time for a state with exactly one way out,
// entering Error immediately runs its transition within the same
// dispatch (spec.md §4.5, recorded as a judgment call in DESIGN.md).
func (f *FSM) toErrorThenEnd(reason string) {
	f.log.Warning("protocol violation: %s", reason)
	f.state = StateError

	errMsg := f.mb.SynthesizeErr(reason, false)
	f.mb.SendMail(errMsg)

	f.mb.SendMail(f.mb.SynthesizeBye())
	f.state = StateEnd
}
