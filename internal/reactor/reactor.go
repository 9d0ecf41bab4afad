// Package reactor implements the single-threaded I/O event loop that
// multiplexes stdin lines, the socket, the outbound-notify channel, and the
// signal channel, plus the datagram stop-and-wait reliability engine
// (spec.md §4.4).
//
// The original reactor (original_source/src/listeners.cpp) polls four file
// descriptors with poll(2). This one multiplexes four Go channels with a
// select statement instead (SPEC_FULL.md §4, "Readiness mechanism"); a
// fifth, internal channel feeds select from a background goroutine that
// turns the Transport's blocking Receive into a channel event, since Go has
// no non-blocking read primitive to register directly in a select.
package reactor

import (
	"time"

	libatm "github.com/jakubvsetecka/ipk24chat-client/atomic"
	"github.com/jakubvsetecka/ipk24chat-client/console"
	libcdc "github.com/jakubvsetecka/ipk24chat-client/internal/codec"
	"github.com/jakubvsetecka/ipk24chat-client/internal/mailbox"
	"github.com/jakubvsetecka/ipk24chat-client/internal/message"
	"github.com/jakubvsetecka/ipk24chat-client/internal/transport"
	"github.com/jakubvsetecka/ipk24chat-client/logger"
)

// Reactor owns the event loop. It is constructed once per session and run
// on its own goroutine (the "Reactor thread" of spec.md §5).
type Reactor struct {
	tr    transport.Transport
	dtr   transport.Datagram // nil for the stream transport
	mb    *mailbox.Mailbox
	codec libcdc.Codec
	log   logger.Logger
	cw    console.Writer

	stdinLines <-chan string
	sigPipe    <-chan struct{}

	stopFlag libatm.Value[bool]
	stopCh   chan struct{}

	// datagram reliability engine state (spec.md §4.4). When dtr is nil,
	// pendingMail, refMsgID, retries and lastSend stay unused and
	// receivedConfirm stays true, while sentBye and keepRunning still drive
	// shutdown and refAuthID is still recorded.
	receivedConfirm bool
	pendingMail     message.Message
	refMsgID        uint16
	refAuthID       uint16
	retries         int
	sentBye         bool
	keepRunning     bool
	lastSend        time.Time
}

// New returns a Reactor wired to tr/mb/codec. stdinLines carries whole
// lines from the Input reader; sigPipe carries tokens from both the SIGINT
// handler and the Input reader's EOF case (spec.md §4.6).
func New(
	tr transport.Transport,
	mb *mailbox.Mailbox,
	codec libcdc.Codec,
	log logger.Logger,
	cw console.Writer,
	stdinLines <-chan string,
	sigPipe <-chan struct{},
) *Reactor {
	dtr, _ := tr.(transport.Datagram)

	return &Reactor{
		tr:              tr,
		dtr:             dtr,
		mb:              mb,
		codec:           codec,
		log:             log,
		cw:              cw,
		stdinLines:      stdinLines,
		sigPipe:         sigPipe,
		stopFlag:        libatm.NewValue[bool](),
		stopCh:          make(chan struct{}),
		receivedConfirm: true,
		keepRunning:     true,
	}
}

// Stop requests the reactor to shut down immediately, bypassing the
// graceful BYE/CONFIRM wait. Safe to call once or many times, and safe to
// call after Run has already returned (spec.md §5, "atomic flags").
func (r *Reactor) Stop() {
	if r.stopFlag.CompareAndSwap(false, true) {
		close(r.stopCh)
	}
}

// socketEvent carries either a datagram/line off the wire, or the
// terminal read error that ended the background socket reader.
type socketEvent struct {
	data []byte
	err  error
}

// Run executes the event loop until BYE has been sent and confirmed (or
// the stream's immediate-shutdown rule fires), the stop flag is set, or a
// fatal transport/reliability error occurs. It returns that error, or nil
// on graceful shutdown. Run is meant to be called from its own goroutine;
// the returned error is the caller's cue to abort the whole session.
func (r *Reactor) Run() error {
	socketCh := r.startSocketReader()

	for {
		if !r.keepRunning && r.sentBye && r.receivedConfirm {
			return nil
		}

		var timer *time.Timer
		var timerCh <-chan time.Time
		if r.awaitingConfirm() {
			remaining := r.timeUntilRetry()
			timer = time.NewTimer(remaining)
			timerCh = timer.C
		}

		notifyCh := r.mb.NotifyChan()
		if r.awaitingConfirm() {
			// Deregister the outbound-notify source while one send is
			// still in flight (spec.md §4.4, reliability loop invariant 1).
			notifyCh = nil
		}

		select {
		case <-r.stopCh:
			stopTimer(timer)
			return nil

		case line, ok := <-r.stdinLines:
			if ok {
				r.handleStdinLine(line)
			} else {
				// Closed channel: drop it from the select set, or it would
				// fire on every iteration for the rest of the session
				// (spec.md §4.6, Input reader EOF).
				r.stdinLines = nil
			}

		case ev, ok := <-socketCh:
			if ok {
				if err := r.handleSocketEvent(ev); err != nil {
					stopTimer(timer)
					return err
				}
			}

		case _, ok := <-notifyCh:
			if ok {
				r.handleOutboundNotify()
			}

		case _, ok := <-r.sigPipe:
			if ok {
				r.handleSignal()
			}

		case <-timerCh:
			if err := r.handleRetryTimeout(); err != nil {
				stopTimer(timer)
				return err
			}
		}

		stopTimer(timer)
	}
}

func stopTimer(t *time.Timer) {
	if t != nil {
		t.Stop()
	}
}

func (r *Reactor) awaitingConfirm() bool {
	return r.dtr != nil && !r.receivedConfirm
}

func (r *Reactor) timeUntilRetry() time.Duration {
	remaining := time.Duration(r.dtr.TimeoutMS())*time.Millisecond - time.Since(r.lastSend)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (r *Reactor) handleStdinLine(line string) {
	m, err := r.mb.ParseCommand(line)
	if err != nil {
		r.cw.Hint(err.Error())
		return
	}

	r.mb.AddMail(m)
}

func (r *Reactor) handleSignal() {
	r.keepRunning = false
	r.mb.AddMail(r.mb.SynthesizeErr("", true))
}

func (r *Reactor) handleOutboundNotify() {
	m, ok := r.mb.TryGetOutgoing()
	if !ok {
		return
	}

	b, err := r.codec.Serialize(m)
	if err != nil {
		r.log.Error("failed to serialize outbound %s: %v", m.Kind, err)
		return
	}

	if err := r.tr.Send(b); err != nil {
		r.log.Error("failed to send outbound %s: %v", m.Kind, err)
		return
	}

	if m.Kind == message.KindAuth || m.Kind == message.KindJoin {
		r.refAuthID = m.MessageID
	}

	if m.Kind == message.KindBye {
		r.sentBye = true
		r.keepRunning = false
	}

	if r.dtr != nil {
		r.receivedConfirm = false
		r.pendingMail = m
		r.refMsgID = m.MessageID
		r.retries = 0
		r.lastSend = time.Now()
	}
}

func (r *Reactor) handleRetryTimeout() error {
	if r.retries >= r.dtr.MaxRetries() {
		r.cw.Fatal(ErrServerNotResponding.Message())
		return ErrServerNotResponding.Error()
	}

	r.retries++

	b, err := r.codec.Serialize(r.pendingMail)
	if err != nil {
		return err
	}

	if err := r.tr.Send(b); err != nil {
		return err
	}

	r.lastSend = time.Now()

	return nil
}

func (r *Reactor) handleSocketEvent(ev socketEvent) error {
	if ev.err != nil {
		r.cw.Fatal(ErrSocketRead.Message())
		return ErrSocketRead.Error(ev.err)
	}

	m, err := r.mb.ParseInbound(ev.data)
	if err != nil {
		r.log.Warning("dropping unparseable inbound message: %v", err)
		if r.dtr == nil {
			// Stream parse errors force a session teardown (spec.md §7).
			r.mb.AddMail(r.mb.SynthesizeErr("malformed message from server", false))
		}
		return nil
	}

	if r.dtr != nil {
		r.handleDatagramInbound(m)
		return nil
	}

	r.mb.AddMail(m)

	return nil
}

func (r *Reactor) startSocketReader() <-chan socketEvent {
	ch := make(chan socketEvent, 16)

	go func() {
		defer close(ch)

		for {
			data, err := r.tr.Receive()
			if err != nil {
				ch <- socketEvent{err: err}
				return
			}

			cp := make([]byte, len(data))
			copy(cp, data)

			ch <- socketEvent{data: cp}
		}
	}()

	return ch
}
