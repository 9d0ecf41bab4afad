// Package mailbox implements the thread-safe FIFO queues, outbound ID
// assignment, and command/wire parsing shared by the Reactor and FSM
// (spec.md §4.3).
package mailbox

import (
	"fmt"
	"strings"
	"sync"

	libatm "github.com/jakubvsetecka/ipk24chat-client/atomic"
	"github.com/jakubvsetecka/ipk24chat-client/console"
	libcdc "github.com/jakubvsetecka/ipk24chat-client/internal/codec"
	"github.com/jakubvsetecka/ipk24chat-client/internal/message"
	"github.com/jakubvsetecka/ipk24chat-client/logger"
)

const notifyQueueDepth = 1024

// Mailbox holds the two FIFO queues, the outbound ID counter, the
// duplicate-suppression watermark, and the local DisplayName (spec.md
// §4.3, "Mailbox state").
type Mailbox struct {
	mu       sync.Mutex
	cond     *sync.Cond
	in       []message.Message
	out      []message.Message
	lastKind message.Kind
	hasLast  bool

	// notify stands in for the outbound-notify pipe: one token per
	// sendMail call, drained one at a time by the reactor (spec.md §4.4).
	notify chan struct{}

	displayNameMu sync.Mutex
	displayName   string

	// counter and srvMsgID are the two fields spec.md §5 calls out as
	// atomics; everything else about the Mailbox is mutex-protected.
	counter  libatm.Value[uint16]
	srvMsgID libatm.Value[int32]

	codec libcdc.Codec
	cw    console.Writer
	log   logger.Logger
}

// New returns a Mailbox that parses inbound wire bytes with codec and
// prints protocol diagnostics through w.
func New(codec libcdc.Codec, w console.Writer, log logger.Logger, initialDisplayName string) *Mailbox {
	mb := &Mailbox{
		notify:      make(chan struct{}, notifyQueueDepth),
		counter:     libatm.NewValue[uint16](),
		srvMsgID:    libatm.NewValue[int32](),
		codec:       codec,
		cw:          w,
		log:         log,
		displayName: initialDisplayName,
	}
	mb.cond = sync.NewCond(&mb.mu)
	mb.srvMsgID.Store(-1)

	return mb
}

// NotifyChan exposes the outbound-notify pipe for the reactor's select loop.
func (mb *Mailbox) NotifyChan() <-chan struct{} {
	return mb.notify
}

// DisplayName returns the current local display name.
func (mb *Mailbox) DisplayName() string {
	mb.displayNameMu.Lock()
	defer mb.displayNameMu.Unlock()
	return mb.displayName
}

func (mb *Mailbox) setDisplayName(name string) {
	mb.displayNameMu.Lock()
	mb.displayName = name
	mb.displayNameMu.Unlock()
}

// SrvMsgID returns the highest server-originated MessageID observed so far,
// or -1 if none yet (spec.md §4.3).
func (mb *Mailbox) SrvMsgID() int32 {
	return mb.srvMsgID.Load()
}

// ObserveServerID updates the duplicate-suppression watermark if id
// strictly exceeds it, returning whether it was a duplicate.
func (mb *Mailbox) ObserveServerID(id uint16) (duplicate bool) {
	cur := mb.srvMsgID.Load()
	if int32(id) <= cur {
		return true
	}
	mb.srvMsgID.Store(int32(id))
	return false
}

// WaitMail blocks until the incoming queue is non-empty, then pops and
// returns its front. It is the only Mailbox operation that blocks
// (spec.md §4.3). Popping a REPLY, an inbound MSG, or a non-interrupt ERR
// has the user-visible diagnostic side effect spec.md §6/§7 describe.
func (mb *Mailbox) WaitMail() message.Message {
	mb.mu.Lock()
	for len(mb.in) == 0 {
		mb.cond.Wait()
	}
	m := mb.in[0]
	mb.in = mb.in[1:]
	mb.lastKind = m.Kind
	mb.hasLast = true
	mb.mu.Unlock()

	mb.printDiagnostic(m)

	return m
}

// dumpDiagnostics writes the current incoming-queue depth and the last
// dispatched message kind to stderr; it is /print's debug aid and is never
// enqueued (spec.md §9 Open Question, decision recorded in DESIGN.md).
func (mb *Mailbox) dumpDiagnostics() {
	mb.mu.Lock()
	depth := len(mb.in)
	last, hasLast := mb.lastKind, mb.hasLast
	mb.mu.Unlock()

	lastStr := "none"
	if hasLast {
		lastStr = last.String()
	}

	mb.cw.Hint(fmt.Sprintf("mailbox: %d pending, last dispatched %s", depth, lastStr))
}

func (mb *Mailbox) printDiagnostic(m message.Message) {
	switch m.Kind {
	case message.KindReply:
		if m.Result {
			mb.cw.Success(m.MessageContent)
		} else {
			mb.cw.Failure(m.MessageContent)
		}
	case message.KindMsg:
		if !m.ToSend {
			mb.cw.Message(m.DisplayName, m.MessageContent)
		}
	case message.KindErr:
		if !m.SIGINT {
			mb.cw.ServerError(m.DisplayName, m.MessageContent)
		}
	}
}

// TryGetOutgoing performs a non-blocking pop from the outgoing queue.
func (mb *Mailbox) TryGetOutgoing() (message.Message, bool) {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	if len(mb.out) == 0 {
		return message.Message{}, false
	}

	m := mb.out[0]
	mb.out = mb.out[1:]

	return m, true
}

// AddMail pushes m to the incoming queue if its envelope says so, and wakes
// any WaitMail caller.
func (mb *Mailbox) AddMail(m message.Message) {
	if !m.AddToMailQueue {
		return
	}

	mb.mu.Lock()
	mb.in = append(mb.in, m)
	mb.mu.Unlock()

	mb.cond.Signal()
}

// carriesID reports whether m's kind carries a MessageID of its own
// (every kind except CONFIRM, spec.md §3).
func carriesID(k message.Kind) bool {
	return k != message.KindConfirm
}

// SendMail assigns the next outbound MessageID (for kinds that carry one),
// pushes m to the outgoing queue, and signals the outbound-notify channel
// (spec.md §4.3).
func (mb *Mailbox) SendMail(m message.Message) {
	if carriesID(m.Kind) {
		m.MessageID = mb.nextID()
	}

	mb.mu.Lock()
	mb.out = append(mb.out, m)
	mb.mu.Unlock()

	select {
	case mb.notify <- struct{}{}:
	default:
		mb.log.Warning("outbound-notify channel full, dropping a wakeup token")
	}
}

// nextID returns the current outbound counter value and increments it.
// Wraparound past 65535 is unconditional, matching the source (spec.md §9,
// Open Question, decision recorded in DESIGN.md).
func (mb *Mailbox) nextID() uint16 {
	id := mb.counter.Load()
	mb.counter.Store(id + 1)
	return id
}

// ParseCommand parses a line typed on stdin into m (spec.md §4.3,
// "writeMail(line, out m)"). help and rename are side-effect only and
// return AddToMailQueue=false; anything not starting with a recognized
// slash command becomes an outbound MSG.
func (mb *Mailbox) ParseCommand(line string) (message.Message, error) {
	if rest, ok := strings.CutPrefix(line, "/auth "); ok {
		return mb.parseAuthCommand(rest)
	}

	if rest, ok := strings.CutPrefix(line, "/join "); ok {
		return mb.parseJoinCommand(rest)
	}

	if rest, ok := strings.CutPrefix(line, "/rename "); ok {
		name := strings.TrimSpace(rest)
		if err := message.ValidateDisplayName(name); err != nil {
			return message.Message{}, err
		}
		mb.setDisplayName(name)
		return message.Message{AddToMailQueue: false}, nil
	}

	if line == "/bye" {
		return message.NewBye(), nil
	}

	if line == "/help" {
		mb.cw.Help()
		return message.Message{AddToMailQueue: false}, nil
	}

	if line == "/print" {
		mb.dumpDiagnostics()
		return message.Message{AddToMailQueue: false}, nil
	}

	if strings.HasPrefix(line, "/") {
		return message.Message{}, ErrUnknownCommand.Error()
	}

	return message.NewMsg(mb.DisplayName(), line, true)
}

func (mb *Mailbox) parseAuthCommand(rest string) (message.Message, error) {
	fields := strings.Fields(rest)
	if len(fields) != 3 {
		return message.Message{}, ErrMalformedCommand.Error()
	}

	username, secret, displayName := fields[0], fields[1], fields[2]

	m, err := message.NewAuth(username, displayName, secret)
	if err != nil {
		return message.Message{}, err
	}

	// /auth always overrides any prior /rename (spec.md §8 boundary test).
	mb.setDisplayName(displayName)

	return m, nil
}

func (mb *Mailbox) parseJoinCommand(rest string) (message.Message, error) {
	fields := strings.Fields(rest)
	if len(fields) != 1 {
		return message.Message{}, ErrMalformedCommand.Error()
	}

	return message.NewJoin(fields[0], mb.DisplayName())
}

// ParseInbound parses raw wire bytes into m via the configured codec
// (spec.md §4.3, "writeMail(bytes, out m)").
func (mb *Mailbox) ParseInbound(raw []byte) (message.Message, error) {
	return mb.codec.Parse(raw)
}

// SynthesizeConfirm builds a local CONFIRM for refMessageID. It does not
// assign a MessageID and is never pushed through SendMail: the reactor
// sends it immediately, outside the stop-and-wait queue (spec.md §4.4).
func (mb *Mailbox) SynthesizeConfirm(refMessageID uint16) message.Message {
	return message.NewConfirm(refMessageID)
}

// SynthesizeErr builds a local ERR, optionally interrupt-flagged
// (spec.md §4.3, "writeMail(kind, out m [, refMessageID])").
func (mb *Mailbox) SynthesizeErr(content string, sigint bool) message.Message {
	return message.NewErr(mb.DisplayName(), content, sigint)
}

// SynthesizeBye builds a local BYE.
func (mb *Mailbox) SynthesizeBye() message.Message {
	return message.NewBye()
}
