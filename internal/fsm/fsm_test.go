package fsm_test

import (
	"bytes"
	"time"

	"github.com/jakubvsetecka/ipk24chat-client/console"
	libtxt "github.com/jakubvsetecka/ipk24chat-client/internal/codec/text"
	"github.com/jakubvsetecka/ipk24chat-client/internal/fsm"
	"github.com/jakubvsetecka/ipk24chat-client/internal/mailbox"
	"github.com/jakubvsetecka/ipk24chat-client/internal/message"
	"github.com/jakubvsetecka/ipk24chat-client/logger"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func newHarness() (*mailbox.Mailbox, *fsm.FSM, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	cw := console.Writer{Out: &stdout, Err: &stderr}
	mb := mailbox.New(libtxt.New(), cw, logger.New(), "Alice")
	f := fsm.New(mb, cw, logger.New())
	return mb, f, &stdout, &stderr
}

func nextOutgoing(mb *mailbox.Mailbox) message.Message {
	var got message.Message
	Eventually(func() bool {
		m, ok := mb.TryGetOutgoing()
		if !ok {
			return false
		}
		got = m
		return true
	}, time.Second).Should(BeTrue())
	return got
}

var _ = Describe("FSM", func() {
	It("drives the TCP happy path: auth, success reply, message, bye (spec.md §8 scenario 1)", func() {
		mb, f, stdout, _ := newHarness()

		runErr := make(chan error, 1)
		go func() { runErr <- f.Run() }()

		authCmd, err := mb.ParseCommand("/auth alice s3cret Alice")
		Expect(err).ToNot(HaveOccurred())
		mb.AddMail(authCmd)

		sent := nextOutgoing(mb)
		Expect(sent.Kind).To(Equal(message.KindAuth))
		Expect(sent.Username).To(Equal("alice"))
		Eventually(f.State).Should(Equal(fsm.StateAuthenticating))

		mb.AddMail(message.NewReply(0, true, sent.MessageID, "Welcome"))
		Eventually(f.State).Should(Equal(fsm.StateOpen))
		Expect(stdout.String()).To(ContainSubstring("Success: Welcome"))

		msgCmd, err := mb.ParseCommand("Hello")
		Expect(err).ToNot(HaveOccurred())
		mb.AddMail(msgCmd)

		sentMsg := nextOutgoing(mb)
		Expect(sentMsg.Kind).To(Equal(message.KindMsg))
		Expect(sentMsg.MessageContent).To(Equal("Hello"))
		Expect(sentMsg.ToSend).To(BeTrue())

		byeCmd, err := mb.ParseCommand("/bye")
		Expect(err).ToNot(HaveOccurred())
		mb.AddMail(byeCmd)

		sentBye := nextOutgoing(mb)
		Expect(sentBye.Kind).To(Equal(message.KindBye))

		Eventually(runErr, time.Second).Should(Receive(BeNil()))
		Eventually(f.State).Should(Equal(fsm.StateEnd))
	})

	It("synthesizes BYE directly on SIGINT while still in Start (spec.md §8 scenario 4)", func() {
		mb, f, _, _ := newHarness()

		runErr := make(chan error, 1)
		go func() { runErr <- f.Run() }()

		mb.AddMail(mb.SynthesizeErr("", true))

		sentBye := nextOutgoing(mb)
		Expect(sentBye.Kind).To(Equal(message.KindBye))

		Eventually(runErr, time.Second).Should(Receive(BeNil()))
		Expect(f.State()).To(Equal(fsm.StateEnd))
	})

	It("stays in Authenticating on a failed reply and recovers on retry (spec.md §8 scenario 5)", func() {
		mb, f, stdout, _ := newHarness()

		go func() { _ = f.Run() }()

		authCmd, err := mb.ParseCommand("/auth alice wrongsecret Alice")
		Expect(err).ToNot(HaveOccurred())
		mb.AddMail(authCmd)

		first := nextOutgoing(mb)
		Expect(first.Kind).To(Equal(message.KindAuth))

		mb.AddMail(message.NewReply(0, false, first.MessageID, "bad creds"))
		Eventually(func() string { return stdout.String() }).Should(ContainSubstring("Failure: bad creds"))
		Consistently(f.State, 100*time.Millisecond).Should(Equal(fsm.StateAuthenticating))

		retryCmd, err := mb.ParseCommand("/auth alice s3cret Alice")
		Expect(err).ToNot(HaveOccurred())
		mb.AddMail(retryCmd)

		second := nextOutgoing(mb)
		Expect(second.Kind).To(Equal(message.KindAuth))
		Expect(second.Secret).To(Equal("s3cret"))

		mb.AddMail(message.NewReply(0, true, second.MessageID, "Welcome"))
		Eventually(f.State).Should(Equal(fsm.StateOpen))
	})

	It("aborts via synthesized ERR then BYE on a protocol violation in Open", func() {
		mb, f, _, stderr := newHarness()

		runErr := make(chan error, 1)
		go func() { runErr <- f.Run() }()

		authCmd, err := mb.ParseCommand("/auth alice s3cret Alice")
		Expect(err).ToNot(HaveOccurred())
		mb.AddMail(authCmd)
		first := nextOutgoing(mb)

		mb.AddMail(message.NewReply(0, true, first.MessageID, "Welcome"))
		Eventually(f.State).Should(Equal(fsm.StateOpen))

		// An UNKNOWN kind is not a legal Open event under any circumstance.
		mb.AddMail(message.Message{Kind: message.KindUnknown, AddToMailQueue: true})

		sentErr := nextOutgoing(mb)
		Expect(sentErr.Kind).To(Equal(message.KindErr))

		sentBye := nextOutgoing(mb)
		Expect(sentBye.Kind).To(Equal(message.KindBye))

		Eventually(runErr, time.Second).Should(Receive(BeNil()))
		_ = stderr
	})
})
