package mailbox_test

import (
	"bytes"
	"time"

	"github.com/jakubvsetecka/ipk24chat-client/console"
	libtxt "github.com/jakubvsetecka/ipk24chat-client/internal/codec/text"
	"github.com/jakubvsetecka/ipk24chat-client/internal/mailbox"
	"github.com/jakubvsetecka/ipk24chat-client/internal/message"
	"github.com/jakubvsetecka/ipk24chat-client/logger"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func newTestMailbox() (*mailbox.Mailbox, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	w := console.Writer{Out: &stdout, Err: &stderr}
	mb := mailbox.New(libtxt.New(), w, logger.New(), "Alice")
	return mb, &stdout, &stderr
}

var _ = Describe("Mailbox", func() {
	It("blocks WaitMail until a message is added, then prints an inbound MSG", func() {
		mb, stdout, _ := newTestMailbox()

		done := make(chan message.Message, 1)
		go func() {
			done <- mb.WaitMail()
		}()

		Consistently(done, 50*time.Millisecond).ShouldNot(Receive())

		m, err := message.NewMsg("Bob", "hi", false)
		Expect(err).ToNot(HaveOccurred())
		mb.AddMail(m)

		var got message.Message
		Eventually(done, time.Second).Should(Receive(&got))
		Expect(got.DisplayName).To(Equal("Bob"))
		Expect(stdout.String()).To(ContainSubstring("Bob: hi"))
	})

	It("never enqueues CONFIRM", func() {
		mb, _, _ := newTestMailbox()
		mb.AddMail(mb.SynthesizeConfirm(5))

		_, ok := mb.TryGetOutgoing()
		Expect(ok).To(BeFalse())

		done := make(chan message.Message, 1)
		go func() { done <- mb.WaitMail() }()
		Consistently(done, 50*time.Millisecond).ShouldNot(Receive())
	})

	It("assigns strictly increasing MessageIDs from SendMail", func() {
		mb, _, _ := newTestMailbox()

		a, err := message.NewAuth("alice", "Alice", "s3cret")
		Expect(err).ToNot(HaveOccurred())
		mb.SendMail(a)

		j, err := message.NewJoin("general", "Alice")
		Expect(err).ToNot(HaveOccurred())
		mb.SendMail(j)

		first, ok := mb.TryGetOutgoing()
		Expect(ok).To(BeTrue())
		Expect(first.MessageID).To(Equal(uint16(0)))

		second, ok := mb.TryGetOutgoing()
		Expect(ok).To(BeTrue())
		Expect(second.MessageID).To(Equal(uint16(1)))
	})

	It("signals the notify channel once per SendMail", func() {
		mb, _, _ := newTestMailbox()

		bye := mb.SynthesizeBye()
		mb.SendMail(bye)

		Eventually(mb.NotifyChan(), time.Second).Should(Receive())
	})

	It("reports a duplicate for a server MessageID at or below the watermark", func() {
		mb, _, _ := newTestMailbox()

		Expect(mb.ObserveServerID(5)).To(BeFalse())
		Expect(mb.ObserveServerID(5)).To(BeTrue())
		Expect(mb.ObserveServerID(3)).To(BeTrue())
		Expect(mb.ObserveServerID(6)).To(BeFalse())
	})

	Describe("ParseCommand", func() {
		It("parses /auth and overrides any prior /rename", func() {
			mb, _, _ := newTestMailbox()

			_, err := mb.ParseCommand("/rename Bob")
			Expect(err).ToNot(HaveOccurred())
			Expect(mb.DisplayName()).To(Equal("Bob"))

			m, err := mb.ParseCommand("/auth alice s3cret Carol")
			Expect(err).ToNot(HaveOccurred())
			Expect(m.Kind).To(Equal(message.KindAuth))
			Expect(m.DisplayName).To(Equal("Carol"))
			Expect(mb.DisplayName()).To(Equal("Carol"))
		})

		It("parses /join with the local display name auto-filled", func() {
			mb, _, _ := newTestMailbox()
			m, err := mb.ParseCommand("/join general")
			Expect(err).ToNot(HaveOccurred())
			Expect(m.Kind).To(Equal(message.KindJoin))
			Expect(m.ChannelID).To(Equal("general"))
			Expect(m.DisplayName).To(Equal("Alice"))
		})

		It("prints static help text and does not enqueue", func() {
			mb, stdout, _ := newTestMailbox()

			help, err := mb.ParseCommand("/help")
			Expect(err).ToNot(HaveOccurred())
			Expect(help.AddToMailQueue).To(BeFalse())
			Expect(stdout.String()).To(ContainSubstring("/auth"))
		})

		It("dumps queue depth and the last dispatched kind to stderr on /print, and does not enqueue", func() {
			mb, _, stderr := newTestMailbox()

			m, err := message.NewMsg("Bob", "hi", false)
			Expect(err).ToNot(HaveOccurred())
			mb.AddMail(m)
			Expect(mb.WaitMail().Kind).To(Equal(message.KindMsg))

			printCmd, err := mb.ParseCommand("/print")
			Expect(err).ToNot(HaveOccurred())
			Expect(printCmd.AddToMailQueue).To(BeFalse())
			Expect(stderr.String()).To(ContainSubstring("0 pending"))
			Expect(stderr.String()).To(ContainSubstring("last dispatched MSG"))
		})

		It("treats a plain line as outbound MSG content", func() {
			mb, _, _ := newTestMailbox()
			m, err := mb.ParseCommand("Hello there")
			Expect(err).ToNot(HaveOccurred())
			Expect(m.Kind).To(Equal(message.KindMsg))
			Expect(m.ToSend).To(BeTrue())
			Expect(m.MessageContent).To(Equal("Hello there"))
		})

		It("rejects an unrecognized slash command", func() {
			mb, _, _ := newTestMailbox()
			_, err := mb.ParseCommand("/nope")
			Expect(err).To(HaveOccurred())
		})

		It("rejects a malformed /auth", func() {
			mb, _, _ := newTestMailbox()
			_, err := mb.ParseCommand("/auth alice s3cret")
			Expect(err).To(HaveOccurred())
		})
	})

	It("parses inbound wire bytes through the configured codec", func() {
		mb, _, _ := newTestMailbox()
		m, err := mb.ParseInbound([]byte("BYE\r\n"))
		Expect(err).ToNot(HaveOccurred())
		Expect(m.Kind).To(Equal(message.KindBye))
	})
})
