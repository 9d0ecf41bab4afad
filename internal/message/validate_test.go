package message_test

import (
	"strings"

	"github.com/jakubvsetecka/ipk24chat-client/internal/message"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("field validators", func() {
	DescribeTable("Username",
		func(v string, ok bool) {
			err := message.ValidateUsername(v)
			if ok {
				Expect(err).ToNot(HaveOccurred())
			} else {
				Expect(err).To(HaveOccurred())
			}
		},
		Entry("valid alnum-dash", "alice-99", true),
		Entry("empty rejected", "", false),
		Entry("too long rejected", strings.Repeat("a", 21), false),
		Entry("dot rejected", "a.b", false),
	)

	It("accepts a channel id with a dot but rejects one on a username", func() {
		Expect(message.ValidateChannelID("discord.general")).ToNot(HaveOccurred())
		Expect(message.ValidateUsername("discord.general")).To(HaveOccurred())
	})

	It("accepts MessageContent at exactly 1400 characters", func() {
		Expect(message.ValidateMessageContent(strings.Repeat("x", 1400))).ToNot(HaveOccurred())
	})

	It("rejects empty MessageContent", func() {
		Expect(message.ValidateMessageContent("")).To(HaveOccurred())
	})

	It("rejects MessageContent over 1400 characters", func() {
		Expect(message.ValidateMessageContent(strings.Repeat("x", 1401))).To(HaveOccurred())
	})

	It("rejects a DisplayName containing 0x7F", func() {
		Expect(message.ValidateDisplayName("name\x7f")).To(HaveOccurred())
	})

	It("accepts a DisplayName at exactly 20 characters", func() {
		Expect(message.ValidateDisplayName(strings.Repeat("d", 20))).ToNot(HaveOccurred())
	})

	It("rejects a Secret over 128 characters", func() {
		Expect(message.ValidateSecret(strings.Repeat("s", 129))).To(HaveOccurred())
	})
})
