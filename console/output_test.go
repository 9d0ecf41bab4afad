package console_test

import (
	"bytes"

	libcon "github.com/jakubvsetecka/ipk24chat-client/console"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("output", func() {
	var out, errBuf *bytes.Buffer
	var w libcon.Writer

	BeforeEach(func() {
		out = &bytes.Buffer{}
		errBuf = &bytes.Buffer{}
		w = libcon.Writer{Out: out, Err: errBuf}
	})

	It("formats an inbound message", func() {
		w.Message("Bob", "hi")
		Expect(out.String()).To(ContainSubstring("Bob: hi"))
	})

	It("formats a successful reply", func() {
		w.Success("Welcome")
		Expect(out.String()).To(ContainSubstring("Success: Welcome"))
	})

	It("formats a failed reply", func() {
		w.Failure("bad creds")
		Expect(out.String()).To(ContainSubstring("Failure: bad creds"))
	})

	It("routes server errors to stderr", func() {
		w.ServerError("Bob", "boom")
		Expect(errBuf.String()).To(ContainSubstring("ERR FROM Bob: boom"))
		Expect(out.String()).To(BeEmpty())
	})

	It("routes fatal diagnostics to stderr with the ERR: prefix", func() {
		w.Fatal("server not responding")
		Expect(errBuf.String()).To(ContainSubstring("ERR: server not responding"))
	})

	It("prints the static help text to stdout", func() {
		w.Help()
		Expect(out.String()).To(ContainSubstring("/auth"))
		Expect(out.String()).To(ContainSubstring("/join"))
		Expect(out.String()).To(ContainSubstring("/rename"))
		Expect(out.String()).To(ContainSubstring("/help"))
		Expect(out.String()).To(ContainSubstring("/print"))
		Expect(errBuf.String()).To(BeEmpty())
	})
})
