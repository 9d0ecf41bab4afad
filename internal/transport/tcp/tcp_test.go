package tcp_test

import (
	"net"
	"time"

	libtcp "github.com/jakubvsetecka/ipk24chat-client/internal/transport/tcp"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("tcp Transport", func() {
	var (
		ln   net.Listener
		host string
		port int
	)

	BeforeEach(func() {
		var err error
		ln, err = net.Listen("tcp", "127.0.0.1:0")
		Expect(err).ToNot(HaveOccurred())

		addr := ln.Addr().(*net.TCPAddr)
		host = "127.0.0.1"
		port = addr.Port
	})

	AfterEach(func() {
		_ = ln.Close()
	})

	It("connects, sends, and receives one reassembled line per logical message", func() {
		accepted := make(chan net.Conn, 1)
		go func() {
			conn, err := ln.Accept()
			if err == nil {
				accepted <- conn
			}
		}()

		tr := libtcp.New(host, port)
		Expect(tr.Open()).To(Succeed())
		defer func() { _ = tr.Close() }()

		var conn net.Conn
		Eventually(accepted, time.Second).Should(Receive(&conn))
		defer func() { _ = conn.Close() }()

		Expect(tr.Send([]byte("AUTH alice AS Alice USING s3cret\r\n"))).To(Succeed())

		buf := make([]byte, 64)
		n, err := conn.Read(buf)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(buf[:n])).To(Equal("AUTH alice AS Alice USING s3cret\r\n"))

		// Write a line split across two underlying writes to exercise
		// reassembly, plus a second full line in the same write.
		_, err = conn.Write([]byte("REPLY OK IS We"))
		Expect(err).ToNot(HaveOccurred())
		_, err = conn.Write([]byte("lcome\r\nBYE\r\n"))
		Expect(err).ToNot(HaveOccurred())

		line1, err := tr.Receive()
		Expect(err).ToNot(HaveOccurred())
		Expect(string(line1)).To(Equal("REPLY OK IS Welcome"))

		line2, err := tr.Receive()
		Expect(err).ToNot(HaveOccurred())
		Expect(string(line2)).To(Equal("BYE"))
	})

	It("fails to open when nothing is listening", func() {
		tr := libtcp.New("127.0.0.1", 1)
		Expect(tr.Open()).To(HaveOccurred())
	})
})
