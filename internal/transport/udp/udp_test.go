package udp_test

import (
	"net"

	libudp "github.com/jakubvsetecka/ipk24chat-client/internal/transport/udp"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("udp Transport", func() {
	var srv *net.UDPConn

	BeforeEach(func() {
		var err error
		srv, err = net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 0})
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		_ = srv.Close()
	})

	It("sends to the configured port and adopts a new port after the first reply", func() {
		addr := srv.LocalAddr().(*net.UDPAddr)

		tr := libudp.New("127.0.0.1", addr.Port, 250, 3)
		Expect(tr.Open()).To(Succeed())
		defer func() { _ = tr.Close() }()

		Expect(tr.Send([]byte{0x02, 0x00, 0x00})).To(Succeed())

		buf := make([]byte, 64)
		n, clientAddr, err := srv.ReadFromUDP(buf)
		Expect(err).ToNot(HaveOccurred())
		Expect(buf[:n]).To(Equal([]byte{0x02, 0x00, 0x00}))

		// Reply from a different ephemeral server-side socket: the
		// reassigned port must be adopted for subsequent sends.
		reassigned, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 0})
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = reassigned.Close() }()

		_, err = reassigned.WriteToUDP([]byte{0x00, 0x00, 0x00}, clientAddr)
		Expect(err).ToNot(HaveOccurred())

		recv, err := tr.Receive()
		Expect(err).ToNot(HaveOccurred())
		Expect(recv).To(Equal([]byte{0x00, 0x00, 0x00}))

		Expect(tr.Send([]byte{0xFF, 0x00, 0x01})).To(Succeed())

		n2, from2, err := reassigned.ReadFromUDP(buf)
		Expect(err).ToNot(HaveOccurred())
		Expect(buf[:n2]).To(Equal([]byte{0xFF, 0x00, 0x01}))
		Expect(from2).ToNot(BeNil())
	})

	It("exposes the configured timeout and retry budget", func() {
		tr := libudp.New("127.0.0.1", 4567, 250, 3)
		Expect(tr.TimeoutMS()).To(Equal(250))
		Expect(tr.MaxRetries()).To(Equal(3))
	})
})
