package inputreader_test

import (
	"os"
	"strings"
	"time"

	"github.com/jakubvsetecka/ipk24chat-client/internal/inputreader"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func newPipe() (*os.File, *os.File) {
	r, w, err := os.Pipe()
	Expect(err).ToNot(HaveOccurred())
	return r, w
}

var _ = Describe("Reader", func() {
	It("publishes each line and signals end-of-input on EOF", func() {
		in := strings.NewReader("/auth alice s3cret Alice\nHello\n")
		lines := make(chan string, 8)
		sigPipe := make(chan struct{}, 1)

		r := inputreader.New(in, lines, sigPipe)
		go r.Run()

		var got []string
		Eventually(func() []string {
			for {
				select {
				case l, ok := <-lines:
					if !ok {
						return got
					}
					got = append(got, l)
				default:
					return got
				}
			}
		}).Should(Equal([]string{"/auth alice s3cret Alice", "Hello"}))

		Eventually(sigPipe, time.Second).Should(Receive())
	})

	It("does not signal end-of-input when Stop was called first", func() {
		pr, pw := newPipe()
		lines := make(chan string, 8)
		sigPipe := make(chan struct{}, 1)

		r := inputreader.New(pr, lines, sigPipe)
		done := make(chan struct{})
		go func() { r.Run(); close(done) }()

		r.Stop()
		_ = pw.Close()

		Eventually(done, time.Second).Should(BeClosed())
		Consistently(sigPipe, 100*time.Millisecond).ShouldNot(Receive())
	})
})
