// Command ipk24chat-client is the IPK24-CHAT protocol client (spec.md §1):
// it wires the Transport, Codec, Mailbox, Reactor, FSM, and Input reader
// together per the lifecycle of spec.md §3/§5 and exits with a status
// matching spec.md §6.
package main

import (
	"os"
	"os/signal"

	spfcbr "github.com/spf13/cobra"

	"github.com/jakubvsetecka/ipk24chat-client/console"
	libcdc "github.com/jakubvsetecka/ipk24chat-client/internal/codec"
	libbin "github.com/jakubvsetecka/ipk24chat-client/internal/codec/binary"
	libtxt "github.com/jakubvsetecka/ipk24chat-client/internal/codec/text"
	"github.com/jakubvsetecka/ipk24chat-client/internal/config"
	"github.com/jakubvsetecka/ipk24chat-client/internal/fsm"
	"github.com/jakubvsetecka/ipk24chat-client/internal/inputreader"
	"github.com/jakubvsetecka/ipk24chat-client/internal/mailbox"
	"github.com/jakubvsetecka/ipk24chat-client/internal/reactor"
	libtr "github.com/jakubvsetecka/ipk24chat-client/internal/transport"
	libtcp "github.com/jakubvsetecka/ipk24chat-client/internal/transport/tcp"
	libudp "github.com/jakubvsetecka/ipk24chat-client/internal/transport/udp"
	"github.com/jakubvsetecka/ipk24chat-client/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *spfcbr.Command {
	var (
		transportFlag string
		hostFlag      string
		portFlag      int
		timeoutFlag   int
		retriesFlag   int
	)

	cmd := &spfcbr.Command{
		Use:           "ipk24chat-client",
		Short:         "IPK24-CHAT protocol client",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *spfcbr.Command, _ []string) error {
			cfg, err := config.New(transportFlag, hostFlag, portFlag, timeoutFlag, retriesFlag)
			if err != nil {
				console.Default().Fatal(err.Error())
				return err
			}
			return run(cfg)
		},
	}

	cmd.Flags().StringVarP(&transportFlag, "transport", "t", "", "transport protocol: tcp or udp (required)")
	cmd.Flags().StringVarP(&hostFlag, "server", "s", "", "server host, IP or name (required)")
	cmd.Flags().IntVarP(&portFlag, "port", "p", config.DefaultPort, "server port")
	cmd.Flags().IntVarP(&timeoutFlag, "timeout", "d", config.DefaultConfirmTimeout, "datagram confirmation timeout in milliseconds")
	cmd.Flags().IntVarP(&retriesFlag, "retries", "r", config.DefaultMaxRetries, "maximum number of datagram retransmissions")

	return cmd
}

// run executes one chat session end to end: open the transport, wire the
// Mailbox/Reactor/FSM/Input reader, start the FSM, the Reactor and the
// Input reader on goroutines of their own, wait on this goroutine until the
// FSM reaches End or the Reactor fails, then stop the Input reader and the
// Reactor and close the transport. The FSM does not run on the main
// goroutine.
func run(cfg config.Config) error {
	cw := console.Default()
	log := logger.New()

	tr, codec := newTransportAndCodec(cfg)

	if err := tr.Open(); err != nil {
		cw.Fatal(err.Error())
		return err
	}
	defer func() { _ = tr.Close() }()

	mb := mailbox.New(codec, cw, log, "")

	stdinLines := make(chan string, 16)
	sigPipe := make(chan struct{}, 2)

	ir := inputreader.New(os.Stdin, stdinLines, sigPipe)
	go ir.Run()

	rx := reactor.New(tr, mb, codec, log, cw, stdinLines, sigPipe)
	reactorErr := make(chan error, 1)
	go func() { reactorErr <- rx.Run() }()

	forwardInterruptsTo(sigPipe)

	f := fsm.New(mb, cw, log)
	fsmDone := make(chan error, 1)
	go func() { fsmDone <- f.Run() }()

	// Whichever finishes first decides the outcome: a clean End from the
	// FSM, or a fatal transport/reliability error surfacing from the
	// Reactor while the FSM would otherwise be stuck waiting on a server
	// that will never answer again.
	var finalErr error
	select {
	case finalErr = <-fsmDone:
	case finalErr = <-reactorErr:
	}

	ir.Stop()
	rx.Stop()

	return finalErr
}

// newTransportAndCodec picks the stream or datagram variant per
// cfg.Transport (spec.md §4.1); the codec follows the transport, since
// each wire binding has exactly one matching codec (spec.md §4.2).
func newTransportAndCodec(cfg config.Config) (libtr.Transport, libcdc.Codec) {
	switch cfg.Transport {
	case config.TransportUDP:
		return libudp.New(cfg.Host, cfg.Port, cfg.ConfirmTimeout, cfg.MaxRetries), libbin.New()
	default:
		return libtcp.New(cfg.Host, cfg.Port), libtxt.New()
	}
}

// forwardInterruptsTo starts the minimal SIGINT handler (spec.md §5):
// it does no work of its own beyond writing one token to the shared
// signal pipe, exactly like the Input reader's EOF case, so the reactor
// treats both sources identically.
func forwardInterruptsTo(sigPipe chan<- struct{}) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)

	go func() {
		<-sigCh
		select {
		case sigPipe <- struct{}{}:
		default:
		}
	}()
}
