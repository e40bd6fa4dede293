package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"
)

// SignalContext returns a context that is cancelled on SIGINT, SIGTERM
// or SIGQUIT.  Terminal state is restored before cancelling, so an
// interrupted prompt does not leave the shell in raw mode.  A second
// signal exits immediately.
func SignalContext(parent context.Context) context.Context {
	ctx, cancel := context.WithCancel(parent)

	prev, err := term.GetState(int(os.Stdin.Fd()))
	if err != nil {
		prev = nil
	}

	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	go func() {
		<-s
		if prev != nil {
			term.Restore(int(os.Stdin.Fd()), prev)
		}
		cancel()
		<-s
		os.Exit(1)
	}()

	return ctx
}
