package cloudwatch

import (
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/mattn/go-isatty"
)

// OpenPager starts $PAGER (default `less -FRX`) and returns a writer
// feeding it, plus a close function that must be called to let the
// pager drain.  When paging is disabled, or stdout is not a terminal,
// the writer is plain stdout and close is a no-op.
func OpenPager(enabled bool) (io.Writer, func() error) {
	noop := func() error { return nil }

	if !enabled || !isatty.IsTerminal(os.Stdout.Fd()) {
		return os.Stdout, noop
	}

	args := []string{"less", "-FRX"}
	if pager := os.Getenv("PAGER"); pager != "" {
		args = strings.Fields(pager)
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	w, err := cmd.StdinPipe()
	if err != nil {
		return os.Stdout, noop
	}
	if err := cmd.Start(); err != nil {
		return os.Stdout, noop
	}

	return w, func() error {
		w.Close()
		return cmd.Wait()
	}
}
