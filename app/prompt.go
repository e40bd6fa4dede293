package app

import (
	"bufio"
	"io"
	"os"
	"strings"

	fmt "github.com/jhunt/go-ansi"
)

// Confirm presents the prompt on stderr and requires the operator to
// type the literal token 'yes'.  Anything else ('y', 'Yes', an empty
// line, EOF) declines.  There is no retry; one line decides.
func Confirm(in io.Reader, prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s\n", prompt)
	fmt.Fprintf(os.Stderr, "Only 'yes' will be accepted.\n")
	fmt.Fprintf(os.Stderr, "> ")

	line, _ := bufio.NewReader(in).ReadString('\n')
	return strings.TrimSpace(line) == "yes"
}
