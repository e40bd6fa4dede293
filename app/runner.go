package app

import (
	"io"
	"os"
	"sort"
	"strings"

	fmt "github.com/jhunt/go-ansi"
)

// CommandType groups commands in help output, and controls whether a
// command shows up there at all.
type CommandType int

const (
	DestructiveCommand CommandType = iota
	NonDestructiveCommand
	AdministrativeCommand
	HiddenCommand
)

// Help describes a single command for the help system.
type Help struct {
	Summary     string
	Usage       string
	Description string
	Type        CommandType
}

// Handler is the function signature for all registered commands.
type Handler func(command string, args ...string) error

// Runner dispatches command names to their handlers and keeps the help
// topics alongside.
type Runner struct {
	Handlers map[string]Handler
	Topics   map[string]*Help
}

func NewRunner() *Runner {
	return &Runner{
		Handlers: map[string]Handler{},
		Topics:   map[string]*Help{},
	}
}

// Dispatch registers a handler under the given command name.  A non-nil
// help block also registers a help topic, unless the command is hidden.
func (r *Runner) Dispatch(command string, help *Help, fn Handler) {
	r.Handlers[command] = fn

	if help != nil && help.Type != HiddenCommand {
		help.Description = strings.TrimSpace(help.Description)
		r.Topics[command] = help
	}
}

// HelpTopic registers a help topic that has no command behind it
// (i.e. `aws-butler help envvars`).
func (r *Runner) HelpTopic(topic string, description string) {
	r.Topics[topic] = &Help{
		Description: strings.TrimSpace(description),
	}
}

func (r *Runner) Execute(command string, args ...string) error {
	if fn, ok := r.Handlers[command]; ok {
		return fn(command, args...)
	}
	return fmt.Errorf("unknown command: '%s'", command)
}

// Help writes the help text for the given topic to w.  The special topic
// "commands" lists every visible command.  Unknown topics are fatal.
func (r *Runner) Help(w io.Writer, topic string) {
	if topic == "commands" {
		r.listCommands(w)
		return
	}

	if h, ok := r.Topics[topic]; ok {
		if h.Summary != "" {
			fmt.Fprintf(w, "@G{%s} - %s\n", topic, h.Summary)
		}
		if h.Usage != "" {
			fmt.Fprintf(w, "@G{USAGE:} %s\n", h.Usage)
		}
		if h.Description != "" {
			fmt.Fprintf(w, "\n%s\n", h.Description)
		}
		return
	}

	fmt.Fprintf(w, "@R{Unrecognized help topic '%s'.}\n", topic)
	fmt.Fprintf(w, "Try @C{aws-butler help commands} for a list of valid commands.\n")
	os.Exit(1)
}

func (r *Runner) listCommands(w io.Writer) {
	names := make([]string, 0, len(r.Topics))
	width := 0
	for name, h := range r.Topics {
		if h.Summary == "" {
			continue
		}
		names = append(names, name)
		if len(name) > width {
			width = len(name)
		}
	}
	sort.Strings(names)

	fmt.Fprintf(w, "Valid commands are:\n\n")
	for _, name := range names {
		fmt.Fprintf(w, "    @G{%-*s}   %s\n", width, name, r.Topics[name].Summary)
	}
	fmt.Fprintf(w, "\nTry @C{aws-butler help COMMAND} for details on any of these.\n")
}

// ExitWithUsage prints the usage line for the given command and exits
// non-zero.  Used by handlers when argument validation fails.
func (r *Runner) ExitWithUsage(command string) {
	if h, ok := r.Topics[command]; ok && h.Usage != "" {
		fmt.Fprintf(os.Stderr, "@G{USAGE:} %s\n", h.Usage)
	} else {
		fmt.Fprintf(os.Stderr, "@R{Incorrect usage of '%s'.}\n", command)
	}
	os.Exit(1)
}

// UsageError marks errors that are the operator's fault, not the
// tool's; main prints these in yellow rather than red.
type UsageError struct {
	message string
}

func NewUsageError(format string, args ...interface{}) *UsageError {
	return &UsageError{message: fmt.Sprintf(format, args...)}
}

func (e *UsageError) Error() string {
	return e.message
}
