package main

import (
	"context"
	"errors"
	"os"

	fmt "github.com/jhunt/go-ansi"
	"github.com/jhunt/go-cli"
	env "github.com/jhunt/go-envirotron"

	"github.com/kingalban/aws-butler/app"
	"github.com/kingalban/aws-butler/cmd"
)

// Version is set at build time via -ldflags "-X main.Version=...".
var Version string

func main() {
	opt := cmd.NewOptions()

	ctx := app.SignalContext(context.Background())

	r := app.NewRunner()
	cmd.RegisterAll(ctx, r, opt, Version)

	env.Override(opt)
	p, err := cli.NewParser(opt, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "@R{!! %s}\n", err)
		os.Exit(1)
	}

	if opt.Version {
		r.Execute("version")
		return
	}
	if opt.Help { //-h was given as a global arg
		r.Execute("help")
		return
	}

	for p.Next() {
		if opt.Version {
			r.Execute("version")
			return
		}

		if p.Command == "" { //No recognized command was found
			r.Execute("help")
			return
		}

		if opt.Help { // -h or --help was given after a command
			r.Execute("help", p.Command)
			continue
		}

		err = r.Execute(p.Command, p.Args...)
		if err != nil {
			var usageErr *app.UsageError
			if errors.As(err, &usageErr) {
				fmt.Fprintf(os.Stderr, "@Y{%s}\n", err)
			} else {
				fmt.Fprintf(os.Stderr, "@R{!! %s}\n", err)
			}
			os.Exit(1)
		}
	}

	//If there were no args given, the above loop that would try to give help
	// doesn't execute at all, so we catch it here.
	if p.Command == "" {
		r.Execute("help")
	}

	if err = p.Error(); err != nil {
		fmt.Fprintf(os.Stderr, "@R{!! %s}\n", err)
		os.Exit(1)
	}
}
