package cmd

import (
	"os"
	"strings"

	fmt "github.com/jhunt/go-ansi"

	"github.com/kingalban/aws-butler/app"
)

func registerHelpCommands(r *app.Runner, opt *Options, version string) {
	r.Dispatch("version", &app.Help{
		Summary: "Print the version of the aws-butler CLI",
		Usage:   "aws-butler version",
		Type:    app.AdministrativeCommand,
	}, func(command string, args ...string) error {
		if version != "" {
			fmt.Fprintf(os.Stderr, "aws-butler v%s\n", version)
		} else {
			fmt.Fprintf(os.Stderr, "aws-butler (development build)\n")
		}
		os.Exit(0)
		return nil
	})

	r.Dispatch("help", nil, func(command string, args ...string) error {
		if len(args) == 0 {
			args = append(args, "commands")
		}
		r.Help(os.Stderr, strings.Join(args, " "))
		os.Exit(0)
		return nil
	})

	r.Dispatch("envvars", nil, func(command string, args ...string) error {
		fmt.Printf(`@G{[SESSION]}
  @B{AWS_PROFILE}  The shared-config profile requests are made under.
                Same effect as the global @C{--profile} flag.
  @B{AWS_REGION}   The region requests are sent to.  Same effect as the
                global @C{--region} flag.

  Credentials themselves are never handled by aws-butler; they come
  from the same shared config / credentials files, SSO session, or
  instance role that the aws CLI would use.

@G{[OUTPUT]}
  @B{PAGER}        The pager 'cloudwatch cat/head/tail' pipe through when
                stdout is a terminal.  Defaults to 'less -FRX'.

`)
		return nil
	})
}
