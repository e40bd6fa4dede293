package cmd

import (
	"context"
	"os"
	"sort"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
	fmt "github.com/jhunt/go-ansi"
	"gopkg.in/yaml.v2"

	"github.com/kingalban/aws-butler/app"
	"github.com/kingalban/aws-butler/paramstore"
	"github.com/kingalban/aws-butler/paramsync"
)

func (opt *Options) paramClient(ctx context.Context, decrypt bool) *paramstore.Client {
	cfg := app.Connect(ctx, opt.Profile, opt.Region)
	return paramstore.New(ssm.NewFromConfig(cfg), decrypt)
}

func registerParameterCommands(ctx context.Context, r *app.Runner, opt *Options) {
	r.Dispatch("parameters", &app.Help{
		Summary: "Manage SSM parameters via a local file (ls/pull/diff/push)",
		Usage:   "aws-butler parameters <ls|pull|diff|push> [FILE] --path PREFIX",
		Type:    app.AdministrativeCommand,
		Description: `
Keep SSM Parameter Store in sync with a local KEY=VALUE file.

The local file is one parameter per line, 'KEY=VALUE', where the value
is everything after the first '='.  Blank lines and #-comments are
skipped.  Keys starting with '/' are absolute parameter paths; anything
else is qualified under the --path prefix.

Subcommands:

    ls      List parameters and their metadata.

    pull    Download all parameters under --path into FILE, replacing
            its contents.

    diff    Show what push would change, without touching anything.

    push    Diff the local file against the remote store, show the
            report, ask for confirmation, then upsert the added and
            changed parameters.  Parameters that only exist remotely
            are reported but never deleted.

`,
	}, func(command string, args ...string) error {
		r.ExitWithUsage("parameters")
		return nil
	})

	r.Dispatch("parameters ls", &app.Help{
		Summary: "List SSM parameters",
		Usage:   "aws-butler parameters ls [--path PREFIX] [-n N] [--sort name|modified] [--yaml]",
		Type:    app.NonDestructiveCommand,
		Description: `
List parameters with their type, description, and last-modified time,
optionally filtered to a path prefix.

`,
	}, func(command string, args ...string) error {
		if len(args) != 0 {
			r.ExitWithUsage("parameters ls")
		}

		client := opt.paramClient(ctx, false)
		infos, err := client.List(ctx, opt.Parameters.Path, opt.Parameters.LS.Lines)
		if err != nil {
			return err
		}

		switch opt.Parameters.LS.Sort {
		case "":
		case "name":
			sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
		case "modified":
			sort.Slice(infos, func(i, j int) bool { return infos[i].LastModified.Before(infos[j].LastModified) })
		default:
			return app.NewUsageError("--sort must be 'name' or 'modified', not '%s'", opt.Parameters.LS.Sort)
		}

		if opt.Parameters.LS.YAML {
			rows := make([]map[string]string, 0, len(infos))
			for _, p := range infos {
				rows = append(rows, map[string]string{
					"name":        p.Name,
					"type":        p.Type,
					"description": p.Description,
					"modified at": p.LastModified.Format("2006-01-02 15:04:05"),
				})
			}
			b, err := yaml.Marshal(rows)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "%s", string(b))
			return nil
		}

		tbl := app.NewTable("name", "type", "description", "modified at")
		for _, p := range infos {
			tbl.AddRow(p.Name, p.Type, p.Description, p.LastModified.Format("2006-01-02 15:04:05"))
		}
		fmt.Fprintf(os.Stdout, "%s", tbl.String())
		return nil
	})

	r.Dispatch("parameters pull", &app.Help{
		Summary: "Download SSM parameters to a local KEY=VALUE file",
		Usage:   "aws-butler parameters pull FILE --path PREFIX [--no-decrypt]",
		Type:    app.NonDestructiveCommand,
		Description: `
Fetch every parameter under PREFIX and write FILE, one 'KEY=VALUE' per
line, keys relative to the prefix, sorted by name.  FILE is replaced
wholesale.  Use '-' for FILE to write to stdout.

SecureString values are decrypted unless --no-decrypt is given.

`,
	}, func(command string, args ...string) error {
		if len(args) != 1 || opt.Parameters.Path == "" {
			r.ExitWithUsage("parameters pull")
		}

		client := opt.paramClient(ctx, opt.Parameters.Pull.Decrypt)
		return paramsync.Pull(ctx, client, args[0], opt.Parameters.Path)
	})

	r.Dispatch("parameters diff", &app.Help{
		Summary: "Show what a push would change, without applying",
		Usage:   "aws-butler parameters diff FILE --path PREFIX [--show-unchanged N]",
		Type:    app.NonDestructiveCommand,
		Description: `
Compare the local file against the parameters under PREFIX and print
the same report push shows, without prompting or writing anything.

`,
	}, func(command string, args ...string) error {
		if len(args) != 1 || opt.Parameters.Path == "" {
			r.ExitWithUsage("parameters diff")
		}

		client := opt.paramClient(ctx, true)
		_, err := paramsync.Plan(ctx, client, args[0], opt.Parameters.Path, opt.Parameters.Diff.ShowUnchanged)
		return err
	})

	r.Dispatch("parameters push", &app.Help{
		Summary: "Sync a local KEY=VALUE file up to SSM (diff, confirm, apply)",
		Usage:   "aws-butler parameters push FILE --path PREFIX [--show-unchanged N]",
		Type:    app.DestructiveCommand,
		Description: `
Compare the local file against the parameters under PREFIX, print the
report, and ask for confirmation.  Only a literal 'yes' applies; any
other answer is a clean no-op.

Added and changed parameters are upserted one at a time; one key
failing does not stop the rest, and the final summary reports how many
were put.  Any failure makes the run exit non-zero.  Remote-only
parameters are never deleted.

`,
	}, func(command string, args ...string) error {
		if len(args) != 1 || opt.Parameters.Path == "" {
			r.ExitWithUsage("parameters push")
		}

		client := opt.paramClient(ctx, true)
		return paramsync.Push(ctx, client, args[0], opt.Parameters.Path, paramsync.PushOptions{
			ShowUnchanged: opt.Parameters.Push.ShowUnchanged,
			Confirm: func(prompt string) bool {
				return app.Confirm(os.Stdin, prompt)
			},
		})
	})
}
