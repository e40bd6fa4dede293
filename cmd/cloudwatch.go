package cmd

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	cwl "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	fmt "github.com/jhunt/go-ansi"

	"github.com/kingalban/aws-butler/app"
	"github.com/kingalban/aws-butler/cloudwatch"
)

func (opt *Options) logClient(ctx context.Context, r *app.Runner, usage string) *cloudwatch.Client {
	if opt.Cloudwatch.LogGroupName == "" {
		r.ExitWithUsage(usage)
	}
	cfg := app.Connect(ctx, opt.Profile, opt.Region)
	return cloudwatch.New(cwl.NewFromConfig(cfg), opt.Cloudwatch.LogGroupName)
}

func registerCloudwatchCommands(ctx context.Context, r *app.Runner, opt *Options) {
	r.Dispatch("cloudwatch", &app.Help{
		Summary: "List and read CloudWatch log streams (ls/cat/head/tail)",
		Usage:   "aws-butler cloudwatch -g LOG-GROUP <ls|cat|head|tail> [STREAM ...]",
		Type:    app.AdministrativeCommand,
		Description: `
Read-only access to the log streams of one log group.

Subcommands:

    ls      List streams, most recent event first.

    cat     Print the full contents of the named streams (all streams
            when none are named).

    head    Print the first -n events of each stream.

    tail    Print the last -n events of each stream.

Output is piped through $PAGER (less by default) when stdout is a
terminal; --no-pager disables that, and --no-color strips ANSI escape
codes from event messages.

`,
	}, func(command string, args ...string) error {
		r.ExitWithUsage("cloudwatch")
		return nil
	})

	r.Dispatch("cloudwatch ls", &app.Help{
		Summary: "List log streams in the log group",
		Usage:   "aws-butler cloudwatch -g LOG-GROUP ls [-n N] [--today] [--format table|json|lines]",
		Type:    app.NonDestructiveCommand,
		Description: `
List log streams ordered by last event time, newest first.  --today
keeps only streams created in the last 24 hours.

`,
	}, func(command string, args ...string) error {
		if len(args) != 0 {
			r.ExitWithUsage("cloudwatch ls")
		}
		client := opt.logClient(ctx, r, "cloudwatch ls")

		var since time.Time
		if opt.Cloudwatch.LS.Today {
			since = time.Now().Add(-24 * time.Hour)
		}

		streams, err := client.ListStreams(ctx, opt.Cloudwatch.LS.Lines, since)
		if err != nil {
			return err
		}

		switch opt.Cloudwatch.LS.Format {
		case "table":
			tbl := app.NewTable("name", "created at", "latest event at", "duration")
			for _, s := range streams {
				tbl.AddRow(s.Name,
					cloudwatch.FormatEpoch(s.CreatedAt),
					cloudwatch.FormatEpoch(s.LastEvent),
					cloudwatch.FormatInterval(s.Duration()))
			}
			fmt.Fprintf(os.Stdout, "%s", tbl.String())

		case "lines":
			for _, s := range streams {
				fmt.Fprintf(os.Stdout, "%s\n", s.Name)
			}

		case "json":
			b, err := json.Marshal(streams)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "%s\n", string(b))

		default:
			return app.NewUsageError("--format must be 'table', 'json' or 'lines', not '%s'", opt.Cloudwatch.LS.Format)
		}
		return nil
	})

	r.Dispatch("cloudwatch cat", &app.Help{
		Summary: "Print the contents of log streams",
		Usage:   "aws-butler cloudwatch -g LOG-GROUP cat [STREAM ...] [--page-size N] [--no-pager] [--no-color]",
		Type:    app.NonDestructiveCommand,
	}, func(command string, args ...string) error {
		client := opt.logClient(ctx, r, "cloudwatch cat")
		return printStreams(ctx, client, args,
			cloudwatch.WalkOpts{PageSize: opt.Cloudwatch.Cat.PageSize, FromHead: true},
			opt.Cloudwatch.Cat.Pager, opt.Cloudwatch.Cat.Color)
	})

	r.Dispatch("cloudwatch head", &app.Help{
		Summary: "Print the first events of log streams",
		Usage:   "aws-butler cloudwatch -g LOG-GROUP head [STREAM ...] [-n N] [--no-pager] [--no-color]",
		Type:    app.NonDestructiveCommand,
	}, func(command string, args ...string) error {
		client := opt.logClient(ctx, r, "cloudwatch head")
		return printStreams(ctx, client, args,
			cloudwatch.WalkOpts{Limit: opt.Cloudwatch.Head.Lines, FromHead: true},
			opt.Cloudwatch.Head.Pager, opt.Cloudwatch.Head.Color)
	})

	r.Dispatch("cloudwatch tail", &app.Help{
		Summary: "Print the last events of log streams",
		Usage:   "aws-butler cloudwatch -g LOG-GROUP tail [STREAM ...] [-n N] [--no-pager] [--no-color]",
		Type:    app.NonDestructiveCommand,
	}, func(command string, args ...string) error {
		client := opt.logClient(ctx, r, "cloudwatch tail")
		return printStreams(ctx, client, args,
			cloudwatch.WalkOpts{Limit: opt.Cloudwatch.Tail.Lines, FromHead: false},
			opt.Cloudwatch.Tail.Pager, opt.Cloudwatch.Tail.Color)
	})
}

// printStreams writes each stream's events, one block per stream.
// With no names given, every stream in the group is walked, most
// recent first.
func printStreams(ctx context.Context, client *cloudwatch.Client, names []string, opts cloudwatch.WalkOpts, pager, color bool) error {
	if len(names) == 0 {
		streams, err := client.ListStreams(ctx, 0, time.Time{})
		if err != nil {
			return err
		}
		for _, s := range streams {
			names = append(names, s.Name)
		}
	}

	out, done := cloudwatch.OpenPager(pager)
	defer done()

	for _, name := range names {
		events, err := client.Events(ctx, name, opts)
		if err != nil {
			return err
		}

		writeEvents(out, client.Group(), name, events, color)
	}
	return nil
}

func writeEvents(w io.Writer, group, stream string, events []cloudwatch.Event, color bool) {
	fmt.Fprintf(w, "%s %s\n", group, stream)
	for _, e := range events {
		line := fmt.Sprintf("%s: %s", cloudwatch.FormatEpoch(e.Timestamp), e.Message)
		if !color {
			line = cloudwatch.StripColor(line)
		}
		fmt.Fprintf(w, "%s\n", line)
	}
	fmt.Fprintf(w, "\n")
}
