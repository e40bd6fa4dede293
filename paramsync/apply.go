package paramsync

import (
	"context"
	"os"

	fmt "github.com/jhunt/go-ansi"
)

// PushOptions tunes the push pipeline.
type PushOptions struct {
	// ShowUnchanged caps the unchanged lines in the diff report;
	// negative means DefaultShowUnchanged.
	ShowUnchanged int

	// Confirm is the gate between the report and any remote
	// mutation.  It must return true only on an explicit operator
	// go-ahead.
	Confirm func(prompt string) bool
}

// Push runs the full diff → present → confirm → apply pipeline.  A
// declined confirmation is a successful no-op with zero mutations; a
// partially failed apply returns an error after reporting how many
// keys did stick.
func Push(ctx context.Context, store Store, localFile, prefix string, opts PushOptions) error {
	cs, err := Plan(ctx, store, localFile, prefix, opts.ShowUnchanged)
	if err != nil {
		return err
	}

	if !cs.HasChanges() {
		fmt.Fprintf(os.Stderr, "No changes. Remote parameters are up-to-date.\n")
		return nil
	}

	if !opts.Confirm("\nDo you want to apply these changes?") {
		fmt.Fprintf(os.Stderr, "Push cancelled. Nothing applied.\n")
		return nil
	}

	result := Apply(ctx, store, cs)

	fmt.Fprintf(os.Stderr, "\nput %d parameters\n", result.Succeeded)

	if failed := result.Failed(); len(failed) > 0 {
		return fmt.Errorf("%d of %d parameters failed to apply", len(failed), len(result.Outcomes))
	}
	return nil
}

// Apply upserts every added and changed parameter: additions first,
// then modifications, each group in report order.  A failed put is
// recorded and the walk continues to the next key; a cancelled context
// stops the walk before the next put, leaving the bookkeeping intact.
func Apply(ctx context.Context, store Store, cs ChangeSet) ApplyResult {
	var result ApplyResult

	batch := append(cs.Additions(), cs.Modifications()...)
	for _, c := range batch {
		if ctx.Err() != nil {
			fmt.Fprintf(os.Stderr, "@Y{interrupted; leaving remaining parameters untouched}\n")
			break
		}

		err := store.Put(ctx, c.Key, c.NewValue)
		result.Outcomes = append(result.Outcomes, ApplyOutcome{Key: c.Key, Err: err})
		if err != nil {
			fmt.Fprintf(os.Stderr, "@R{!} %s: %s\n", c.Key, err)
			continue
		}

		result.Succeeded++
		if c.Type == ChangeAdd {
			fmt.Fprintf(os.Stderr, "@G{+} %s\n", c.Key)
		} else {
			fmt.Fprintf(os.Stderr, "@Y{~} %s\n", c.Key)
		}
	}

	return result
}
