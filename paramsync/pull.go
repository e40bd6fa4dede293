package paramsync

import (
	"context"
	"os"

	fmt "github.com/jhunt/go-ansi"
)

// Pull snapshots every parameter under prefix and writes localFile in
// KEY=VALUE format, keys rewritten relative to the prefix, in the
// store's (sorted) fetch order.  The file is replaced wholesale; pull
// is the inverse of push, not a merge.
func Pull(ctx context.Context, store Store, localFile, prefix string) error {
	remote, err := store.FetchUnderPrefix(ctx, prefix)
	if err != nil {
		return fmt.Errorf("fetching remote parameters under %s: %s", prefix, err)
	}

	local := RelativeKeys(remote, prefix)
	if err := WriteLocalFile(localFile, local); err != nil {
		return fmt.Errorf("writing %s: %s", localFile, err)
	}

	if localFile != "-" {
		fmt.Fprintf(os.Stderr, "pulled @G{%d} parameters to %s\n", local.Len(), localFile)
	}
	return nil
}
