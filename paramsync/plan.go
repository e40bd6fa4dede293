package paramsync

import (
	"context"
	"os"

	fmt "github.com/jhunt/go-ansi"
)

// Plan loads the local file, snapshots the remote parameters under
// prefix, classifies, and prints the report to stderr.  The ChangeSet
// is returned for reuse by Push.  Local keys without a leading '/' are
// qualified under prefix before comparison.
func Plan(ctx context.Context, store Store, localFile, prefix string, showUnchanged int) (ChangeSet, error) {
	local, err := ReadLocalFile(localFile)
	if err != nil {
		return ChangeSet{}, fmt.Errorf("reading local parameters: %s", err)
	}
	local = QualifyKeys(local, prefix)

	remote, err := store.FetchUnderPrefix(ctx, prefix)
	if err != nil {
		return ChangeSet{}, fmt.Errorf("fetching remote parameters under %s: %s", prefix, err)
	}

	cs := Classify(local, remote)

	fmt.Fprintf(os.Stderr, "%s", FormatReport(cs, showUnchanged))
	if s := FormatRemoteOnly(cs); s != "" {
		fmt.Fprintf(os.Stderr, "\n%s", s)
	}

	return cs, nil
}
