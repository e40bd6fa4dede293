package paramsync

import (
	"fmt"
	"sort"
	"strings"
)

// Classify compares local against remote.  Every local key lands in
// exactly one of ChangeNone / ChangeAdd / ChangeModify, in local file
// order; remote keys with no local counterpart come back as
// ChangeRemoteOnly, sorted by key.  Neither input is modified, and
// nothing is printed.
func Classify(local, remote *ParameterSet) ChangeSet {
	var cs ChangeSet

	for _, key := range local.Keys() {
		newVal, _ := local.Get(key)
		oldVal, exists := remote.Get(key)

		switch {
		case !exists:
			cs.Changes = append(cs.Changes, Change{Type: ChangeAdd, Key: key, NewValue: newVal})
		case oldVal == newVal:
			cs.Changes = append(cs.Changes, Change{Type: ChangeNone, Key: key, OldValue: oldVal, NewValue: newVal})
		default:
			cs.Changes = append(cs.Changes, Change{Type: ChangeModify, Key: key, OldValue: oldVal, NewValue: newVal})
		}
	}

	for _, key := range remote.Keys() {
		if !local.Has(key) {
			val, _ := remote.Get(key)
			cs.RemoteOnly = append(cs.RemoteOnly, Change{Type: ChangeRemoteOnly, Key: key, OldValue: val})
		}
	}
	sort.Slice(cs.RemoteOnly, func(i, j int) bool {
		return cs.RemoteOnly[i].Key < cs.RemoteOnly[j].Key
	})

	return cs
}

// DefaultShowUnchanged caps how many unchanged parameters the report
// lists before collapsing the rest into a single "... N more" line.
const DefaultShowUnchanged = 5

// FormatReport renders the classification.  The section headers, the
// per-line layouts, and the trailing summary are a compatibility
// contract; scripts parse this output.  Sections with no entries are
// omitted entirely.  showUnchanged < 0 means DefaultShowUnchanged.
func FormatReport(cs ChangeSet, showUnchanged int) string {
	if showUnchanged < 0 {
		showUnchanged = DefaultShowUnchanged
	}

	unchanged, adds, modifies := cs.Counts()
	var sb strings.Builder

	if unchanged > 0 {
		sb.WriteString("unchanged:\n")
		shown := 0
		for _, c := range cs.Changes {
			if c.Type != ChangeNone || shown >= showUnchanged {
				continue
			}
			fmt.Fprintf(&sb, "  %s=%s\n", c.Key, c.NewValue)
			shown++
		}
		if unchanged > shown {
			fmt.Fprintf(&sb, "  ... %d more unchanged\n", unchanged-shown)
		}
	}

	if adds > 0 {
		sb.WriteString("to add:\n")
		for _, c := range cs.Additions() {
			fmt.Fprintf(&sb, "  %s=%s\n", c.Key, c.NewValue)
		}
	}

	if modifies > 0 {
		sb.WriteString("to change:\n")
		for _, c := range cs.Modifications() {
			fmt.Fprintf(&sb, "  %s=%s -> %s\n", c.Key, c.OldValue, c.NewValue)
		}
	}

	sb.WriteString(FormatSummary(cs))
	sb.WriteString("\n")
	return sb.String()
}

// FormatSummary returns the one-line count summary, e.g.
// "1 unchanged, 1 new, 1 changed".
func FormatSummary(cs ChangeSet) string {
	unchanged, adds, modifies := cs.Counts()
	return fmt.Sprintf("%d unchanged, %d new, %d changed", unchanged, adds, modifies)
}

// FormatRemoteOnly lists keys that exist remotely with no local
// counterpart.  Informational only; push never deletes.  Empty string
// when there are none.
func FormatRemoteOnly(cs ChangeSet) string {
	if len(cs.RemoteOnly) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("remote only (left untouched):\n")
	for _, c := range cs.RemoteOnly {
		fmt.Fprintf(&sb, "  %s=%s\n", c.Key, c.OldValue)
	}
	return sb.String()
}
