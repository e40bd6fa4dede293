package paramsync

import (
	"context"
	"strings"
)

// ChangeType classifies a single parameter key against the remote store.
type ChangeType int

const (
	ChangeNone       ChangeType = iota // identical, no action
	ChangeAdd                          // local only: create remotely
	ChangeModify                       // both exist, values differ: update
	ChangeRemoteOnly                   // remote only: reported, never touched
)

// Change records one classified key.  OldValue is the remote value
// (set for ChangeNone, ChangeModify and ChangeRemoteOnly); NewValue is
// the local value (set whenever the key exists locally).
type Change struct {
	Type     ChangeType
	Key      string
	OldValue string
	NewValue string
}

// ChangeSet is the full classification of a local parameter set
// against the remote store.  Changes holds exactly one entry per local
// key, in file order; RemoteOnly holds keys present remotely with no
// local counterpart, sorted by key.
type ChangeSet struct {
	Changes    []Change
	RemoteOnly []Change
}

// Counts returns the number of unchanged, added, and modified keys.
func (cs ChangeSet) Counts() (unchanged, adds, modifies int) {
	for _, c := range cs.Changes {
		switch c.Type {
		case ChangeNone:
			unchanged++
		case ChangeAdd:
			adds++
		case ChangeModify:
			modifies++
		}
	}
	return
}

// HasChanges returns true if an apply would put anything.
func (cs ChangeSet) HasChanges() bool {
	_, adds, modifies := cs.Counts()
	return adds+modifies > 0
}

// Additions returns the ChangeAdd entries in file order.
func (cs ChangeSet) Additions() []Change {
	return cs.ofType(ChangeAdd)
}

// Modifications returns the ChangeModify entries in file order.
func (cs ChangeSet) Modifications() []Change {
	return cs.ofType(ChangeModify)
}

func (cs ChangeSet) ofType(t ChangeType) []Change {
	var out []Change
	for _, c := range cs.Changes {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// ApplyOutcome is the per-key result of one put during apply.
type ApplyOutcome struct {
	Key string
	Err error // nil on success
}

// ApplyResult accumulates outcomes as the executor walks the batch,
// one entry per key attempted.
type ApplyResult struct {
	Outcomes  []ApplyOutcome
	Succeeded int
}

// Failed returns the outcomes whose put did not stick.
func (r ApplyResult) Failed() []ApplyOutcome {
	var out []ApplyOutcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			out = append(out, o)
		}
	}
	return out
}

// Store abstracts the remote parameter store for testability.
type Store interface {
	FetchUnderPrefix(ctx context.Context, prefix string) (*ParameterSet, error)
	Put(ctx context.Context, key, value string) error
}

// ParameterSet is an ordered key → value mapping.  Iteration order is
// insertion order; setting an existing key replaces its value but
// keeps its original position.
type ParameterSet struct {
	keys   []string
	values map[string]string
}

func NewParameterSet() *ParameterSet {
	return &ParameterSet{values: map[string]string{}}
}

func (ps *ParameterSet) Set(key, value string) {
	if _, ok := ps.values[key]; !ok {
		ps.keys = append(ps.keys, key)
	}
	ps.values[key] = value
}

func (ps *ParameterSet) Get(key string) (string, bool) {
	v, ok := ps.values[key]
	return v, ok
}

func (ps *ParameterSet) Has(key string) bool {
	_, ok := ps.values[key]
	return ok
}

// Keys returns the keys in insertion order.  The returned slice is
// shared; callers must not modify it.
func (ps *ParameterSet) Keys() []string {
	return ps.keys
}

func (ps *ParameterSet) Len() int {
	return len(ps.keys)
}

// QualifyKeys returns a copy of ps with every key fully qualified
// under prefix.  Keys that already start with '/' are absolute
// parameter paths and pass through untouched.
func QualifyKeys(ps *ParameterSet, prefix string) *ParameterSet {
	out := NewParameterSet()
	base := strings.TrimSuffix(prefix, "/")
	for _, k := range ps.Keys() {
		v, _ := ps.Get(k)
		if strings.HasPrefix(k, "/") {
			out.Set(k, v)
		} else {
			out.Set(base+"/"+k, v)
		}
	}
	return out
}

// RelativeKeys is the inverse of QualifyKeys: keys under prefix are
// rewritten relative to it; anything else keeps its absolute path.
func RelativeKeys(ps *ParameterSet, prefix string) *ParameterSet {
	out := NewParameterSet()
	base := strings.TrimSuffix(prefix, "/") + "/"
	for _, k := range ps.Keys() {
		v, _ := ps.Get(k)
		if rel := strings.TrimPrefix(k, base); rel != k && rel != "" {
			out.Set(rel, v)
		} else {
			out.Set(k, v)
		}
	}
	return out
}
