package paramsync

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// mockStore implements Store against an in-memory ParameterSet.  Keys
// named in failKeys make Put return an error; puts records every
// successful write in order.
type mockStore struct {
	remote   *ParameterSet
	fetchErr error
	failKeys map[string]bool
	puts     []string
}

func newMockStore(pairs ...string) *mockStore {
	ps := NewParameterSet()
	for i := 0; i+1 < len(pairs); i += 2 {
		ps.Set(pairs[i], pairs[i+1])
	}
	return &mockStore{remote: ps, failKeys: map[string]bool{}}
}

func (m *mockStore) FetchUnderPrefix(ctx context.Context, prefix string) (*ParameterSet, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.remote, nil
}

func (m *mockStore) Put(ctx context.Context, key, value string) error {
	if m.failKeys[key] {
		return fmt.Errorf("AccessDeniedException: not authorized to PutParameter")
	}
	m.puts = append(m.puts, key)
	return nil
}

func writeTempEnv(dir, content string) string {
	path := filepath.Join(dir, "params.env")
	Expect(ioutil.WriteFile(path, []byte(content), 0644)).To(Succeed())
	return path
}

var _ = Describe("Classify", func() {
	set := func(pairs ...string) *ParameterSet {
		ps := NewParameterSet()
		for i := 0; i+1 < len(pairs); i += 2 {
			ps.Set(pairs[i], pairs[i+1])
		}
		return ps
	}

	It("puts every local key in exactly one bucket", func() {
		local := set("/s/A", "1", "/s/B", "2", "/s/C", "3")
		remote := set("/s/A", "1", "/s/B", "9")

		cs := Classify(local, remote)
		Expect(cs.Changes).To(HaveLen(3))

		unchanged, adds, modifies := cs.Counts()
		Expect(unchanged).To(Equal(1))
		Expect(adds).To(Equal(1))
		Expect(modifies).To(Equal(1))
	})

	It("keeps local file order in Changes", func() {
		local := set("/s/Z", "1", "/s/A", "2")
		remote := set()

		cs := Classify(local, remote)
		Expect(cs.Changes[0].Key).To(Equal("/s/Z"))
		Expect(cs.Changes[1].Key).To(Equal("/s/A"))
	})

	It("carries old and new values for a modification", func() {
		cs := Classify(set("/s/A", "new"), set("/s/A", "old"))
		Expect(cs.Changes[0].Type).To(Equal(ChangeModify))
		Expect(cs.Changes[0].OldValue).To(Equal("old"))
		Expect(cs.Changes[0].NewValue).To(Equal("new"))
	})

	It("reports remote-only keys separately, sorted by key", func() {
		local := set()
		remote := set("/s/Z", "z", "/s/A", "a")

		cs := Classify(local, remote)
		Expect(cs.Changes).To(BeEmpty())
		Expect(cs.RemoteOnly).To(HaveLen(2))
		Expect(cs.RemoteOnly[0].Key).To(Equal("/s/A"))
		Expect(cs.RemoteOnly[1].Key).To(Equal("/s/Z"))
		Expect(cs.HasChanges()).To(BeFalse())
	})

	It("treats an empty remote as all additions", func() {
		cs := Classify(set("/s/A", "1", "/s/B", "2"), set())
		_, adds, _ := cs.Counts()
		Expect(adds).To(Equal(2))
		Expect(cs.HasChanges()).To(BeTrue())
	})

	It("is idempotent: local equal to remote yields no changes", func() {
		both := set("/s/A", "1", "/s/B", "2")
		cs := Classify(both, both)
		unchanged, adds, modifies := cs.Counts()
		Expect(unchanged).To(Equal(2))
		Expect(adds).To(Equal(0))
		Expect(modifies).To(Equal(0))
		Expect(cs.HasChanges()).To(BeFalse())
	})
})

var _ = Describe("Report formatting", func() {
	It("renders each section with the summary line", func() {
		local := NewParameterSet()
		local.Set("/s/A", "1")
		local.Set("/s/B", "2")
		local.Set("/s/C", "3")
		remote := NewParameterSet()
		remote.Set("/s/A", "1")
		remote.Set("/s/B", "9")

		out := FormatReport(Classify(local, remote), -1)
		Expect(out).To(Equal("unchanged:\n" +
			"  /s/A=1\n" +
			"to add:\n" +
			"  /s/C=3\n" +
			"to change:\n" +
			"  /s/B=9 -> 2\n" +
			"1 unchanged, 1 new, 1 changed\n"))
	})

	It("omits sections with no entries", func() {
		local := NewParameterSet()
		local.Set("/s/A", "1")
		out := FormatReport(Classify(local, NewParameterSet()), -1)
		Expect(out).ToNot(ContainSubstring("unchanged:"))
		Expect(out).ToNot(ContainSubstring("to change:"))
		Expect(out).To(ContainSubstring("to add:"))
	})

	It("collapses unchanged entries past the cap", func() {
		local := NewParameterSet()
		remote := NewParameterSet()
		for i := 0; i < 8; i++ {
			k := fmt.Sprintf("/s/K%d", i)
			local.Set(k, "v")
			remote.Set(k, "v")
		}

		out := FormatReport(Classify(local, remote), 5)
		Expect(out).To(ContainSubstring("  ... 3 more unchanged\n"))
		Expect(out).To(ContainSubstring("8 unchanged, 0 new, 0 changed"))
	})

	It("shows every unchanged entry when under the cap", func() {
		local := NewParameterSet()
		local.Set("/s/A", "1")
		remote := NewParameterSet()
		remote.Set("/s/A", "1")

		out := FormatReport(Classify(local, remote), 5)
		Expect(out).ToNot(ContainSubstring("more unchanged"))
	})

	It("lists remote-only keys in their own block", func() {
		remote := NewParameterSet()
		remote.Set("/s/GHOST", "boo")

		cs := Classify(NewParameterSet(), remote)
		Expect(FormatRemoteOnly(cs)).To(Equal("remote only (left untouched):\n  /s/GHOST=boo\n"))
	})

	It("renders no remote-only block when there are none", func() {
		Expect(FormatRemoteOnly(ChangeSet{})).To(Equal(""))
	})
})

var _ = Describe("ParameterSet", func() {
	It("iterates in insertion order", func() {
		ps := NewParameterSet()
		ps.Set("C", "3")
		ps.Set("A", "1")
		ps.Set("B", "2")
		Expect(ps.Keys()).To(Equal([]string{"C", "A", "B"}))
	})

	It("keeps the first position when a key is set again", func() {
		ps := NewParameterSet()
		ps.Set("A", "1")
		ps.Set("B", "2")
		ps.Set("A", "9")
		Expect(ps.Keys()).To(Equal([]string{"A", "B"}))
		v, _ := ps.Get("A")
		Expect(v).To(Equal("9"))
		Expect(ps.Len()).To(Equal(2))
	})
})

var _ = Describe("Key qualification", func() {
	It("joins bare keys under the prefix", func() {
		ps := NewParameterSet()
		ps.Set("DB_HOST", "h")

		out := QualifyKeys(ps, "/stage/app")
		Expect(out.Keys()).To(Equal([]string{"/stage/app/DB_HOST"}))
	})

	It("tolerates a trailing slash on the prefix", func() {
		ps := NewParameterSet()
		ps.Set("DB_HOST", "h")

		out := QualifyKeys(ps, "/stage/app/")
		Expect(out.Keys()).To(Equal([]string{"/stage/app/DB_HOST"}))
	})

	It("passes absolute keys through untouched", func() {
		ps := NewParameterSet()
		ps.Set("/other/place/KEY", "v")

		out := QualifyKeys(ps, "/stage/app")
		Expect(out.Keys()).To(Equal([]string{"/other/place/KEY"}))
	})

	It("is inverted by RelativeKeys", func() {
		ps := NewParameterSet()
		ps.Set("DB_HOST", "h")
		ps.Set("DB_PORT", "5432")

		rel := RelativeKeys(QualifyKeys(ps, "/stage/app"), "/stage/app")
		Expect(rel.Keys()).To(Equal([]string{"DB_HOST", "DB_PORT"}))
	})

	It("leaves keys outside the prefix absolute when relativizing", func() {
		ps := NewParameterSet()
		ps.Set("/other/KEY", "v")

		rel := RelativeKeys(ps, "/stage/app")
		Expect(rel.Keys()).To(Equal([]string{"/other/KEY"}))
	})
})

var _ = Describe("Push", func() {
	var store *mockStore
	var tmpDir string
	ctx := context.Background()

	BeforeEach(func() {
		store = newMockStore("/stage/app/A", "1", "/stage/app/B", "9")

		var err error
		tmpDir, err = ioutil.TempDir("", "paramsync-test")
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	confirm := func(answer bool) func(string) bool {
		return func(string) bool { return answer }
	}

	It("puts additions then modifications on confirmation", func() {
		file := writeTempEnv(tmpDir, "A=1\nB=2\nC=3\n")

		err := Push(ctx, store, file, "/stage/app", PushOptions{Confirm: confirm(true)})
		Expect(err).ToNot(HaveOccurred())
		Expect(store.puts).To(Equal([]string{"/stage/app/C", "/stage/app/B"}))
	})

	It("puts nothing when confirmation is declined", func() {
		file := writeTempEnv(tmpDir, "A=1\nB=2\n")

		err := Push(ctx, store, file, "/stage/app", PushOptions{Confirm: confirm(false)})
		Expect(err).ToNot(HaveOccurred())
		Expect(store.puts).To(BeEmpty())
	})

	It("skips the confirmation entirely when there is nothing to change", func() {
		file := writeTempEnv(tmpDir, "A=1\nB=9\n")

		asked := false
		err := Push(ctx, store, file, "/stage/app", PushOptions{
			Confirm: func(string) bool { asked = true; return true },
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(asked).To(BeFalse())
		Expect(store.puts).To(BeEmpty())
	})

	It("keeps going past a failed put and reports the failure count", func() {
		store.failKeys["/stage/app/B"] = true
		file := writeTempEnv(tmpDir, "B=2\nC=3\nD=4\n")

		err := Push(ctx, store, file, "/stage/app", PushOptions{Confirm: confirm(true)})
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(Equal("1 of 3 parameters failed to apply"))
		Expect(store.puts).To(ConsistOf("/stage/app/C", "/stage/app/D"))
	})

	It("refuses to touch the store when the local file is malformed", func() {
		file := writeTempEnv(tmpDir, "A=1\nnot a pair\n")

		err := Push(ctx, store, file, "/stage/app", PushOptions{Confirm: confirm(true)})
		Expect(err).To(HaveOccurred())
		Expect(store.puts).To(BeEmpty())
	})

	It("surfaces a fetch failure before asking for confirmation", func() {
		store.fetchErr = fmt.Errorf("ThrottlingException: rate exceeded")
		file := writeTempEnv(tmpDir, "A=1\n")

		asked := false
		err := Push(ctx, store, file, "/stage/app", PushOptions{
			Confirm: func(string) bool { asked = true; return true },
		})
		Expect(err).To(HaveOccurred())
		Expect(asked).To(BeFalse())
	})
})

var _ = Describe("Apply", func() {
	It("stops before the next put when the context is cancelled", func() {
		store := newMockStore()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		cs := Classify(func() *ParameterSet {
			ps := NewParameterSet()
			ps.Set("/s/A", "1")
			return ps
		}(), NewParameterSet())

		result := Apply(ctx, store, cs)
		Expect(store.puts).To(BeEmpty())
		Expect(result.Succeeded).To(Equal(0))
		Expect(result.Outcomes).To(BeEmpty())
	})

	It("records one outcome per attempted key", func() {
		store := newMockStore()
		store.failKeys["/s/B"] = true

		local := NewParameterSet()
		local.Set("/s/A", "1")
		local.Set("/s/B", "2")
		cs := Classify(local, NewParameterSet())

		result := Apply(context.Background(), store, cs)
		Expect(result.Outcomes).To(HaveLen(2))
		Expect(result.Succeeded).To(Equal(1))
		Expect(result.Failed()).To(HaveLen(1))
		Expect(result.Failed()[0].Key).To(Equal("/s/B"))
	})
})

var _ = Describe("Pull", func() {
	var tmpDir string

	BeforeEach(func() {
		var err error
		tmpDir, err = ioutil.TempDir("", "paramsync-test")
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	It("writes the remote snapshot with keys relative to the prefix", func() {
		store := newMockStore("/stage/app/A", "1", "/stage/app/B", "2")
		path := filepath.Join(tmpDir, "out.env")

		err := Pull(context.Background(), store, path, "/stage/app")
		Expect(err).ToNot(HaveOccurred())

		b, err := ioutil.ReadFile(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(b)).To(Equal("A=1\nB=2\n"))
	})

	It("surfaces fetch failures", func() {
		store := newMockStore()
		store.fetchErr = fmt.Errorf("no credentials")

		err := Pull(context.Background(), store, filepath.Join(tmpDir, "out.env"), "/stage/app")
		Expect(err).To(HaveOccurred())
	})
})
