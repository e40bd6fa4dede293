package paramsync

import (
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Local parameter files", func() {
	parse := func(input string) (*ParameterSet, error) {
		return parseLocal("test.env", strings.NewReader(input))
	}

	Describe("parsing", func() {
		It("reads KEY=VALUE pairs in file order", func() {
			ps, err := parse("B=2\nA=1\nC=3\n")
			Expect(err).ToNot(HaveOccurred())
			Expect(ps.Keys()).To(Equal([]string{"B", "A", "C"}))
		})

		It("takes the value from the first '=' to end of line", func() {
			ps, err := parse("URL=postgres://u:p@host:5432/db?sslmode=require\n")
			Expect(err).ToNot(HaveOccurred())
			v, _ := ps.Get("URL")
			Expect(v).To(Equal("postgres://u:p@host:5432/db?sslmode=require"))
		})

		It("keeps an empty value for KEY=", func() {
			ps, err := parse("EMPTY=\n")
			Expect(err).ToNot(HaveOccurred())
			v, ok := ps.Get("EMPTY")
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal(""))
		})

		It("skips blank lines and comments", func() {
			ps, err := parse("\n# a comment\n   \nA=1\n  # indented comment\n")
			Expect(err).ToNot(HaveOccurred())
			Expect(ps.Len()).To(Equal(1))
		})

		It("lets the last duplicate win while keeping the first position", func() {
			ps, err := parse("A=1\nB=2\nA=3\n")
			Expect(err).ToNot(HaveOccurred())
			Expect(ps.Keys()).To(Equal([]string{"A", "B"}))
			v, _ := ps.Get("A")
			Expect(v).To(Equal("3"))
		})

		It("strips trailing carriage returns", func() {
			ps, err := parse("A=1\r\nB=2\r\n")
			Expect(err).ToNot(HaveOccurred())
			v, _ := ps.Get("A")
			Expect(v).To(Equal("1"))
		})

		It("rejects a line with no '='", func() {
			_, err := parse("A=1\nnot a pair\n")
			Expect(err).To(HaveOccurred())
			Expect(IsParseError(err)).To(BeTrue())
		})

		It("rejects a line with an empty key", func() {
			_, err := parse("=value\n")
			Expect(err).To(HaveOccurred())
			Expect(IsParseError(err)).To(BeTrue())
		})

		It("reports the file name and line number of the bad line", func() {
			_, err := parse("A=1\n\nbogus\n")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(Equal(`test.env:3: expected KEY=VALUE, got "bogus"`))
		})
	})

	Describe("formatting", func() {
		It("renders one KEY=VALUE per line in set order", func() {
			ps := NewParameterSet()
			ps.Set("B", "2")
			ps.Set("A", "1")
			Expect(FormatLocalFile(ps)).To(Equal("B=2\nA=1\n"))
		})

		It("renders an empty set as an empty string", func() {
			Expect(FormatLocalFile(NewParameterSet())).To(Equal(""))
		})

		It("round-trips through the parser", func() {
			ps := NewParameterSet()
			ps.Set("DB_HOST", "db.example.com")
			ps.Set("DB_PASS", "s3cret=with=equals")

			again, err := parse(FormatLocalFile(ps))
			Expect(err).ToNot(HaveOccurred())
			Expect(again.Keys()).To(Equal(ps.Keys()))
			v, _ := again.Get("DB_PASS")
			Expect(v).To(Equal("s3cret=with=equals"))
		})
	})
})
