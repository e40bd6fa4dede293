package paramsync

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseError reports a malformed line in a local parameter file.  It
// is fatal: nothing remote happens after one of these.
type ParseError struct {
	File string
	Line int
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: expected KEY=VALUE, got %q", e.File, e.Line, e.Text)
}

func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// ReadLocalFile parses a KEY=VALUE file into an ordered ParameterSet.
// The value runs from the first '=' to the end of the line, untouched.
// Blank lines and #-comments are skipped.  If a key appears more than
// once the last occurrence wins, and the key keeps the position of its
// first occurrence.  A path of "-" reads stdin.
func ReadLocalFile(path string) (*ParameterSet, error) {
	var in io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		in = f
	}
	return parseLocal(path, in)
}

func parseLocal(name string, in io.Reader) (*ParameterSet, error) {
	ps := NewParameterSet()
	scanner := bufio.NewScanner(in)

	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSuffix(scanner.Text(), "\r")

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, &ParseError{File: name, Line: n, Text: line}
		}
		ps.Set(key, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	return ps, nil
}

// FormatLocalFile renders ps in KEY=VALUE format, one parameter per
// line, in set order.
func FormatLocalFile(ps *ParameterSet) string {
	var sb strings.Builder
	for _, k := range ps.Keys() {
		v, _ := ps.Get(k)
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(v)
		sb.WriteString("\n")
	}
	return sb.String()
}

// WriteLocalFile writes ps to path in KEY=VALUE format.  A path of
// "-" writes to stdout.
func WriteLocalFile(path string, ps *ParameterSet) error {
	if path == "-" {
		_, err := io.WriteString(os.Stdout, FormatLocalFile(ps))
		return err
	}
	return os.WriteFile(path, []byte(FormatLocalFile(ps)), 0644)
}
