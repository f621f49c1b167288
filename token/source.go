package token

import "strings"

// Newline is the internal placeholder for a logical line feed inside
// scalar text.  It is a private-use rune that cannot occur in captured
// text (Escape turns an input U+E000, like control and separator
// characters, into a JSON escape), survives
// left-margin trimming, and is rewritten to a real newline escape only
// when the emitter quotes the value.
const Newline = '\uE000'

// Source is a 0-indexed, random-access view of the input lines.  The
// whole document is materialized up front; the tokenizer addresses it
// by (row, indent).
type Source struct {
	lines []string
}

func NewSource(d []byte) *Source {
	lines := strings.Split(string(d), "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimSuffix(ln, "\r")
	}
	// a trailing newline terminates the last line, it does not open a
	// new empty one
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return &Source{lines: lines}
}

func (s *Source) Len() int {
	return len(s.lines)
}

func (s *Source) Line(i int) string {
	return s.lines[i]
}

// Indent returns the leading-space count of line i.
func (s *Source) Indent(i int) int {
	return countIndent(s.lines[i])
}

func countIndent(ln string) int {
	i := 0
	for i < len(ln) && ln[i] == ' ' {
		i++
	}
	return i
}

func isBlank(ln string) bool {
	return strings.TrimSpace(ln) == ""
}
