package toon

import "strings"

// splitDelimited splits s on delimiter, ignoring delimiters inside double
// quotes or right after a backslash. Quotes and escapes are kept in the
// fields so each one can be scalar-parsed on its own.
func splitDelimited(s, delimiter string) []string {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
		escaped  bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			current.WriteByte(c)
			escaped = false
		case c == '\\':
			current.WriteByte(c)
			escaped = true
		case c == '"':
			current.WriteByte(c)
			inQuotes = !inQuotes
		case !inQuotes && strings.HasPrefix(s[i:], delimiter):
			fields = append(fields, current.String())
			current.Reset()
			i += len(delimiter) - 1
		default:
			current.WriteByte(c)
		}
	}
	return append(fields, current.String())
}

// findUnquotedColon returns the index of the first colon outside quotes,
// or -1.
func findUnquotedColon(s string) int {
	inQuotes, escaped := false, false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			inQuotes = !inQuotes
		case !inQuotes && c == ':':
			return i
		}
	}
	return -1
}

// indentOf counts leading spaces. Tabs are not expanded.
func indentOf(line string) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}

// cursor walks an index-addressed line buffer. Blank lines are invisible.
type cursor struct {
	lines []string
	pos   int
}

func newCursor(text string) *cursor {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	c := &cursor{lines: lines}
	c.skipBlank()
	return c
}

func (c *cursor) skipBlank() {
	for c.pos < len(c.lines) && strings.TrimSpace(c.lines[c.pos]) == "" {
		c.pos++
	}
}

func (c *cursor) more() bool { return c.pos < len(c.lines) }

func (c *cursor) line() string { return c.lines[c.pos] }

func (c *cursor) advance() {
	c.pos++
	c.skipBlank()
}

// remaining counts the non-blank lines from the cursor on.
func (c *cursor) remaining() int {
	n := 0
	for _, l := range c.lines[c.pos:] {
		if strings.TrimSpace(l) != "" {
			n++
		}
	}
	return n
}
