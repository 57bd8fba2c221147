package toon

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	safeWordRegex    = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	numericRegex     = regexp.MustCompile(`^[-+]?\d+(\.\d+)?([eE][+-]?\d+)?$`)
	leadingZeroRegex = regexp.MustCompile(`^0\d+$`)
)

// structuralChars may never appear in a bare string or key.
const structuralChars = ":[]{}"

func isReserved(s string) bool {
	return s == "true" || s == "false" || s == "null"
}

// looksNumeric reports whether s matches a numeric literal pattern, or
// would be read back as a number by parseScalar.
func looksNumeric(s string) bool {
	if numericRegex.MatchString(s) || leadingZeroRegex.MatchString(s) {
		return true
	}
	if strings.Contains(s, ".") {
		_, err := strconv.ParseFloat(s, 64)
		return err == nil
	}
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

func hasStructural(s, delimiter string) bool {
	return strings.Contains(s, delimiter) ||
		strings.ContainsAny(s, structuralChars) ||
		strings.HasPrefix(s, "-") ||
		strings.ContainsAny(s, `"\`)
}

func hasControl(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}

// needsQuoting reports whether a string value must be written in quotes.
func needsQuoting(s, delimiter string) bool {
	switch {
	case s == "":
		return true
	case strings.TrimSpace(s) != s:
		return true
	case isReserved(s), looksNumeric(s):
		return true
	case hasStructural(s, delimiter):
		return true
	}
	return !safeWordRegex.MatchString(s) && hasControl(s)
}

// keyNeedsQuoting reports whether an object key or tabular header name must
// be written in quotes.
func keyNeedsQuoting(key, delimiter string) bool {
	switch {
	case key == "":
		return true
	case strings.TrimSpace(key) != key, hasControl(key):
		return true
	case isReserved(key):
		return true
	case numericRegex.MatchString(key), leadingZeroRegex.MatchString(key):
		return true
	}
	return hasStructural(key, delimiter)
}

// escape prepares s for placement inside double quotes. A tab is kept
// literal when the delimiter itself is a tab.
func escape(s, delimiter string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			if delimiter == "\t" {
				sb.WriteRune(r)
			} else {
				sb.WriteString(`\t`)
			}
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func quote(s, delimiter string) string {
	return `"` + escape(s, delimiter) + `"`
}

// unescape reverses escape. Unknown escapes yield the escaped character.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	escaped := false
	for _, r := range s {
		if escaped {
			switch r {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteRune(r)
			}
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func isQuoted(s string) bool {
	return len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"'
}

// unquote strips surrounding quotes and unescapes; bare text is returned
// trimmed.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if isQuoted(s) {
		return unescape(s[1 : len(s)-1])
	}
	return s
}
