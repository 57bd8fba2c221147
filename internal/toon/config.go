package toon

import "strings"

// Default settings shared by the encoder and the decoder.
const (
	DefaultDelimiter = ","
	DefaultIndent    = 2
)

// Config holds the formatting knobs shared by both directions. It has no
// setters; build a new one to change a setting.
type Config struct {
	delimiter    string
	indent       int
	lengthMarker string
}

// DefaultConfig returns a comma-delimited, two-space configuration with no
// length marker.
func DefaultConfig() Config {
	return Config{delimiter: DefaultDelimiter, indent: DefaultIndent}
}

// NewConfig builds a configuration. An empty delimiter means a comma and
// indents below 1 are clamped to 1.
func NewConfig(delimiter string, indent int, lengthMarker string) Config {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	if indent < 1 {
		indent = 1
	}
	return Config{delimiter: delimiter, indent: indent, lengthMarker: lengthMarker}
}

// Delimiter returns the field separator.
func (c Config) Delimiter() string {
	if c.delimiter == "" {
		return DefaultDelimiter
	}
	return c.delimiter
}

// Indent returns the number of spaces per nesting level.
func (c Config) Indent() int {
	if c.indent < 1 {
		return DefaultIndent
	}
	return c.indent
}

// LengthMarker returns the prefix written before array lengths.
func (c Config) LengthMarker() string { return c.lengthMarker }

// DelimiterDisplay returns the delimiter as it appears inside an array
// header: empty for the default comma.
func (c Config) DelimiterDisplay() string {
	if c.Delimiter() == DefaultDelimiter {
		return ""
	}
	return c.Delimiter()
}

var delimiterNames = map[string]string{
	"comma":     ",",
	"tab":       "\t",
	`\t`:        "\t",
	"pipe":      "|",
	"semicolon": ";",
	"space":     " ",
}

// ParseDelimiter resolves a delimiter given by name (comma, tab, pipe,
// semicolon, space or a literal \t). Anything else is taken literally.
func ParseDelimiter(name string) string {
	if d, ok := delimiterNames[strings.ToLower(name)]; ok {
		return d
	}
	return name
}
