package toon

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mcncl/gotoon/internal/models"
)

// Array headers: "[" marker count delimiter "]" then either the rest of the
// line or a "{fields}:" section.
var (
	arrayHeaderRegex   = regexp.MustCompile(`^\[([^\]\d]*)(\d+)([^\]]*)\](.*)$`)
	tabularHeaderRegex = regexp.MustCompile(`^\[([^\]\d]*)(\d+)([^\]]*)\]\{(.+)\}:$`)
	keyHeaderRegex     = regexp.MustCompile(`^(.+?)(\[[^\[\]]*\](?:\{.*\})?)$`)
)

// Decoder reads the format back into values. It never fails: malformed
// structure becomes an empty container or a raw string.
type Decoder struct {
	cfg Config
}

// NewDecoder creates a decoder for cfg.
func NewDecoder(cfg Config) *Decoder {
	return &Decoder{cfg: cfg}
}

// Decode parses text. Blank input yields an empty object.
func (d *Decoder) Decode(text string) models.Value {
	if strings.TrimSpace(text) == "" {
		return models.ObjectValue(nil)
	}
	c := newCursor(text)
	first := strings.TrimSpace(c.line())
	if strings.HasPrefix(first, "[") {
		return d.parseArray(c, first, 0)
	}
	if c.remaining() == 1 && !isListItem(first) && findUnquotedColon(first) < 0 {
		return parseScalar(first)
	}
	return models.ObjectValue(d.parseObject(c, models.NewObject(), 0))
}

func isListItem(trimmed string) bool {
	return trimmed == "-" || strings.HasPrefix(trimmed, "- ")
}

// parseObject adds every field found at exactly base indentation to obj.
// Deeper lines nobody claimed are skipped; a shallower line or a list item
// ends the object.
func (d *Decoder) parseObject(c *cursor, obj *models.Object, base int) *models.Object {
	for c.more() {
		line := c.line()
		indent := indentOf(line)
		if indent < base {
			break
		}
		if indent > base {
			c.advance()
			continue
		}
		trimmed := strings.TrimSpace(line)
		if isListItem(trimmed) {
			break
		}
		colon := findUnquotedColon(trimmed)
		if colon < 0 {
			c.advance()
			continue
		}
		d.parseField(c, obj, trimmed, colon, indent)
	}
	return obj
}

// parseField reads the "key: value" in content, found on the current line
// and treated as sitting at indent, plus any block nested below it.
func (d *Decoder) parseField(c *cursor, obj *models.Object, content string, colon, indent int) {
	keyPart := strings.TrimSpace(content[:colon])
	rest := strings.TrimSpace(content[colon+1:])

	if key, header, ok := splitKeyHeader(keyPart); ok {
		if rest != "" {
			header += ": " + rest
		} else {
			header += ":"
		}
		obj.Set(unquote(key), d.parseArray(c, header, indent))
		return
	}

	key := unquote(keyPart)
	switch {
	case rest == "":
		c.advance()
		if c.more() && indentOf(c.line()) > indent {
			obj.Set(key, models.ObjectValue(d.parseObject(c, models.NewObject(), indent+d.cfg.Indent())))
		} else {
			obj.Set(key, models.ObjectValue(nil))
		}
	case strings.HasPrefix(rest, "["):
		obj.Set(key, d.parseArray(c, rest, indent))
	default:
		obj.Set(key, parseScalar(rest))
		c.advance()
	}
}

// splitKeyHeader separates "key[N]..." into the key and its array header.
func splitKeyHeader(keyPart string) (key, header string, ok bool) {
	if strings.HasSuffix(keyPart, `"`) {
		return "", "", false
	}
	m := keyHeaderRegex.FindStringSubmatch(keyPart)
	if m == nil || !arrayHeaderRegex.MatchString(m[2]) {
		return "", "", false
	}
	return m[1], m[2], true
}

// parseArray consumes the header line under the cursor and the body that
// belongs to it. Body lines must be indented deeper than base.
func (d *Decoder) parseArray(c *cursor, header string, base int) models.Value {
	if m := tabularHeaderRegex.FindStringSubmatch(header); m != nil {
		c.advance()
		return d.parseTabular(c, m[4], d.delimiterFor(m[3]), base)
	}
	if m := arrayHeaderRegex.FindStringSubmatch(header); m != nil {
		rest := m[4]
		switch {
		case strings.HasPrefix(rest, ": "):
			c.advance()
			return parseInline(header, d.delimiterFor(m[3]))
		case rest == ":":
			c.advance()
			return d.parseList(c, base)
		}
	}
	c.advance()
	return models.Array()
}

// delimiterFor prefers the delimiter a header declares over the configured one.
func (d *Decoder) delimiterFor(declared string) string {
	if declared != "" {
		return declared
	}
	return d.cfg.Delimiter()
}

func parseInline(header, delimiter string) models.Value {
	idx := strings.Index(header, "]: ")
	if idx < 0 {
		return models.Array()
	}
	content := header[idx+3:]
	if strings.TrimSpace(content) == "" {
		return models.Array()
	}
	tokens := splitDelimited(content, delimiter)
	items := make([]models.Value, len(tokens))
	for i, tok := range tokens {
		items[i] = parseScalar(tok)
	}
	return models.Array(items...)
}

func (d *Decoder) parseTabular(c *cursor, fieldList, delimiter string, base int) models.Value {
	fields := splitDelimited(fieldList, delimiter)
	for i, f := range fields {
		fields[i] = unquote(f)
	}

	var rows []models.Value
	for c.more() {
		line := c.line()
		if indentOf(line) <= base {
			break
		}
		trimmed := strings.TrimSpace(line)
		if isListItem(trimmed) {
			break
		}
		values := splitDelimited(trimmed, delimiter)
		row := models.NewObject()
		for i := 0; i < len(fields) && i < len(values); i++ {
			row.Set(fields[i], parseScalar(values[i]))
		}
		rows = append(rows, models.ObjectValue(row))
		c.advance()
	}
	return models.Array(rows...)
}

func (d *Decoder) parseList(c *cursor, base int) models.Value {
	var items []models.Value
	for c.more() {
		line := c.line()
		indent := indentOf(line)
		if indent <= base {
			break
		}
		trimmed := strings.TrimSpace(line)
		if !isListItem(trimmed) {
			break
		}
		content := strings.TrimSpace(strings.TrimPrefix(trimmed, "-"))

		switch colon := findUnquotedColon(content); {
		case content == "":
			items = append(items, models.ObjectValue(nil))
			c.advance()
		case strings.HasPrefix(content, "["):
			items = append(items, d.parseArray(c, content, indent))
		case colon >= 0:
			// The first field sits on the marker line, the rest one
			// level below the marker.
			fieldIndent := indent + d.cfg.Indent()
			obj := models.NewObject()
			d.parseField(c, obj, content, colon, fieldIndent)
			items = append(items, models.ObjectValue(d.parseObject(c, obj, fieldIndent)))
		default:
			items = append(items, parseScalar(content))
			c.advance()
		}
	}
	return models.Array(items...)
}

// parseScalar reads a single token. Anything that is not a literal, a
// quoted string or a well-formed number stays a raw string.
func parseScalar(token string) models.Value {
	s := strings.TrimSpace(token)
	switch s {
	case "null":
		return models.Null()
	case "true":
		return models.Bool(true)
	case "false":
		return models.Bool(false)
	}
	if isQuoted(s) {
		return models.String(unescape(s[1 : len(s)-1]))
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return models.Float(f)
		}
	} else if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return models.Int(i)
	}
	return models.String(s)
}
