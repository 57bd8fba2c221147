package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mcncl/gotoon/internal/models"
)

// Formatter renders values as JSON text, keeping object key order
type Formatter struct {
	pretty bool
	indent string
}

// NewFormatter creates a Formatter. With pretty set, nested values go on
// their own lines indented by indent spaces.
func NewFormatter(pretty bool, indent int) *Formatter {
	if indent < 0 {
		indent = 0
	}
	return &Formatter{pretty: pretty, indent: strings.Repeat(" ", indent)}
}

// Format returns the JSON text for v
func (f *Formatter) Format(v models.Value) (string, error) {
	var sb strings.Builder
	if err := f.write(&sb, v, 0); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (f *Formatter) write(sb *strings.Builder, v models.Value, depth int) error {
	switch v.Kind() {
	case models.KindObject:
		return f.writeObject(sb, v.Object(), depth)
	case models.KindArray:
		return f.writeArray(sb, v.Items(), depth)
	default:
		s, err := scalar(v)
		if err != nil {
			return err
		}
		sb.WriteString(s)
		return nil
	}
}

func (f *Formatter) writeObject(sb *strings.Builder, obj *models.Object, depth int) error {
	if obj.Len() == 0 {
		sb.WriteString("{}")
		return nil
	}

	sb.WriteByte('{')
	for i, m := range obj.Members() {
		if i > 0 {
			sb.WriteByte(',')
		}
		f.newline(sb, depth+1)

		key, err := quoteString(m.Key)
		if err != nil {
			return err
		}
		sb.WriteString(key)
		sb.WriteByte(':')
		if f.pretty {
			sb.WriteByte(' ')
		}
		if err := f.write(sb, m.Value, depth+1); err != nil {
			return err
		}
	}
	f.newline(sb, depth)
	sb.WriteByte('}')
	return nil
}

func (f *Formatter) writeArray(sb *strings.Builder, items []models.Value, depth int) error {
	if len(items) == 0 {
		sb.WriteString("[]")
		return nil
	}

	sb.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			sb.WriteByte(',')
		}
		f.newline(sb, depth+1)
		if err := f.write(sb, item, depth+1); err != nil {
			return err
		}
	}
	f.newline(sb, depth)
	sb.WriteByte(']')
	return nil
}

func (f *Formatter) newline(sb *strings.Builder, depth int) {
	if !f.pretty {
		return
	}
	sb.WriteByte('\n')
	sb.WriteString(strings.Repeat(f.indent, depth))
}

func scalar(v models.Value) (string, error) {
	switch v.Kind() {
	case models.KindNull:
		return "null", nil
	case models.KindBool:
		return strconv.FormatBool(v.AsBool()), nil
	case models.KindInt:
		return strconv.FormatInt(v.AsInt(), 10), nil
	case models.KindFloat:
		n := v.AsFloat()
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return "null", nil
		}
		b, err := json.Marshal(n)
		if err != nil {
			return "", fmt.Errorf("failed to format number: %w", err)
		}
		return string(b), nil
	case models.KindString:
		return quoteString(v.AsString())
	case models.KindTime:
		return quoteString(v.AsTime().Format(time.RFC3339Nano))
	}
	return "", fmt.Errorf("unsupported value kind %s", v.Kind())
}

// quoteString escapes s as a JSON string without HTML escaping
func quoteString(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", fmt.Errorf("failed to format string: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
