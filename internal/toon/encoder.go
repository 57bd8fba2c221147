package toon

import (
	"math"
	"strconv"
	"strings"

	"github.com/mcncl/gotoon/internal/models"
)

// timeLayout is ISO-8601 in UTC with millisecond precision.
const timeLayout = "2006-01-02T15:04:05.000Z"

// ArrayForm is the encoding chosen for an array.
type ArrayForm int

const (
	FormEmpty ArrayForm = iota
	FormTabular
	FormInline
	FormList
)

// String returns the form name.
func (f ArrayForm) String() string {
	switch f {
	case FormEmpty:
		return "empty"
	case FormTabular:
		return "tabular"
	case FormInline:
		return "inline"
	case FormList:
		return "list"
	default:
		return "unknown"
	}
}

// ClassifyArray decides how items are encoded. Tabular wins over inline,
// and list is the fallback.
func ClassifyArray(items []models.Value) ArrayForm {
	switch {
	case len(items) == 0:
		return FormEmpty
	case isTabular(items):
		return FormTabular
	case allScalars(items):
		return FormInline
	default:
		return FormList
	}
}

// isTabular reports whether every item is a non-empty object with the
// first item's key set and only scalar values.
func isTabular(items []models.Value) bool {
	var first *models.Object
	for _, item := range items {
		if item.Kind() != models.KindObject || item.Len() == 0 {
			return false
		}
		obj := item.Object()
		for _, m := range obj.Members() {
			if !m.Value.IsScalar() {
				return false
			}
		}
		if first == nil {
			first = obj
		} else if !first.SameKeySet(obj) {
			return false
		}
	}
	return true
}

func allScalars(items []models.Value) bool {
	for _, item := range items {
		if !item.IsScalar() {
			return false
		}
	}
	return true
}

// Encoder writes values in the format. It holds no state besides its
// configuration and may be shared.
type Encoder struct {
	cfg Config
}

// NewEncoder creates an encoder for cfg.
func NewEncoder(cfg Config) *Encoder {
	return &Encoder{cfg: cfg}
}

// Encode renders v. It never fails.
func (e *Encoder) Encode(v models.Value) string {
	w := &lineWriter{unit: strings.Repeat(" ", e.cfg.Indent())}
	switch v.Kind() {
	case models.KindObject:
		e.writeObject(w, v.Object(), 0)
	case models.KindArray:
		e.writeArray(w, 0, "", v.Items(), 0)
	default:
		w.sb.WriteString(e.scalar(v))
	}
	return w.sb.String()
}

// lineWriter joins indented lines with newlines, without a trailing one.
type lineWriter struct {
	sb    strings.Builder
	unit  string
	lines int
}

func (w *lineWriter) line(depth int, content string) {
	if w.lines > 0 {
		w.sb.WriteByte('\n')
	}
	for i := 0; i < depth; i++ {
		w.sb.WriteString(w.unit)
	}
	w.sb.WriteString(content)
	w.lines++
}

func (e *Encoder) writeObject(w *lineWriter, obj *models.Object, depth int) {
	for _, m := range obj.Members() {
		e.writeField(w, depth, "", m.Key, m.Value, depth)
	}
}

// writeField writes one key/value pair. Its first line goes at lineDepth
// behind prefix; anything nested belongs to a field living at fieldDepth.
func (e *Encoder) writeField(w *lineWriter, lineDepth int, prefix, key string, v models.Value, fieldDepth int) {
	lead := prefix + e.key(key)
	switch v.Kind() {
	case models.KindObject:
		w.line(lineDepth, lead+":")
		e.writeObject(w, v.Object(), fieldDepth+1)
	case models.KindArray:
		if v.Len() == 0 {
			w.line(lineDepth, lead+": "+e.emptyHeader())
			return
		}
		e.writeArray(w, lineDepth, lead, v.Items(), fieldDepth)
	default:
		w.line(lineDepth, lead+": "+e.scalar(v))
	}
}

// writeArray writes the header at lineDepth right after lead and the body
// one level below depth.
func (e *Encoder) writeArray(w *lineWriter, lineDepth int, lead string, items []models.Value, depth int) {
	delim := e.cfg.Delimiter()
	switch ClassifyArray(items) {
	case FormEmpty:
		w.line(lineDepth, lead+e.emptyHeader())
	case FormInline:
		values := make([]string, len(items))
		for i, item := range items {
			values[i] = e.scalar(item)
		}
		w.line(lineDepth, lead+e.header(len(items))+": "+strings.Join(values, delim))
	case FormTabular:
		fields := items[0].Object().Keys()
		names := make([]string, len(fields))
		for i, f := range fields {
			names[i] = e.key(f)
		}
		w.line(lineDepth, lead+e.header(len(items))+"{"+strings.Join(names, delim)+"}:")
		row := make([]string, len(fields))
		for _, item := range items {
			obj := item.Object()
			for i, f := range fields {
				v, _ := obj.Get(f)
				row[i] = e.scalar(v)
			}
			w.line(depth+1, strings.Join(row, delim))
		}
	case FormList:
		w.line(lineDepth, lead+e.header(len(items))+":")
		for _, item := range items {
			e.writeListItem(w, depth+1, item)
		}
	}
}

// writeListItem writes one "- " element whose marker sits at depth.
func (e *Encoder) writeListItem(w *lineWriter, depth int, item models.Value) {
	switch item.Kind() {
	case models.KindObject:
		members := item.Object().Members()
		if len(members) == 0 {
			w.line(depth, "-")
			return
		}
		e.writeField(w, depth, "- ", members[0].Key, members[0].Value, depth+1)
		for _, m := range members[1:] {
			e.writeField(w, depth+1, "", m.Key, m.Value, depth+1)
		}
	case models.KindArray:
		e.writeArray(w, depth, "- ", item.Items(), depth)
	default:
		w.line(depth, "- "+e.scalar(item))
	}
}

func (e *Encoder) header(n int) string {
	return "[" + e.cfg.LengthMarker() + strconv.Itoa(n) + e.cfg.DelimiterDisplay() + "]"
}

func (e *Encoder) emptyHeader() string {
	return "[" + e.cfg.LengthMarker() + "0]:"
}

func (e *Encoder) key(k string) string {
	if keyNeedsQuoting(k, e.cfg.Delimiter()) {
		return quote(k, e.cfg.Delimiter())
	}
	return k
}

// scalar renders a non-container value. Containers and unknown kinds
// degrade to null.
func (e *Encoder) scalar(v models.Value) string {
	switch v.Kind() {
	case models.KindBool:
		return strconv.FormatBool(v.AsBool())
	case models.KindInt:
		return strconv.FormatInt(v.AsInt(), 10)
	case models.KindFloat:
		return formatFloat(v.AsFloat())
	case models.KindString:
		s := v.AsString()
		if needsQuoting(s, e.cfg.Delimiter()) {
			return quote(s, e.cfg.Delimiter())
		}
		return s
	case models.KindTime:
		return `"` + v.AsTime().UTC().Format(timeLayout) + `"`
	default:
		return "null"
	}
}

// formatFloat prints integral values in the int64 range without a
// fraction. Everything else carries a '.' so it reads back as a float.
func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	if f == math.Trunc(f) && math.Abs(f) < math.MaxInt64 {
		return strconv.FormatInt(int64(f), 10)
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		if mantissa, exp, ok := strings.Cut(s, "e"); ok && !strings.Contains(mantissa, ".") {
			s = mantissa + ".0e" + exp
		}
		return s
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
