package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindTime
	KindArray
	KindObject
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindTime:
		return "time"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a JSON-like value: null, bool, int64, float64, string, time,
// an ordered array or an ordered object. The zero Value is null.
type Value struct {
	kind Kind

	b   bool
	i   int64
	f   float64
	s   string
	t   time.Time
	arr []Value
	obj *Object
}

// Null creates a null value.
func Null() Value { return Value{kind: KindNull} }

// Bool creates a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int creates an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float creates a floating point value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String creates a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Time creates a time value. Time values only flow from callers into the
// encoder; nothing in this module decodes one.
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

// Array creates an array value owning a copy of items.
func Array(items ...Value) Value {
	arr := make([]Value, len(items))
	copy(arr, items)
	return Value{kind: KindArray, arr: arr}
}

// ObjectValue wraps an Object. A nil object becomes an empty one.
func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsScalar reports whether v is neither an array nor an object.
func (v Value) IsScalar() bool { return v.kind != KindArray && v.kind != KindObject }

// AsBool returns the boolean payload, false for other kinds.
func (v Value) AsBool() bool { return v.b }

// AsInt returns the integer payload. Floats are truncated.
func (v Value) AsInt() int64 {
	if v.kind == KindFloat {
		return int64(v.f)
	}
	return v.i
}

// AsFloat returns the numeric payload as a float64.
func (v Value) AsFloat() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

// AsString returns the string payload, empty for other kinds.
func (v Value) AsString() string { return v.s }

// AsTime returns the time payload.
func (v Value) AsTime() time.Time { return v.t }

// Items returns the elements of an array, nil for other kinds.
func (v Value) Items() []Value { return v.arr }

// Object returns the object payload, nil for other kinds.
func (v Value) Object() *Object { return v.obj }

// Len returns the number of elements or members of a container, 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return v.obj.Len()
	}
	return 0
}

// Equal reports deep equality. Numbers compare by value across Int and
// Float, so Int(2) equals Float(2).
func (v Value) Equal(other Value) bool {
	if v.isNumber() && other.isNumber() {
		if v.kind == KindInt && other.kind == KindInt {
			return v.i == other.i
		}
		return v.AsFloat() == other.AsFloat()
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindString:
		return v.s == other.s
	case KindTime:
		return v.t.Equal(other.t)
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.obj.Equal(other.obj)
	}
	return false
}

func (v Value) isNumber() bool { return v.kind == KindInt || v.kind == KindFloat }

// String renders v in a compact debugging notation. It is not JSON.
func (v Value) String() string {
	var sb strings.Builder
	v.debug(&sb)
	return sb.String()
}

func (v Value) debug(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		fmt.Fprintf(sb, "%t", v.b)
	case KindInt:
		fmt.Fprintf(sb, "%d", v.i)
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			sb.WriteString("null")
			return
		}
		fmt.Fprintf(sb, "%g", v.f)
	case KindString:
		fmt.Fprintf(sb, "%q", v.s)
	case KindTime:
		sb.WriteString(v.t.UTC().Format(time.RFC3339Nano))
	case KindArray:
		sb.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				sb.WriteString(", ")
			}
			item.debug(sb)
		}
		sb.WriteByte(']')
	case KindObject:
		sb.WriteByte('{')
		for i, m := range v.obj.Members() {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "%q: ", m.Key)
			m.Value.debug(sb)
		}
		sb.WriteByte('}')
	}
}
