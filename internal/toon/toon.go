// Package toon converts between models.Value and TOON, an indentation based
// text notation for JSON data that spends fewer tokens than JSON when read
// by language models.
//
// Objects are written one "key: value" per line:
//
//	username: Alice
//	tags[2]: python,coding
//
// Arrays take one of three shapes. Uniform arrays of flat objects become a
// table with a single header, arrays of scalars fit on one line, and
// anything else is written as a "- " list:
//
//	users[2]{id,name}:
//	  1,Alice
//	  2,Bob
//	mixed[2]:
//	  - 1
//	  - a: b
//
// Encoding and decoding never fail. The decoder favours a best-effort
// result over rejecting input.
package toon

import "github.com/mcncl/gotoon/internal/models"

// Encode renders v with the default configuration.
func Encode(v models.Value) string {
	return NewEncoder(DefaultConfig()).Encode(v)
}

// EncodeWithConfig renders v with cfg.
func EncodeWithConfig(v models.Value, cfg Config) string {
	return NewEncoder(cfg).Encode(v)
}

// Decode parses text with the default configuration.
func Decode(text string) models.Value {
	return NewDecoder(DefaultConfig()).Decode(text)
}

// DecodeWithConfig parses text with cfg.
func DecodeWithConfig(text string, cfg Config) models.Value {
	return NewDecoder(cfg).Decode(text)
}
