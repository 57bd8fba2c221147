package parser

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/mcncl/gotoon/internal/errors"
	"github.com/mcncl/gotoon/internal/models"
)

// Parse converts a single JSON document from reader into a Value. Object
// key order is preserved as it appears in the input.
func Parse(reader io.Reader) (models.Value, error) {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber() // Keep integers exact

	first, err := decoder.Token()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return models.Value{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return models.Value{}, syntaxError(err)
	}

	root, err := readValue(decoder, first)
	if err != nil {
		return models.Value{}, err
	}

	// Anything but EOF after the root value is rejected
	if _, err := decoder.Token(); err == nil {
		return models.Value{}, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	} else if !stderrors.Is(err, io.EOF) {
		return models.Value{}, errors.NewParsingError("invalid trailing data after first JSON value", err)
	}

	return root, nil
}

// readValue builds the value that starts with tok, consuming the rest of
// it from decoder
func readValue(decoder *json.Decoder, tok json.Token) (models.Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return readObject(decoder)
		case '[':
			return readArray(decoder)
		}
		return models.Value{}, errors.NewParsingError(fmt.Sprintf("unexpected delimiter '%s'", t), errors.ErrInvalidJSON)
	case string:
		return models.String(t), nil
	case bool:
		return models.Bool(t), nil
	case nil:
		return models.Null(), nil
	case json.Number:
		return number(t)
	}
	return models.Value{}, errors.NewParsingError(fmt.Sprintf("unexpected token %v", tok), errors.ErrInvalidJSON)
}

func readObject(decoder *json.Decoder) (models.Value, error) {
	obj := models.NewObject()
	for decoder.More() {
		keyTok, err := next(decoder)
		if err != nil {
			return models.Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return models.Value{}, errors.NewParsingError(fmt.Sprintf("object key must be a string, got %v", keyTok), errors.ErrInvalidJSON)
		}

		valueTok, err := next(decoder)
		if err != nil {
			return models.Value{}, err
		}
		value, err := readValue(decoder, valueTok)
		if err != nil {
			return models.Value{}, err
		}
		obj.Set(key, value)
	}
	if _, err := next(decoder); err != nil { // closing '}'
		return models.Value{}, err
	}
	return models.ObjectValue(obj), nil
}

func readArray(decoder *json.Decoder) (models.Value, error) {
	items := []models.Value{}
	for decoder.More() {
		tok, err := next(decoder)
		if err != nil {
			return models.Value{}, err
		}
		item, err := readValue(decoder, tok)
		if err != nil {
			return models.Value{}, err
		}
		items = append(items, item)
	}
	if _, err := next(decoder); err != nil { // closing ']'
		return models.Value{}, err
	}
	return models.Array(items...), nil
}

// next reads a token inside a container, where EOF means truncated input
func next(decoder *json.Decoder) (json.Token, error) {
	tok, err := decoder.Token()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, syntaxError(err)
	}
	return tok, nil
}

// number keeps integers that fit in int64 exact and reads the rest as floats
func number(n json.Number) (models.Value, error) {
	if i, err := n.Int64(); err == nil {
		return models.Int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return models.Value{}, errors.NewParsingError(fmt.Sprintf("number %s is out of range", n), errors.ErrInvalidJSON)
	}
	return models.Float(f), nil
}

func syntaxError(err error) error {
	var syntax *json.SyntaxError
	if stderrors.As(err, &syntax) {
		return errors.NewParsingError(
			fmt.Sprintf("JSON syntax error at offset %d", syntax.Offset),
			errors.ErrInvalidJSON,
		)
	}
	if stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
	}
	return errors.NewParsingError("failed to decode JSON", err)
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.Value, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.Value{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(jsonString))
}

// ParseFile parses JSON from a file path on fs
func ParseFile(fs afero.Fs, filePath string) (models.Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Value{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := fs.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Value{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Value{}, errors.NewInputError(fmt.Sprintf("failed to open file '%s'", filePath), err)
	}
	defer func() { _ = file.Close() }()

	stat, err := file.Stat()
	if err != nil {
		return models.Value{}, errors.NewInputError(fmt.Sprintf("failed to get file stats for '%s'", filePath), err)
	}
	if stat.Size() == 0 {
		return models.Value{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrEmptyInput,
		)
	}

	return Parse(file)
}
