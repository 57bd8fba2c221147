package parser

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/mcncl/gotoon/internal/errors"
	"github.com/mcncl/gotoon/internal/models"
)

func object(members ...models.Member) models.Value {
	return models.ObjectValue(models.NewObjectFrom(members...))
}

func m(key string, v models.Value) models.Member {
	return models.Member{Key: key, Value: v}
}

func assertParsed(t *testing.T, got, want models.Value) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("Parse() root = %s, want %s", got, want)
	}
}

func TestParse_SimpleObject(t *testing.T) {
	jsonStr := `{"name": "John Doe", "age": 30, "isStudent": false, "city": null}`
	root, err := Parse(strings.NewReader(jsonStr))
	if err != nil {
		t.Fatalf("Parse() error = %v, wantErr nil", err)
	}

	if root.Kind() != models.KindObject {
		t.Fatalf("Parse() root kind = %s, want object", root.Kind())
	}

	assertParsed(t, root, object(
		m("name", models.String("John Doe")),
		m("age", models.Int(30)),
		m("isStudent", models.Bool(false)),
		m("city", models.Null()),
	))
}

func TestParse_PreservesKeyOrder(t *testing.T) {
	root, err := Parse(strings.NewReader(`{"zeta": 1, "alpha": 2, "mid": {"b": 1, "a": 2}}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	keys := root.Object().Keys()
	if strings.Join(keys, ",") != "zeta,alpha,mid" {
		t.Errorf("Parse() keys = %v, want [zeta alpha mid]", keys)
	}
	nested, _ := root.Object().Get("mid")
	if strings.Join(nested.Object().Keys(), ",") != "b,a" {
		t.Errorf("Parse() nested keys = %v, want [b a]", nested.Object().Keys())
	}
}

func TestParse_DuplicateKeyKeepsFirstPosition(t *testing.T) {
	root, err := Parse(strings.NewReader(`{"a": 1, "b": 2, "a": 3}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	assertParsed(t, root, object(m("a", models.Int(3)), m("b", models.Int(2))))
}

func TestParse_SimpleArray(t *testing.T) {
	root, err := Parse(strings.NewReader(`[1, "test", true, null, 3.14]`))
	if err != nil {
		t.Fatalf("Parse() error = %v, wantErr nil", err)
	}

	assertParsed(t, root, models.Array(
		models.Int(1),
		models.String("test"),
		models.Bool(true),
		models.Null(),
		models.Float(3.14),
	))
}

func TestParse_NestedObject(t *testing.T) {
	jsonStr := `{"user": {"name": "Jane Doe", "id": 123}, "active": true, "tags": ["go", "json"], "empty": {}, "none": []}`
	root, err := Parse(strings.NewReader(jsonStr))
	if err != nil {
		t.Fatalf("Parse() error = %v, wantErr nil", err)
	}

	assertParsed(t, root, object(
		m("user", object(m("name", models.String("Jane Doe")), m("id", models.Int(123)))),
		m("active", models.Bool(true)),
		m("tags", models.Array(models.String("go"), models.String("json"))),
		m("empty", object()),
		m("none", models.Array()),
	))
}

func TestParse_Numbers(t *testing.T) {
	testCases := []struct {
		jsonStr string
		want    models.Value
	}{
		{`42`, models.Int(42)},
		{`-7`, models.Int(-7)},
		{`1.5`, models.Float(1.5)},
		{`1e3`, models.Float(1000)},
		{`9223372036854775807`, models.Int(9223372036854775807)},
		{`9223372036854775808`, models.Float(9223372036854775808)},
	}

	for _, tc := range testCases {
		t.Run(tc.jsonStr, func(t *testing.T) {
			root, err := Parse(strings.NewReader(tc.jsonStr))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if root.Kind() != tc.want.Kind() {
				t.Errorf("Parse() kind = %s, want %s", root.Kind(), tc.want.Kind())
			}
			assertParsed(t, root, tc.want)
		})
	}
}

func TestParse_NumberOutOfRange(t *testing.T) {
	_, err := Parse(strings.NewReader(`1e400`))
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Errorf("Parse() err = %v, want out of range error", err)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   \n\t"} {
		_, err := Parse(strings.NewReader(input))
		if err == nil {
			t.Errorf("Parse(%q) err = nil, want error", input)
			continue
		}
		if !stderrors.Is(err, errors.ErrEmptyInput) {
			t.Errorf("Parse(%q) err = %v, want ErrEmptyInput", input, err)
		}
	}
}

func TestParseString_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   "} {
		_, err := ParseString(input)
		if err == nil {
			t.Errorf("ParseString(%q) err = nil, want error", input)
		} else if !strings.Contains(err.Error(), "input string is empty") {
			t.Errorf("ParseString(%q) err = %v, want error containing 'input string is empty'", input, err)
		}
	}
}

func TestParse_MalformedJSON(t *testing.T) {
	testCases := map[string]string{
		"missing closing brace": `{"name": "John Doe", "age": 30`,
		"missing bracket":       `["item1", "item2",`,
		"trailing comma":        `[1, 2,]`,
		"bare word":             `{"a": nope}`,
		"missing comma":         `{"a": 1 "b": 2}`,
		"non-string key":        `{1: 2}`,
	}

	for name, jsonStr := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseString(jsonStr)
			if err == nil {
				t.Fatalf("ParseString() err = nil, want error")
			}
			var appErr *errors.AppError
			if !stderrors.As(err, &appErr) || appErr.Type != errors.ErrorTypeParsing {
				t.Errorf("ParseString() err = %v, want parsing error", err)
			}
		})
	}
}

func TestParse_MultipleValues(t *testing.T) {
	_, err := ParseString(`{"a": 1} {"b": 2}`)
	if !stderrors.Is(err, errors.ErrMultipleJSON) {
		t.Errorf("ParseString() err = %v, want ErrMultipleJSON", err)
	}

	_, err = ParseString(`{"a": 1} }`)
	if err == nil || !strings.Contains(err.Error(), "invalid trailing data") {
		t.Errorf("ParseString() err = %v, want trailing data error", err)
	}

	if _, err := ParseString("{\"a\": 1}\n\n  "); err != nil {
		t.Errorf("ParseString() with trailing whitespace err = %v, want nil", err)
	}
}

func TestParseFile_SimpleObject(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/data/product.json", []byte(`{"product": "Laptop", "price": 1200.50}`), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	root, err := ParseFile(fs, "/data/product.json")
	if err != nil {
		t.Fatalf("ParseFile() error = %v, wantErr nil", err)
	}

	assertParsed(t, root, object(
		m("product", models.String("Laptop")),
		m("price", models.Float(1200.5)),
	))
}

func TestParseFile_NonExistentFile(t *testing.T) {
	_, err := ParseFile(afero.NewMemMapFs(), "nonexistentfile.json")
	if !stderrors.Is(err, errors.ErrFileNotFound) {
		t.Errorf("ParseFile() err = %v, want ErrFileNotFound", err)
	}
}

func TestParseFile_EmptyPath(t *testing.T) {
	_, err := ParseFile(afero.NewMemMapFs(), "")
	if err == nil || !strings.Contains(err.Error(), "file path is empty") {
		t.Errorf("ParseFile() with empty path, err = %v, want error containing 'file path is empty'", err)
	}
}

func TestParseFile_EmptyFileContent(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/empty.json", nil, 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	_, err := ParseFile(fs, "/empty.json")
	if !stderrors.Is(err, errors.ErrEmptyInput) {
		t.Errorf("ParseFile() with empty file content, err = %v, want ErrEmptyInput", err)
	}
}

func TestParse_RootPrimitives(t *testing.T) {
	testCases := []struct {
		name     string
		jsonStr  string
		expected models.Value
	}{
		{"RootString", `"hello world"`, models.String("hello world")},
		{"RootNumber", `123.45`, models.Float(123.45)},
		{"RootBooleanTrue", `true`, models.Bool(true)},
		{"RootBooleanFalse", `false`, models.Bool(false)},
		{"RootNull", `null`, models.Null()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			root, err := Parse(strings.NewReader(tc.jsonStr))
			if err != nil {
				t.Fatalf("Parse() error = %v, wantErr nil for %s", err, tc.name)
			}
			assertParsed(t, root, tc.expected)
		})
	}
}
