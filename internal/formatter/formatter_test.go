package formatter

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/gotoon/internal/models"
)

func sample() models.Value {
	return models.ObjectValue(models.NewObjectFrom(
		models.Member{Key: "zeta", Value: models.Int(1)},
		models.Member{Key: "alpha", Value: models.Array(models.Int(1), models.Float(2.5))},
		models.Member{Key: "nested", Value: models.ObjectValue(models.NewObjectFrom(
			models.Member{Key: "ok", Value: models.Bool(true)},
			models.Member{Key: "none", Value: models.Null()},
		))},
		models.Member{Key: "empty", Value: models.ObjectValue(nil)},
		models.Member{Key: "list", Value: models.Array()},
	))
}

func TestFormat_Compact(t *testing.T) {
	out, err := NewFormatter(false, 2).Format(sample())
	require.NoError(t, err)

	assert.Equal(t, `{"zeta":1,"alpha":[1,2.5],"nested":{"ok":true,"none":null},"empty":{},"list":[]}`, out)
}

func TestFormat_Pretty(t *testing.T) {
	out, err := NewFormatter(true, 2).Format(sample())
	require.NoError(t, err)

	expected := `{
  "zeta": 1,
  "alpha": [
    1,
    2.5
  ],
  "nested": {
    "ok": true,
    "none": null
  },
  "empty": {},
  "list": []
}`
	assert.Equal(t, expected, out)
}

func TestFormat_PrettyWithWideIndent(t *testing.T) {
	v := models.Array(models.ObjectValue(models.NewObjectFrom(models.Member{Key: "a", Value: models.Int(1)})))

	out, err := NewFormatter(true, 4).Format(v)
	require.NoError(t, err)
	assert.Equal(t, "[\n    {\n        \"a\": 1\n    }\n]", out)
}

func TestFormat_Scalars(t *testing.T) {
	tests := []struct {
		name     string
		value    models.Value
		expected string
	}{
		{"null", models.Null(), "null"},
		{"true", models.Bool(true), "true"},
		{"negative int", models.Int(-42), "-42"},
		{"integral float", models.Float(4), "4"},
		{"fraction", models.Float(0.125), "0.125"},
		{"tiny", models.Float(1e-7), "1e-7"},
		{"huge", models.Float(1e21), "1e+21"},
		{"nan", models.Float(math.NaN()), "null"},
		{"inf", models.Float(math.Inf(-1)), "null"},
		{"plain string", models.String("hello"), `"hello"`},
		{"escapes", models.String("a\"b\\c\nd\te"), `"a\"b\\c\nd\te"`},
		{"html kept", models.String("<a href='x'>&</a>"), `"<a href='x'>&</a>"`},
		{"unicode", models.String("héllo"), `"héllo"`},
		{"time", models.Time(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)), `"2024-01-02T03:04:05Z"`},
	}

	f := NewFormatter(false, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := f.Format(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestFormat_KeysAreEscaped(t *testing.T) {
	v := models.ObjectValue(models.NewObjectFrom(models.Member{Key: `we"ird`, Value: models.Int(1)}))

	out, err := NewFormatter(false, 0).Format(v)
	require.NoError(t, err)
	assert.Equal(t, `{"we\"ird":1}`, out)
}

func TestNewFormatter_NegativeIndent(t *testing.T) {
	out, err := NewFormatter(true, -3).Format(models.Array(models.Int(1)))
	require.NoError(t, err)
	assert.Equal(t, "[\n1\n]", out)
}
