package toon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ",", cfg.Delimiter())
	assert.Equal(t, 2, cfg.Indent())
	assert.Equal(t, "", cfg.LengthMarker())
	assert.Equal(t, "", cfg.DelimiterDisplay())

	var zero Config
	assert.Equal(t, cfg.Delimiter(), zero.Delimiter())
	assert.Equal(t, cfg.Indent(), zero.Indent())
}

func TestConfig_NewConfigNormalizes(t *testing.T) {
	cfg := NewConfig("", 0, "#")
	assert.Equal(t, ",", cfg.Delimiter())
	assert.Equal(t, 1, cfg.Indent())
	assert.Equal(t, "#", cfg.LengthMarker())

	assert.Equal(t, 1, NewConfig(",", -4, "").Indent())
	assert.Equal(t, 8, NewConfig(",", 8, "").Indent())
}

func TestConfig_DelimiterDisplay(t *testing.T) {
	assert.Equal(t, "", NewConfig(",", 2, "").DelimiterDisplay())
	assert.Equal(t, "|", NewConfig("|", 2, "").DelimiterDisplay())
	assert.Equal(t, "\t", NewConfig("\t", 2, "").DelimiterDisplay())
}

func TestParseDelimiter(t *testing.T) {
	tests := map[string]string{
		"comma":     ",",
		"TAB":       "\t",
		`\t`:        "\t",
		"pipe":      "|",
		"semicolon": ";",
		"space":     " ",
		"::":        "::",
		"|":         "|",
	}
	for name, expected := range tests {
		assert.Equal(t, expected, ParseDelimiter(name), name)
	}
}
