package config

import (
	"fmt"
	"path/filepath"

	"github.com/iancoleman/strcase"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/gotoon/internal/errors"
	"github.com/mcncl/gotoon/internal/toon"
)

// Key case conversions applied before encoding
const (
	KeyCaseNone           = "none"
	KeyCaseSnake          = "snake"
	KeyCaseCamel          = "camel"
	KeyCaseLowerCamel     = "lower_camel"
	KeyCaseKebab          = "kebab"
	KeyCaseScreamingSnake = "screaming_snake"
)

var keyCases = map[string]func(string) string{
	KeyCaseNone:           nil,
	KeyCaseSnake:          strcase.ToSnake,
	KeyCaseCamel:          strcase.ToCamel,
	KeyCaseLowerCamel:     strcase.ToLowerCamel,
	KeyCaseKebab:          strcase.ToKebab,
	KeyCaseScreamingSnake: strcase.ToScreamingSnake,
}

// configNames are looked up, in order, in every directory from the working
// directory up to the root.
var configNames = []string{".gotoon.yml", ".gotoon.yaml", "gotoon.yml", "gotoon.yaml"}

// Config represents the complete configuration for gotoon
type Config struct {
	Format FormatConfig `yaml:"format"`
	Keys   KeysConfig   `yaml:"keys"`
	Output OutputConfig `yaml:"output"`
	Dev    DevConfig    `yaml:"dev"`
}

// FormatConfig holds the settings shared by encode and decode
type FormatConfig struct {
	Delimiter    string `yaml:"delimiter"`
	Indent       int    `yaml:"indent"`
	LengthMarker string `yaml:"length_marker"`
}

// KeysConfig controls key renaming before encoding
type KeysConfig struct {
	Case     string            `yaml:"case"`
	Mappings map[string]string `yaml:"mappings"`
}

// OutputConfig controls the JSON written by decode
type OutputConfig struct {
	Pretty     bool `yaml:"pretty"`
	JSONIndent int  `yaml:"json_indent"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Format: FormatConfig{
			Delimiter: toon.DefaultDelimiter,
			Indent:    toon.DefaultIndent,
		},
		Keys: KeysConfig{
			Case:     KeyCaseNone,
			Mappings: make(map[string]string),
		},
		Output: OutputConfig{
			Pretty:     false,
			JSONIndent: 2,
		},
	}
}

// LoadConfig loads configuration from a YAML file, on top of the defaults
func LoadConfig(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read config file '%s'", path), err)
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("failed to parse config file", err)
	}
	if cfg.Keys.Mappings == nil {
		cfg.Keys.Mappings = make(map[string]string)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfigFile searches dir and its parents for a config file
func FindConfigFile(fs afero.Fs, dir string) string {
	current := filepath.Clean(dir)
	for {
		for _, name := range configNames {
			candidate := filepath.Join(current, name)
			if ok, _ := afero.Exists(fs, candidate); ok {
				return candidate
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return ""
}

// Validate checks settings that cannot be corrected silently
func (c *Config) Validate() error {
	if _, ok := keyCases[c.Keys.Case]; !ok {
		return errors.NewConfigError(fmt.Sprintf("unknown key case '%s'", c.Keys.Case), errors.ErrInvalidConfig)
	}
	if c.Format.Delimiter == "" {
		return errors.NewConfigError("delimiter must not be empty", errors.ErrInvalidConfig)
	}
	if c.Output.JSONIndent < 0 {
		return errors.NewConfigError("json_indent must not be negative", errors.ErrInvalidConfig)
	}
	return nil
}

// Codec returns the codec configuration. Indents below 1 are clamped.
func (c *Config) Codec() toon.Config {
	return toon.NewConfig(toon.ParseDelimiter(c.Format.Delimiter), c.Format.Indent, c.Format.LengthMarker)
}

// RenamesKeys reports whether KeyName can change any key
func (c *Config) RenamesKeys() bool {
	return len(c.Keys.Mappings) > 0 || (c.Keys.Case != "" && c.Keys.Case != KeyCaseNone)
}

// KeyName returns the key written for a JSON key: explicit mappings first,
// then the configured case conversion
func (c *Config) KeyName(key string) string {
	if mapped, exists := c.Keys.Mappings[key]; exists {
		return mapped
	}
	if convert := keyCases[c.Keys.Case]; convert != nil {
		return convert(key)
	}
	return key
}

// Overrides carries CLI flags. Zero values mean the flag was not given.
type Overrides struct {
	Delimiter    string
	Indent       int
	LengthMarker string
	KeyCase      string
	Pretty       bool
	Debug        bool
}

// MergeOverrides applies CLI overrides to a copy of base
func MergeOverrides(base *Config, o Overrides) (*Config, error) {
	merged := *base
	merged.Keys.Mappings = make(map[string]string, len(base.Keys.Mappings))
	for k, v := range base.Keys.Mappings {
		merged.Keys.Mappings[k] = v
	}

	if o.Delimiter != "" {
		merged.Format.Delimiter = o.Delimiter
	}
	if o.Indent != 0 {
		merged.Format.Indent = o.Indent
	}
	if o.LengthMarker != "" {
		merged.Format.LengthMarker = o.LengthMarker
	}
	if o.KeyCase != "" {
		merged.Keys.Case = o.KeyCase
	}

	// Boolean flags can only switch a setting on
	if o.Pretty {
		merged.Output.Pretty = true
	}
	if o.Debug {
		merged.Dev.Debug = true
	}

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Load resolves the effective configuration: an explicit path, else a
// discovered file under dir, else the defaults, with CLI overrides on top
func Load(fs afero.Fs, path, dir string, o Overrides) (*Config, error) {
	cfg := NewConfig()
	if path == "" && dir != "" {
		path = FindConfigFile(fs, dir)
	}
	if path != "" {
		fileConfig, err := LoadConfig(fs, path)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}
	return MergeOverrides(cfg, o)
}
