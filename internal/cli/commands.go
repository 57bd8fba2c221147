package cli

import (
	"fmt"

	"github.com/mcncl/gotoon/internal/analyzer"
	"github.com/mcncl/gotoon/internal/config"
	"github.com/mcncl/gotoon/internal/errors"
	"github.com/mcncl/gotoon/internal/formatter"
	"github.com/mcncl/gotoon/internal/models"
	"github.com/mcncl/gotoon/internal/parser"
	"github.com/mcncl/gotoon/internal/toon"
	"github.com/mcncl/gotoon/internal/transform"
)

// Run encodes the JSON input as TOON
func (c *EncodeCmd) Run(app *App, globals *Globals) error {
	o := c.overrides()
	o.KeyCase = c.KeyCase
	cfg, err := app.loadConfig(globals, o)
	if err != nil {
		return err
	}

	convert := func() error { return c.encode(app, cfg) }
	if c.Watch {
		return app.watchFile(c.File, convert)
	}
	return convert()
}

func (c *EncodeCmd) encode(app *App, cfg *config.Config) error {
	text, err := app.readText(c.File)
	if err != nil {
		return err
	}
	value, err := parser.ParseString(text)
	if err != nil {
		return err
	}

	if cfg.RenamesKeys() {
		value = transform.RenameKeys(value, cfg.KeyName)
	}

	out := toon.EncodeWithConfig(value, cfg.Codec())
	app.logConversion("encode", c.File, len(text), len(out))

	if c.Stats {
		compact, err := formatter.NewFormatter(false, 0).Format(value)
		if err != nil {
			return errors.NewOutputError("failed to measure JSON size", err)
		}
		s := analyzer.CompareSizes(compact, out)
		fmt.Fprintf(app.Stderr, "JSON: %d tokens, TOON: %d tokens (%.1f%% saved)\n", s.JSONTokens, s.ToonTokens, s.Percent)
	}

	return app.writeOutput(c.Output, out, "TOON")
}

// Run decodes the TOON input as JSON
func (c *DecodeCmd) Run(app *App, globals *Globals) error {
	o := c.overrides()
	o.Pretty = c.Pretty
	cfg, err := app.loadConfig(globals, o)
	if err != nil {
		return err
	}

	convert := func() error { return c.decode(app, cfg) }
	if c.Watch {
		return app.watchFile(c.File, convert)
	}
	return convert()
}

func (c *DecodeCmd) decode(app *App, cfg *config.Config) error {
	text, err := app.readText(c.File)
	if err != nil {
		return err
	}

	value := toon.DecodeWithConfig(text, cfg.Codec())
	out, err := formatter.NewFormatter(cfg.Output.Pretty, cfg.Output.JSONIndent).Format(value)
	if err != nil {
		return errors.NewOutputError("failed to format JSON", err)
	}
	app.logConversion("decode", c.File, len(text), len(out))
	return app.writeOutput(c.Output, out, "JSON")
}

// Run prints a TOON report on the structure of the JSON input
func (c *StatsCmd) Run(app *App, globals *Globals) error {
	cfg, err := app.loadConfig(globals, config.Overrides{})
	if err != nil {
		return err
	}

	value, err := app.parseJSON(c.File)
	if err != nil {
		return err
	}

	report := analyzer.NewAnalyzer().Analyze(value)
	compact, err := formatter.NewFormatter(false, 0).Format(value)
	if err != nil {
		return errors.NewOutputError("failed to measure JSON size", err)
	}
	savings := analyzer.CompareSizes(compact, toon.EncodeWithConfig(value, cfg.Codec()))
	report.Size = &savings

	return app.writeOutput("", toon.Encode(report.Value()), "Stats")
}

// parseJSON reads a JSON document from a file, or stdin when path is empty
func (a *App) parseJSON(path string) (models.Value, error) {
	if path != "" {
		return parser.ParseFile(a.Fs, path)
	}
	r, err := a.stdin()
	if err != nil {
		return models.Value{}, err
	}
	return parser.Parse(r)
}

func (a *App) logConversion(command, path string, in, out int) {
	if path == "" {
		path = "stdin"
	}
	a.logger().Debug("conversion finished", "command", command, "input", path, "bytes_in", in, "bytes_out", out)
}
