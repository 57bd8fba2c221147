// Package cli implements the gotoon command line.
package cli

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/mcncl/gotoon/internal/config"
)

// Version information
const Version = "0.1.0"

// Globals are flags accepted by every command
type Globals struct {
	Config  string           `help:"Path to a YAML config file. Defaults to the nearest .gotoon.yml." short:"c" type:"path"`
	Debug   bool             `help:"Enable debug logging." short:"d"`
	Version kong.VersionFlag `help:"Show version information." short:"v"`
}

// FormatFlags are the TOON layout flags shared by encode and decode
type FormatFlags struct {
	Delimiter    string `help:"Field delimiter: comma, tab, pipe, semicolon, space or a literal." short:"D"`
	Indent       int    `help:"Spaces per indentation level."`
	LengthMarker string `help:"Prefix written before array lengths, e.g. '#'." name:"length-marker"`
}

func (f FormatFlags) overrides() config.Overrides {
	return config.Overrides{Delimiter: f.Delimiter, Indent: f.Indent, LengthMarker: f.LengthMarker}
}

// EncodeCmd converts JSON to TOON
type EncodeCmd struct {
	File        string `arg:"" optional:"" help:"Input JSON file. Reads stdin when omitted." type:"path"`
	Output      string `help:"Path to output TOON file. If not specified, writes to stdout." short:"o" type:"path"`
	FormatFlags `embed:""`
	KeyCase     string `help:"Rename keys before encoding: none, snake, camel, lower_camel, kebab, screaming_snake." name:"key-case"`
	Stats       bool   `help:"Print JSON and TOON token estimates to stderr." short:"s"`
	Watch       bool   `help:"Re-encode whenever the input file changes." short:"w"`
}

// DecodeCmd converts TOON to JSON
type DecodeCmd struct {
	File        string `arg:"" optional:"" help:"Input TOON file. Reads stdin when omitted." type:"path"`
	Output      string `help:"Path to output JSON file. If not specified, writes to stdout." short:"o" type:"path"`
	FormatFlags `embed:""`
	Pretty      bool `help:"Indent the JSON output." short:"p"`
	Watch       bool `help:"Re-decode whenever the input file changes." short:"w"`
}

// StatsCmd reports the structure of a JSON document
type StatsCmd struct {
	File string `arg:"" optional:"" help:"Input JSON file. Reads stdin when omitted." type:"path"`
}

// CLI defines the command-line interface
type CLI struct {
	Globals

	Encode EncodeCmd `cmd:"" help:"Convert JSON to TOON."`
	Decode DecodeCmd `cmd:"" help:"Convert TOON to JSON."`
	Stats  StatsCmd  `cmd:"" help:"Show structure and size statistics for a JSON document."`
}

// Execute parses args and runs the selected command, returning the process
// exit code
func Execute(app *App, args []string) int {
	var root CLI
	exited, exitCode := false, 0

	parser, err := kong.New(&root,
		kong.Name("gotoon"),
		kong.Description("Convert between JSON and TOON, a token-oriented notation for LLM prompts"),
		kong.UsageOnError(),
		kong.Vars{"version": "gotoon version " + Version},
		kong.Writers(app.Stdout, app.Stderr),
		kong.Exit(func(code int) {
			exited, exitCode = true, code
			app.Exit(code)
		}),
	)
	if err != nil {
		fmt.Fprintf(app.Stderr, "gotoon: %v\n", err)
		return 1
	}

	ctx, err := parser.Parse(args)
	if exited {
		return exitCode
	}
	if err != nil {
		fmt.Fprintf(app.Stderr, "gotoon: error: %v\n", err)
		fmt.Fprintf(app.Stderr, "\nFor help, run: gotoon --help\n")
		return 1
	}

	app.setupLogger(root.Debug)
	if err := ctx.Run(app, &root.Globals); err != nil {
		app.reportError(err)
		return 1
	}
	return 0
}
