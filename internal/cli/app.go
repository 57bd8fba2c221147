package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/mcncl/gotoon/internal/config"
	"github.com/mcncl/gotoon/internal/errors"
	"github.com/mcncl/gotoon/internal/watch"
)

// App holds everything a command touches outside the process
type App struct {
	Context context.Context
	Fs      afero.Fs
	WorkDir string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Exit    func(int)
	Logger  *slog.Logger
}

// NewApp returns an App bound to the real filesystem and standard streams
func NewApp(ctx context.Context) *App {
	wd, _ := os.Getwd()
	return &App{
		Context: ctx,
		Fs:      afero.NewOsFs(),
		WorkDir: wd,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Exit:    os.Exit,
	}
}

func (a *App) setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	a.Logger = slog.New(slog.NewTextHandler(a.Stderr, &slog.HandlerOptions{Level: level}))
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

// loadConfig resolves the config file and applies command flags on top
func (a *App) loadConfig(globals *Globals, o config.Overrides) (*config.Config, error) {
	o.Debug = o.Debug || globals.Debug
	cfg, err := config.Load(a.Fs, globals.Config, a.WorkDir, o)
	if err != nil {
		return nil, err
	}

	// A config file can switch on debug logging too
	if cfg.Dev.Debug && !globals.Debug {
		a.setupLogger(true)
	}
	a.logger().Debug("configuration loaded",
		"delimiter", cfg.Format.Delimiter,
		"indent", cfg.Format.Indent,
		"length_marker", cfg.Format.LengthMarker,
		"key_case", cfg.Keys.Case,
	)
	return cfg, nil
}

// stdin returns the standard input reader, refusing an interactive terminal
func (a *App) stdin() (io.Reader, error) {
	if f, ok := a.Stdin.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil {
			return nil, errors.NewInputError("failed to access stdin", err)
		}
		if stat.Mode()&os.ModeCharDevice != 0 {
			return nil, errors.NewInputError("no input provided", errors.ErrNoInput)
		}
	}
	return a.Stdin, nil
}

// readText reads a whole input file, or stdin when path is empty
func (a *App) readText(path string) (string, error) {
	var data []byte
	if path != "" {
		b, err := afero.ReadFile(a.Fs, path)
		if err != nil {
			if os.IsNotExist(err) {
				return "", errors.NewInputError(fmt.Sprintf("file '%s' not found", path), errors.ErrFileNotFound)
			}
			return "", errors.NewInputError(fmt.Sprintf("failed to read file '%s'", path), err)
		}
		data = b
	} else {
		r, err := a.stdin()
		if err != nil {
			return "", err
		}
		b, err := io.ReadAll(r)
		if err != nil {
			return "", errors.NewInputError("failed to read from stdin", err)
		}
		data = b
	}

	if strings.TrimSpace(string(data)) == "" {
		return "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}
	return string(data), nil
}

// writeOutput writes text to a file, or to stdout when path is empty
func (a *App) writeOutput(path, text, kind string) error {
	if path != "" {
		if err := afero.WriteFile(a.Fs, path, []byte(text+"\n"), 0o644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", path), err)
		}
		fmt.Fprintf(a.Stderr, "%s written to %s\n", kind, path)
		return nil
	}

	if _, err := fmt.Fprintln(a.Stdout, text); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// watchFile runs convert once, then again on every change to path until
// the context is cancelled or the file is removed
func (a *App) watchFile(path string, convert func() error) error {
	if path == "" {
		return errors.NewWatchError("cannot watch stdin", errors.ErrWatchStdin)
	}

	w, err := watch.New(path, a.logger())
	if err != nil {
		return err
	}

	if err := convert(); err != nil {
		a.reportError(err)
	}
	a.logger().Info("watching for changes", "file", path)

	ctx := a.Context
	if ctx == nil {
		ctx = context.Background()
	}
	return w.Run(ctx, convert)
}

func (a *App) reportError(err error) {
	a.logger().Debug("command failed", "error", err)
	fmt.Fprintf(a.Stderr, "%s\n", errors.UserFriendlyError(err))
}
