package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/panbanda/mccabre/internal/logging"
	"github.com/panbanda/mccabre/internal/output"
	"github.com/panbanda/mccabre/internal/progress"
	"github.com/panbanda/mccabre/pkg/analyzer"
	"github.com/panbanda/mccabre/pkg/config"
)

// env is the state shared by every command: the effective configuration,
// the logger and the output settings resolved from global flags.
type env struct {
	cfg     *config.Config
	source  string
	logger  *slog.Logger
	format  output.Format
	colored bool
	quiet   bool
	stdout  io.Writer
	stderr  io.Writer
}

// loadEnv loads the configuration named by --config, or the first default
// config file in the working directory, and applies o on top of it.
func loadEnv(c *cli.Context, o config.Overrides) (*env, error) {
	logger := logging.NewLogger(c.App.ErrWriter, logging.LevelFromVerbosity(c.Bool("verbose"), c.Bool("quiet")))

	var (
		cfg    *config.Config
		source string
		err    error
	)
	if path := c.String("config"); path != "" {
		cfg, err = config.Load(path)
		source = path
	} else {
		cfg, source, err = config.LoadDefault(".")
	}
	if err != nil {
		return nil, err
	}
	if source != "" {
		logger.Debug("loaded configuration", "path", source)
	}

	if f := c.String("format"); f != "" {
		parsed, err := output.ParseFormat(f)
		if err != nil {
			return nil, err
		}
		name := string(parsed)
		o.Format = &name
	}
	if c.Bool("no-color") {
		off := false
		o.Color = &off
	}
	if err := cfg.Apply(o); err != nil {
		return nil, err
	}

	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	return &env{
		cfg:     cfg,
		source:  source,
		logger:  logger,
		format:  format,
		colored: cfg.Output.Color && !color.NoColor,
		quiet:   c.Bool("quiet"),
		stdout:  c.App.Writer,
		stderr:  c.App.ErrWriter,
	}, nil
}

// engine builds an analysis engine, with a progress bar on stderr for text
// output to a terminal.
func (e *env) engine(c *cli.Context, label string, total int) (*analyzer.Engine, *progress.Tracker, error) {
	opts := []analyzer.Option{
		analyzer.WithLogger(e.logger),
		analyzer.WithWorkers(c.Int("jobs")),
	}

	var tracker *progress.Tracker
	if e.showProgress() {
		tracker = progress.NewTracker(e.stderr, label, total)
		opts = append(opts, analyzer.WithProgress(func(int, int, string) { tracker.Tick() }))
	}

	eng, err := analyzer.New(e.cfg, opts...)
	if err != nil {
		return nil, nil, err
	}
	return eng, tracker, nil
}

// spinner returns a spinner on stderr when progress is shown, or nil.
func (e *env) spinner(label string) *progress.Tracker {
	if !e.showProgress() {
		return nil
	}
	return progress.NewSpinner(e.stderr, label)
}

func (e *env) showProgress() bool {
	if e.quiet || e.format != output.FormatText {
		return false
	}
	f, ok := e.stderr.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// write renders r to stdout or to the file named by --output.
func (e *env) write(c *cli.Context, r output.Renderable) error {
	formatter, err := output.Open(e.format, c.String("output"), e.stdout, e.colored)
	if err != nil {
		return err
	}
	if err := formatter.Output(r); err != nil {
		formatter.Close()
		return err
	}
	if err := formatter.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}

func intFlag(c *cli.Context, name string) *int {
	if !c.IsSet(name) {
		return nil
	}
	v := c.Int(name)
	return &v
}
