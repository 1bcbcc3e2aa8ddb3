package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/panbanda/mccabre/internal/output"
	"github.com/panbanda/mccabre/internal/scanner"
	"github.com/panbanda/mccabre/pkg/analyzer/complexity"
	"github.com/panbanda/mccabre/pkg/analyzer/loc"
	"github.com/panbanda/mccabre/pkg/config"
	"github.com/panbanda/mccabre/pkg/report"
)

func thresholdFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "threshold",
		Aliases: []string{"t"},
		Usage:   "Complexity warning threshold (default from config, 10)",
	}
}

func minTokensFlag() cli.Flag {
	return &cli.IntFlag{
		Name:  "min-tokens",
		Usage: "Minimum clone length in significant tokens (default from config, 30)",
	}
}

func failOnErrorFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "fail-on-error",
		Usage: "Exit with status 2 when any file or function exceeds the error threshold",
	}
}

func noGitignoreFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "no-gitignore",
		Usage: "Analyze files ignored by .gitignore",
	}
}

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Run line counting, complexity and clone detection together",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			thresholdFlag(),
			minTokensFlag(),
			noGitignoreFlag(),
			&cli.BoolFlag{
				Name:  "no-clones",
				Usage: "Skip clone detection",
			},
			failOnErrorFlag(),
		},
		Action: runAnalyzeCmd,
	}
}

func runAnalyzeCmd(c *cli.Context) error {
	o := config.Overrides{
		WarningThreshold: intFlag(c, "threshold"),
		MinTokens:        intFlag(c, "min-tokens"),
	}
	if c.Bool("no-gitignore") {
		off := false
		o.RespectGitignore = &off
	}
	if c.Bool("no-clones") {
		off := false
		o.ClonesEnabled = &off
	}

	e, err := loadEnv(c, o)
	if err != nil {
		return err
	}
	r, err := runReport(c, e, "Analyzing...")
	if err != nil {
		return err
	}
	if err := e.write(c, r.View("Analysis Report", report.ShowAll)); err != nil {
		return err
	}
	return checkThresholds(c, e, r)
}

func complexityCmd() *cli.Command {
	return &cli.Command{
		Name:      "complexity",
		Aliases:   []string{"cx"},
		Usage:     "Analyze cyclomatic complexity",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			thresholdFlag(),
			noGitignoreFlag(),
			&cli.BoolFlag{
				Name:  "functions",
				Usage: "List every detected function",
			},
			failOnErrorFlag(),
		},
		Action: runComplexityCmd,
	}
}

func runComplexityCmd(c *cli.Context) error {
	off := false
	o := config.Overrides{
		WarningThreshold: intFlag(c, "threshold"),
		ClonesEnabled:    &off,
	}
	if c.Bool("no-gitignore") {
		o.RespectGitignore = &off
	}

	e, err := loadEnv(c, o)
	if err != nil {
		return err
	}
	r, err := runReport(c, e, "Analyzing complexity...")
	if err != nil {
		return err
	}

	sections := report.ShowSummary | report.ShowFiles | report.ShowErrors
	if c.Bool("functions") {
		sections |= report.ShowFunctions
	}
	if err := e.write(c, r.View("Complexity Report", sections)); err != nil {
		return err
	}
	return checkThresholds(c, e, r)
}

func clonesCmd() *cli.Command {
	return &cli.Command{
		Name:      "clones",
		Aliases:   []string{"dup"},
		Usage:     "Detect duplicated code",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			minTokensFlag(),
			noGitignoreFlag(),
		},
		Action: runClonesCmd,
	}
}

func runClonesCmd(c *cli.Context) error {
	on, off := true, false
	o := config.Overrides{
		MinTokens:     intFlag(c, "min-tokens"),
		ClonesEnabled: &on,
	}
	if c.Bool("no-gitignore") {
		o.RespectGitignore = &off
	}

	e, err := loadEnv(c, o)
	if err != nil {
		return err
	}
	r, err := runReport(c, e, "Detecting clones...")
	if err != nil {
		return err
	}
	return e.write(c, r.CloneView())
}

func locCmd() *cli.Command {
	return &cli.Command{
		Name:      "loc",
		Usage:     "Count and rank lines of code",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "rank-by",
				Value: string(loc.RankLogical),
				Usage: "Metric to rank by: logical, physical, comments, blank",
			},
			&cli.BoolFlag{
				Name:  "rank-dirs",
				Usage: "Rank directories instead of files",
			},
			&cli.IntFlag{
				Name:  "top",
				Usage: "Show only the top N entries (0 for all)",
			},
			noGitignoreFlag(),
		},
		Action: runLOCCmd,
	}
}

func runLOCCmd(c *cli.Context) error {
	by, err := loc.ParseRankBy(c.String("rank-by"))
	if err != nil {
		return err
	}
	if c.Int("top") < 0 {
		return fmt.Errorf("--top must not be negative (got %d)", c.Int("top"))
	}

	off := false
	o := config.Overrides{ClonesEnabled: &off}
	if c.Bool("no-gitignore") {
		o.RespectGitignore = &off
	}

	e, err := loadEnv(c, o)
	if err != nil {
		return err
	}
	r, err := runReport(c, e, "Counting lines...")
	if err != nil {
		return err
	}
	return e.write(c, r.LOCView(by, c.Bool("rank-dirs"), c.Int("top")))
}

// runReport scans the command's paths and analyzes the files found.
func runReport(c *cli.Context, e *env, label string) (*report.Report, error) {
	spin := e.spinner("Scanning")
	files, err := scanner.NewScanner(e.cfg,
		scanner.WithLogger(e.logger),
		scanner.WithProgress(spin.Tick),
	).Scan(getPaths(c))
	if err != nil {
		spin.FinishError(err)
		return nil, err
	}
	spin.FinishSuccess()
	e.logger.Debug("scan complete", "files", len(files))
	for l, group := range scanner.GroupByLanguage(files) {
		e.logger.Debug("files by language", "language", l.String(), "count", len(group))
	}

	eng, tracker, err := e.engine(c, label, len(files))
	if err != nil {
		return nil, err
	}
	r, err := eng.Analyze(c.Context, files)
	if err != nil {
		tracker.FinishError(err)
		return nil, err
	}
	tracker.FinishSuccess()

	for _, fe := range r.Errors {
		e.logger.Warn("file not analyzed", "path", fe.Path, "error", fe.Error)
	}
	return r, nil
}

// checkThresholds fails with exit status 2 when --fail-on-error is set and
// the report breaches the error threshold.
func checkThresholds(c *cli.Context, e *env, r *report.Report) error {
	if !c.Bool("fail-on-error") || !r.ExceedsError() {
		return nil
	}
	var lines []string
	for _, v := range r.Violations() {
		if v.Status == complexity.StatusError {
			lines = append(lines, output.Colorize(output.LevelError, v.Message(), e.colored))
		}
	}
	return cli.Exit(strings.Join(lines, "\n"), exitThreshold)
}
