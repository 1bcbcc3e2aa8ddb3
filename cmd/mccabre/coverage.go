package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/panbanda/mccabre/pkg/config"
	"github.com/panbanda/mccabre/pkg/coverage"
	"github.com/panbanda/mccabre/pkg/report"
)

func lcovFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "from",
			Usage:    "Path to the LCOV file",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "repo-root",
			Usage: "Report source paths relative to this directory",
		},
	}
}

func coverageCmd() *cli.Command {
	return &cli.Command{
		Name:  "coverage",
		Usage: "Summarize line coverage from LCOV data",
		Subcommands: []*cli.Command{
			{
				Name:  "report",
				Usage: "Show coverage totals and uncovered lines per file",
				Flags: append(lcovFlags(), &cli.StringFlag{
					Name:  "jsonl",
					Usage: "Also write one JSON object per file to this path",
				}),
				Action: runCoverageReportCmd,
			},
			{
				Name:      "show",
				Usage:     "Show line by line coverage of a file, or the files under a directory",
				ArgsUsage: "[path]",
				Flags: append(lcovFlags(), &cli.IntFlag{
					Name:  "truncate-threshold",
					Value: report.DefaultTruncateThreshold,
					Usage: "Fold runs of at least this many uninstrumented lines",
				}),
				Action: runCoverageShowCmd,
			},
		},
	}
}

// loadCoverage parses the LCOV file named by --from. It returns nil and a
// warning on stderr when the file holds no coverage records.
func loadCoverage(c *cli.Context, e *env) (*coverage.Report, error) {
	from := c.String("from")
	if _, err := os.Stat(from); err != nil {
		return nil, fmt.Errorf("LCOV file not found: %s", from)
	}
	r, err := coverage.ParseFile(from, c.String("repo-root"))
	if err != nil {
		return nil, err
	}
	e.logger.Debug("coverage loaded", "path", from, "files", len(r.Files), "rate", r.Totals.Rate)
	if len(r.Files) == 0 {
		color.New(color.FgYellow).Fprintln(e.stderr, "No coverage data found")
		return nil, nil
	}
	return r, nil
}

func runCoverageReportCmd(c *cli.Context) error {
	e, err := loadEnv(c, config.Overrides{})
	if err != nil {
		return err
	}
	r, err := loadCoverage(c, e)
	if err != nil || r == nil {
		return err
	}

	if path := c.String("jsonl"); path != "" {
		if err := coverage.SaveJSONL(path, r); err != nil {
			return err
		}
		color.New(color.FgGreen, color.Bold).Fprintf(e.stderr, "JSONL report written to: %s\n", path)
	}
	return e.write(c, report.NewCoverageView(r))
}

func runCoverageShowCmd(c *cli.Context) error {
	if c.Int("truncate-threshold") < 1 {
		return fmt.Errorf("--truncate-threshold must be at least 1 (got %d)", c.Int("truncate-threshold"))
	}
	e, err := loadEnv(c, config.Overrides{})
	if err != nil {
		return err
	}
	r, err := loadCoverage(c, e)
	if err != nil || r == nil {
		return err
	}

	target := c.Args().First()
	if target == "" {
		return e.write(c, report.NewCoverageDirView(r.Files, ""))
	}
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("path not found: %s", target)
	}

	if info.IsDir() {
		files := r.Under(target)
		if len(files) == 0 {
			color.New(color.FgYellow).Fprintf(e.stderr, "No coverage data found for directory: %s\n", target)
			return nil
		}
		return e.write(c, report.NewCoverageDirView(files, target))
	}

	f, ok := r.Find(target)
	if !ok {
		return fmt.Errorf("file not found in coverage data: %s", target)
	}
	src, err := os.ReadFile(target)
	if err != nil {
		return err
	}
	return e.write(c, report.NewCoverageFileView(f, string(src), c.Int("truncate-threshold")))
}
