package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/panbanda/mccabre/internal/output"
	"github.com/panbanda/mccabre/pkg/config"
	"github.com/panbanda/mccabre/pkg/lang"
)

func dumpConfigCmd() *cli.Command {
	return &cli.Command{
		Name:  "dump-config",
		Usage: "Print the effective configuration",
		Description: `Prints the configuration after defaults, the config file and command line
flags are merged. The output is TOML unless --format json is given.

With --save, writes the configuration instead. The file format follows the
extension (.toml, .yaml, .yml, .json); a directory receives mccabre.toml.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "save",
				Usage: "Write the configuration to `PATH` instead of printing it",
			},
		},
		Action: runDumpConfigCmd,
	}
}

func runDumpConfigCmd(c *cli.Context) error {
	e, err := loadEnv(c, config.Overrides{})
	if err != nil {
		return err
	}

	if path := c.String("save"); path != "" {
		written, err := config.Save(e.cfg, path)
		if err != nil {
			return err
		}
		if !e.quiet {
			fmt.Fprintf(e.stderr, "Configuration written to %s\n", written)
		}
		return nil
	}

	format := "toml"
	if e.format == output.FormatJSON {
		format = "json"
	}
	data, err := config.Marshal(e.cfg, format)
	if err != nil {
		return err
	}
	_, err = e.stdout.Write(data)
	return err
}

// languageInfo is the machine readable form of one supported language.
type languageInfo struct {
	Language   string   `json:"language" toon:"language"`
	Extensions []string `json:"extensions" toon:"extensions"`
}

func languagesCmd() *cli.Command {
	return &cli.Command{
		Name:   "languages",
		Usage:  "List supported languages and file extensions",
		Action: runLanguagesCmd,
	}
}

func runLanguagesCmd(c *cli.Context) error {
	e, err := loadEnv(c, config.Overrides{})
	if err != nil {
		return err
	}

	profiles := lang.Languages()
	data := make([]languageInfo, len(profiles))
	rows := make([][]string, len(profiles))
	for i, p := range profiles {
		data[i] = languageInfo{Language: p.Language.String(), Extensions: p.Extensions}
		exts := make([]string, len(p.Extensions))
		for j, ext := range p.Extensions {
			exts[j] = "*" + ext
		}
		rows[i] = []string{p.Language.String(), strings.Join(exts, ", ")}
	}
	table := output.NewTable("Supported Languages", []string{"Language", "Extensions"}, rows, nil, data)
	return e.write(c, table)
}
