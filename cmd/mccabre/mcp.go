package main

import (
	"github.com/urfave/cli/v2"

	"github.com/panbanda/mccabre/internal/mcpserver"
	"github.com/panbanda/mccabre/pkg/config"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start MCP (Model Context Protocol) server for LLM tool integration",
		Description: `Starts an MCP server over stdio transport that exposes mccabre's analyzers
as tools that LLMs can invoke. The loaded configuration provides the defaults
for every tool call.

To use with an MCP client, add to its config:
  {
    "mcpServers": {
      "mccabre": {
        "command": "mccabre",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - analyze               Line counts, complexity and clones together
  - analyze_complexity    Cyclomatic complexity per file and function
  - analyze_clones        Token-identical code clones
  - analyze_loc           Line counts ranked by file or directory
  - analyze_snippet       Complexity of inline source code`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "manifest",
				Usage: "Print the MCP registry server.json and exit",
			},
		},
		Action: runMCPCmd,
	}
}

func runMCPCmd(c *cli.Context) error {
	if c.Bool("manifest") {
		data, err := mcpserver.GenerateManifest(version)
		if err != nil {
			return err
		}
		_, err = c.App.Writer.Write(append(data, '\n'))
		return err
	}

	e, err := loadEnv(c, config.Overrides{})
	if err != nil {
		return err
	}
	server := mcpserver.NewServer(version,
		mcpserver.WithConfig(e.cfg),
		mcpserver.WithLogger(e.logger),
	)
	return server.Run(c.Context)
}
