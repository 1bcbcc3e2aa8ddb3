package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/panbanda/mccabre/internal/output"
	"github.com/panbanda/mccabre/pkg/analyzer"
	"github.com/panbanda/mccabre/pkg/analyzer/complexity"
	"github.com/panbanda/mccabre/pkg/analyzer/duplicates"
	"github.com/panbanda/mccabre/pkg/analyzer/loc"
	"github.com/panbanda/mccabre/pkg/config"
	"github.com/panbanda/mccabre/pkg/lang"
	"github.com/panbanda/mccabre/pkg/report"
	"github.com/panbanda/mccabre/pkg/source"
)

// AnalyzeInput is the base input for all path based tools.
type AnalyzeInput struct {
	Paths  []string `json:"paths,omitempty" jsonschema:"Paths to analyze. Defaults to current directory if empty."`
	Format string   `json:"format,omitempty" jsonschema:"Output format: toon (default), json, or markdown."`
}

// FullInput configures the analyze tool.
type FullInput struct {
	AnalyzeInput
	Threshold int `json:"threshold,omitempty" jsonschema:"Complexity warning threshold. Default from configuration (10)."`
	MinTokens int `json:"min_tokens,omitempty" jsonschema:"Minimum clone length in significant tokens. Default from configuration (30)."`
}

// ComplexityInput adds complexity-specific options.
type ComplexityInput struct {
	AnalyzeInput
	Threshold     int  `json:"threshold,omitempty" jsonschema:"Complexity warning threshold. Default from configuration (10)."`
	FunctionsOnly bool `json:"functions_only,omitempty" jsonschema:"Show only function-level metrics, omit file summaries."`
}

// ClonesInput adds clone detection options.
type ClonesInput struct {
	AnalyzeInput
	MinTokens int `json:"min_tokens,omitempty" jsonschema:"Minimum clone length in significant tokens. Default from configuration (30)."`
}

// LOCInput adds ranking options.
type LOCInput struct {
	AnalyzeInput
	RankBy   string `json:"rank_by,omitempty" jsonschema:"Metric to rank by: logical (default), physical, comments, or blank."`
	RankDirs bool   `json:"rank_dirs,omitempty" jsonschema:"Rank directories instead of files."`
	Top      int    `json:"top,omitempty" jsonschema:"Show only the top N entries. Default all."`
}

// SnippetInput is inline source code to analyze.
type SnippetInput struct {
	Language  string `json:"language" jsonschema:"Language of the code: go, rust, javascript, typescript, java, c, cpp, csharp, or python."`
	Code      string `json:"code" jsonschema:"Source code to analyze."`
	Threshold int    `json:"threshold,omitempty" jsonschema:"Complexity warning threshold. Default from configuration (10)."`
	Format    string `json:"format,omitempty" jsonschema:"Output format: toon (default), json, or markdown."`
}

var errNoFiles = errors.New("no source files found")

func getPaths(input AnalyzeInput) []string {
	if len(input.Paths) == 0 {
		return []string{"."}
	}
	return input.Paths
}

func getFormat(format string) output.Format {
	switch format {
	case "json":
		return output.FormatJSON
	case "markdown", "md":
		return output.FormatMarkdown
	default:
		return output.FormatTOON
	}
}

func toolResult(data any, format output.Format) (*mcp.CallToolResult, any, error) {
	text, err := output.Marshal(data, format)
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

func positive(n int) *int {
	if n <= 0 {
		return nil
	}
	return &n
}

// configFor layers the tool's overrides on a copy of the server config.
func (s *Server) configFor(o config.Overrides) (*config.Config, error) {
	cfg := s.cfg.Clone()
	if err := cfg.Apply(o); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *Server) run(ctx context.Context, input AnalyzeInput, o config.Overrides) (*report.Report, error) {
	cfg, err := s.configFor(o)
	if err != nil {
		return nil, err
	}
	engine, err := analyzer.New(cfg, analyzer.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}
	r, err := engine.AnalyzePaths(ctx, getPaths(input))
	if err != nil {
		return nil, err
	}
	if len(r.Files) == 0 && len(r.Errors) == 0 {
		return nil, errNoFiles
	}
	return r, nil
}

func (s *Server) handleAnalyze(ctx context.Context, req *mcp.CallToolRequest, input FullInput) (*mcp.CallToolResult, any, error) {
	clones := true
	r, err := s.run(ctx, input.AnalyzeInput, config.Overrides{
		WarningThreshold: positive(input.Threshold),
		MinTokens:        positive(input.MinTokens),
		ClonesEnabled:    &clones,
	})
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(r, getFormat(input.Format))
}

// complexityResult is the payload of analyze_complexity.
type complexityResult struct {
	Files      []report.FileMetrics   `json:"files,omitempty" toon:"files,omitempty"`
	Functions  []fileFunction         `json:"functions,omitempty" toon:"functions,omitempty"`
	Summary    report.Summary         `json:"summary" toon:"summary"`
	Violations []complexity.Violation `json:"violations" toon:"violations"`
}

type fileFunction struct {
	File       string `json:"file" toon:"file"`
	Name       string `json:"name" toon:"name"`
	Complexity int    `json:"complexity" toon:"complexity"`
	StartLine  int    `json:"start_line" toon:"start_line"`
	EndLine    int    `json:"end_line" toon:"end_line"`
}

func violations(r *report.Report) []complexity.Violation {
	v := r.Violations()
	if v == nil {
		return []complexity.Violation{}
	}
	return v
}

func (s *Server) handleComplexity(ctx context.Context, req *mcp.CallToolRequest, input ComplexityInput) (*mcp.CallToolResult, any, error) {
	clones := false
	r, err := s.run(ctx, input.AnalyzeInput, config.Overrides{
		WarningThreshold: positive(input.Threshold),
		ClonesEnabled:    &clones,
	})
	if err != nil {
		return toolError(err.Error())
	}

	out := complexityResult{Summary: r.Summary, Violations: violations(r)}
	if input.FunctionsOnly {
		out.Functions = []fileFunction{}
		for _, f := range r.Files {
			for _, fn := range f.Cyclomatic.Functions {
				out.Functions = append(out.Functions, fileFunction{
					File:       f.Path,
					Name:       fn.Name,
					Complexity: fn.Complexity,
					StartLine:  fn.StartLine,
					EndLine:    fn.EndLine,
				})
			}
		}
	} else {
		out.Files = r.Files
	}
	return toolResult(out, getFormat(input.Format))
}

// clonesResult is the payload of analyze_clones.
type clonesResult struct {
	Clones  []duplicates.Group `json:"clones" toon:"clones"`
	Summary duplicates.Summary `json:"summary" toon:"summary"`
}

func (s *Server) handleClones(ctx context.Context, req *mcp.CallToolRequest, input ClonesInput) (*mcp.CallToolResult, any, error) {
	clones := true
	r, err := s.run(ctx, input.AnalyzeInput, config.Overrides{
		MinTokens:     positive(input.MinTokens),
		ClonesEnabled: &clones,
	})
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(clonesResult{Clones: r.Clones, Summary: duplicates.Summarize(r.Clones)}, getFormat(input.Format))
}

func (s *Server) handleLOC(ctx context.Context, req *mcp.CallToolRequest, input LOCInput) (*mcp.CallToolResult, any, error) {
	by, err := loc.ParseRankBy(input.RankBy)
	if err != nil {
		return toolError(err.Error())
	}
	clones := false
	r, err := s.run(ctx, input.AnalyzeInput, config.Overrides{ClonesEnabled: &clones})
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(r.LOCView(by, input.RankDirs, input.Top).Ranking(), getFormat(input.Format))
}

// snippetResult is the payload of analyze_snippet.
type snippetResult struct {
	File       report.FileMetrics     `json:"file" toon:"file"`
	Violations []complexity.Violation `json:"violations" toon:"violations"`
}

// snippetPath names inline code in results.
const snippetPath = "snippet"

func (s *Server) handleSnippet(ctx context.Context, req *mcp.CallToolRequest, input SnippetInput) (*mcp.CallToolResult, any, error) {
	language, err := lang.Parse(input.Language)
	if err != nil {
		return toolError(err.Error())
	}
	if input.Code == "" {
		return toolError("code is empty")
	}

	clones := false
	cfg, err := s.configFor(config.Overrides{
		WarningThreshold: positive(input.Threshold),
		ClonesEnabled:    &clones,
	})
	if err != nil {
		return toolError(err.Error())
	}
	engine, err := analyzer.New(cfg,
		analyzer.WithLogger(s.logger),
		analyzer.WithSource(source.MapSource{snippetPath: []byte(input.Code)}),
		analyzer.WithWorkers(1),
	)
	if err != nil {
		return toolError(err.Error())
	}

	r, err := engine.Analyze(ctx, []source.File{{Path: snippetPath, Language: language}})
	if err != nil {
		return toolError(err.Error())
	}
	if len(r.Files) == 0 {
		return toolError(r.Errors[0].Error)
	}
	return toolResult(snippetResult{File: r.Files[0], Violations: violations(r)}, getFormat(input.Format))
}
