// Package analyzer runs the per-file analyzers over a set of files and
// aggregates their results.
//
// Tokenization, line counting and complexity run on a bounded worker pool,
// one file per task. The clone pass then runs once over the token streams of
// every file that was analyzed.
package analyzer

import (
	"context"
	"log/slog"

	"github.com/panbanda/mccabre/internal/fileproc"
	"github.com/panbanda/mccabre/internal/logging"
	"github.com/panbanda/mccabre/internal/scanner"
	"github.com/panbanda/mccabre/pkg/analyzer/complexity"
	"github.com/panbanda/mccabre/pkg/analyzer/duplicates"
	"github.com/panbanda/mccabre/pkg/analyzer/loc"
	"github.com/panbanda/mccabre/pkg/config"
	"github.com/panbanda/mccabre/pkg/lang"
	"github.com/panbanda/mccabre/pkg/report"
	"github.com/panbanda/mccabre/pkg/source"
)

// Engine analyzes files according to a configuration. An Engine holds no
// per-run state and may be reused.
type Engine struct {
	cfg      *config.Config
	source   source.ContentSource
	registry *lang.Registry
	logger   *slog.Logger
	workers  int
	progress ProgressFunc
}

// Option is a functional option for configuring Engine.
type Option func(*Engine)

// WithSource sets where file content is read from. Defaults to the local
// filesystem.
func WithSource(src source.ContentSource) Option {
	return func(e *Engine) {
		e.source = src
	}
}

// WithRegistry sets the language registry.
func WithRegistry(r *lang.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logging.OrDiscard(l)
	}
}

// WithWorkers sets the number of files analyzed concurrently. Values <= 0
// select the default of twice the CPU count.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithProgress sets a callback invoked after each file.
func WithProgress(fn ProgressFunc) Option {
	return func(e *Engine) {
		e.progress = fn
	}
}

// New creates an engine. The configuration is validated first; a nil cfg
// selects the defaults.
func New(cfg *config.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:      cfg,
		source:   source.NewFilesystem(cfg.Files.MaxFileSize),
		registry: lang.Default(),
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() *config.Config {
	return e.cfg
}

// Thresholds returns the complexity limits of the configuration.
func (e *Engine) Thresholds() complexity.Thresholds {
	return complexity.Thresholds{
		Warning: e.cfg.Complexity.WarningThreshold,
		Error:   e.cfg.Complexity.ErrorThreshold,
	}
}

type unit struct {
	metrics report.FileMetrics
	tokens  []lang.Token
}

// Analyze analyzes files and aggregates the result. Files that cannot be
// read or have no supported language are reported in the report's errors and
// left out of every total. The only error returned is the context's, when it
// ends before the run completes.
func (e *Engine) Analyze(ctx context.Context, files []source.File) (*report.Report, error) {
	e.logger.Debug("analyzing files", "count", len(files), "workers", e.workers)

	prog := newCounter(len(files), e.progress)
	results, errs := fileproc.ForEachFileIndexedN(ctx, source.Paths(files), e.workers,
		func(i int, path string) (*unit, error) {
			defer prog.tick(path)
			return e.analyzeFile(files[i])
		}, nil)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	metrics := make([]report.FileMetrics, 0, len(results))
	units := make([]duplicates.Unit, 0, len(results))
	for _, u := range results {
		if u == nil {
			continue
		}
		metrics = append(metrics, u.metrics)
		units = append(units, duplicates.Unit{Path: u.metrics.Path, Tokens: u.tokens})
	}

	var fileErrs []report.FileError
	if errs.HasErrors() {
		for _, pe := range errs.Errors {
			e.logger.Debug("file skipped", "path", pe.Path, "error", pe.Err)
			fileErrs = append(fileErrs, report.FileError{Path: pe.Path, Error: pe.Err.Error()})
		}
	}

	var groups []duplicates.Group
	if e.cfg.Clones.Enabled {
		det, err := duplicates.New(e.cfg.Clones.MinTokens, duplicates.WithLogger(e.logger))
		if err != nil {
			return nil, err
		}
		groups = det.FindClones(units)
	}

	return report.Aggregate(metrics, groups, e.Thresholds(), fileErrs), nil
}

// AnalyzePaths scans paths for supported files, honoring the exclude and
// gitignore settings, and analyzes them. A path that does not exist is an
// error.
func (e *Engine) AnalyzePaths(ctx context.Context, paths []string) (*report.Report, error) {
	files, err := scanner.NewScanner(e.cfg, scanner.WithLogger(e.logger)).Scan(paths)
	if err != nil {
		return nil, err
	}
	return e.Analyze(ctx, files)
}

func (e *Engine) analyzeFile(f source.File) (*unit, error) {
	language := f.Language
	if language == lang.LangUnknown {
		language = e.registry.Detect(f.Path)
	}
	profile, err := e.registry.ProfileFor(language)
	if err != nil {
		return nil, err
	}
	content, err := e.source.Read(f.Path)
	if err != nil {
		return nil, err
	}

	text := string(content)
	tokens := lang.Tokenize(text, profile)
	cc := complexity.Analyze(tokens, profile)

	return &unit{
		metrics: report.FileMetrics{
			Path:     f.Path,
			Language: profile.Language,
			LOC:      loc.Count(text, tokens),
			Cyclomatic: report.Cyclomatic{
				FileComplexity: cc.FileComplexity,
				Functions:      cc.Functions,
			},
		},
		tokens: tokens,
	}, nil
}
