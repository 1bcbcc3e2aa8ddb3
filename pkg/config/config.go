package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ErrInvalidConfig is returned for configuration values the analyzers cannot
// run with.
var ErrInvalidConfig = errors.New("invalid configuration")

// OutputFormats lists the accepted values of output.format.
var OutputFormats = []string{"text", "json", "markdown", "toon"}

// Config holds all configuration options for mccabre.
type Config struct {
	Complexity ComplexityConfig `koanf:"complexity" toml:"complexity" yaml:"complexity" json:"complexity"`
	Clones     ClonesConfig     `koanf:"clones" toml:"clones" yaml:"clones" json:"clones"`
	Files      FilesConfig      `koanf:"files" toml:"files" yaml:"files" json:"files"`
	Output     OutputConfig     `koanf:"output" toml:"output" yaml:"output" json:"output"`
}

// ComplexityConfig defines the cyclomatic complexity thresholds.
type ComplexityConfig struct {
	WarningThreshold int `koanf:"warning_threshold" toml:"warning_threshold" yaml:"warning_threshold" json:"warning_threshold"`
	ErrorThreshold   int `koanf:"error_threshold" toml:"error_threshold" yaml:"error_threshold" json:"error_threshold"`
}

// ClonesConfig controls clone detection.
type ClonesConfig struct {
	Enabled   bool `koanf:"enabled" toml:"enabled" yaml:"enabled" json:"enabled"`
	MinTokens int  `koanf:"min_tokens" toml:"min_tokens" yaml:"min_tokens" json:"min_tokens"`
}

// FilesConfig controls which files are analyzed.
type FilesConfig struct {
	RespectGitignore bool     `koanf:"respect_gitignore" toml:"respect_gitignore" yaml:"respect_gitignore" json:"respect_gitignore"`
	Exclude          []string `koanf:"exclude" toml:"exclude" yaml:"exclude" json:"exclude"`
	MaxFileSize      int64    `koanf:"max_file_size" toml:"max_file_size" yaml:"max_file_size" json:"max_file_size"` // bytes, 0 = unlimited
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format string `koanf:"format" toml:"format" yaml:"format" json:"format"`
	Color  bool   `koanf:"color" toml:"color" yaml:"color" json:"color"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Complexity: ComplexityConfig{
			WarningThreshold: 10,
			ErrorThreshold:   20,
		},
		Clones: ClonesConfig{
			Enabled:   true,
			MinTokens: 30,
		},
		Files: FilesConfig{
			RespectGitignore: true,
			Exclude: []string{
				"vendor",
				"node_modules",
				".git",
				"dist",
				"build",
				"__pycache__",
				"*.min.js",
			},
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
	}
}

// Load loads configuration from a file. The parser is chosen by extension;
// unknown extensions are read as TOML. Values missing from the file keep their
// defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
		return nil, fmt.Errorf("%w: load %s: %v", ErrInvalidConfig, path, err)
	}

	if err := validateSchema(k.Raw()); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrInvalidConfig, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	case ".json":
		return json.Parser()
	default:
		return toml.Parser()
	}
}

// Candidates lists the file names LoadDefault searches, in order, relative to
// the search directory.
var Candidates = []string{
	"mccabre.toml",
	"mccabre.yaml",
	"mccabre.yml",
	"mccabre.json",
	".mccabre.toml",
	".mccabre.yaml",
	".mccabre.yml",
	".mccabre.json",
	filepath.Join(".mccabre", "config.toml"),
	filepath.Join(".mccabre", "config.yaml"),
	filepath.Join(".mccabre", "config.yml"),
	filepath.Join(".mccabre", "config.json"),
}

// LoadDefault loads the first candidate file found in dir, or the defaults
// when none exists. It returns the path of the file used, or "" for defaults.
// A candidate that exists but fails to load is an error.
func LoadDefault(dir string) (*Config, string, error) {
	for _, name := range Candidates {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		cfg, err := Load(path)
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}
	return DefaultConfig(), "", nil
}

// Validate checks that the configuration can drive an analysis.
func (c *Config) Validate() error {
	var errs []error
	if c.Clones.MinTokens <= 0 {
		errs = append(errs, fmt.Errorf("clones.min_tokens must be positive, got %d", c.Clones.MinTokens))
	}
	if c.Complexity.WarningThreshold <= 0 {
		errs = append(errs, fmt.Errorf("complexity.warning_threshold must be positive, got %d", c.Complexity.WarningThreshold))
	}
	if c.Complexity.ErrorThreshold <= c.Complexity.WarningThreshold {
		errs = append(errs, fmt.Errorf("complexity.error_threshold (%d) must exceed warning_threshold (%d)",
			c.Complexity.ErrorThreshold, c.Complexity.WarningThreshold))
	}
	if c.Files.MaxFileSize < 0 {
		errs = append(errs, fmt.Errorf("files.max_file_size must not be negative, got %d", c.Files.MaxFileSize))
	}
	if !slices.Contains(OutputFormats, c.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format %q is not one of %s", c.Output.Format, strings.Join(OutputFormats, ", ")))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// Overrides carries command-line values layered on top of a loaded config.
// Nil fields leave the config untouched.
type Overrides struct {
	WarningThreshold *int
	MinTokens        *int
	RespectGitignore *bool
	ClonesEnabled    *bool
	Format           *string
	Color            *bool
}

// Apply merges o into c and re-validates. A warning threshold at or above the
// configured error threshold raises the error threshold to twice its value.
func (c *Config) Apply(o Overrides) error {
	if o.WarningThreshold != nil {
		c.Complexity.WarningThreshold = *o.WarningThreshold
		if c.Complexity.ErrorThreshold <= c.Complexity.WarningThreshold {
			c.Complexity.ErrorThreshold = 2 * c.Complexity.WarningThreshold
		}
	}
	if o.MinTokens != nil {
		c.Clones.MinTokens = *o.MinTokens
	}
	if o.RespectGitignore != nil {
		c.Files.RespectGitignore = *o.RespectGitignore
	}
	if o.ClonesEnabled != nil {
		c.Clones.Enabled = *o.ClonesEnabled
	}
	if o.Format != nil {
		c.Output.Format = *o.Format
	}
	if o.Color != nil {
		c.Output.Color = *o.Color
	}
	return c.Validate()
}

// ShouldExclude checks if a slash-separated relative path matches one of the
// exclude patterns. A pattern matches the whole path or any single path
// component, and may use ** to span directories.
func (c *Config) ShouldExclude(path string) bool {
	path = filepath.ToSlash(path)
	parts := strings.Split(path, "/")
	for _, pattern := range c.Files.Exclude {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return true
		}
		for _, part := range parts {
			if matched, _ := doublestar.Match(pattern, part); matched {
				return true
			}
		}
	}
	return false
}

// ExceedsMaxSize reports whether a file of size bytes is over the limit.
func (c *Config) ExceedsMaxSize(size int64) bool {
	return c.Files.MaxFileSize > 0 && size > c.Files.MaxFileSize
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.Files.Exclude = append([]string(nil), c.Files.Exclude...)
	return &out
}
