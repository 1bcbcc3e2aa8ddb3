// Package scanner finds the source files to analyze under a set of paths.
package scanner

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/panbanda/mccabre/internal/logging"
	"github.com/panbanda/mccabre/pkg/config"
	"github.com/panbanda/mccabre/pkg/lang"
	"github.com/panbanda/mccabre/pkg/source"
)

// Scanner finds source files in a directory.
type Scanner struct {
	config *config.Config
	logger *slog.Logger
	found  func()
}

// Option is a functional option for configuring Scanner.
type Option func(*Scanner)

// WithLogger sets the logger used to report skipped paths.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) {
		s.logger = logging.OrDiscard(l)
	}
}

// WithProgress sets a callback invoked once for every file found.
func WithProgress(fn func()) Option {
	return func(s *Scanner) {
		s.found = fn
	}
}

// NewScanner creates a new file scanner.
func NewScanner(cfg *config.Config, opts ...Option) *Scanner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := &Scanner{config: cfg, logger: logging.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan resolves every path to the supported source files it names. A file is
// taken as given when its language is supported; a directory is walked with
// ScanDir. Duplicates are dropped, keeping the first occurrence.
func (s *Scanner) Scan(paths []string) ([]source.File, error) {
	var files []source.File
	seen := make(map[string]bool)

	add := func(path string) {
		if seen[path] {
			return
		}
		seen[path] = true
		files = append(files, source.File{Path: path, Language: lang.Detect(path)})
		if s.found != nil {
			s.found()
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", p, err)
		}
		if !info.IsDir() {
			if lang.Detect(p) == lang.LangUnknown {
				s.logger.Debug("skipping unsupported file", "path", p)
				continue
			}
			add(p)
			continue
		}

		found, err := s.ScanDir(p)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}
	return files, nil
}

// findGitRoot finds the root of the git repository by looking for .git.
// Returns empty string if not in a git repository.
func findGitRoot(start string) string {
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// ignoreRules matches paths against the .gitignore files of one tree.
type ignoreRules struct {
	base    string
	matcher gitignore.Matcher
}

// loadIgnoreRules reads every .gitignore below the repository root that
// contains root, or below root itself outside a repository.
func (s *Scanner) loadIgnoreRules(root string) *ignoreRules {
	if !s.config.Files.RespectGitignore {
		return nil
	}
	base := findGitRoot(root)
	if base == "" {
		base = root
	}
	patterns, err := gitignore.ReadPatterns(osfs.New(base), nil)
	if err != nil {
		s.logger.Warn("cannot read gitignore files", "root", base, "error", err)
		return nil
	}
	if len(patterns) == 0 {
		return nil
	}
	s.logger.Debug("loaded gitignore rules", "root", base, "patterns", len(patterns))
	return &ignoreRules{base: base, matcher: gitignore.NewMatcher(patterns)}
}

func (r *ignoreRules) ignored(absPath string, isDir bool) bool {
	if r == nil {
		return false
	}
	rel, err := filepath.Rel(r.base, absPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	return r.matcher.Match(strings.Split(filepath.ToSlash(rel), "/"), isDir)
}

// ScanDir recursively scans a directory for source files in lexical order.
// Validates that all paths stay within the root directory to prevent traversal
// through symlinks.
func (s *Scanner) ScanDir(root string) ([]string, error) {
	files := make([]string, 0, 256)

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	absRoot, err = filepath.EvalSymlinks(absRoot)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	rules := s.loadIgnoreRules(absRoot)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Debug("skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if path == root {
			return nil
		}

		relPath, _ := filepath.Rel(root, path)
		absPath := filepath.Join(absRoot, relPath)

		if d.Type()&fs.ModeSymlink != 0 {
			resolved, err := filepath.EvalSymlinks(path)
			if err != nil || !isWithinRoot(resolved, absRoot) {
				s.logger.Debug("skipping symlink outside root", "path", path)
				return nil
			}
		}

		if d.IsDir() {
			if s.config.ShouldExclude(relPath) || rules.ignored(absPath, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if s.config.ShouldExclude(relPath) || rules.ignored(absPath, false) {
			return nil
		}
		if lang.Detect(path) == lang.LangUnknown {
			return nil
		}
		if s.config.Files.MaxFileSize > 0 {
			if info, err := d.Info(); err == nil && s.config.ExceedsMaxSize(info.Size()) {
				s.logger.Debug("skipping large file", "path", path, "size", info.Size())
				return nil
			}
		}
		files = append(files, path)
		return nil
	})

	return files, walkErr
}

// isWithinRoot checks if a path is contained within the root directory.
func isWithinRoot(path, root string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	absPath = filepath.Clean(absPath)
	root = filepath.Clean(root)
	return absPath == root || strings.HasPrefix(absPath, root+string(filepath.Separator))
}

// GroupByLanguage groups files by their language.
func GroupByLanguage(files []source.File) map[lang.Language][]source.File {
	groups := make(map[lang.Language][]source.File)
	for _, f := range files {
		if f.Language != lang.LangUnknown {
			groups[f.Language] = append(groups[f.Language], f)
		}
	}
	return groups
}
