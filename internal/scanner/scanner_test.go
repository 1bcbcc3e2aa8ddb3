package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panbanda/mccabre/internal/testutil"
	"github.com/panbanda/mccabre/pkg/config"
	"github.com/panbanda/mccabre/pkg/lang"
	"github.com/panbanda/mccabre/pkg/source"
)


func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func TestNewScanner(t *testing.T) {
	s := NewScanner(nil)
	require.NotNil(t, s)
	assert.NotNil(t, s.config)

	cfg := config.DefaultConfig()
	assert.Same(t, cfg, NewScanner(cfg).config)
}

func TestScanDir(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"main.go":          "package main\n",
		"util/helper.go":   "package util\n",
		"util/helper.py":   "# python\n",
		"internal/core.rs": "fn main() {}\n",
		"web/app.tsx":      "export {}\n",
		"README.md":        "# readme\n",
		"Makefile":         "all:\n",
	})

	result, err := NewScanner(nil).ScanDir(root)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"internal/core.rs",
		"main.go",
		"util/helper.go",
		"util/helper.py",
		"web/app.tsx",
	}, relPaths(t, root, result))
}

func TestScanDir_ExcludesConfiguredPatterns(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"main.go":                  "package main\n",
		"vendor/dep/dep.go":        "package dep\n",
		"web/node_modules/x/a.js":  "x()\n",
		"static/app.min.js":        "a()\n",
		"static/app.js":            "a()\n",
		"generated/types_gen.go":   "package generated\n",
	})

	cfg := config.DefaultConfig()
	cfg.Files.Exclude = append(cfg.Files.Exclude, "*_gen.go")

	result, err := NewScanner(cfg).ScanDir(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go", "static/app.js"}, relPaths(t, root, result))
}

func TestScanDir_Gitignore(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	testutil.WriteTree(t, root, map[string]string{
		".gitignore":        "tmp/\n*.gen.ts\n",
		"src/.gitignore":    "scratch.go\n",
		"main.go":           "package main\n",
		"tmp/cache.go":      "package tmp\n",
		"src/api.gen.ts":    "export {}\n",
		"src/api.ts":        "export {}\n",
		"src/scratch.go":    "package src\n",
		"other/scratch.go":  "package other\n",
	})

	result, err := NewScanner(nil).ScanDir(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go", "other/scratch.go", "src/api.ts"}, relPaths(t, root, result))

	cfg := config.DefaultConfig()
	cfg.Files.RespectGitignore = false
	all, err := NewScanner(cfg).ScanDir(root)
	require.NoError(t, err)
	assert.Len(t, all, 6)
}

func TestScanDir_GitignoreFromRepositoryRoot(t *testing.T) {
	repo := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(repo, ".git"), 0o755))
	testutil.WriteTree(t, repo, map[string]string{
		".gitignore":       "pkg/legacy/\n",
		"pkg/core.go":      "package pkg\n",
		"pkg/legacy/old.go": "package legacy\n",
	})

	sub := filepath.Join(repo, "pkg")
	result, err := NewScanner(nil).ScanDir(sub)
	require.NoError(t, err)
	assert.Equal(t, []string{"core.go"}, relPaths(t, sub, result))
}

func TestScanDir_MaxFileSize(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"small.go": "package a\n",
		"large.go": "package a\n\n// " + string(make([]byte, 200)) + "\n",
	})

	cfg := config.DefaultConfig()
	cfg.Files.MaxFileSize = 100

	result, err := NewScanner(cfg).ScanDir(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"small.go"}, relPaths(t, root, result))
}

func TestScanDir_MissingRoot(t *testing.T) {
	_, err := NewScanner(nil).ScanDir(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"a/one.go":  "package a\n",
		"a/two.js":  "x()\n",
		"b/three.c": "int x;\n",
		"notes.txt": "hi\n",
	})

	files, err := NewScanner(nil).Scan([]string{
		filepath.Join(root, "b", "three.c"),
		filepath.Join(root, "a"),
		filepath.Join(root, "b", "three.c"),
		filepath.Join(root, "notes.txt"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"b/three.c", "a/one.go", "a/two.js"}, relPaths(t, root, source.Paths(files)))
	assert.Equal(t, lang.LangC, files[0].Language)
	assert.Equal(t, lang.LangGo, files[1].Language)

	_, err = NewScanner(nil).Scan([]string{filepath.Join(root, "nope")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestScan_Progress(t *testing.T) {
	root := testutil.TempTree(t, map[string]string{
		"a.go":      "package a\n",
		"b.py":      "pass\n",
		"notes.txt": "hi\n",
	})

	found := 0
	files, err := NewScanner(nil, WithProgress(func() { found++ })).Scan([]string{root, filepath.Join(root, "a.go")})
	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.Equal(t, 2, found)
}

func TestIsWithinRoot(t *testing.T) {
	root := t.TempDir()
	assert.True(t, isWithinRoot(filepath.Join(root, "a", "b.go"), root))
	assert.True(t, isWithinRoot(root, root))
	assert.False(t, isWithinRoot(root+"2", root))
	assert.False(t, isWithinRoot(filepath.Dir(root), root))
}

func TestGroupByLanguage(t *testing.T) {
	files := source.FromPaths([]string{"a.go", "b.go", "c.py", "d.txt"})
	groups := GroupByLanguage(files)

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	assert.Equal(t, []string{"go", "python"}, keys)
	assert.Len(t, groups[lang.LangGo], 2)
}
