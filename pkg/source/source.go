// Package source describes the files handed to the analyzers and where their
// content comes from.
package source

import (
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/panbanda/mccabre/pkg/lang"
)

// ContentSource provides file content from a specific source.
type ContentSource interface {
	// Read returns the content of the file at path.
	Read(path string) ([]byte, error)
}

// File is one file to analyze: its path as reported, and its language.
type File struct {
	Path     string
	Language lang.Language
}

// FromPaths describes paths, detecting each language from its extension.
// Files with no known language keep LangUnknown and are rejected by the
// analyzers.
func FromPaths(paths []string) []File {
	files := make([]File, len(paths))
	for i, p := range paths {
		files[i] = File{Path: p, Language: lang.Detect(p)}
	}
	return files
}

// Paths returns the paths of files in order.
func Paths(files []File) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

// FilesystemSource reads files from the local filesystem.
type FilesystemSource struct {
	maxSize int64
}

// NewFilesystem creates a source that reads from the filesystem. A positive
// maxSize rejects larger files.
func NewFilesystem(maxSize int64) *FilesystemSource {
	return &FilesystemSource{maxSize: maxSize}
}

// Read implements ContentSource.
func (f *FilesystemSource) Read(path string) ([]byte, error) {
	if f.maxSize > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.Size() > f.maxSize {
			return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrTooLarge, info.Size(), f.maxSize)
		}
	}
	return os.ReadFile(path)
}

// BillySource reads files from a billy filesystem, such as an in-memory tree.
// It is safe for concurrent use when the filesystem is.
type BillySource struct {
	fs billy.Filesystem
}

// NewBilly creates a source that reads from fs.
func NewBilly(fs billy.Filesystem) *BillySource {
	return &BillySource{fs: fs}
}

// Read implements ContentSource.
func (b *BillySource) Read(path string) ([]byte, error) {
	return util.ReadFile(b.fs, path)
}

// MapSource serves content from memory. It is used for content that never
// touched disk, such as snippets submitted over MCP.
type MapSource map[string][]byte

// Read implements ContentSource.
func (m MapSource) Read(path string) ([]byte, error) {
	content, ok := m[path]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, os.ErrNotExist)
	}
	return content, nil
}
