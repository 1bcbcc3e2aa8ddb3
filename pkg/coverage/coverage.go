// Package coverage reads LCOV line coverage and summarizes it per file and
// across a whole report.
package coverage

import (
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// LineHits is the execution count recorded for one source line.
type LineHits struct {
	Line int    `json:"line" toon:"line"`
	Hits uint64 `json:"hits" toon:"hits"`
}

// Range is an inclusive run of consecutive line numbers.
type Range struct {
	Start int `json:"start" toon:"start"`
	End   int `json:"end" toon:"end"`
}

// Summary counts instrumented lines. Rate is a percentage, 0 when no line is
// instrumented.
type Summary struct {
	Total int     `json:"total" toon:"total"`
	Hit   int     `json:"hit" toon:"hit"`
	Miss  int     `json:"miss" toon:"miss"`
	Rate  float64 `json:"rate" toon:"rate"`
}

func (s *Summary) finish() {
	s.Rate = 0
	if s.Total > 0 {
		s.Rate = float64(s.Hit) / float64(s.Total) * 100
	}
}

// File is the coverage of one source file. Lines are ordered by line number.
type File struct {
	Path       string     `json:"path" toon:"path"`
	Lines      []LineHits `json:"lines" toon:"lines"`
	MissRanges []Range    `json:"miss_ranges" toon:"miss_ranges"`
	Summary    Summary    `json:"summary" toon:"summary"`
}

// NewFile builds the coverage of path from per line hit counts.
func NewFile(path string, hits map[int]uint64) File {
	f := File{Path: path, Lines: make([]LineHits, 0, len(hits))}
	for line, n := range hits {
		f.Lines = append(f.Lines, LineHits{Line: line, Hits: n})
	}
	sort.Slice(f.Lines, func(i, j int) bool { return f.Lines[i].Line < f.Lines[j].Line })

	for _, l := range f.Lines {
		f.Summary.Total++
		if l.Hits > 0 {
			f.Summary.Hit++
		} else {
			f.Summary.Miss++
		}
	}
	f.Summary.finish()
	f.MissRanges = MissRanges(f.Lines)
	return f
}

// Hits returns the count recorded for line and whether the line is
// instrumented at all.
func (f *File) Hits(line int) (uint64, bool) {
	i := sort.Search(len(f.Lines), func(i int) bool { return f.Lines[i].Line >= line })
	if i < len(f.Lines) && f.Lines[i].Line == line {
		return f.Lines[i].Hits, true
	}
	return 0, false
}

// Report is the coverage of every file in an LCOV trace, least covered first.
type Report struct {
	Files  []File  `json:"files" toon:"files"`
	Totals Summary `json:"totals" toon:"totals"`
}

// NewReport orders files by ascending rate, then path, and totals them.
func NewReport(files []File) *Report {
	sort.SliceStable(files, func(i, j int) bool {
		if files[i].Summary.Rate != files[j].Summary.Rate {
			return files[i].Summary.Rate < files[j].Summary.Rate
		}
		return files[i].Path < files[j].Path
	})
	if files == nil {
		files = []File{}
	}
	return &Report{Files: files, Totals: Totals(files)}
}

// Totals sums the summaries of files.
func Totals(files []File) Summary {
	var s Summary
	for _, f := range files {
		s.Total += f.Summary.Total
		s.Hit += f.Summary.Hit
		s.Miss += f.Summary.Miss
	}
	s.finish()
	return s
}

// Find returns the file recorded under p, or the one whose path ends with p
// on a path element boundary.
func (r *Report) Find(p string) (*File, bool) {
	p = cleanSlash(p)
	for i := range r.Files {
		if r.Files[i].Path == p {
			return &r.Files[i], true
		}
	}
	for i := range r.Files {
		if strings.HasSuffix(r.Files[i].Path, "/"+p) {
			return &r.Files[i], true
		}
	}
	return nil, false
}

// Under returns the files inside dir. An empty dir or "." selects every file.
func (r *Report) Under(dir string) []File {
	dir = cleanSlash(dir)
	if dir == "" || dir == "." {
		return r.Files
	}
	var out []File
	for _, f := range r.Files {
		if f.Path == dir || strings.HasPrefix(f.Path, dir+"/") {
			out = append(out, f)
		}
	}
	return out
}

func cleanSlash(p string) string {
	if p == "" {
		return ""
	}
	return path.Clean(filepath.ToSlash(p))
}
