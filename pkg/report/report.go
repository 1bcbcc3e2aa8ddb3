// Package report assembles per-file metrics and clone groups into the result
// of an analysis run, and renders it.
package report

import (
	"github.com/panbanda/mccabre/pkg/analyzer/complexity"
	"github.com/panbanda/mccabre/pkg/analyzer/duplicates"
	"github.com/panbanda/mccabre/pkg/analyzer/loc"
	"github.com/panbanda/mccabre/pkg/lang"
)

// Cyclomatic holds the complexity of one file and of its functions.
type Cyclomatic struct {
	FileComplexity int                   `json:"file_complexity" toon:"file_complexity"`
	Functions      []complexity.Function `json:"functions" toon:"functions"`
}

// FileMetrics is the analysis result of one file.
type FileMetrics struct {
	Path       string        `json:"path" toon:"path"`
	Language   lang.Language `json:"language" toon:"language"`
	LOC        loc.Metrics   `json:"loc" toon:"loc"`
	Cyclomatic Cyclomatic    `json:"cyclomatic" toon:"cyclomatic"`
}

// Severity returns the band of the file-level complexity.
func (f FileMetrics) Severity() complexity.Severity {
	return complexity.SeverityOf(f.Cyclomatic.FileComplexity)
}

// FileError records a file that could not be analyzed.
type FileError struct {
	Path  string `json:"path" toon:"path"`
	Error string `json:"error" toon:"error"`
}

// Summary aggregates a report.
type Summary struct {
	TotalFiles          int     `json:"total_files" toon:"total_files"`
	TotalPhysicalLOC    int     `json:"total_physical_loc" toon:"total_physical_loc"`
	TotalLogicalLOC     int     `json:"total_logical_loc" toon:"total_logical_loc"`
	AvgComplexity       float64 `json:"avg_complexity" toon:"avg_complexity"`
	MaxComplexity       int     `json:"max_complexity" toon:"max_complexity"`
	HighComplexityFiles int     `json:"high_complexity_files" toon:"high_complexity_files"`
	TotalClones         int     `json:"total_clones" toon:"total_clones"`
}

// Report is the complete result of an analysis run.
type Report struct {
	Files   []FileMetrics      `json:"files" toon:"files"`
	Clones  []duplicates.Group `json:"clones" toon:"clones"`
	Summary Summary            `json:"summary" toon:"summary"`
	Errors  []FileError        `json:"errors,omitempty" toon:"errors,omitempty"`

	thresholds complexity.Thresholds
}

// Aggregate builds a report. Files count toward the summary; errors are
// carried through untouched. High complexity files are those whose file
// complexity exceeds the warning threshold.
func Aggregate(files []FileMetrics, groups []duplicates.Group, thresholds complexity.Thresholds, errs []FileError) *Report {
	if files == nil {
		files = []FileMetrics{}
	}
	if groups == nil {
		groups = []duplicates.Group{}
	}

	s := Summary{TotalFiles: len(files), TotalClones: len(groups)}
	total := 0
	for _, f := range files {
		s.TotalPhysicalLOC += f.LOC.Physical
		s.TotalLogicalLOC += f.LOC.Logical
		cc := f.Cyclomatic.FileComplexity
		total += cc
		s.MaxComplexity = max(s.MaxComplexity, cc)
		if cc > thresholds.Warning {
			s.HighComplexityFiles++
		}
	}
	if len(files) > 0 {
		s.AvgComplexity = float64(total) / float64(len(files))
	}

	return &Report{
		Files:      files,
		Clones:     groups,
		Summary:    s,
		Errors:     errs,
		thresholds: thresholds,
	}
}

// Thresholds returns the thresholds the report was aggregated with.
func (r *Report) Thresholds() complexity.Thresholds {
	return r.thresholds
}

// Violations lists every file and function over the warning threshold, in
// file order.
func (r *Report) Violations() []complexity.Violation {
	var out []complexity.Violation
	for _, f := range r.Files {
		res := complexity.Result{
			FileComplexity: f.Cyclomatic.FileComplexity,
			Functions:      f.Cyclomatic.Functions,
		}
		out = append(out, complexity.Violations(f.Path, res, r.thresholds)...)
	}
	return out
}

// ExceedsError reports whether any file or function is over the error
// threshold.
func (r *Report) ExceedsError() bool {
	for _, v := range r.Violations() {
		if v.Status == complexity.StatusError {
			return true
		}
	}
	return false
}

// LOCFiles returns the per-file line counts for ranking.
func (r *Report) LOCFiles() []loc.File {
	out := make([]loc.File, len(r.Files))
	for i, f := range r.Files {
		out[i] = loc.File{Path: f.Path, Metrics: f.LOC}
	}
	return out
}

// Complexities returns every function complexity in the report, or the file
// complexities when no function was found.
func (r *Report) Complexities() []int {
	var out []int
	for _, f := range r.Files {
		for _, fn := range f.Cyclomatic.Functions {
			out = append(out, fn.Complexity)
		}
	}
	if len(out) > 0 {
		return out
	}
	for _, f := range r.Files {
		out = append(out, f.Cyclomatic.FileComplexity)
	}
	return out
}
