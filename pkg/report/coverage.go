package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/panbanda/mccabre/internal/output"
	"github.com/panbanda/mccabre/pkg/coverage"
)

// DefaultTruncateThreshold is the shortest run of uninstrumented lines the
// file view folds.
const DefaultTruncateThreshold = 5

const barWidth = 40

func rateLevel(rate float64) output.Level {
	switch {
	case rate >= 80:
		return output.LevelOK
	case rate >= 50:
		return output.LevelWarning
	default:
		return output.LevelError
	}
}

func rateText(rate float64, colored bool) string {
	return output.Colorize(rateLevel(rate), fmt.Sprintf("%.2f%%", rate), colored)
}

// CoverageView renders the totals of an LCOV report and every file in it.
type CoverageView struct {
	report *coverage.Report
}

// NewCoverageView returns a view over r.
func NewCoverageView(r *coverage.Report) *CoverageView {
	return &CoverageView{report: r}
}

func (v *CoverageView) RenderData() any {
	return v.report
}

func (v *CoverageView) RenderText(w io.Writer, colored bool) error {
	return v.build(colored).RenderText(w, colored)
}

func (v *CoverageView) RenderMarkdown(w io.Writer) error {
	return v.build(false).RenderMarkdown(w)
}

func (v *CoverageView) build(colored bool) *output.Report {
	r := v.report
	t := r.Totals
	doc := &output.Report{Title: "Coverage Report"}
	doc.Sections = append(doc.Sections, &output.Section{Title: "Summary", Content: strings.Join([]string{
		fmt.Sprintf("Total files:      %d", len(r.Files)),
		fmt.Sprintf("Total lines:      %d", t.Total),
		fmt.Sprintf("Covered lines:    %d", t.Hit),
		fmt.Sprintf("Uncovered lines:  %d", t.Miss),
		fmt.Sprintf("Coverage rate:    %s", rateText(t.Rate, colored)),
	}, "\n")})

	if len(r.Files) == 0 {
		return doc
	}
	rows := make([][]string, len(r.Files))
	for i, f := range r.Files {
		rows[i] = []string{
			f.Path,
			fmt.Sprintf("%d / %d", f.Summary.Hit, f.Summary.Total),
			rateText(f.Summary.Rate, colored),
			output.Colorize(output.LevelError, coverage.JoinRanges(f.MissRanges), colored && len(f.MissRanges) > 0),
		}
	}
	footer := []string{"Total", fmt.Sprintf("%d / %d", t.Hit, t.Total), fmt.Sprintf("%.2f%%", t.Rate), ""}
	doc.Sections = append(doc.Sections, output.NewTable("File Coverage",
		[]string{"File", "Lines", "Coverage", "Uncovered"}, rows, footer, nil))
	return doc
}

// DirectoryCoverage is the coverage of the files under one directory.
type DirectoryCoverage struct {
	Directory string           `json:"directory" toon:"directory"`
	Files     []coverage.File  `json:"files" toon:"files"`
	Totals    coverage.Summary `json:"totals" toon:"totals"`
}

// CoverageDirView lists the files under a directory, least covered first,
// with paths relative to it.
type CoverageDirView struct {
	dir DirectoryCoverage
}

// NewCoverageDirView returns a view over files, which lie under base. An
// empty base stands for every file of a report.
func NewCoverageDirView(files []coverage.File, base string) *CoverageDirView {
	sorted := coverage.NewReport(append([]coverage.File(nil), files...))
	return &CoverageDirView{dir: DirectoryCoverage{Directory: base, Files: sorted.Files, Totals: sorted.Totals}}
}

func (v *CoverageDirView) RenderData() any {
	return v.dir
}

func (v *CoverageDirView) RenderText(w io.Writer, colored bool) error {
	return v.table(colored).RenderText(w, colored)
}

func (v *CoverageDirView) RenderMarkdown(w io.Writer) error {
	return v.table(false).RenderMarkdown(w)
}

func (v *CoverageDirView) table(colored bool) *output.Table {
	base := strings.TrimSuffix(v.dir.Directory, "/")
	rows := make([][]string, len(v.dir.Files))
	for i, f := range v.dir.Files {
		rel := f.Path
		if base != "" && base != "." {
			rel = strings.TrimPrefix(strings.TrimPrefix(rel, base), "/")
		}
		rows[i] = []string{
			rateText(f.Summary.Rate, colored),
			fmt.Sprintf("%d / %d", f.Summary.Hit, f.Summary.Total),
			rel,
		}
	}
	title := "Directory: " + v.dir.Directory
	if v.dir.Directory == "" {
		title = "All Files"
	}
	t := v.dir.Totals
	return output.NewTable(title, []string{"Coverage", "Lines", "File"}, rows,
		[]string{fmt.Sprintf("%.2f%%", t.Rate), fmt.Sprintf("%d / %d", t.Hit, t.Total), "Total"}, nil)
}

// CoverageFileView annotates the source of one file with its line hits.
// Runs of at least truncate uninstrumented lines are folded to their first
// and last line.
type CoverageFileView struct {
	file     *coverage.File
	source   []string
	truncate int
}

// NewCoverageFileView returns a view of f over its source text. A truncate
// below 1 uses DefaultTruncateThreshold.
func NewCoverageFileView(f *coverage.File, source string, truncate int) *CoverageFileView {
	if truncate < 1 {
		truncate = DefaultTruncateThreshold
	}
	lines := strings.Split(strings.TrimSuffix(source, "\n"), "\n")
	if source == "" {
		lines = nil
	}
	return &CoverageFileView{file: f, source: lines, truncate: truncate}
}

func (v *CoverageFileView) RenderData() any {
	return v.file
}

func (v *CoverageFileView) RenderText(w io.Writer, colored bool) error {
	_, err := io.WriteString(w, v.text(colored))
	return err
}

func (v *CoverageFileView) RenderMarkdown(w io.Writer) error {
	s := v.file.Summary
	fmt.Fprintf(w, "## %s\n\n", v.file.Path)
	fmt.Fprintf(w, "Lines: %d / %d (%.2f%%)\n\n", s.Hit, s.Total, s.Rate)
	fmt.Fprintln(w, "```")
	io.WriteString(w, v.listing(false))
	_, err := fmt.Fprintln(w, "```")
	return err
}

func (v *CoverageFileView) text(colored bool) string {
	s := v.file.Summary
	filled := int(s.Rate / 100 * barWidth)

	var b strings.Builder
	rule := strings.Repeat("=", 80)
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "FILE: %s\n", v.file.Path)
	fmt.Fprintf(&b, "Lines: %d / %d | %s\n", s.Hit, s.Total, rateText(s.Rate, colored))
	fmt.Fprintf(&b, "[%s%s]\n",
		output.Colorize(output.LevelOK, strings.Repeat("#", filled), colored),
		output.Colorize(output.LevelError, strings.Repeat(".", barWidth-filled), colored))
	fmt.Fprintln(&b, rule)
	b.WriteString(v.listing(colored))
	return b.String()
}

// listing renders each source line as "<n>  <hit> <marker> <code>".
func (v *CoverageFileView) listing(colored bool) string {
	width := len(strconv.Itoa(len(v.source)))
	var b strings.Builder

	line := func(n int) {
		code := v.source[n-1]
		hits, ok := v.file.Hits(n)
		switch {
		case !ok:
			fmt.Fprintf(&b, "%*d   - . %s\n", width, n, code)
		case hits == 0:
			fmt.Fprintf(&b, "%*d   - ! %s\n", width, n, output.Colorize(output.LevelError, code, colored))
		default:
			fmt.Fprintf(&b, "%*d  %s | %s\n", width, n, output.Colorize(output.LevelOK, "ok", colored), code)
		}
	}
	flush := func(start, end int) {
		if n := end - start + 1; n < v.truncate || n <= 2 {
			for n := start; n <= end; n++ {
				line(n)
			}
			return
		}
		line(start)
		fmt.Fprintf(&b, "%*s   - . ...\n", width, "")
		line(end)
	}

	run := 0
	for n := 1; n <= len(v.source); n++ {
		if _, ok := v.file.Hits(n); !ok {
			if run == 0 {
				run = n
			}
			continue
		}
		if run > 0 {
			flush(run, n-1)
			run = 0
		}
		line(n)
	}
	if run > 0 {
		flush(run, len(v.source))
	}
	return b.String()
}
