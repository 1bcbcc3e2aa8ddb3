package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/panbanda/mccabre/internal/output"
	"github.com/panbanda/mccabre/pkg/analyzer/complexity"
	"github.com/panbanda/mccabre/pkg/stats"
)

// Sections selects the parts of a report a View renders.
type Sections uint8

const (
	ShowSummary Sections = 1 << iota
	ShowFiles
	ShowFunctions
	ShowClones
	ShowErrors

	ShowAll = ShowSummary | ShowFiles | ShowFunctions | ShowClones | ShowErrors
)

// View renders selected sections of a report. JSON and TOON always carry the
// whole report.
type View struct {
	report   *Report
	title    string
	sections Sections
}

// View returns a renderable view of r.
func (r *Report) View(title string, sections Sections) *View {
	return &View{report: r, title: title, sections: sections}
}

// RenderData implements output.Renderable.
func (v *View) RenderData() any {
	return v.report
}

// RenderText implements output.Renderable.
func (v *View) RenderText(w io.Writer, colored bool) error {
	return v.build(colored).RenderText(w, colored)
}

// RenderMarkdown implements output.Renderable.
func (v *View) RenderMarkdown(w io.Writer) error {
	return v.build(false).RenderMarkdown(w)
}

func (v *View) build(colored bool) *output.Report {
	r := v.report
	doc := &output.Report{Title: v.title}

	if len(r.Files) == 0 && len(r.Errors) == 0 {
		doc.Sections = append(doc.Sections, &output.Section{Content: "No supported files found"})
		return doc
	}

	if v.sections&ShowSummary != 0 {
		doc.Sections = append(doc.Sections, v.summarySection())
	}
	if v.sections&ShowFiles != 0 && len(r.Files) > 0 {
		doc.Sections = append(doc.Sections, v.filesTable(colored))
	}
	if v.sections&ShowFunctions != 0 {
		if t := v.functionsTable(colored); len(t.Rows) > 0 {
			doc.Sections = append(doc.Sections, t)
		}
	}
	if v.sections&ShowClones != 0 {
		doc.Sections = append(doc.Sections, ClonesSection(r.Clones))
	}
	if v.sections&ShowErrors != 0 && len(r.Errors) > 0 {
		rows := make([][]string, len(r.Errors))
		for i, e := range r.Errors {
			rows[i] = []string{e.Path, e.Error}
		}
		doc.Sections = append(doc.Sections, output.NewTable("Errors", []string{"File", "Error"}, rows, nil, nil))
	}
	return doc
}

func (v *View) summarySection() *output.Section {
	s := v.report.Summary
	dist := stats.Summarize(stats.Ints(v.report.Complexities()))

	lines := []string{
		fmt.Sprintf("Total files analyzed:   %d", s.TotalFiles),
		fmt.Sprintf("Total physical LOC:     %d", s.TotalPhysicalLOC),
		fmt.Sprintf("Total logical LOC:      %d", s.TotalLogicalLOC),
		fmt.Sprintf("Average complexity:     %.2f", s.AvgComplexity),
		fmt.Sprintf("Median complexity:      %.0f", dist.Median),
		fmt.Sprintf("P90 complexity:         %.0f", dist.P90),
		fmt.Sprintf("Maximum complexity:     %d", s.MaxComplexity),
		fmt.Sprintf("High complexity files:  %d", s.HighComplexityFiles),
	}
	if v.sections&ShowClones != 0 {
		lines = append(lines, fmt.Sprintf("Clone groups detected:  %d", s.TotalClones))
	}
	if len(v.report.Errors) > 0 {
		lines = append(lines, fmt.Sprintf("Files with errors:      %d", len(v.report.Errors)))
	}
	return &output.Section{Title: "Summary", Content: strings.Join(lines, "\n")}
}

func statusLevel(s complexity.Status) output.Level {
	switch s {
	case complexity.StatusError:
		return output.LevelError
	case complexity.StatusWarning:
		return output.LevelWarning
	default:
		return output.LevelOK
	}
}

func (v *View) filesTable(colored bool) *output.Table {
	t := v.report.thresholds
	rows := make([][]string, len(v.report.Files))
	for i, f := range v.report.Files {
		cc := f.Cyclomatic.FileComplexity
		rows[i] = []string{
			f.Path,
			f.Language.String(),
			output.Colorize(statusLevel(t.Status(cc)), strconv.Itoa(cc), colored),
			f.Severity().String(),
			strconv.Itoa(f.LOC.Physical),
			strconv.Itoa(f.LOC.Logical),
			strconv.Itoa(f.LOC.Comments),
			strconv.Itoa(f.LOC.Blank),
		}
	}
	s := v.report.Summary
	footer := []string{
		"Total", "", strconv.Itoa(s.MaxComplexity), "",
		strconv.Itoa(s.TotalPhysicalLOC), strconv.Itoa(s.TotalLogicalLOC), "", "",
	}
	return output.NewTable("Files",
		[]string{"File", "Language", "Complexity", "Severity", "Physical", "Logical", "Comments", "Blank"},
		rows, footer, nil)
}

func (v *View) functionsTable(colored bool) *output.Table {
	t := v.report.thresholds
	var rows [][]string
	for _, f := range v.report.Files {
		for _, fn := range f.Cyclomatic.Functions {
			status := t.Status(fn.Complexity)
			rows = append(rows, []string{
				f.Path,
				fn.Name,
				fmt.Sprintf("%d-%d", fn.StartLine, fn.EndLine),
				output.Colorize(statusLevel(status), strconv.Itoa(fn.Complexity), colored),
				status.String(),
			})
		}
	}
	return output.NewTable("Functions",
		[]string{"File", "Function", "Lines", "Complexity", "Status"}, rows, nil, nil)
}
