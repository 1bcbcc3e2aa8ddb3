package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/panbanda/mccabre/internal/output"
	"github.com/panbanda/mccabre/pkg/analyzer/duplicates"
)

// ClonesSection lists clone groups with the locations of every occurrence.
func ClonesSection(groups []duplicates.Group) *output.Section {
	s := &output.Section{Title: "Clones", Data: groups}
	if len(groups) == 0 {
		s.Content = "No clones detected"
		return s
	}

	sum := duplicates.Summarize(groups)
	s.Content = fmt.Sprintf("%d clone groups, %d occurrences, %d duplicated lines",
		sum.TotalGroups, sum.TotalLocations, sum.DuplicatedLines)
	for _, g := range groups {
		lines := make([]string, len(g.Locations))
		for i, l := range g.Locations {
			lines[i] = fmt.Sprintf("  - %s:%d-%d", l.File, l.StartLine, l.EndLine)
		}
		s.Sections = append(s.Sections, output.Section{
			Title:   fmt.Sprintf("Clone Group #%d (length: %d tokens, %d occurrences)", g.ID, g.Length, len(g.Locations)),
			Content: strings.Join(lines, "\n"),
		})
	}
	return s
}

// CloneView renders only the clone groups of a report.
type CloneView struct {
	report *Report
}

// CloneView returns a view over the clone groups of r.
func (r *Report) CloneView() *CloneView {
	return &CloneView{report: r}
}

func (v *CloneView) RenderData() any {
	return v.report
}

func (v *CloneView) RenderText(w io.Writer, colored bool) error {
	return ClonesSection(v.report.Clones).RenderText(w, colored)
}

func (v *CloneView) RenderMarkdown(w io.Writer) error {
	return ClonesSection(v.report.Clones).RenderMarkdown(w)
}
