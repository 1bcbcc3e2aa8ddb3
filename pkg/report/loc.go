package report

import (
	"io"
	"strconv"

	"github.com/panbanda/mccabre/internal/output"
	"github.com/panbanda/mccabre/pkg/analyzer/loc"
)

// Ranking is the machine readable form of a LOC ranking.
type Ranking struct {
	RankBy      loc.RankBy  `json:"rank_by" toon:"rank_by"`
	Files       []loc.File  `json:"files,omitempty" toon:"files,omitempty"`
	Directories []loc.Dir   `json:"directories,omitempty" toon:"directories,omitempty"`
	Total       loc.Metrics `json:"total" toon:"total"`
}

// LOCView ranks the files of a report, or their directories, by one line
// metric.
type LOCView struct {
	ranking Ranking
	top     int
}

// LOCView ranks r by the given metric. A positive top truncates the ranking.
func (r *Report) LOCView(by loc.RankBy, byDir bool, top int) *LOCView {
	files := r.LOCFiles()
	rk := Ranking{RankBy: by, Total: loc.Total(files)}
	if byDir {
		rk.Directories = loc.RankDirs(files, by)
		if top > 0 && len(rk.Directories) > top {
			rk.Directories = rk.Directories[:top]
		}
	} else {
		rk.Files = loc.Rank(files, by)
		if top > 0 && len(rk.Files) > top {
			rk.Files = rk.Files[:top]
		}
	}
	return &LOCView{ranking: rk, top: top}
}

// Ranking returns the ranked data.
func (v *LOCView) Ranking() Ranking {
	return v.ranking
}

func (v *LOCView) RenderData() any {
	return v.ranking
}

func (v *LOCView) RenderText(w io.Writer, colored bool) error {
	return v.table().RenderText(w, colored)
}

func (v *LOCView) RenderMarkdown(w io.Writer) error {
	return v.table().RenderMarkdown(w)
}

func (v *LOCView) table() *output.Table {
	rk := v.ranking
	headers := []string{"#", "File", "Physical", "Logical", "Comments", "Blank"}
	title := "Files by " + rk.RankBy.Label()

	var rows [][]string
	row := func(name string, m loc.Metrics) {
		rows = append(rows, []string{
			strconv.Itoa(len(rows) + 1),
			name,
			strconv.Itoa(m.Physical),
			strconv.Itoa(m.Logical),
			strconv.Itoa(m.Comments),
			strconv.Itoa(m.Blank),
		})
	}
	if rk.Directories != nil {
		headers[1] = "Directory"
		title = "Directories by " + rk.RankBy.Label()
		for _, d := range rk.Directories {
			row(d.Path, d.Total)
		}
	} else {
		for _, f := range rk.Files {
			row(f.Path, f.Metrics)
		}
	}

	footer := []string{"", "Total",
		strconv.Itoa(rk.Total.Physical), strconv.Itoa(rk.Total.Logical),
		strconv.Itoa(rk.Total.Comments), strconv.Itoa(rk.Total.Blank)}
	return output.NewTable(title, headers, rows, footer, nil)
}
