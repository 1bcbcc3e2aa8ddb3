package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panbanda/mccabre/internal/output"
	"github.com/panbanda/mccabre/pkg/coverage"
)

func sampleCoverage() *coverage.Report {
	return coverage.NewReport([]coverage.File{
		coverage.NewFile("src/lib/util.go", map[int]uint64{1: 3, 2: 3}),
		coverage.NewFile("src/app/main.go", map[int]uint64{1: 1, 2: 0, 3: 0, 4: 1, 6: 0}),
		coverage.NewFile("cmd/tool.go", map[int]uint64{1: 0}),
	})
}

func TestCoverageView_Text(t *testing.T) {
	out := render(t, NewCoverageView(sampleCoverage()), output.FormatText)

	assert.Contains(t, out, "Coverage Report")
	assert.Contains(t, out, "Total files:      3")
	assert.Contains(t, out, "Total lines:      8")
	assert.Contains(t, out, "Covered lines:    4")
	assert.Contains(t, out, "Uncovered lines:  4")
	assert.Contains(t, out, "Coverage rate:    50.00%")
	assert.Contains(t, out, "src/app/main.go")
	assert.Contains(t, out, "2 / 5")
	assert.Contains(t, out, "2-3, 6")
	assert.Contains(t, out, "100.00%")
	assert.NotContains(t, out, "\x1b[")

	assert.Less(t, strings.Index(out, "cmd/tool.go"), strings.Index(out, "src/app/main.go"))
	assert.Less(t, strings.Index(out, "src/app/main.go"), strings.Index(out, "src/lib/util.go"))
}

func TestCoverageView_Empty(t *testing.T) {
	out := render(t, NewCoverageView(coverage.NewReport(nil)), output.FormatText)
	assert.Contains(t, out, "Total files:      0")
	assert.Contains(t, out, "Coverage rate:    0.00%")
}

func TestCoverageView_Markdown(t *testing.T) {
	out := render(t, NewCoverageView(sampleCoverage()), output.FormatMarkdown)
	assert.True(t, strings.HasPrefix(out, "# Coverage Report\n"))
	assert.Contains(t, out, "| src/app/main.go | 2 / 5 | 40.00% | 2-3, 6 |")
}

func TestCoverageView_JSON(t *testing.T) {
	out := render(t, NewCoverageView(sampleCoverage()), output.FormatJSON)

	var decoded struct {
		Files  []coverage.File  `json:"files"`
		Totals coverage.Summary `json:"totals"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Files, 3)
	assert.Equal(t, "cmd/tool.go", decoded.Files[0].Path)
	assert.Equal(t, []coverage.Range{{Start: 2, End: 3}, {Start: 6, End: 6}}, decoded.Files[1].MissRanges)
	assert.Equal(t, 8, decoded.Totals.Total)
	assert.Equal(t, 50.0, decoded.Totals.Rate)
}

func TestCoverageView_TOON(t *testing.T) {
	out := render(t, NewCoverageView(sampleCoverage()), output.FormatTOON)
	assert.Contains(t, out, "totals")
	assert.Contains(t, out, "src/lib/util.go")
}

func TestCoverageDirView(t *testing.T) {
	r := sampleCoverage()

	out := render(t, NewCoverageDirView(r.Under("src"), "src"), output.FormatText)
	assert.Contains(t, out, "Directory: src")
	assert.Contains(t, out, "app/main.go")
	assert.Contains(t, out, "lib/util.go")
	assert.NotContains(t, out, "src/app")
	assert.NotContains(t, out, "tool.go")
	assert.Contains(t, out, "4 / 7")

	all := render(t, NewCoverageDirView(r.Files, ""), output.FormatText)
	assert.Contains(t, all, "All Files")
	assert.Contains(t, all, "cmd/tool.go")

	var decoded DirectoryCoverage
	require.NoError(t, json.Unmarshal([]byte(render(t, NewCoverageDirView(r.Under("src"), "src"), output.FormatJSON)), &decoded))
	assert.Equal(t, "src", decoded.Directory)
	assert.Len(t, decoded.Files, 2)
	assert.Equal(t, 7, decoded.Totals.Total)
}

func TestCoverageFileView(t *testing.T) {
	var src []string
	for i := 1; i <= 12; i++ {
		src = append(src, fmt.Sprintf("line%d", i))
	}
	f := coverage.NewFile("pkg/a.go", map[int]uint64{1: 4, 2: 0, 9: 1})

	out := render(t, NewCoverageFileView(&f, strings.Join(src, "\n")+"\n", 0), output.FormatText)

	assert.Contains(t, out, "FILE: pkg/a.go")
	assert.Contains(t, out, "Lines: 2 / 3 | 66.67%")
	assert.Contains(t, out, "["+strings.Repeat("#", 26)+strings.Repeat(".", 14)+"]")
	assert.Contains(t, out, " 1  ok | line1\n")
	assert.Contains(t, out, " 2   - ! line2\n")
	assert.Contains(t, out, " 3   - . line3\n     - . ...\n 8   - . line8\n")
	assert.Contains(t, out, " 9  ok | line9\n")
	assert.Contains(t, out, "10   - . line10\n11   - . line11\n12   - . line12\n")
	assert.NotContains(t, out, "line5")

	unfolded := render(t, NewCoverageFileView(&f, strings.Join(src, "\n"), 7), output.FormatText)
	assert.Contains(t, unfolded, "line5")
	assert.NotContains(t, unfolded, "...")

	md := render(t, NewCoverageFileView(&f, strings.Join(src, "\n"), 0), output.FormatMarkdown)
	assert.True(t, strings.HasPrefix(md, "## pkg/a.go\n"))
	assert.Contains(t, md, "Lines: 2 / 3 (66.67%)")
	assert.Contains(t, md, "```\n 1  ok | line1\n")
}

func TestCoverageFileView_ShortRunsNeverFold(t *testing.T) {
	f := coverage.NewFile("a.go", map[int]uint64{1: 1, 4: 1})

	out := render(t, NewCoverageFileView(&f, "a\nb\nc\nd\n", 1), output.FormatText)
	assert.Contains(t, out, "2   - . b\n3   - . c\n")
	assert.NotContains(t, out, "...")
}
