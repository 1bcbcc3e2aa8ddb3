package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panbanda/mccabre/internal/output"
	"github.com/panbanda/mccabre/pkg/analyzer/complexity"
	"github.com/panbanda/mccabre/pkg/analyzer/loc"
)

func render(t *testing.T, r output.Renderable, format output.Format) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, output.New(&buf, format, false).Output(r))
	return buf.String()
}

func TestView_Text(t *testing.T) {
	r := Aggregate(sampleFiles(), sampleGroups(), complexity.DefaultThresholds(), nil)

	out := render(t, r.View("Analysis", ShowAll), output.FormatText)

	assert.Contains(t, out, "Analysis")
	assert.Contains(t, out, "Total files analyzed:   3")
	assert.Contains(t, out, "Average complexity:     14.00")
	assert.Contains(t, out, "Maximum complexity:     25")
	assert.Contains(t, out, "Clone groups detected:  1")
	assert.Contains(t, out, "src/a.go")
	assert.Contains(t, out, "parse")
	assert.Contains(t, out, "3-30")
	assert.Contains(t, out, "Clone Group #1 (length: 34 tokens, 2 occurrences)")
	assert.Contains(t, out, "src/a.go:3-12")
	assert.Contains(t, out, "lib/c.js:2-11")
	assert.NotContains(t, out, "\x1b[")
}

func TestView_SectionsAreSelectable(t *testing.T) {
	r := Aggregate(sampleFiles(), sampleGroups(), complexity.DefaultThresholds(), nil)

	out := render(t, r.View("Complexity", ShowSummary|ShowFiles|ShowFunctions), output.FormatText)

	assert.Contains(t, out, "parse")
	assert.NotContains(t, out, "Clone Group")
	assert.NotContains(t, out, "Clone groups detected")
}

func TestView_NoFiles(t *testing.T) {
	r := Aggregate(nil, nil, complexity.DefaultThresholds(), nil)

	out := render(t, r.View("Analysis", ShowAll), output.FormatText)
	assert.Contains(t, out, "No supported files found")
}

func TestView_Errors(t *testing.T) {
	r := Aggregate(sampleFiles()[:1], nil, complexity.DefaultThresholds(),
		[]FileError{{Path: "gone.go", Error: "file does not exist"}})

	out := render(t, r.View("Analysis", ShowAll), output.FormatText)
	assert.Contains(t, out, "Files with errors:      1")
	assert.Contains(t, out, "gone.go")
}

func TestView_Markdown(t *testing.T) {
	r := Aggregate(sampleFiles(), sampleGroups(), complexity.DefaultThresholds(), nil)

	out := render(t, r.View("Analysis", ShowAll), output.FormatMarkdown)

	assert.True(t, strings.HasPrefix(out, "# Analysis\n"))
	assert.Contains(t, out, "## Summary")
	assert.Contains(t, out, "| src/a.go | go | 25 | high |")
	assert.Contains(t, out, "### Clone Group #1 (length: 34 tokens, 2 occurrences)")
}

func TestView_JSONIsWholeReport(t *testing.T) {
	r := Aggregate(sampleFiles(), sampleGroups(), complexity.DefaultThresholds(), nil)

	out := render(t, r.View("Complexity", ShowFiles), output.FormatJSON)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Contains(t, decoded, "files")
	assert.Contains(t, decoded, "clones")
	assert.Contains(t, decoded, "summary")
	assert.NotContains(t, decoded, "errors")

	summary := decoded["summary"].(map[string]any)
	assert.EqualValues(t, 3, summary["total_files"])
	assert.EqualValues(t, 1, summary["total_clones"])

	files := decoded["files"].([]any)
	first := files[0].(map[string]any)
	assert.Equal(t, "go", first["language"])
	assert.EqualValues(t, 25, first["cyclomatic"].(map[string]any)["file_complexity"])
	assert.EqualValues(t, 40, first["loc"].(map[string]any)["physical"])
}

func TestView_TOON(t *testing.T) {
	r := Aggregate(sampleFiles(), nil, complexity.DefaultThresholds(), nil)

	out := render(t, r.View("Analysis", ShowAll), output.FormatTOON)
	assert.Contains(t, out, "summary")
	assert.Contains(t, out, "src/a.go")
}

func TestCloneView(t *testing.T) {
	r := Aggregate(sampleFiles(), sampleGroups(), complexity.DefaultThresholds(), nil)

	out := render(t, r.CloneView(), output.FormatText)
	assert.Contains(t, out, "1 clone groups, 2 occurrences, 20 duplicated lines")
	assert.Contains(t, out, "Clone Group #1")

	empty := Aggregate(sampleFiles(), nil, complexity.DefaultThresholds(), nil)
	assert.Contains(t, render(t, empty.CloneView(), output.FormatText), "No clones detected")
}

func TestLOCView_Files(t *testing.T) {
	r := Aggregate(sampleFiles(), nil, complexity.DefaultThresholds(), nil)

	v := r.LOCView(loc.RankLogical, false, 2)
	rk := v.Ranking()
	require.Len(t, rk.Files, 2)
	assert.Equal(t, "src/a.go", rk.Files[0].Path)
	assert.Equal(t, "lib/c.js", rk.Files[1].Path)
	assert.Equal(t, 70, rk.Total.Physical)
	assert.Nil(t, rk.Directories)

	out := render(t, v, output.FormatText)
	assert.Contains(t, out, "Files by Logical LOC")
}

func TestLOCView_Dirs(t *testing.T) {
	r := Aggregate(sampleFiles(), nil, complexity.DefaultThresholds(), nil)

	v := r.LOCView(loc.RankBlank, true, 0)
	rk := v.Ranking()
	require.Len(t, rk.Directories, 2)
	assert.Equal(t, "lib", rk.Directories[0].Path)
	assert.Equal(t, "src", rk.Directories[1].Path)
	assert.Nil(t, rk.Files)

	out := render(t, v, output.FormatMarkdown)
	assert.Contains(t, out, "## Directories by Blank Lines")
	assert.Contains(t, out, "| Directory |")
}
