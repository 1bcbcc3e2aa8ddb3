package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panbanda/mccabre/pkg/analyzer/complexity"
	"github.com/panbanda/mccabre/pkg/analyzer/duplicates"
	"github.com/panbanda/mccabre/pkg/analyzer/loc"
	"github.com/panbanda/mccabre/pkg/lang"
)

func sampleFiles() []FileMetrics {
	return []FileMetrics{
		{
			Path:     "src/a.go",
			Language: lang.LangGo,
			LOC:      loc.Metrics{Physical: 40, Logical: 30, Comments: 5, Blank: 5},
			Cyclomatic: Cyclomatic{
				FileComplexity: 25,
				Functions: []complexity.Function{
					{Name: "parse", Complexity: 22, StartLine: 3, EndLine: 30},
					{Name: "emit", Complexity: 3, StartLine: 32, EndLine: 38},
				},
			},
		},
		{
			Path:     "src/b.py",
			Language: lang.LangPython,
			LOC:      loc.Metrics{Physical: 10, Logical: 8, Comments: 1, Blank: 1},
			Cyclomatic: Cyclomatic{
				FileComplexity: 5,
				Functions: []complexity.Function{
					{Name: "main", Complexity: 4, StartLine: 1, EndLine: 9},
				},
			},
		},
		{
			Path:       "lib/c.js",
			Language:   lang.LangJavaScript,
			LOC:        loc.Metrics{Physical: 20, Logical: 12, Comments: 2, Blank: 6},
			Cyclomatic: Cyclomatic{FileComplexity: 12, Functions: []complexity.Function{}},
		},
	}
}

func sampleGroups() []duplicates.Group {
	return []duplicates.Group{{
		ID:     1,
		Length: 34,
		Locations: []duplicates.Location{
			{File: "src/a.go", StartLine: 3, EndLine: 12},
			{File: "lib/c.js", StartLine: 2, EndLine: 11},
		},
	}}
}

func TestAggregate_Summary(t *testing.T) {
	r := Aggregate(sampleFiles(), sampleGroups(), complexity.DefaultThresholds(), nil)

	assert.Equal(t, Summary{
		TotalFiles:          3,
		TotalPhysicalLOC:    70,
		TotalLogicalLOC:     50,
		AvgComplexity:       14,
		MaxComplexity:       25,
		HighComplexityFiles: 2,
		TotalClones:         1,
	}, r.Summary)
	assert.Equal(t, complexity.DefaultThresholds(), r.Thresholds())
	assert.Nil(t, r.Errors)
}

func TestAggregate_Empty(t *testing.T) {
	r := Aggregate(nil, nil, complexity.DefaultThresholds(), nil)

	require.NotNil(t, r.Files)
	require.NotNil(t, r.Clones)
	assert.Empty(t, r.Files)
	assert.Empty(t, r.Clones)
	assert.Equal(t, Summary{}, r.Summary)
	assert.Empty(t, r.Complexities())
	assert.False(t, r.ExceedsError())
}

func TestAggregate_KeepsErrors(t *testing.T) {
	errs := []FileError{{Path: "bad.go", Error: "permission denied"}}
	r := Aggregate(nil, nil, complexity.DefaultThresholds(), errs)

	assert.Equal(t, errs, r.Errors)
	assert.Equal(t, 0, r.Summary.TotalFiles)
}

func TestReport_Violations(t *testing.T) {
	r := Aggregate(sampleFiles(), nil, complexity.DefaultThresholds(), nil)

	v := r.Violations()
	require.Len(t, v, 3)

	assert.Equal(t, "src/a.go", v[0].File)
	assert.Empty(t, v[0].Function)
	assert.Equal(t, complexity.StatusError, v[0].Status)

	assert.Equal(t, "parse", v[1].Function)
	assert.Equal(t, complexity.StatusError, v[1].Status)
	assert.Equal(t, 3, v[1].Line)

	assert.Equal(t, "lib/c.js", v[2].File)
	assert.Equal(t, complexity.StatusWarning, v[2].Status)

	assert.True(t, r.ExceedsError())
}

func TestReport_ExceedsErrorRespectsThresholds(t *testing.T) {
	r := Aggregate(sampleFiles(), nil, complexity.Thresholds{Warning: 30, Error: 60}, nil)

	assert.Empty(t, r.Violations())
	assert.False(t, r.ExceedsError())
	assert.Equal(t, 0, r.Summary.HighComplexityFiles)
}

func TestReport_Complexities(t *testing.T) {
	r := Aggregate(sampleFiles(), nil, complexity.DefaultThresholds(), nil)
	assert.Equal(t, []int{22, 3, 4}, r.Complexities())

	noFuncs := []FileMetrics{sampleFiles()[2]}
	r = Aggregate(noFuncs, nil, complexity.DefaultThresholds(), nil)
	assert.Equal(t, []int{12}, r.Complexities())
}

func TestReport_LOCFiles(t *testing.T) {
	r := Aggregate(sampleFiles(), nil, complexity.DefaultThresholds(), nil)

	files := r.LOCFiles()
	require.Len(t, files, 3)
	assert.Equal(t, "src/b.py", files[1].Path)
	assert.Equal(t, 8, files[1].Metrics.Logical)
}

func TestFileMetrics_Severity(t *testing.T) {
	files := sampleFiles()
	assert.Equal(t, complexity.SeverityHigh, files[0].Severity())
	assert.Equal(t, complexity.SeverityLow, files[1].Severity())
	assert.Equal(t, complexity.SeverityModerate, files[2].Severity())
}
