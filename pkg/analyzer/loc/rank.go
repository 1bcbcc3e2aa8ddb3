package loc

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// RankBy selects the metric files and directories are ranked by.
type RankBy string

const (
	RankLogical  RankBy = "logical"
	RankPhysical RankBy = "physical"
	RankComments RankBy = "comments"
	RankBlank    RankBy = "blank"
)

// RankKeys lists the accepted RankBy values.
var RankKeys = []RankBy{RankLogical, RankPhysical, RankComments, RankBlank}

// ParseRankBy converts a flag value to a RankBy.
func ParseRankBy(s string) (RankBy, error) {
	switch RankBy(strings.ToLower(s)) {
	case RankLogical, "":
		return RankLogical, nil
	case RankPhysical:
		return RankPhysical, nil
	case RankComments, "comment":
		return RankComments, nil
	case RankBlank:
		return RankBlank, nil
	}
	return "", fmt.Errorf("unknown rank metric %q (want logical, physical, comments or blank)", s)
}

// String implements fmt.Stringer.
func (r RankBy) String() string { return string(r) }

// Label is the human readable name of the metric.
func (r RankBy) Label() string {
	switch r {
	case RankPhysical:
		return "Physical LOC"
	case RankComments:
		return "Comment Lines"
	case RankBlank:
		return "Blank Lines"
	default:
		return "Logical LOC"
	}
}

// Value extracts the ranked metric from m.
func (r RankBy) Value(m Metrics) int {
	switch r {
	case RankPhysical:
		return m.Physical
	case RankComments:
		return m.Comments
	case RankBlank:
		return m.Blank
	default:
		return m.Logical
	}
}

// File pairs a path with its line counts.
type File struct {
	Path    string  `json:"path" toon:"path"`
	Metrics Metrics `json:"metrics" toon:"metrics"`
}

// Dir is a directory with the summed metrics of the files directly in it.
type Dir struct {
	Path  string  `json:"path" toon:"path"`
	Total Metrics `json:"total" toon:"total"`
	Files []File  `json:"files" toon:"files"`
}

// Rank returns a copy of files ordered by the chosen metric, largest first.
// Ties are broken by path.
func Rank(files []File, by RankBy) []File {
	out := append([]File(nil), files...)
	sort.SliceStable(out, func(i, j int) bool {
		vi, vj := by.Value(out[i].Metrics), by.Value(out[j].Metrics)
		if vi != vj {
			return vi > vj
		}
		return out[i].Path < out[j].Path
	})
	return out
}

// RankDirs groups files by parent directory, orders the directories by their
// summed metric and the files inside each directory by their own.
func RankDirs(files []File, by RankBy) []Dir {
	index := make(map[string]int)
	var dirs []Dir
	for _, f := range files {
		dir := filepath.Dir(f.Path)
		i, ok := index[dir]
		if !ok {
			i = len(dirs)
			index[dir] = i
			dirs = append(dirs, Dir{Path: dir})
		}
		dirs[i].Total = dirs[i].Total.Add(f.Metrics)
		dirs[i].Files = append(dirs[i].Files, f)
	}

	for i := range dirs {
		dirs[i].Files = Rank(dirs[i].Files, by)
	}
	sort.SliceStable(dirs, func(i, j int) bool {
		vi, vj := by.Value(dirs[i].Total), by.Value(dirs[j].Total)
		if vi != vj {
			return vi > vj
		}
		return dirs[i].Path < dirs[j].Path
	})
	return dirs
}

// Total sums the metrics of files.
func Total(files []File) Metrics {
	var m Metrics
	for _, f := range files {
		m = m.Add(f.Metrics)
	}
	return m
}
