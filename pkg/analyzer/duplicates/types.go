package duplicates

import "github.com/panbanda/mccabre/pkg/lang"

// Unit is one file handed to the detector.
type Unit struct {
	Path   string
	Tokens []lang.Token
}

// Location is one occurrence of a clone.
type Location struct {
	File      string `json:"file" toon:"file"`
	StartLine int    `json:"start_line" toon:"start_line"`
	EndLine   int    `json:"end_line" toon:"end_line"`
	// Offset is the index of the first token within the file's significant
	// token sequence.
	Offset int `json:"-" toon:"-"`
}

// Group is a set of two or more locations whose significant tokens are
// identical, kind and text, for Length tokens.
type Group struct {
	ID        int        `json:"id" toon:"id"`
	Length    int        `json:"length" toon:"length"`
	Locations []Location `json:"locations" toon:"locations"`
}

// Lines returns the line count of the group's first location.
func (g Group) Lines() int {
	if len(g.Locations) == 0 {
		return 0
	}
	l := g.Locations[0]
	return l.EndLine - l.StartLine + 1
}

// Summary provides aggregate statistics over a set of groups.
type Summary struct {
	TotalGroups     int            `json:"total_groups" toon:"total_groups"`
	TotalLocations  int            `json:"total_locations" toon:"total_locations"`
	DuplicatedLines int            `json:"duplicated_lines" toon:"duplicated_lines"`
	FileOccurrences map[string]int `json:"file_occurrences" toon:"file_occurrences"`
}

// NewSummary creates an initialized summary.
func NewSummary() Summary {
	return Summary{FileOccurrences: make(map[string]int)}
}

// AddGroup updates the summary with g.
func (s *Summary) AddGroup(g Group) {
	s.TotalGroups++
	for _, loc := range g.Locations {
		s.TotalLocations++
		s.DuplicatedLines += loc.EndLine - loc.StartLine + 1
		s.FileOccurrences[loc.File]++
	}
}

// Summarize builds a Summary for groups.
func Summarize(groups []Group) Summary {
	s := NewSummary()
	for _, g := range groups {
		s.AddGroup(g)
	}
	return s
}
