package coverage

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const maxLineSize = 1 << 20

// ParseFile reads the LCOV trace at path. See Parse.
func ParseFile(path, repoRoot string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read LCOV file: %w", err)
	}
	defer f.Close()
	return Parse(f, repoRoot)
}

// Parse reads an LCOV trace. Only SF, DA and end_of_record records are used;
// malformed DA records and DA records outside a file section are skipped.
// Source paths are made relative to repoRoot when they lie inside it. Hits
// for a line that appears in several sections of the same file are summed.
func Parse(r io.Reader, repoRoot string) (*Report, error) {
	files := make(map[string]map[int]uint64)
	var order []string
	var current map[int]uint64

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, "SF:"):
			p := NormalizePath(strings.TrimSpace(line[3:]), repoRoot)
			if files[p] == nil {
				files[p] = make(map[int]uint64)
				order = append(order, p)
			}
			current = files[p]
		case strings.HasPrefix(line, "DA:"):
			if current == nil {
				continue
			}
			if n, hits, ok := parseDA(line[3:]); ok {
				current[n] += hits
			}
		case line == "end_of_record":
			current = nil
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read LCOV: %w", err)
	}

	out := make([]File, 0, len(order))
	for _, p := range order {
		out = append(out, NewFile(p, files[p]))
	}
	return NewReport(out), nil
}

// parseDA parses "line,hits" with an optional trailing checksum field.
func parseDA(s string) (int, uint64, bool) {
	fields := strings.Split(s, ",")
	if len(fields) < 2 {
		return 0, 0, false
	}
	line, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil || line < 1 {
		return 0, 0, false
	}
	hits, err := strconv.ParseUint(strings.TrimSpace(fields[1]), 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return line, hits, true
}

// NormalizePath returns p relative to root when p lies inside root, "." when
// they are the same path, and p unchanged otherwise or when root is empty.
// The result uses forward slashes.
func NormalizePath(p, root string) string {
	if root == "" {
		return filepath.ToSlash(p)
	}
	cp, cr := filepath.Clean(p), filepath.Clean(root)
	if cp == cr {
		return "."
	}
	prefix := cr
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if strings.HasPrefix(cp, prefix) {
		return filepath.ToSlash(cp[len(prefix):])
	}
	return filepath.ToSlash(p)
}

// MissRanges collapses the unhit lines of lines, which must be ordered by
// line number, into runs of consecutive line numbers.
func MissRanges(lines []LineHits) []Range {
	out := []Range{}
	var cur *Range
	for _, l := range lines {
		if l.Hits > 0 {
			cur = nil
			continue
		}
		if cur != nil && l.Line == cur.End+1 {
			cur.End = l.Line
			continue
		}
		out = append(out, Range{Start: l.Line, End: l.Line})
		cur = &out[len(out)-1]
	}
	return out
}

// String formats r as "7" or "7-9".
func (r Range) String() string {
	if r.Start == r.End {
		return strconv.Itoa(r.Start)
	}
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// JoinRanges formats ranges as a comma separated list.
func JoinRanges(ranges []Range) string {
	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = r.String()
	}
	return strings.Join(parts, ", ")
}
