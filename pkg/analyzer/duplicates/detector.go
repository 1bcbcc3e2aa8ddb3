// Package duplicates finds token-identical code fragments across files.
//
// Every window of MinTokens significant tokens is indexed by a polynomial
// rolling hash. Candidate windows sharing a hash are verified token by token,
// and each occurrence is extended forward against the first one. Occurrences
// whose runs end within MinTokens of each other share a group at their common
// length; an occurrence that stops earlier than that forms a shorter group of
// its own, so a long clone is never cut to the length of a partial copy.
// Regions already reported never seed another group, so overlapping windows
// collapse into one maximal clone.
package duplicates

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/panbanda/mccabre/internal/logging"
	"github.com/panbanda/mccabre/pkg/config"
	"github.com/panbanda/mccabre/pkg/lang"
)

// Detector finds clone groups. A Detector is immutable and safe for
// concurrent use.
type Detector struct {
	minTokens int
	hasher    TokenHasher
	logger    *slog.Logger
}

// Option is a functional option for configuring Detector.
type Option func(*Detector)

// WithTokenHasher replaces the per-token hash feeding the rolling hash.
func WithTokenHasher(h TokenHasher) Option {
	return func(d *Detector) {
		d.hasher = h
	}
}

// WithLogger sets the logger used for pass statistics.
func WithLogger(l *slog.Logger) Option {
	return func(d *Detector) {
		d.logger = logging.OrDiscard(l)
	}
}

// New creates a detector reporting clones of at least minTokens significant
// tokens.
func New(minTokens int, opts ...Option) (*Detector, error) {
	if minTokens <= 0 {
		return nil, fmt.Errorf("%w: clone min_tokens must be positive, got %d", config.ErrInvalidConfig, minTokens)
	}
	d := &Detector{
		minTokens: minTokens,
		hasher:    HashToken,
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// FindClones is a shorthand for New(minTokens) followed by FindClones.
func FindClones(units []Unit, minTokens int) ([]Group, error) {
	d, err := New(minTokens)
	if err != nil {
		return nil, err
	}
	return d.FindClones(units), nil
}

// occurrence is a window start: file index and significant-token offset.
type occurrence struct {
	file int32
	pos  int32
}

// partition splits the windows sharing one hash into classes of verified
// identical content. Members keep file-then-position order.
type partition struct {
	classes [][]occurrence
	classOf map[occurrence]int
}

// pass holds the state of one FindClones call.
type pass struct {
	w       int
	files   [][]lang.Token
	paths   []string
	windows [][]uint64
	index   map[uint64][]occurrence
	parts   map[uint64]*partition
	covered []*roaring.Bitmap
}

// FindClones returns every clone group across units. Groups are numbered
// from 1 in order of discovery: by unit order, then by position.
func (d *Detector) FindClones(units []Unit) []Group {
	p := &pass{
		w:       d.minTokens,
		files:   make([][]lang.Token, len(units)),
		paths:   make([]string, len(units)),
		windows: make([][]uint64, len(units)),
		index:   make(map[uint64][]occurrence),
		parts:   make(map[uint64]*partition),
		covered: make([]*roaring.Bitmap, len(units)),
	}

	totalWindows := 0
	for f, u := range units {
		toks := lang.Significant(u.Tokens)
		p.files[f] = toks
		p.paths[f] = u.Path
		p.covered[f] = roaring.New()

		values := make([]uint64, len(toks))
		for i, tok := range toks {
			values[i] = d.hasher(tok)
		}
		p.windows[f] = windowHashes(values, p.w)
		for pos, h := range p.windows[f] {
			p.index[h] = append(p.index[h], occurrence{file: int32(f), pos: int32(pos)})
		}
		totalWindows += len(p.windows[f])
	}

	var groups []Group
	byKey := make(map[[32]byte]int)

	for f := range p.files {
		for pos, h := range p.windows[f] {
			if p.covered[f].Contains(uint32(pos)) || len(p.index[h]) < 2 {
				continue
			}
			seed := occurrence{file: int32(f), pos: int32(pos)}
			members := p.members(h, seed)
			if len(members) < 2 {
				continue
			}

			for _, c := range p.clusters(members, p.runs(members)) {
				for _, m := range c.members {
					p.covered[m.file].AddRange(uint64(m.pos), uint64(int(m.pos)+c.length))
				}

				first := c.members[0]
				key := contentKey(p.files[first.file][first.pos : int(first.pos)+c.length])
				if gi, ok := byKey[key]; ok {
					groups[gi].Locations = mergeLocations(groups[gi].Locations, p.locations(c.members, c.length))
					continue
				}
				byKey[key] = len(groups)
				groups = append(groups, Group{
					ID:        len(groups) + 1,
					Length:    c.length,
					Locations: p.locations(c.members, c.length),
				})
			}
		}
	}

	d.logger.Debug("clone pass complete",
		"files", len(units),
		"min_tokens", p.w,
		"windows", totalWindows,
		"buckets", len(p.index),
		"groups", len(groups),
	)

	if groups == nil {
		groups = make([]Group, 0)
	}
	return groups
}

// members returns the verified occurrences sharing the seed's content that
// may still be reported: uncovered, and not overlapping an earlier member in
// the same file.
func (p *pass) members(h uint64, seed occurrence) []occurrence {
	part := p.partition(h)
	class := part.classes[part.classOf[seed]]

	out := make([]occurrence, 0, len(class))
	for _, o := range class {
		if p.covered[o.file].Contains(uint32(o.pos)) {
			continue
		}
		if n := len(out); n > 0 && out[n-1].file == o.file && int(o.pos) < int(out[n-1].pos)+p.w {
			continue
		}
		out = append(out, o)
	}
	return out
}

// partition verifies the bucket of h, computing it on first use.
func (p *pass) partition(h uint64) *partition {
	if part, ok := p.parts[h]; ok {
		return part
	}
	bucket := p.index[h]
	part := &partition{classOf: make(map[occurrence]int, len(bucket))}
next:
	for _, o := range bucket {
		for ci, class := range part.classes {
			if p.equal(class[0], o, p.w) {
				part.classes[ci] = append(part.classes[ci], o)
				part.classOf[o] = ci
				continue next
			}
		}
		part.classOf[o] = len(part.classes)
		part.classes = append(part.classes, []occurrence{o})
	}
	p.parts[h] = part
	return part
}

// equal compares n tokens at a and b by kind and text.
func (p *pass) equal(a, b occurrence, n int) bool {
	ta := p.files[a.file][a.pos : int(a.pos)+n]
	tb := p.files[b.file][b.pos : int(b.pos)+n]
	for i := range ta {
		if !ta[i].Equal(tb[i]) {
			return false
		}
	}
	return true
}

// runs returns how many tokens each member after the first shares with
// members[0]. A member in the same file as members[0] never grows into it.
func (p *pass) runs(members []occurrence) []int {
	ref := members[0]
	refToks := p.files[ref.file]
	out := make([]int, len(members))
	for i := 1; i < len(members); i++ {
		m := members[i]
		toks := p.files[m.file]
		limit := math.MaxInt
		if m.file == ref.file {
			limit = int(m.pos - ref.pos)
		}
		n := p.w
		for n < limit {
			a, b := int(ref.pos)+n, int(m.pos)+n
			if a >= len(refToks) || b >= len(toks) || !refToks[a].Equal(toks[b]) {
				break
			}
			n++
		}
		out[i] = n
	}
	return out
}

// cluster is one group to report: members[0] first, then the members whose
// runs end close together.
type cluster struct {
	members []occurrence
	length  int
}

// clusters splits members by run length, longest first. A member joins the
// current cluster while its run ends fewer than w tokens before the
// cluster's longest run; the cluster is reported at its shortest run. The
// tail of a longer run is then always shorter than w and could never be
// reported on its own. Members in one file never overlap within a cluster.
func (p *pass) clusters(members []occurrence, runs []int) []cluster {
	order := make([]int, 0, len(members)-1)
	for i := 1; i < len(members); i++ {
		order = append(order, i)
	}
	sort.SliceStable(order, func(a, b int) bool {
		return runs[order[a]] > runs[order[b]]
	})

	var out []cluster
	for start := 0; start < len(order); {
		longest := runs[order[start]]
		end := start
		for end < len(order) && longest-runs[order[end]] < p.w {
			end++
		}
		picked := append([]int(nil), order[start:end]...)
		sort.Ints(picked)

		c := cluster{members: []occurrence{members[0]}, length: runs[order[end-1]]}
		for _, idx := range picked {
			c.members = append(c.members, members[idx])
		}
		for k := 1; k < len(c.members); k++ {
			if c.members[k].file == c.members[k-1].file {
				c.length = min(c.length, int(c.members[k].pos-c.members[k-1].pos))
			}
		}
		out = append(out, c)
		start = end
	}
	return out
}

func (p *pass) locations(members []occurrence, length int) []Location {
	out := make([]Location, len(members))
	for i, m := range members {
		toks := p.files[m.file]
		out[i] = Location{
			File:      p.paths[m.file],
			StartLine: toks[m.pos].Line,
			EndLine:   toks[int(m.pos)+length-1].EndLine,
			Offset:    int(m.pos),
		}
	}
	return out
}

// mergeLocations adds the locations of b missing from a, keeping a's order
// and appending the rest sorted by file and offset.
func mergeLocations(a, b []Location) []Location {
	type key struct {
		file   string
		offset int
	}
	seen := make(map[key]bool, len(a))
	for _, l := range a {
		seen[key{l.File, l.Offset}] = true
	}
	var extra []Location
	for _, l := range b {
		if !seen[key{l.File, l.Offset}] {
			extra = append(extra, l)
		}
	}
	sort.SliceStable(extra, func(i, j int) bool {
		if extra[i].File != extra[j].File {
			return extra[i].File < extra[j].File
		}
		return extra[i].Offset < extra[j].Offset
	})
	return append(a, extra...)
}
