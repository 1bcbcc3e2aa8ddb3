// Package loc classifies source lines as code, comment or blank.
package loc

import (
	"strings"

	"github.com/panbanda/mccabre/pkg/lang"
)

// Metrics holds the line counts of one file. Blank+Comments+Logical always
// equals Physical.
type Metrics struct {
	Physical int `json:"physical" toon:"physical"`
	Logical  int `json:"logical" toon:"logical"`
	Comments int `json:"comments" toon:"comments"`
	Blank    int `json:"blank" toon:"blank"`
}

// Add returns the field-wise sum of m and o.
func (m Metrics) Add(o Metrics) Metrics {
	return Metrics{
		Physical: m.Physical + o.Physical,
		Logical:  m.Logical + o.Logical,
		Comments: m.Comments + o.Comments,
		Blank:    m.Blank + o.Blank,
	}
}

// PhysicalLines returns the number of lines in text. A trailing line break
// does not start another line and empty text has none.
func PhysicalLines(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}

// Count classifies every line of text. A line touched by any significant
// token is logical, even when it also carries a comment. Otherwise a line
// touched by a comment (including every line a block comment spans) is a
// comment line. All remaining lines are blank.
func Count(text string, tokens []lang.Token) Metrics {
	physical := PhysicalLines(text)
	if physical == 0 {
		return Metrics{}
	}

	const (
		blank uint8 = iota
		comment
		code
	)
	class := make([]uint8, physical+1)

	mark := func(tok lang.Token, c uint8) {
		last := min(tok.EndLine, physical)
		for line := tok.Line; line <= last; line++ {
			if class[line] < c {
				class[line] = c
			}
		}
	}

	for _, tok := range tokens {
		switch {
		case tok.Significant():
			mark(tok, code)
		case tok.Kind == lang.KindComment:
			mark(tok, comment)
		}
	}

	m := Metrics{Physical: physical}
	for _, c := range class[1:] {
		switch c {
		case code:
			m.Logical++
		case comment:
			m.Comments++
		default:
			m.Blank++
		}
	}
	return m
}

// CountSource tokenizes text with profile and counts it.
func CountSource(text string, profile *lang.Profile) Metrics {
	return Count(text, lang.Tokenize(text, profile))
}
