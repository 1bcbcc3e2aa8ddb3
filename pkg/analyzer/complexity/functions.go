package complexity

import (
	"sort"

	"github.com/panbanda/mccabre/pkg/lang"
)

// maxHeaderTokens bounds how far a header scan looks for the opening brace.
const maxHeaderTokens = 256

// statementKeywords end a header: in code without semicolons a call
// followed by one of these is a statement, not a declaration. Go's inline
// struct{} and interface{} types are the exception in keyword headers.
var statementKeywords = map[string]struct{}{
	"class": {}, "struct": {}, "interface": {}, "enum": {}, "return": {},
	"let": {}, "var": {}, "import": {}, "export": {}, "namespace": {},
	"throw": {}, "break": {}, "continue": {}, "type": {}, "package": {},
}

// span is a detected function body. Indexes refer to the significant token
// slice.
type span struct {
	name      string
	start     int
	open      int
	close     int
	startLine int
}

// segment finds function bodies using the profile's pattern table. Each
// opening brace belongs to at most one function and bodies that never close
// are dropped. The result is ordered by start index.
func segment(sig []lang.Token, profile *lang.Profile) []span {
	if len(profile.Functions) == 0 || len(sig) == 0 {
		return nil
	}

	closeOf := matchPairs(sig, "{", "}")
	openOf := matchPairsBackward(sig, "(", ")")
	claimed := make(map[int]bool)

	var spans []span
	for i := range sig {
		for _, fp := range profile.Functions {
			sp, ok := matchPattern(sig, i, fp, profile, openOf)
			if !ok || claimed[sp.open] || closeOf[sp.open] < 0 {
				continue
			}
			claimed[sp.open] = true
			sp.close = closeOf[sp.open]
			spans = append(spans, sp)
			break
		}
	}

	sort.SliceStable(spans, func(a, b int) bool {
		return spans[a].start < spans[b].start
	})
	return spans
}

func matchPattern(sig []lang.Token, i int, fp lang.FunctionPattern, profile *lang.Profile, openOf []int) (span, bool) {
	tok := sig[i]
	switch fp.Kind {
	case lang.PatternKeyword:
		if !tok.Is(lang.KindKeyword, fp.Token) {
			return span{}, false
		}
		return matchKeyword(sig, i, profile)

	case lang.PatternNamedCall:
		if tok.Kind != lang.KindIdentifier || !isPunct(sig, i+1, "(") {
			return span{}, false
		}
		if i > 0 && contains(fp.NotAfter, sig[i-1].Text) {
			return span{}, false
		}
		h := headerScan{sig: sig, profile: profile, strict: true}
		open, ok := h.run(i + 1)
		if !ok {
			return span{}, false
		}
		return span{name: tok.Text, start: i, open: open, startLine: tok.Line}, true

	case lang.PatternArrow:
		if !tok.Is(lang.KindOperator, fp.Token) || !isPunct(sig, i+1, "{") {
			return span{}, false
		}
		first := i
		if i > 0 {
			first = i - 1
			if isPunct(sig, i-1, ")") && openOf[i-1] >= 0 {
				first = openOf[i-1]
			}
		}
		return span{
			name:      assignedName(sig, first),
			start:     first,
			open:      i + 1,
			startLine: sig[first].Line,
		}, true
	}
	return span{}, false
}

// matchKeyword handles func / fn / function. The name is the first identifier
// before the parameter list, or for Go methods the identifier right after the
// receiver.
func matchKeyword(sig []lang.Token, i int, profile *lang.Profile) (span, bool) {
	h := headerScan{sig: sig, profile: profile}
	open, ok := h.run(i + 1)
	if !ok {
		return span{}, false
	}
	name := h.name
	if name == "" {
		name = assignedName(sig, i)
	}
	return span{name: name, start: i, open: open, startLine: sig[i].Line}, true
}

// headerScan walks the tokens between a function introducer and its body.
type headerScan struct {
	sig     []lang.Token
	profile *lang.Profile
	// strict headers stop at any "=", at any introducer and at inline type
	// literals.
	strict bool

	name string
}

func (h *headerScan) run(from int) (int, bool) {
	depth, angle, groups := 0, 0, 0
	limit := min(len(h.sig), from+maxHeaderTokens)

	for j := from; j < limit; j++ {
		tok := h.sig[j]
		if tok.Kind == lang.KindPunctuation {
			switch tok.Text {
			case "(", "[":
				if depth == 0 && tok.Text == "(" && h.name == "" && groups == 1 && j > from && h.sig[j-1].Kind == lang.KindIdentifier {
					h.name = h.sig[j-1].Text
				}
				depth++
				continue
			case ")", "]":
				if depth == 0 {
					return 0, false
				}
				depth--
				if depth == 0 && tok.Text == ")" {
					groups++
				}
				continue
			case "{":
				if depth > 0 || h.typeLiteral(j) {
					depth++
					continue
				}
			case "}":
				if depth > 0 {
					depth--
					continue
				}
			}
		}

		if depth > 0 {
			if tok.Is(lang.KindPunctuation, ";") {
				return 0, false
			}
			continue
		}

		switch {
		case tok.Is(lang.KindPunctuation, "{"):
			if groups == 0 {
				return 0, false
			}
			return j, true
		case tok.Is(lang.KindPunctuation, ";"), tok.Is(lang.KindPunctuation, "}"):
			return 0, false
		case tok.Is(lang.KindOperator, ":="):
			return 0, false
		case tok.Is(lang.KindOperator, "="):
			if h.strict || angle == 0 {
				return 0, false
			}
		case tok.Kind == lang.KindKeyword:
			if h.profile.IsDecisionPoint(tok) {
				return 0, false
			}
			if h.profile.IsIntroducer(tok) && (h.strict || groups == 0 || startsLine(h.sig, j)) {
				return 0, false
			}
			if _, stop := statementKeywords[tok.Text]; stop && (h.strict || !isPunct(h.sig, j+1, "{") || !h.typeLiteral(j+1)) {
				return 0, false
			}
		case tok.Kind == lang.KindIdentifier:
			if h.name == "" && groups == 0 && !h.strict {
				h.name = tok.Text
			}
		case tok.Is(lang.KindOperator, "<"):
			angle++
		case tok.Is(lang.KindOperator, ">"):
			angle = max(0, angle-1)
		case tok.Is(lang.KindOperator, ">>"):
			angle = max(0, angle-2)
		}
	}
	return 0, false
}

// typeLiteral reports whether the brace at j opens an inline struct or
// interface type, as in `func f() interface{} {`.
func (h *headerScan) typeLiteral(j int) bool {
	if j == 0 {
		return false
	}
	prev := h.sig[j-1]
	return prev.Is(lang.KindKeyword, "interface") || prev.Is(lang.KindKeyword, "struct")
}

func startsLine(sig []lang.Token, j int) bool {
	return j > 0 && sig[j].Line > sig[j-1].EndLine
}

// assignedName recovers the name of an anonymous function from the
// assignment or object key in front of it: `name = function`,
// `name := func`, `key: (x) => {`.
func assignedName(sig []lang.Token, first int) string {
	p := first - 1
	if p >= 0 && sig[p].Is(lang.KindKeyword, "async") {
		p--
	}
	if p < 1 {
		return AnonymousName
	}
	switch sig[p].Text {
	case "=", ":=", ":":
		if sig[p-1].Kind == lang.KindIdentifier {
			return sig[p-1].Text
		}
	}
	return AnonymousName
}

// matchPairs maps every opening delimiter to its matching closer, or -1.
func matchPairs(sig []lang.Token, open, close string) []int {
	match := make([]int, len(sig))
	var stack []int
	for i, tok := range sig {
		match[i] = -1
		if tok.Kind != lang.KindPunctuation {
			continue
		}
		switch tok.Text {
		case open:
			stack = append(stack, i)
		case close:
			if len(stack) > 0 {
				match[stack[len(stack)-1]] = i
				stack = stack[:len(stack)-1]
			}
		}
	}
	return match
}

// matchPairsBackward maps every closing delimiter to its opener, or -1.
func matchPairsBackward(sig []lang.Token, open, close string) []int {
	forward := matchPairs(sig, open, close)
	back := make([]int, len(sig))
	for i := range back {
		back[i] = -1
	}
	for i, j := range forward {
		if j >= 0 {
			back[j] = i
		}
	}
	return back
}

func isPunct(sig []lang.Token, i int, text string) bool {
	return i >= 0 && i < len(sig) && sig[i].Is(lang.KindPunctuation, text)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
