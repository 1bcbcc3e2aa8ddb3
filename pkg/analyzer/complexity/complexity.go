// Package complexity computes McCabe cyclomatic complexity from a token
// stream, for whole files and for heuristically detected functions.
package complexity

import (
	"github.com/panbanda/mccabre/pkg/lang"
)

// Analyze computes the file complexity and the complexity of every function
// body found in tokens. Tokens must come from lang.Tokenize with the same
// profile.
func Analyze(tokens []lang.Token, profile *lang.Profile) Result {
	sig, pos := significant(tokens)

	decisions := 0
	for i := range sig {
		if decision(sig, i, profile) {
			decisions++
		}
	}

	result := Result{
		FileComplexity: 1 + decisions,
		Functions:      make([]Function, 0),
	}

	spans := segment(sig, profile)
	if len(spans) == 0 {
		return result
	}

	own := attribute(sig, spans, profile)
	for i, sp := range spans {
		result.Functions = append(result.Functions, Function{
			Name:       sp.name,
			Complexity: 1 + own[i],
			StartLine:  sp.startLine,
			EndLine:    sig[sp.close].EndLine,
			StartToken: pos[sp.start],
			EndToken:   pos[sp.close],
		})
	}
	return result
}

// CountDecisionPoints returns the number of decision points in tokens.
func CountDecisionPoints(tokens []lang.Token, profile *lang.Profile) int {
	sig, _ := significant(tokens)
	n := 0
	for i := range sig {
		if decision(sig, i, profile) {
			n++
		}
	}
	return n
}

// decision reports whether sig[i] is a decision point. A ? counts only as
// the condition of a ternary, so optional members, nullable types and
// wildcards are not decisions.
func decision(sig []lang.Token, i int, profile *lang.Profile) bool {
	if !profile.IsDecisionPoint(sig[i]) {
		return false
	}
	if !sig[i].Is(lang.KindOperator, "?") {
		return true
	}
	return closesTernary(sig, i)
}

// closesTernary reports whether a : follows the ? at sig[i] at the same
// bracket depth, with at least one token between them, before the
// enclosing expression ends.
func closesTernary(sig []lang.Token, i int) bool {
	depth := 0
	for j := i + 1; j < len(sig); j++ {
		switch sig[j].Text {
		case "(", "[":
			depth++
		case "{":
			if depth == 0 && sig[j-1].Text == ")" {
				return false
			}
			depth++
		case ")", "]", "}":
			depth--
			if depth < 0 {
				return false
			}
		case ";", ",", "=":
			if depth == 0 {
				return false
			}
		case ":":
			if depth == 0 {
				return j > i+1
			}
		}
	}
	return false
}

// significant drops trivia and returns the remaining tokens together with
// their indexes in the original slice.
func significant(tokens []lang.Token) ([]lang.Token, []int) {
	sig := make([]lang.Token, 0, len(tokens))
	pos := make([]int, 0, len(tokens))
	for i, tok := range tokens {
		if tok.Significant() {
			sig = append(sig, tok)
			pos = append(pos, i)
		}
	}
	return sig, pos
}

// attribute assigns each decision point to the innermost span that contains
// it and returns the per-span counts. Decision points outside every span only
// count toward the file.
func attribute(sig []lang.Token, spans []span, profile *lang.Profile) []int {
	own := make([]int, len(spans))
	var stack []int
	next := 0
	for i := range sig {
		for len(stack) > 0 && spans[stack[len(stack)-1]].close < i {
			stack = stack[:len(stack)-1]
		}
		for next < len(spans) && spans[next].start == i {
			stack = append(stack, next)
			next++
		}
		if len(stack) > 0 && decision(sig, i, profile) {
			own[stack[len(stack)-1]]++
		}
	}
	return own
}
