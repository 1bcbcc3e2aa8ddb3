package lang

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const bom = "\ufeff"

// maxCharEscape bounds the length of an escape sequence inside a char
// literal ('\u{10FFFF}' is the longest in practice).
const maxCharEscape = 12

// Tokenize splits text into tokens using the rules of profile. It makes a
// single left-to-right pass and never fails: unterminated literals and
// comments are closed at end of line or end of input.
func Tokenize(text string, profile *Profile) []Token {
	t := &tokenizer{
		src:     text,
		profile: profile,
		line:    1,
		tokens:  make([]Token, 0, len(text)/4+1),
	}
	t.run()
	return t.tokens
}

type tokenizer struct {
	src       string
	profile   *Profile
	pos       int
	line      int
	lineStart int
	tokens    []Token
}

func (t *tokenizer) run() {
	if strings.HasPrefix(t.src, bom) {
		t.emit(KindWhitespace, len(bom))
	}
	for t.pos < len(t.src) {
		c := t.src[t.pos]
		switch {
		case c == '\n':
			t.emitNewline(1)
		case c == '\r' && t.peek(1) == '\n':
			t.emitNewline(2)
		case isSpace(c):
			t.lexWhitespace()
		case t.lexString():
		case t.lexComment():
		case t.isIdentStart():
			t.lexIdentifier()
		case isDigit(c):
			t.lexNumber()
		case t.lexOperator():
		default:
			_, size := utf8.DecodeRuneInString(t.src[t.pos:])
			t.emit(KindPunctuation, size)
		}
	}
}

func (t *tokenizer) peek(offset int) byte {
	if t.pos+offset < len(t.src) {
		return t.src[t.pos+offset]
	}
	return 0
}

// emit appends a single-line token of n bytes starting at the cursor.
func (t *tokenizer) emit(kind Kind, n int) {
	t.tokens = append(t.tokens, Token{
		Kind:    kind,
		Text:    t.src[t.pos : t.pos+n],
		Line:    t.line,
		Column:  t.pos - t.lineStart + 1,
		EndLine: t.line,
	})
	t.pos += n
}

func (t *tokenizer) emitNewline(n int) {
	t.emit(KindNewline, n)
	t.line++
	t.lineStart = t.pos
}

// emitSpan appends a token that may contain line breaks and advances the
// line counters past them.
func (t *tokenizer) emitSpan(kind Kind, end int) {
	text := t.src[t.pos:end]
	tok := Token{
		Kind:    kind,
		Text:    text,
		Line:    t.line,
		Column:  t.pos - t.lineStart + 1,
		EndLine: t.line,
	}
	if n := strings.Count(text, "\n"); n > 0 {
		tok.EndLine = t.line + n
		t.line += n
		t.lineStart = t.pos + strings.LastIndexByte(text, '\n') + 1
	}
	t.tokens = append(t.tokens, tok)
	t.pos = end
}

func (t *tokenizer) lexWhitespace() {
	end := t.pos
	for end < len(t.src) {
		c := t.src[end]
		if c == '\r' && end+1 < len(t.src) && t.src[end+1] == '\n' {
			break
		}
		if !isSpace(c) {
			break
		}
		end++
	}
	t.emit(KindWhitespace, end-t.pos)
}

// lexString consumes a string or char literal at the cursor. It reports
// false when no literal starts here.
func (t *tokenizer) lexString() bool {
	rest := t.src[t.pos:]
	for _, rule := range t.profile.Strings {
		prefix, ok := matchOpener(rest, rule)
		if !ok {
			continue
		}
		start := t.pos + len(prefix) + len(rule.Open)
		var end int
		if rule.Char {
			end, ok = t.scanChar(start, rule)
			if !ok {
				continue
			}
		} else {
			end = t.scanString(start, rule)
		}
		t.emitSpan(KindString, end)
		return true
	}
	return false
}

func matchOpener(rest string, rule StringRule) (string, bool) {
	if strings.HasPrefix(rest, rule.Open) {
		return "", true
	}
	for _, prefix := range rule.Prefixes {
		if strings.HasPrefix(rest, prefix) && strings.HasPrefix(rest[len(prefix):], rule.Open) {
			return prefix, true
		}
	}
	return "", false
}

// scanString returns the end offset of a literal whose body starts at i.
func (t *tokenizer) scanString(i int, rule StringRule) int {
	for i < len(t.src) {
		c := t.src[i]
		switch {
		case rule.Escape != 0 && c == rule.Escape:
			i += 2
			if i > len(t.src) {
				return len(t.src)
			}
		case strings.HasPrefix(t.src[i:], rule.Close):
			return i + len(rule.Close)
		case c == '\n' && !rule.Multiline:
			return trimCR(t.src, i)
		default:
			i++
		}
	}
	return len(t.src)
}

// scanChar accepts exactly one character or one escape sequence followed by
// the closing delimiter on the same line.
func (t *tokenizer) scanChar(i int, rule StringRule) (int, bool) {
	if i >= len(t.src) {
		return 0, false
	}
	if rule.Escape != 0 && t.src[i] == rule.Escape {
		limit := min(len(t.src), i+maxCharEscape)
		for j := i + 2; j < limit; j++ {
			if t.src[j] == '\n' {
				return 0, false
			}
			if strings.HasPrefix(t.src[j:], rule.Close) {
				return j + len(rule.Close), true
			}
		}
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(t.src[i:])
	if r == '\n' || !strings.HasPrefix(t.src[i+size:], rule.Close) {
		return 0, false
	}
	return i + size + len(rule.Close), true
}

func (t *tokenizer) lexComment() bool {
	rest := t.src[t.pos:]
	for _, marker := range t.profile.LineComments {
		if strings.HasPrefix(rest, marker) {
			end := strings.IndexByte(rest, '\n')
			if end < 0 {
				end = len(rest)
			}
			t.emit(KindComment, trimCR(rest, end))
			return true
		}
	}
	for _, bc := range t.profile.BlockComments {
		if !strings.HasPrefix(rest, bc.Open) {
			continue
		}
		end := len(t.src)
		if idx := strings.Index(rest[len(bc.Open):], bc.Close); idx >= 0 {
			end = t.pos + len(bc.Open) + idx + len(bc.Close)
		}
		t.emitSpan(KindComment, end)
		return true
	}
	return false
}

func (t *tokenizer) isIdentStart() bool {
	c := t.src[t.pos]
	if c < utf8.RuneSelf {
		return c == '_' || isASCIILetter(c) || strings.IndexByte(t.profile.IdentExtra, c) >= 0
	}
	r, _ := utf8.DecodeRuneInString(t.src[t.pos:])
	return unicode.IsLetter(r)
}

func (t *tokenizer) lexIdentifier() {
	end := t.pos
	for end < len(t.src) {
		c := t.src[end]
		if c < utf8.RuneSelf {
			if c == '_' || isASCIILetter(c) || isDigit(c) || strings.IndexByte(t.profile.IdentExtra, c) >= 0 {
				end++
				continue
			}
			break
		}
		r, size := utf8.DecodeRuneInString(t.src[end:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		end += size
	}
	kind := KindIdentifier
	if t.profile.IsKeyword(t.src[t.pos:end]) {
		kind = KindKeyword
	}
	t.emit(kind, end-t.pos)
}

func (t *tokenizer) lexNumber() {
	end := t.pos
	hex := strings.HasPrefix(t.src[t.pos:], "0x") || strings.HasPrefix(t.src[t.pos:], "0X")
	seenDot := false
	for end < len(t.src) {
		c := t.src[end]
		switch {
		case isDigit(c) || isASCIILetter(c) || c == '_':
			end++
		case c == '.' && !seenDot && end+1 < len(t.src) && isDigit(t.src[end+1]):
			seenDot = true
			end++
		case (c == '+' || c == '-') && end > t.pos && isExponent(t.src[end-1], hex):
			end++
		default:
			t.emit(KindNumber, end-t.pos)
			return
		}
	}
	t.emit(KindNumber, end-t.pos)
}

func (t *tokenizer) lexOperator() bool {
	rest := t.src[t.pos:]
	for _, op := range t.profile.opIndex[rest[0]] {
		if strings.HasPrefix(rest, op) {
			t.emit(KindOperator, len(op))
			return true
		}
	}
	return false
}

func trimCR(s string, end int) int {
	if end > 0 && s[end-1] == '\r' {
		return end - 1
	}
	return end
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isExponent(c byte, hex bool) bool {
	if hex {
		return c == 'p' || c == 'P'
	}
	return c == 'e' || c == 'E'
}
