// Package lang holds the per-language lexical rules and the tokenizer that
// applies them.
package lang

import (
	"errors"
	"sort"
)

// ErrUnsupportedLanguage is returned when no profile exists for a language
// or file extension.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Language identifies a supported source language.
type Language string

const (
	LangUnknown    Language = ""
	LangGo         Language = "go"
	LangRust       Language = "rust"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangJava       Language = "java"
	LangC          Language = "c"
	LangCPP        Language = "cpp"
	LangCSharp     Language = "csharp"
	LangPython     Language = "python"
)

// String implements fmt.Stringer.
func (l Language) String() string {
	if l == LangUnknown {
		return "unknown"
	}
	return string(l)
}

// BlockComment is a pair of block comment delimiters.
type BlockComment struct {
	Open  string
	Close string
}

// StringRule describes one kind of string or character literal.
type StringRule struct {
	Open  string
	Close string
	// Escape is the escape character inside the literal, 0 for raw literals.
	Escape byte
	// Multiline literals may span line breaks. Single-line literals are
	// closed at the end of the line they start on.
	Multiline bool
	// Char literals hold exactly one character or one escape sequence.
	// An opener that is not closed that way is not a literal at all (Rust
	// lifetimes such as 'a).
	Char bool
	// Prefixes are identifier prefixes that may be glued to the opening
	// delimiter, e.g. r, b, f for Python or L, u8 for C++.
	Prefixes []string
}

// PatternKind selects how a function introducer is recognized.
type PatternKind uint8

const (
	// PatternKeyword matches an introducer keyword followed by an optional
	// name, a parameter list and a brace-delimited body.
	PatternKeyword PatternKind = iota + 1
	// PatternNamedCall matches an identifier directly followed by a
	// parameter list, optional qualifiers and a body (C-family methods).
	PatternNamedCall
	// PatternArrow matches an arrow operator directly followed by a body.
	PatternArrow
)

// FunctionPattern is one entry of a profile's function-introducer table.
type FunctionPattern struct {
	Kind PatternKind
	// Token is the introducer keyword or arrow operator. Unused for
	// PatternNamedCall.
	Token string
	// NotAfter lists token texts that, when they immediately precede the
	// introducer, prevent a match (e.g. "new" for anonymous classes).
	NotAfter []string
}

// Profile is the immutable lexical rule set of one language.
type Profile struct {
	Language      Language
	Extensions    []string
	Keywords      map[string]struct{}
	LineComments  []string
	BlockComments []BlockComment
	Strings       []StringRule
	// Operators is sorted longest first so the tokenizer can apply maximal
	// munch by taking the first prefix match.
	Operators []string
	// DecisionKeywords and DecisionOperators form the decision-point set
	// used by the complexity analyzer.
	DecisionKeywords  map[string]struct{}
	DecisionOperators map[string]struct{}
	Functions         []FunctionPattern
	// IdentExtra lists identifier characters beyond letters, digits and
	// underscore (e.g. "$" in JavaScript).
	IdentExtra string

	opIndex map[byte][]string
}

// IsKeyword reports whether word is reserved in the language.
func (p *Profile) IsKeyword(word string) bool {
	_, ok := p.Keywords[word]
	return ok
}

// IsDecisionPoint reports whether tok adds an execution path.
func (p *Profile) IsDecisionPoint(tok Token) bool {
	switch tok.Kind {
	case KindKeyword:
		_, ok := p.DecisionKeywords[tok.Text]
		return ok
	case KindOperator:
		_, ok := p.DecisionOperators[tok.Text]
		return ok
	default:
		return false
	}
}

// IsIntroducer reports whether tok is a keyword-pattern function introducer.
func (p *Profile) IsIntroducer(tok Token) bool {
	if tok.Kind != KindKeyword {
		return false
	}
	for _, fp := range p.Functions {
		if fp.Kind == PatternKeyword && fp.Token == tok.Text {
			return true
		}
	}
	return false
}

// profileSpec is the declarative form a profile is built from.
type profileSpec struct {
	language          Language
	extensions        []string
	keywords          []string
	lineComments      []string
	blockComments     []BlockComment
	strings           []StringRule
	operators         []string
	decisionKeywords  []string
	decisionOperators []string
	functions         []FunctionPattern
	identExtra        string
}

func (s profileSpec) build() *Profile {
	ops := append([]string(nil), s.operators...)
	sort.SliceStable(ops, func(i, j int) bool {
		if len(ops[i]) != len(ops[j]) {
			return len(ops[i]) > len(ops[j])
		}
		return ops[i] < ops[j]
	})
	opIndex := make(map[byte][]string)
	for _, op := range ops {
		opIndex[op[0]] = append(opIndex[op[0]], op)
	}
	return &Profile{
		Language:          s.language,
		Extensions:        append([]string(nil), s.extensions...),
		Keywords:          toSet(s.keywords),
		LineComments:      append([]string(nil), s.lineComments...),
		BlockComments:     append([]BlockComment(nil), s.blockComments...),
		Strings:           append([]StringRule(nil), s.strings...),
		Operators:         ops,
		DecisionKeywords:  toSet(s.decisionKeywords),
		DecisionOperators: toSet(s.decisionOperators),
		Functions:         append([]FunctionPattern(nil), s.functions...),
		IdentExtra:        s.identExtra,
		opIndex:           opIndex,
	}
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
