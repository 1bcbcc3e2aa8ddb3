package lang

// Kind classifies a token.
type Kind uint8

const (
	KindKeyword Kind = iota + 1
	KindIdentifier
	KindOperator
	KindPunctuation
	KindString
	KindNumber
	KindComment
	KindWhitespace
	KindNewline
)

var kindNames = map[Kind]string{
	KindKeyword:     "keyword",
	KindIdentifier:  "identifier",
	KindOperator:    "operator",
	KindPunctuation: "punctuation",
	KindString:      "string",
	KindNumber:      "number",
	KindComment:     "comment",
	KindWhitespace:  "whitespace",
	KindNewline:     "newline",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Token is a lexical unit of a source file.
type Token struct {
	Kind Kind
	Text string
	// Line and Column are 1-based and point at the first byte of the token.
	Line   int
	Column int
	// EndLine is the last line the token touches. It differs from Line only
	// for block comments and multi-line string literals.
	EndLine int
}

// Significant reports whether the token takes part in clone comparison.
// Comments and whitespace never do.
func (t Token) Significant() bool {
	switch t.Kind {
	case KindComment, KindWhitespace, KindNewline:
		return false
	default:
		return true
	}
}

// Equal reports whether two tokens have the same kind and literal text.
// Positions are ignored.
func (t Token) Equal(o Token) bool {
	return t.Kind == o.Kind && t.Text == o.Text
}

// Is reports whether the token has the given kind and text.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// Significant returns the significant tokens of a sequence, in order.
func Significant(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Significant() {
			out = append(out, tok)
		}
	}
	return out
}
