package loc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panbanda/mccabre/pkg/lang"
)

func count(t *testing.T, l lang.Language, src string) Metrics {
	t.Helper()
	profile, err := lang.ProfileFor(l)
	require.NoError(t, err)
	return CountSource(src, profile)
}

func TestPhysicalLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"single line no newline", "x", 1},
		{"single line with newline", "x\n", 1},
		{"two lines", "a\nb", 2},
		{"blank line", "\n", 1},
		{"crlf", "a\r\nb\r\n", 2},
		{"trailing blank lines", "a\n\n\n", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PhysicalLines(tt.text))
		})
	}
}

func TestCount_PythonFixture(t *testing.T) {
	content, err := os.ReadFile(filepath.Join("testdata", "inventory.py"))
	require.NoError(t, err)

	m := count(t, lang.LangPython, string(content))
	assert.Equal(t, Metrics{Physical: 95, Logical: 62, Comments: 18, Blank: 15}, m)
}

func TestCount_Classification(t *testing.T) {
	tests := []struct {
		name string
		lang lang.Language
		src  string
		want Metrics
	}{
		{
			name: "code with trailing comment is logical",
			lang: lang.LangRust,
			src:  "let x = 5; // five\n",
			want: Metrics{Physical: 1, Logical: 1},
		},
		{
			name: "block comment marks every line",
			lang: lang.LangC,
			src:  "/*\n * doc\n\n */\nint x;\n",
			want: Metrics{Physical: 5, Logical: 1, Comments: 4},
		},
		{
			name: "code after block comment close",
			lang: lang.LangC,
			src:  "/* a\n b */ int y;\n",
			want: Metrics{Physical: 2, Logical: 1, Comments: 1},
		},
		{
			name: "multi-line string is code",
			lang: lang.LangGo,
			src:  "var q = `\n\nSELECT 1\n`\n",
			want: Metrics{Physical: 4, Logical: 4},
		},
		{
			name: "whitespace only lines are blank",
			lang: lang.LangJavaScript,
			src:  "a();\n   \n\t\nb();",
			want: Metrics{Physical: 4, Logical: 2, Blank: 2},
		},
		{
			name: "comment markers inside strings",
			lang: lang.LangPython,
			src:  "s = '# not a comment'\n# a comment\n",
			want: Metrics{Physical: 2, Logical: 1, Comments: 1},
		},
		{
			name: "unterminated block comment",
			lang: lang.LangJava,
			src:  "int a;\n/* open\nstill open\n",
			want: Metrics{Physical: 3, Logical: 1, Comments: 2},
		},
		{
			name: "empty",
			lang: lang.LangGo,
			src:  "",
			want: Metrics{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, count(t, tt.lang, tt.src))
		})
	}
}

func TestCount_PartitionsEveryLine(t *testing.T) {
	srcs := []string{
		"package main\n\n// hello\nfunc main() {}\n",
		"/* a */ /* b\n\n*/\n\n\n",
		"x := `a\n// b\n`",
		"\n\n\n",
	}
	for _, src := range srcs {
		m := count(t, lang.LangGo, src)
		assert.Equal(t, m.Physical, m.Blank+m.Comments+m.Logical, "%q", src)
	}
}

func TestCount_TrailingBlankLinesOnlyChangePhysicalAndBlank(t *testing.T) {
	base := "int main() {\n  // entry\n  return 0;\n}\n"
	m1 := count(t, lang.LangC, base)
	m2 := count(t, lang.LangC, base+"\n\n\n")

	assert.Equal(t, m1.Logical, m2.Logical)
	assert.Equal(t, m1.Comments, m2.Comments)
	assert.Equal(t, m1.Physical+3, m2.Physical)
	assert.Equal(t, m1.Blank+3, m2.Blank)
}

func TestMetrics_Add(t *testing.T) {
	a := Metrics{Physical: 10, Logical: 6, Comments: 2, Blank: 2}
	b := Metrics{Physical: 5, Logical: 3, Comments: 1, Blank: 1}
	assert.Equal(t, Metrics{Physical: 15, Logical: 9, Comments: 3, Blank: 3}, a.Add(b))
}
