package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		path string
		want Language
	}{
		{"main.go", LangGo},
		{"src/lib.rs", LangRust},
		{"app.js", LangJavaScript},
		{"component.jsx", LangJavaScript},
		{"index.ts", LangTypeScript},
		{"view.tsx", LangTypeScript},
		{"Main.java", LangJava},
		{"util.c", LangC},
		{"util.h", LangC},
		{"engine.cpp", LangCPP},
		{"engine.HPP", LangCPP},
		{"Program.cs", LangCSharp},
		{"script.py", LangPython},
		{"README.md", LangUnknown},
		{"Makefile", LangUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.path))
		})
	}
}

func TestProfileFor(t *testing.T) {
	p, err := ProfileFor(LangRust)
	require.NoError(t, err)
	assert.Equal(t, LangRust, p.Language)
	assert.True(t, p.IsKeyword("fn"))
	assert.False(t, p.IsKeyword("func"))

	_, err = ProfileFor(Language("cobol"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestProfiles_AreWellFormed(t *testing.T) {
	profiles := Default().Languages()
	require.Len(t, profiles, 9)

	for i, p := range profiles {
		if i > 0 {
			assert.Less(t, profiles[i-1].Language, p.Language, "languages sorted")
		}
		assert.NotEmpty(t, p.Extensions, p.Language)
		assert.NotEmpty(t, p.Keywords, p.Language)
		assert.NotEmpty(t, p.LineComments, p.Language)
		assert.NotEmpty(t, p.Strings, p.Language)

		for j := 1; j < len(p.Operators); j++ {
			assert.GreaterOrEqual(t, len(p.Operators[j-1]), len(p.Operators[j]),
				"%s operators must be sorted longest first", p.Language)
		}

		for kw := range p.DecisionKeywords {
			assert.True(t, p.IsKeyword(kw), "%s decision keyword %q is not a keyword", p.Language, kw)
		}
		for op := range p.DecisionOperators {
			assert.Contains(t, p.Operators, op, "%s decision operator %q is not an operator", p.Language, op)
		}
		for _, fp := range p.Functions {
			if fp.Kind == PatternKeyword {
				assert.True(t, p.IsKeyword(fp.Token), "%s introducer %q is not a keyword", p.Language, fp.Token)
			}
		}
	}
}

func TestIsDecisionPoint(t *testing.T) {
	p := mustProfile(t, LangGo)

	assert.True(t, p.IsDecisionPoint(Token{Kind: KindKeyword, Text: "if"}))
	assert.True(t, p.IsDecisionPoint(Token{Kind: KindKeyword, Text: "select"}))
	assert.True(t, p.IsDecisionPoint(Token{Kind: KindOperator, Text: "&&"}))
	assert.False(t, p.IsDecisionPoint(Token{Kind: KindKeyword, Text: "else"}))
	assert.False(t, p.IsDecisionPoint(Token{Kind: KindIdentifier, Text: "if"}))
	assert.False(t, p.IsDecisionPoint(Token{Kind: KindString, Text: "&&"}))
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Language
		wantErr bool
	}{
		{"go", LangGo, false},
		{"Golang", LangGo, false},
		{"rs", LangRust, false},
		{"js", LangJavaScript, false},
		{" TS ", LangTypeScript, false},
		{"c++", LangCPP, false},
		{"c#", LangCSharp, false},
		{"python", LangPython, false},
		{"fortran", LangUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedLanguage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLanguageString(t *testing.T) {
	assert.Equal(t, "unknown", LangUnknown.String())
	assert.Equal(t, "csharp", LangCSharp.String())
}
