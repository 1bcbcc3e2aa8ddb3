package lang

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Registry maps languages and file extensions to profiles. A Registry is
// read-only after construction and safe for concurrent use.
type Registry struct {
	profiles map[Language]*Profile
	byExt    map[string]*Profile
}

// NewRegistry builds a registry from the built-in profile table.
func NewRegistry() *Registry {
	r := &Registry{
		profiles: make(map[Language]*Profile, len(builtinSpecs)),
		byExt:    make(map[string]*Profile),
	}
	for _, spec := range builtinSpecs {
		p := spec.build()
		r.profiles[p.Language] = p
		for _, ext := range p.Extensions {
			r.byExt[strings.ToLower(ext)] = p
		}
	}
	return r
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// ProfileFor returns the profile of a language.
func (r *Registry) ProfileFor(language Language) (*Profile, error) {
	p, ok := r.profiles[language]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, language)
	}
	return p, nil
}

// Detect returns the language of a file based on its extension, or
// LangUnknown.
func (r *Registry) Detect(path string) Language {
	if p, ok := r.byExt[strings.ToLower(filepath.Ext(path))]; ok {
		return p.Language
	}
	return LangUnknown
}

// Languages returns all registered profiles sorted by language name.
func (r *Registry) Languages() []*Profile {
	out := make([]*Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Language < out[j].Language
	})
	return out
}

// ProfileFor looks up a language in the default registry.
func ProfileFor(language Language) (*Profile, error) {
	return defaultRegistry.ProfileFor(language)
}

// Detect detects a file's language using the default registry.
func Detect(path string) Language {
	return defaultRegistry.Detect(path)
}

// Languages lists the profiles of the default registry.
func Languages() []*Profile {
	return defaultRegistry.Languages()
}

// Parse converts a user supplied language name to a Language. Common aliases
// such as "js", "ts", "c++" and "cs" are accepted.
func Parse(name string) (Language, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := languageAliases[n]; ok {
		n = string(alias)
	}
	if _, ok := defaultRegistry.profiles[Language(n)]; ok {
		return Language(n), nil
	}
	return LangUnknown, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, name)
}

var languageAliases = map[string]Language{
	"golang": LangGo,
	"rs":     LangRust,
	"js":     LangJavaScript,
	"ts":     LangTypeScript,
	"c++":    LangCPP,
	"cxx":    LangCPP,
	"cs":     LangCSharp,
	"c#":     LangCSharp,
	"py":     LangPython,
}
