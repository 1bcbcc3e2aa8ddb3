package lang

var cBlock = []BlockComment{{Open: "/*", Close: "*/"}}

var cStrings = []StringRule{
	{Open: `"`, Close: `"`, Escape: '\\'},
	{Open: `'`, Close: `'`, Escape: '\\'},
}

// cOperators is shared by the C family. Languages append their own extras.
var cOperators = []string{
	"<<=", ">>=", "->", "++", "--", "<<", ">>", "<=", ">=", "==", "!=",
	"&&", "||", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
	"+", "-", "*", "/", "%", "&", "|", "^", "!", "~", "<", ">", "=", "?",
}

func concat(base []string, extra ...string) []string {
	out := make([]string, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}

var builtinSpecs = []profileSpec{
	{
		language:   LangGo,
		extensions: []string{".go"},
		keywords: []string{
			"break", "case", "chan", "const", "continue", "default", "defer",
			"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
			"interface", "map", "package", "range", "return", "select",
			"struct", "switch", "type", "var",
		},
		lineComments:  []string{"//"},
		blockComments: cBlock,
		strings: []StringRule{
			{Open: `"`, Close: `"`, Escape: '\\'},
			{Open: `'`, Close: `'`, Escape: '\\'},
			{Open: "`", Close: "`", Multiline: true},
		},
		operators: []string{
			"&^=", "<<=", ">>=", "...", ":=", "<-", "&^", "++", "--", "<<", ">>",
			"<=", ">=", "==", "!=", "&&", "||", "+=", "-=", "*=", "/=", "%=",
			"&=", "|=", "^=", "+", "-", "*", "/", "%", "&", "|", "^", "!", "~",
			"<", ">", "=",
		},
		decisionKeywords:  []string{"if", "for", "switch", "select", "case"},
		decisionOperators: []string{"&&", "||"},
		functions:         []FunctionPattern{{Kind: PatternKeyword, Token: "func"}},
	},
	{
		language:   LangRust,
		extensions: []string{".rs"},
		keywords: []string{
			"as", "async", "await", "break", "const", "continue", "crate", "dyn",
			"else", "enum", "extern", "false", "fn", "for", "if", "impl", "in",
			"let", "loop", "match", "mod", "move", "mut", "pub", "ref", "return",
			"self", "Self", "static", "struct", "super", "trait", "true", "type",
			"unsafe", "use", "where", "while",
		},
		lineComments:  []string{"//"},
		blockComments: cBlock,
		strings: []StringRule{
			{Open: `"`, Close: `"`, Escape: '\\', Multiline: true, Prefixes: []string{"b"}},
			{Open: `r#"`, Close: `"#`, Multiline: true, Prefixes: []string{"b"}},
			{Open: `r"`, Close: `"`, Multiline: true, Prefixes: []string{"b"}},
			{Open: `'`, Close: `'`, Escape: '\\', Char: true, Prefixes: []string{"b"}},
		},
		operators: []string{
			"<<=", ">>=", "..=", "...", "::", "->", "=>", "..", "<<", ">>", "<=",
			">=", "==", "!=", "&&", "||", "+=", "-=", "*=", "/=", "%=", "&=",
			"|=", "^=", "+", "-", "*", "/", "%", "&", "|", "^", "!", "<", ">",
			"=", "?", "@",
		},
		decisionKeywords:  []string{"if", "while", "for", "loop", "match"},
		decisionOperators: []string{"&&", "||", "=>"},
		functions:         []FunctionPattern{{Kind: PatternKeyword, Token: "fn"}},
	},
	{
		language:   LangJavaScript,
		extensions: []string{".js", ".jsx", ".mjs", ".cjs"},
		keywords:   jsKeywords,
		lineComments: []string{
			"//",
		},
		blockComments:     cBlock,
		strings:           jsStrings,
		operators:         jsOperators,
		decisionKeywords:  []string{"if", "while", "for", "switch", "case", "catch"},
		decisionOperators: []string{"&&", "||", "?"},
		functions:         jsFunctions,
		identExtra:        "$",
	},
	{
		language:   LangTypeScript,
		extensions: []string{".ts", ".tsx", ".mts", ".cts"},
		keywords: concat(jsKeywords,
			"abstract", "declare", "enum", "implements", "interface", "keyof",
			"namespace", "private", "protected", "public", "readonly", "type",
		),
		lineComments:      []string{"//"},
		blockComments:     cBlock,
		strings:           jsStrings,
		operators:         jsOperators,
		decisionKeywords:  []string{"if", "while", "for", "switch", "case", "catch"},
		decisionOperators: []string{"&&", "||", "?"},
		functions:         jsFunctions,
		identExtra:        "$",
	},
	{
		language:   LangJava,
		extensions: []string{".java"},
		keywords: []string{
			"abstract", "assert", "boolean", "break", "byte", "case", "catch",
			"char", "class", "const", "continue", "default", "do", "double",
			"else", "enum", "extends", "final", "finally", "float", "for",
			"goto", "if", "implements", "import", "instanceof", "int",
			"interface", "long", "native", "new", "package", "private",
			"protected", "public", "return", "short", "static", "strictfp",
			"super", "switch", "synchronized", "this", "throw", "throws",
			"transient", "try", "void", "volatile", "while",
		},
		lineComments:      []string{"//"},
		blockComments:     cBlock,
		strings:           withStrings(cStrings, StringRule{Open: `"""`, Close: `"""`, Escape: '\\', Multiline: true}),
		operators:         concat(cOperators, ">>>=", ">>>", "::"),
		decisionKeywords:  []string{"if", "while", "for", "switch", "case", "catch"},
		decisionOperators: []string{"&&", "||", "?"},
		functions: []FunctionPattern{
			{Kind: PatternNamedCall, NotAfter: []string{"new", ".", "@"}},
			{Kind: PatternArrow, Token: "->"},
		},
		identExtra: "$",
	},
	{
		language:   LangC,
		extensions: []string{".c", ".h"},
		keywords: []string{
			"auto", "break", "case", "char", "const", "continue", "default",
			"do", "double", "else", "enum", "extern", "float", "for", "goto",
			"if", "inline", "int", "long", "register", "restrict", "return",
			"short", "signed", "sizeof", "static", "struct", "switch",
			"typedef", "union", "unsigned", "void", "volatile", "while",
		},
		lineComments:      []string{"//"},
		blockComments:     cBlock,
		strings:           cStrings,
		operators:         cOperators,
		decisionKeywords:  []string{"if", "while", "for", "switch", "case"},
		decisionOperators: []string{"&&", "||", "?"},
		functions: []FunctionPattern{
			{Kind: PatternNamedCall, NotAfter: []string{".", "->"}},
		},
	},
	{
		language:   LangCPP,
		extensions: []string{".cpp", ".cc", ".cxx", ".c++", ".hpp", ".hh", ".hxx"},
		keywords: []string{
			"auto", "bool", "break", "case", "catch", "char", "class", "const",
			"constexpr", "continue", "default", "delete", "do", "double",
			"else", "enum", "explicit", "extern", "false", "float", "for",
			"friend", "goto", "if", "inline", "int", "long", "mutable",
			"namespace", "new", "noexcept", "nullptr", "operator", "override",
			"private", "protected", "public", "return", "short", "signed",
			"sizeof", "static", "struct", "switch", "template", "this", "throw",
			"true", "try", "typedef", "typename", "union", "unsigned", "using",
			"virtual", "void", "volatile", "while",
		},
		lineComments:  []string{"//"},
		blockComments: cBlock,
		strings: []StringRule{
			{Open: `"`, Close: `"`, Escape: '\\', Prefixes: []string{"L", "u", "U", "u8"}},
			{Open: `'`, Close: `'`, Escape: '\\', Prefixes: []string{"L", "u", "U", "u8"}},
			{Open: `R"(`, Close: `)"`, Multiline: true, Prefixes: []string{"L", "u", "U", "u8"}},
		},
		operators:         concat(cOperators, "<=>", "->*", ".*", "::"),
		decisionKeywords:  []string{"if", "while", "for", "switch", "case", "catch"},
		decisionOperators: []string{"&&", "||", "?"},
		functions: []FunctionPattern{
			{Kind: PatternNamedCall, NotAfter: []string{"new", ".", "->"}},
		},
	},
	{
		language:   LangCSharp,
		extensions: []string{".cs"},
		keywords: []string{
			"abstract", "as", "base", "bool", "break", "byte", "case", "catch",
			"char", "checked", "class", "const", "continue", "decimal",
			"default", "delegate", "do", "double", "else", "enum", "event",
			"explicit", "extern", "false", "finally", "fixed", "float", "for",
			"foreach", "goto", "if", "implicit", "in", "int", "interface",
			"internal", "is", "lock", "long", "namespace", "new", "null",
			"object", "operator", "out", "override", "params", "private",
			"protected", "public", "readonly", "ref", "return", "sbyte",
			"sealed", "short", "sizeof", "static", "string", "struct",
			"switch", "this", "throw", "true", "try", "typeof", "uint", "ulong",
			"unchecked", "unsafe", "ushort", "using", "virtual", "void",
			"volatile", "while",
		},
		lineComments:  []string{"//"},
		blockComments: cBlock,
		strings: withStrings(cStrings,
			StringRule{Open: `@"`, Close: `"`, Multiline: true},
			StringRule{Open: `$"`, Close: `"`, Escape: '\\'},
		),
		operators:         concat(cOperators, "??=", "??", "?.", "=>", "::"),
		decisionKeywords:  []string{"if", "while", "for", "foreach", "switch", "case", "catch"},
		decisionOperators: []string{"&&", "||", "?"},
		functions: []FunctionPattern{
			{Kind: PatternNamedCall, NotAfter: []string{"new", "."}},
			{Kind: PatternArrow, Token: "=>"},
		},
	},
	{
		language:   LangPython,
		extensions: []string{".py", ".pyi"},
		keywords: []string{
			"False", "None", "True", "and", "as", "assert", "async", "await",
			"break", "case", "class", "continue", "def", "del", "elif", "else",
			"except", "finally", "for", "from", "global", "if", "import", "in",
			"is", "lambda", "match", "nonlocal", "not", "or", "pass", "raise",
			"return", "try", "while", "with", "yield",
		},
		lineComments: []string{"#"},
		strings: []StringRule{
			{Open: `"""`, Close: `"""`, Escape: '\\', Multiline: true, Prefixes: pyPrefixes},
			{Open: `'''`, Close: `'''`, Escape: '\\', Multiline: true, Prefixes: pyPrefixes},
			{Open: `"`, Close: `"`, Escape: '\\', Prefixes: pyPrefixes},
			{Open: `'`, Close: `'`, Escape: '\\', Prefixes: pyPrefixes},
		},
		operators: []string{
			"**=", "//=", ">>=", "<<=", "->", ":=", "**", "//", "<<", ">>", "<=",
			">=", "==", "!=", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
			"@=", "+", "-", "*", "/", "%", "&", "|", "^", "~", "<", ">", "=",
			"@",
		},
		decisionKeywords: []string{
			"if", "elif", "while", "for", "match", "case", "except", "and", "or",
		},
	},
}

var pyPrefixes = []string{"r", "b", "f", "u", "rb", "br", "fr", "rf", "R", "B", "F", "U"}

var jsKeywords = []string{
	"async", "await", "break", "case", "catch", "class", "const", "continue",
	"debugger", "default", "delete", "do", "else", "export", "extends",
	"false", "finally", "for", "function", "if", "import", "in",
	"instanceof", "let", "new", "null", "return", "static", "super",
	"switch", "this", "throw", "true", "try", "typeof", "undefined", "var",
	"void", "while", "with", "yield",
}

var jsStrings = []StringRule{
	{Open: `"`, Close: `"`, Escape: '\\'},
	{Open: `'`, Close: `'`, Escape: '\\'},
	{Open: "`", Close: "`", Escape: '\\', Multiline: true},
}

var jsOperators = concat(cOperators,
	">>>=", "===", "!==", "**=", "&&=", "||=", "??=", "...", ">>>", "=>",
	"**", "??", "?.",
)

var jsFunctions = []FunctionPattern{
	{Kind: PatternKeyword, Token: "function"},
	{Kind: PatternArrow, Token: "=>"},
	{Kind: PatternNamedCall, NotAfter: []string{"new", ".", "function", "@"}},
}

func withStrings(base []StringRule, extra ...StringRule) []StringRule {
	// Longer openers must be tried first.
	out := make([]StringRule, 0, len(base)+len(extra))
	out = append(out, extra...)
	return append(out, base...)
}
