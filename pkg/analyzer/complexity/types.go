package complexity

// Function is the complexity of one detected function body.
type Function struct {
	Name       string `json:"name" toon:"name"`
	Complexity int    `json:"complexity" toon:"complexity"`
	StartLine  int    `json:"start_line" toon:"start_line"`
	EndLine    int    `json:"end_line" toon:"end_line"`
	// StartToken and EndToken index the token slice passed to Analyze: the
	// first header token and the closing brace.
	StartToken int `json:"-" toon:"-"`
	EndToken   int `json:"-" toon:"-"`
}

// Result is the complexity of one file.
type Result struct {
	// FileComplexity is 1 plus every decision point in the file, counted
	// once regardless of function boundaries.
	FileComplexity int        `json:"file_complexity" toon:"file_complexity"`
	Functions      []Function `json:"functions" toon:"functions"`
}

// MaxFunction returns the most complex function, or false when the file has
// none.
func (r Result) MaxFunction() (Function, bool) {
	if len(r.Functions) == 0 {
		return Function{}, false
	}
	best := r.Functions[0]
	for _, fn := range r.Functions[1:] {
		if fn.Complexity > best.Complexity {
			best = fn
		}
	}
	return best, true
}

// AnonymousName is reported for functions whose name cannot be recovered.
const AnonymousName = "anonymous"
