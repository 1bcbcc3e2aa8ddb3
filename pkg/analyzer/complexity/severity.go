package complexity

import "fmt"

// Severity buckets a complexity value.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
	SeverityVeryHigh Severity = "very_high"
)

// String implements fmt.Stringer.
func (s Severity) String() string { return string(s) }

// SeverityOf returns the McCabe risk band of a complexity value.
func SeverityOf(cc int) Severity {
	switch {
	case cc <= 10:
		return SeverityLow
	case cc <= 20:
		return SeverityModerate
	case cc <= 50:
		return SeverityHigh
	default:
		return SeverityVeryHigh
	}
}

// Status is the outcome of checking a value against Thresholds.
type Status string

const (
	StatusOK      Status = "ok"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// String implements fmt.Stringer.
func (s Status) String() string { return string(s) }

// Thresholds are the configured warning and error limits. A value above a
// limit breaches it.
type Thresholds struct {
	Warning int `json:"warning" toon:"warning"`
	Error   int `json:"error" toon:"error"`
}

// DefaultThresholds returns the stock limits (10 and 20).
func DefaultThresholds() Thresholds {
	return Thresholds{Warning: 10, Error: 20}
}

// Status classifies cc against t.
func (t Thresholds) Status(cc int) Status {
	switch {
	case cc > t.Error:
		return StatusError
	case cc > t.Warning:
		return StatusWarning
	default:
		return StatusOK
	}
}

// Violation is a file or function whose complexity breaches a threshold.
type Violation struct {
	Status     Status `json:"status" toon:"status"`
	File       string `json:"file" toon:"file"`
	Function   string `json:"function,omitempty" toon:"function,omitempty"`
	Line       int    `json:"line,omitempty" toon:"line,omitempty"`
	Complexity int    `json:"complexity" toon:"complexity"`
	Threshold  int    `json:"threshold" toon:"threshold"`
}

// Message describes the violation in one line.
func (v Violation) Message() string {
	if v.Function == "" {
		return fmt.Sprintf("%s: file complexity %d exceeds %d", v.File, v.Complexity, v.Threshold)
	}
	return fmt.Sprintf("%s:%d: %s has complexity %d (limit %d)", v.File, v.Line, v.Function, v.Complexity, v.Threshold)
}

// Violations lists the file and every function of r that breach t. The file
// entry comes first, functions follow in source order.
func Violations(path string, r Result, t Thresholds) []Violation {
	var out []Violation
	add := func(fn string, line, cc int) {
		status := t.Status(cc)
		if status == StatusOK {
			return
		}
		limit := t.Warning
		if status == StatusError {
			limit = t.Error
		}
		out = append(out, Violation{
			Status:     status,
			File:       path,
			Function:   fn,
			Line:       line,
			Complexity: cc,
			Threshold:  limit,
		})
	}

	add("", 0, r.FileComplexity)
	for _, fn := range r.Functions {
		add(fn.Name, fn.StartLine, fn.Complexity)
	}
	return out
}
