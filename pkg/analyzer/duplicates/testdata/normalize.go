package billing

import (
	"errors"
	"strings"
)

var errEmpty = errors.New("empty document")

// The normalizers below upper-case every non-blank line.

func normalizeInvoice(lines []string) ([]string, error) {
	if len(lines) == 0 {
		return nil, errEmpty
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		upper := strings.ToUpper(trimmed)
		out = append(out, upper)
	}
	return out, nil
}

// normalizeCredit mirrors normalizeInvoice for credit notes.
// Kept separate until the two formats diverge.
func normalizeCredit(lines []string) ([]string, error) {
	if len(lines) == 0 {
		return nil, errEmpty
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		upper := strings.ToUpper(trimmed)
		out = append(out, upper)
	}
	return out, nil
}

// normalizeRefund mirrors normalizeInvoice for refunds.
// Kept separate until the two formats diverge.
func normalizeRefund(lines []string) ([]string, error) {
	if len(lines) == 0 {
		return nil, errEmpty
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		upper := strings.ToUpper(trimmed)
		out = append(out, upper)
	}
	return out, nil
}
