// Package stats provides statistical utility functions for analyzers.
package stats

import (
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Summary describes a distribution of metric values.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P90    float64 `json:"p90"`
	Max    float64 `json:"max"`
}

// Percentile returns the p-th percentile (0-100) of sorted using the
// empirical distribution. The slice must already be sorted in ascending
// order. Returns 0 if the slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	p = min(max(p, 0), 100)
	return stat.Quantile(p/100, stat.Empirical, sorted, nil)
}

// Summarize computes the summary of values. The input is not modified.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return Summary{
		Count:  len(sorted),
		Mean:   stat.Mean(sorted, nil),
		Median: Percentile(sorted, 50),
		P90:    Percentile(sorted, 90),
		Max:    sorted[len(sorted)-1],
	}
}

// Ints converts integer metrics for use with Summarize.
func Ints(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}
