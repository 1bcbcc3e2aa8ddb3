package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5}

	assert.Equal(t, 0.0, Percentile(nil, 50))
	assert.Equal(t, 1.0, Percentile(sorted, 0))
	assert.Equal(t, 3.0, Percentile(sorted, 50))
	assert.Equal(t, 5.0, Percentile(sorted, 100))
	assert.Equal(t, 5.0, Percentile(sorted, 250), "clamped to 100")
}

func TestSummarize(t *testing.T) {
	values := []float64{5, 1, 3, 2, 4}
	s := Summarize(values)

	assert.Equal(t, Summary{Count: 5, Mean: 3, Median: 3, P90: 5, Max: 5}, s)
	assert.Equal(t, []float64{5, 1, 3, 2, 4}, values, "input untouched")
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestInts(t *testing.T) {
	assert.Equal(t, []float64{1, 18, 4}, Ints([]int{1, 18, 4}))
	assert.Empty(t, Ints(nil))
}
