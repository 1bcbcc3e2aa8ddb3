package progress

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTracker(&buf, "Analyzing", 10)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Tick()
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(10), tr.bar.State().CurrentNum)
	tr.FinishSuccess()
	assert.True(t, tr.bar.IsFinished())
}

func TestTracker_FinishError(t *testing.T) {
	var buf bytes.Buffer
	tr := NewSpinner(&buf, "Scanning")
	tr.Tick()
	tr.FinishError(errors.New("permission denied"))

	assert.Contains(t, buf.String(), "Scanning error: permission denied")
}

func TestTracker_Nil(t *testing.T) {
	var tr *Tracker
	assert.NotPanics(t, func() {
		tr.Tick()
		tr.FinishSuccess()
		tr.FinishError(errors.New("x"))
	})
}
