package analyzer

import "sync/atomic"

// ProgressFunc is called after each file with the number of files finished,
// the total, and the path of the file just finished. It may be called from
// several goroutines at once.
type ProgressFunc func(done, total int, path string)

type counter struct {
	total int
	done  atomic.Int64
	fn    ProgressFunc
}

func newCounter(total int, fn ProgressFunc) *counter {
	return &counter{total: total, fn: fn}
}

func (c *counter) tick(path string) {
	n := int(c.done.Add(1))
	if c.fn != nil {
		c.fn(n, c.total, path)
	}
}
