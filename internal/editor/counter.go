package editor

import (
	"sync"
	"sync/atomic"

	"github.com/matt0x6f/metadata-editor/internal/logger"
)

// Counter tracks how many editor sessions are open with unapplied changes.
// It is shared by every session of a game and is safe for concurrent use.
type Counter struct {
	n atomic.Int64
}

// Increment records a newly opened session
func (c *Counter) Increment() int64 {
	return c.n.Add(1)
}

// Decrement records a closed session
func (c *Counter) Decrement() int64 {
	n := c.n.Add(-1)
	if n < 0 {
		logger.Log.Warn().Int64("count", n).Msg("Unapplied change counter went negative")
	}
	return n
}

// Count returns the number of open sessions
func (c *Counter) Count() int64 {
	return c.n.Load()
}

// HasUnappliedChanges reports whether any session is still open
func (c *Counter) HasUnappliedChanges() bool {
	return c.Count() > 0
}

// Release returns a function that decrements the counter on its first call
// and does nothing on later calls.
func (c *Counter) Release() func() {
	return sync.OnceFunc(func() {
		c.Decrement()
	})
}
