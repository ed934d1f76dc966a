package life

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ThroughputReporter writes a millisecond timestamp every Every generations
// and closes Done once Limit generations have been committed. A zero Limit
// never closes Done.
type ThroughputReporter struct {
	out   io.Writer
	every int
	limit int
	now   func() time.Time

	once sync.Once
	done chan struct{}
}

// NewThroughputReporter writes timestamps to out.
func NewThroughputReporter(out io.Writer, every, limit int) *ThroughputReporter {
	if every < 1 {
		every = 1
	}
	return &ThroughputReporter{
		out:   out,
		every: every,
		limit: limit,
		now:   time.Now,
		done:  make(chan struct{}),
	}
}

// Observe is installed as the board observer.
func (t *ThroughputReporter) Observe(generation int) {
	if generation%t.every == 0 {
		fmt.Fprintf(t.out, "%d, ", t.now().UnixMilli())
	}
	if t.limit > 0 && generation >= t.limit {
		t.once.Do(func() { close(t.done) })
	}
}

// Done is closed when the generation limit is reached.
func (t *ThroughputReporter) Done() <-chan struct{} { return t.done }
