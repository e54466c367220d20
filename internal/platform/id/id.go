package id

import (
	"strconv"
	"sync"

	"mapty/internal/platform/clock"
)

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

const timestampDigits = 10

// Timestamp derives identifiers from the clock's Unix milliseconds, keeping
// the trailing ten digits. Two calls in the same millisecond never collide:
// the second one is bumped past the previous value.
type Timestamp struct {
	clock clock.Clock

	mu   sync.Mutex
	last int64
}

func NewTimestamp(clk clock.Clock) *Timestamp {
	return &Timestamp{clock: clk}
}

func (g *Timestamp) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.clock.Now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms

	s := strconv.FormatInt(ms, 10)
	if len(s) > timestampDigits {
		s = s[len(s)-timestampDigits:]
	}
	return s
}
