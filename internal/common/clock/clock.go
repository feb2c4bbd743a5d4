package clock

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock is the time source for the round engine and the scheduler.
// clockwork.Clock satisfies it, so tests can swap in clockwork.NewFakeClock.
type Clock interface {
	// Now returns the current time
	Now() time.Time

	// AfterFunc runs f on its own goroutine once d has elapsed
	AfterFunc(d time.Duration, f func()) clockwork.Timer
}

// New returns the process wall clock
func New() Clock {
	return clockwork.NewRealClock()
}
