package scheduler

import (
	"sync"
	"time"

	"github.com/KirkDiggler/timebid/internal/common/clock"
	"github.com/jonboulle/clockwork"
)

// Config holds the dependencies of the scheduler
type Config struct {
	Clock clock.Clock
}

type entry struct {
	timer    clockwork.Timer
	interval time.Duration
}

type service struct {
	clock clock.Clock

	mu      sync.Mutex
	entries map[string]*entry
}

// New creates a scheduler backed by cfg.Clock
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	return &service{
		clock:   cfg.Clock,
		entries: make(map[string]*entry),
	}, nil
}

func (s *service) Schedule(key string, fn func(), delay time.Duration) {
	s.arm(key, fn, delay, 0)
}

func (s *service) ScheduleRepeating(key string, fn func(), interval time.Duration) {
	s.arm(key, fn, interval, interval)
}

func (s *service) Cancel(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked(key)
}

func (s *service) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.entries {
		s.stopLocked(key)
	}
}

func (s *service) Active(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.entries[key]
	return ok
}

func (s *service) arm(key string, fn func(), delay, interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked(key)

	e := &entry{interval: interval}
	s.entries[key] = e
	e.timer = s.clock.AfterFunc(delay, func() { s.fire(key, e, fn) })
}

// fire runs fn only if e is still the live entry for key.
// Repeating entries are re-armed before fn runs so a slow callback cannot stretch the period.
func (s *service) fire(key string, e *entry, fn func()) {
	s.mu.Lock()
	if s.entries[key] != e {
		s.mu.Unlock()
		return
	}
	if e.interval > 0 {
		e.timer = s.clock.AfterFunc(e.interval, func() { s.fire(key, e, fn) })
	} else {
		delete(s.entries, key)
	}
	s.mu.Unlock()

	fn()
}

func (s *service) stopLocked(key string) {
	e, ok := s.entries[key]
	if !ok {
		return
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	delete(s.entries, key)
}
