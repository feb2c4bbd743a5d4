package scheduler

//go:generate mockgen -package=mocks -destination=mocks/mock_scheduler.go github.com/KirkDiggler/timebid/internal/services/scheduler Scheduler

import (
	"time"
)

// Scheduler runs delayed and periodic callbacks, at most one per key
type Scheduler interface {
	// Schedule runs fn once after delay, replacing any timer under key
	Schedule(key string, fn func(), delay time.Duration)

	// ScheduleRepeating runs fn every interval until cancelled, replacing any timer under key
	ScheduleRepeating(key string, fn func(), interval time.Duration)

	// Cancel stops the timer under key; unknown keys are ignored
	Cancel(key string)

	// CancelAll stops every timer
	CancelAll()

	// Active reports whether a timer is registered under key
	Active(key string) bool
}
