package scheduler

// SchedulerError is a scheduler construction error
type SchedulerError string

func (e SchedulerError) Error() string {
	return string(e)
}

const (
	ErrNilConfig SchedulerError = "config cannot be nil"
	ErrNilClock  SchedulerError = "clock cannot be nil"
)
