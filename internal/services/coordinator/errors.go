package coordinator

// CoordinatorError is a custom error type for coordinator errors
type CoordinatorError string

func (e CoordinatorError) Error() string {
	return string(e)
}

const (
	ErrNilConfig      CoordinatorError = "config cannot be nil"
	ErrNilGameService CoordinatorError = "game service cannot be nil"
	ErrNilScheduler   CoordinatorError = "scheduler cannot be nil"
	ErrNilBroadcaster CoordinatorError = "broadcaster cannot be nil"
	ErrNilClock       CoordinatorError = "clock cannot be nil"
	ErrNilIntent      CoordinatorError = "intent cannot be nil"
	ErrUnknownIntent  CoordinatorError = "unknown intent"
)
