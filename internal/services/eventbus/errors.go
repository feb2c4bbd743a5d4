package eventbus

// EventBusError is a custom error type for event bus errors
type EventBusError string

func (e EventBusError) Error() string {
	return string(e)
}

const (
	ErrNilConfig      EventBusError = "config cannot be nil"
	ErrNilPrimary     EventBusError = "primary broadcaster cannot be nil"
	ErrMissingSubject EventBusError = "subject cannot be empty"
)
