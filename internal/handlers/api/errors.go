package api

// APIError is a custom error type for api errors
type APIError string

func (e APIError) Error() string {
	return string(e)
}

const (
	ErrNilConfig      APIError = "config cannot be nil"
	ErrNilCoordinator APIError = "coordinator cannot be nil"
	ErrNilGateway     APIError = "gateway cannot be nil"
)
