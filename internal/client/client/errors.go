package client

import "errors"

var (
	ErrUnavailable   = errors.New("server unavailable")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrCannotConnect = errors.New("Cannot connect to game server. Check if backend is running.")
)

// defaultFailureMessage is used when a failed response carries no "error".
const defaultFailureMessage = "Request failed"

// RequestError is returned by every failed API request. Message is meant for
// the user; Err, when set, is one of the sentinels above or the transport
// cause.
type RequestError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
