package directory

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrUnavailable is wrapped by a NetworkError when the circuit breaker
// rejects a request without contacting the directory.
var ErrUnavailable = errors.New("directory temporarily unavailable")

// NetworkError is a transport-level failure reaching the directory
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	var timeout net.Error
	switch {
	case errors.Is(e.Err, ErrUnavailable):
		return "User directory is temporarily unavailable, try again shortly"
	case errors.Is(e.Err, context.DeadlineExceeded),
		errors.As(e.Err, &timeout) && timeout.Timeout():
		return "Request to the user directory timed out"
	default:
		return "Could not reach the user directory"
	}
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ProtocolError is a non-2xx response
type ProtocolError struct {
	StatusCode int
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("Server responded with status %d", e.StatusCode)
}

// DecodeError is a payload that does not have the expected shape
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "Received an unexpected response from the user directory"
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Kind names the failure class of err for logs and metrics:
// "network", "protocol", "decode", "canceled" or "unknown".
func Kind(err error) string {
	var netErr *NetworkError
	var protoErr *ProtocolError
	var decodeErr *DecodeError
	switch {
	case IsCanceled(err):
		return "canceled"
	case errors.As(err, &protoErr):
		return "protocol"
	case errors.As(err, &decodeErr):
		return "decode"
	case errors.As(err, &netErr):
		return "network"
	default:
		return "unknown"
	}
}

// IsCanceled reports whether err means the caller abandoned the request
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// Describe returns the short message shown to the user for err
func Describe(err error) string {
	var netErr *NetworkError
	var protoErr *ProtocolError
	var decodeErr *DecodeError
	switch {
	case errors.As(err, &protoErr):
		return protoErr.Error()
	case errors.As(err, &decodeErr):
		return decodeErr.Error()
	case errors.As(err, &netErr):
		return netErr.Error()
	default:
		return "An unexpected error occurred"
	}
}
