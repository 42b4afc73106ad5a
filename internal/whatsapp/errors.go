package whatsapp

import (
	"errors"
	"fmt"
)

// ErrTransport and ErrSerialization classify failures surfaced by this package.
var (
	ErrTransport     = errors.New("whatsapp: could not send notification")
	ErrSerialization = errors.New("whatsapp: malformed response body")

	// ErrResponseTooLarge marks a 2xx body cut at the read cap. It is
	// reported as a *SerializationError.
	ErrResponseTooLarge = errors.New("whatsapp: response too large")
)

// TransportError is returned when the request could not be delivered or the
// API answered with a non-2xx status.
type TransportError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%v: status %d: %v", ErrTransport, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%v: status %d: %s", ErrTransport, e.StatusCode, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("%v: %v", ErrTransport, e.Err)
	default:
		return ErrTransport.Error()
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// SerializationError is returned when a success response body is not valid JSON.
type SerializationError struct {
	Body string
	Err  error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("%v: %v", ErrSerialization, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

func (e *SerializationError) Is(target error) bool { return target == ErrSerialization }
