package reservation

import (
	"errors"
	"fmt"
)

var (
	// ErrRemote marks any failed or timed-out call to a remote service.
	ErrRemote = errors.New("remote service error")

	// ErrVenueLookup marks a restaurant with no resolvable platform id.
	ErrVenueLookup = errors.New("venue lookup failed")
)

// RemoteErr wraps err as an ErrRemote, tagged with the service name.
func RemoteErr(service string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrRemote, service, err)
}
