package itinerary

import (
	"errors"
	"fmt"
)

var (
	// ErrUnresolvedCity is wrapped by every InputResolutionError.
	ErrUnresolvedCity = errors.New("city could not be resolved to a known stop")

	// ErrEmptyStopPool is returned when the pool cannot support any itinerary.
	ErrEmptyStopPool = errors.New("stop pool has no usable stops")
)

// InputResolutionError is returned when a start or end label matches no stop.
type InputResolutionError struct {
	Role  string // "start" or "end"
	Label string
}

func (e *InputResolutionError) Error() string {
	return fmt.Sprintf("%s city %q: %v", e.Role, e.Label, ErrUnresolvedCity)
}

func (e *InputResolutionError) Unwrap() error {
	return ErrUnresolvedCity
}

// ErrInvalidRequest is returned when planning arguments are invalid.
type ErrInvalidRequest struct {
	Field  string
	Reason string
}

func (e ErrInvalidRequest) Error() string {
	return e.Field + ": " + e.Reason
}

// ErrInvalidConfig is returned when the planning configuration is invalid.
type ErrInvalidConfig struct {
	Field  string
	Reason string
}

func (e ErrInvalidConfig) Error() string {
	return e.Field + ": " + e.Reason
}
