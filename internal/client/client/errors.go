package client

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: the event (or guess) does not exist or was removed.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized: the server rejected the admin secret or participant token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrSubmissionFailed: a request did not succeed for any other reason.
	ErrSubmissionFailed = errors.New("submission failed")
	// ErrUnavailable: the server could not be reached. It also matches
	// ErrSubmissionFailed.
	ErrUnavailable = fmt.Errorf("server unavailable: %w", ErrSubmissionFailed)
)

// StatusError keeps the HTTP status behind a sentinel.
type StatusError struct {
	Status int
	Err    error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Err, e.Status)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}
