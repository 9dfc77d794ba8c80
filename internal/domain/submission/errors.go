package submission

import (
	"errors"
	"fmt"
)

var (
	ErrNotVerified = errors.New("human verification failed")
	ErrJobNotFound = errors.New("job posting not found")
)

// RateLimitedError is returned when the sliding window is full; the wait is
// surfaced to the user in minutes.
type RateLimitedError struct {
	RetryMinutes int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("too many submissions, try again in %d minutes", e.RetryMinutes)
}
