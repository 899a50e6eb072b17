package api

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedStatus  = errors.New("unexpected response status")
	ErrDecode            = errors.New("failed to decode response")
	ErrNegativeLikeCount = errors.New("negative like count")
)

// Error is returned by every Client call that fails. StatusCode is zero when
// the request never got a response.
type Error struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s", e.Op, e.Err.Error())
	}
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Err.Error())
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode extracts the HTTP status from err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
