package tree

import "fmt"

// RemoteListingError is returned when a directory listing fails upstream.
// StatusCode is 0 when no response was received (transport failure, rejected
// path); Err then holds the cause.
type RemoteListingError struct {
	Path       string
	StatusCode int
	Status     string
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *RemoteListingError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("GitHub error: %s", e.Status)
	}
	return fmt.Sprintf("GitHub error (%d): %s", e.StatusCode, e.Status)
}

// Unwrap returns the underlying failure, if any.
func (e *RemoteListingError) Unwrap() error {
	return e.Err
}

// UnexpectedShapeError is returned when a directory listing is not a list of
// entries, e.g. when the path names a single file.
type UnexpectedShapeError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *UnexpectedShapeError) Error() string {
	return fmt.Sprintf("unexpected response from the GitHub API for %q", e.Path)
}

// Unwrap returns the decoding error, if any.
func (e *UnexpectedShapeError) Unwrap() error {
	return e.Err
}
