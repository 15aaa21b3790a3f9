package service

import (
	"errors"
	"fmt"
)

// ValidationError means the workflow was rejected before any externally
// visible side effect. Recoverable by fixing the input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// UploadError aborts the workflow during media finalization. No posting
// call is made after one; files uploaded earlier in the batch stay where
// they are.
type UploadError struct {
	Filename string
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("uploading %s: %v", e.Filename, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// PostingError is a transport-level failure calling a posting endpoint.
// By the time it surfaces, another strategy group may already have posted.
type PostingError struct {
	Endpoint string
	Err      error
}

func (e *PostingError) Error() string {
	return fmt.Sprintf("posting via %s: %v", e.Endpoint, e.Err)
}

func (e *PostingError) Unwrap() error {
	return e.Err
}

// ErrRunInFlight rejects a second publish or schedule attempt on a
// workflow whose previous attempt has not settled.
var ErrRunInFlight = errors.New("a publish or schedule attempt is already in flight for this workflow")
