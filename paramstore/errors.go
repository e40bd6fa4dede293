package paramstore

import (
	"errors"
	"fmt"
)

// RemoteUnavailableError means the parameter store could not be read
// at all (network, auth, throttling on the fetch path).  Always fatal:
// no diff happens without a remote snapshot.
type RemoteUnavailableError struct {
	Prefix string
	cause  error
}

func NewRemoteUnavailableError(prefix string, cause error) *RemoteUnavailableError {
	return &RemoteUnavailableError{Prefix: prefix, cause: cause}
}

func (e *RemoteUnavailableError) Error() string {
	return fmt.Sprintf("parameter store unavailable under %s: %s", e.Prefix, e.cause)
}

func (e *RemoteUnavailableError) Unwrap() error {
	return e.cause
}

func IsRemoteUnavailable(err error) bool {
	var e *RemoteUnavailableError
	return errors.As(err, &e)
}

// WriteError means a single put failed.  The apply loop records it and
// moves on; it never aborts sibling keys.
type WriteError struct {
	Key   string
	cause error
}

func NewWriteError(key string, cause error) *WriteError {
	return &WriteError{Key: key, cause: cause}
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing parameter %s: %s", e.Key, e.cause)
}

func (e *WriteError) Unwrap() error {
	return e.cause
}

func IsWriteError(err error) bool {
	var e *WriteError
	return errors.As(err, &e)
}
