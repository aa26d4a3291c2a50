package adapter

import (
	"errors"
	"fmt"
)

// ErrObjectNotFound is wrapped by errors for objects absent from the store.
var ErrObjectNotFound = errors.New("object not found")

// Category classifies a failed remote call.
type Category string

const (
	// CategoryTimeout: the call exceeded its bounded wait and was cancelled.
	CategoryTimeout Category = "timeout"
	// CategoryNetwork: the store could not be reached.
	CategoryNetwork Category = "network"
	// CategoryAuth: the store rejected the credentials or permissions.
	CategoryAuth Category = "auth"
	// CategoryCORS: a cross-origin policy blocked the request.
	CategoryCORS Category = "cors"
	// CategoryNotFound: the object does not exist. Not a failure as such.
	CategoryNotFound Category = "not_found"
	// CategoryUnknown: anything else.
	CategoryUnknown Category = "unknown"
)

// RemoteError is the error type returned by every [ObjectStore].
type RemoteError struct {
	Op       string
	Key      string
	Category Category
	Err      error
}

func newRemoteError(op, key string, category Category, err error) *RemoteError {
	return &RemoteError{Op: op, Key: key, Category: category, Err: err}
}

func (e *RemoteError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Category, e.Err)
	}
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Key, e.Category, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err signals a missing object.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrObjectNotFound)
}

// CategoryOf returns the category of err. Errors that did not come from an
// [ObjectStore] are classified from their transport details.
func CategoryOf(err error) Category {
	if err == nil {
		return ""
	}
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr.Category
	}
	return classifyTransportError(err)
}

// Describe formats err as "<category>: <detail>".
func Describe(err error) string {
	if err == nil {
		return ""
	}
	detail := err.Error()
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) && remoteErr.Err != nil {
		detail = remoteErr.Err.Error()
	}
	return fmt.Sprintf("%s: %s", CategoryOf(err), detail)
}
