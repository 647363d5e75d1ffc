package domain

import (
	"errors"
	"fmt"
)

var (
	ErrConfigInvalid    = errors.New("invalid configuration")
	ErrConnectionFailed = errors.New("database connection failed")
	ErrInvalidArgument  = errors.New("invalid argument")
)

// DumpError reports a dump process that exited non-zero or failed to
// start. Stderr holds the captured process output for diagnosis.
type DumpError struct {
	Stderr string
	Err    error
}

func (e *DumpError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("dump failed: %v: %s", e.Err, e.Stderr)
	}
	return fmt.Sprintf("dump failed: %v", e.Err)
}

func (e *DumpError) Unwrap() error { return e.Err }

// UploadError wraps a transport or authorization failure from the
// object store, preserving the underlying message.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string { return fmt.Sprintf("upload failed: %v", e.Err) }

func (e *UploadError) Unwrap() error { return e.Err }
