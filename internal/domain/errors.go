package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrBatchEmpty indicates that the batch interpreter produced no usable scenes.
var ErrBatchEmpty = errors.New("batch interpretation yielded zero scenes")

// TimeoutError reports that an operation exceeded its deadline, either a single
// transport call or an entire polling window.
type TimeoutError struct {
	Op      string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: timed out after %s", e.Op, e.Timeout)
}

// NetworkError reports a transport-level failure that happened before any
// response was received.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// GenerationError reports that a backend responded but signalled failure or
// returned a payload with no usable image. Err, when set, preserves the
// underlying cause for errors.Is/As inspection.
type GenerationError struct {
	Backend string
	Reason  string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Backend == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Backend, e.Reason)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// InterpretationError reports that the natural-language-to-blueprint step failed.
type InterpretationError struct {
	Err error
}

func (e *InterpretationError) Error() string {
	return fmt.Sprintf("interpretation failed: %v", e.Err)
}

func (e *InterpretationError) Unwrap() error { return e.Err }
