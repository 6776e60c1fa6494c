package summarizer

import (
	"errors"
	"fmt"
)

// Kind classifies why a summarization produced no result.
type Kind int

const (
	KindUnexpected Kind = iota
	KindMissingDependency
	KindFileNotFound
	KindPermissionDenied
	KindUnreadable
	KindEmptyInput
	KindServiceError
	KindMalformedResponse
	KindWriteFailed
	KindInterrupted
)

func (k Kind) String() string {
	switch k {
	case KindMissingDependency:
		return "missing dependency"
	case KindFileNotFound:
		return "file not found"
	case KindPermissionDenied:
		return "permission denied"
	case KindUnreadable:
		return "unreadable input"
	case KindEmptyInput:
		return "empty input"
	case KindServiceError:
		return "service error"
	case KindMalformedResponse:
		return "malformed response"
	case KindWriteFailed:
		return "write failed"
	case KindInterrupted:
		return "interrupted"
	default:
		return "unexpected"
	}
}

var (
	ErrEmptyInput         = errors.New("input file is empty")
	ErrServiceUnavailable = errors.New("local model service is not reachable")
	ErrModelNotPulled     = errors.New("model is not available locally")
)

// Error is returned for every failed summarization.
type Error struct {
	Kind  Kind
	Path  string
	Model string
	Err   error
}

func (e *Error) Error() string {
	switch {
	case e.Path != "":
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
	case e.Model != "":
		return fmt.Sprintf("%s: model %s: %v", e.Kind, e.Model, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind carried by err, or KindUnexpected.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}
