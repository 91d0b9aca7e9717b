package store

import (
	"errors"
	"fmt"
)

// Kind classifies store failures so callers can distinguish a missing
// entity from an invariant violation from a broken backend.
type Kind int

const (
	// KindNotFound means a referenced user or message does not exist.
	KindNotFound Kind = iota + 1
	// KindInvalidOperation means the request violates a state-machine or
	// data invariant: duplicate friend request, malformed payload, empty
	// delete or post.
	KindInvalidOperation
	// KindUnavailable means the underlying database failed. The core does
	// not retry.
	KindUnavailable
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NotFoundf(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Invalidf(format string, args ...any) error {
	return &Error{Kind: KindInvalidOperation, Message: fmt.Sprintf(format, args...)}
}

func unavailable(op string, err error) error {
	return &Error{Kind: KindUnavailable, Message: op, Err: err}
}

// KindOf returns the kind of a store error, or 0 for foreign errors.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}

func IsNotFound(err error) bool         { return KindOf(err) == KindNotFound }
func IsInvalidOperation(err error) bool { return KindOf(err) == KindInvalidOperation }
