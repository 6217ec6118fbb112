package protomessage

import "github.com/pkg/errors"

// InvalidProtocolBufferError is the error ParseFrom-style constructors
// return once wire.ErrMalformed reaches the top of a parse — the boundary
// where a raw wire-format error becomes a message-level one.
type InvalidProtocolBufferError struct {
	cause error
}

func (e *InvalidProtocolBufferError) Error() string {
	return "protomessage: invalid protocol buffer: " + e.cause.Error()
}

func (e *InvalidProtocolBufferError) Unwrap() error { return e.cause }

// WrapMalformed wraps a wire.ErrMalformed-rooted error as an
// InvalidProtocolBufferError, stamping a stack trace at the wrap site.
func WrapMalformed(err error) error {
	if err == nil {
		return nil
	}
	return &InvalidProtocolBufferError{cause: errors.WithStack(err)}
}

// UninitializedError reports that Build was called on a Builder missing one
// or more required fields, recursively.
type UninitializedError struct {
	MessageType string
}

func (e *UninitializedError) Error() string {
	return "protomessage: " + e.MessageType + " is missing required fields"
}
