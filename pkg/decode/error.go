package decode

import (
	"errors"
	"fmt"
)

var (
	ErrMissing = errors.New("decode: missing field")
	ErrType    = errors.New("decode: wrong type")
	ErrNull    = errors.New("decode: null document")
)

// Error reports why a document could not be decoded. Index is the element
// position for list bodies and -1 otherwise; Field is empty when the failure
// is not tied to one member.
type Error struct {
	Index  int
	Field  string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	msg := "decode"
	if e.Index >= 0 {
		msg += fmt.Sprintf(" [%d]", e.Index)
	}
	if e.Field != "" {
		msg += fmt.Sprintf(" field %q", e.Field)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }
