package core

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure of a parse is fatal; callers distinguish the
// cause with errors.Is.
var (
	ErrMalformedToken      = errors.New("rtf: malformed token")
	ErrUnbalancedGroup     = errors.New("rtf: unbalanced group")
	ErrUnterminatedGroup   = errors.New("rtf: unterminated group")
	ErrTruncatedBinaryData = errors.New("rtf: truncated binary data")
	ErrConsumerAborted     = errors.New("rtf: consumer aborted")
)

// ParseError describes a fatal parse failure at a byte offset of the input.
// Kind is one of the Err* sentinels above; Err, when set, is the underlying
// cause (for example the error returned by a consumer callback).
type ParseError struct {
	Kind   error
	Pos    int64
	Detail string
	Err    error
}

func (e *ParseError) Error() string {
	msg := e.Kind.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	msg = fmt.Sprintf("%s at offset %d", msg, e.Pos)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the error kind and the cause to errors.Is and errors.As.
func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func malformed(pos int64, format string, args ...any) *ParseError {
	return &ParseError{Kind: ErrMalformedToken, Pos: pos, Detail: fmt.Sprintf(format, args...)}
}
