package jsonlink

import "github.com/viant/jsonlink/parse"

// Error is the single parse-side error kind: a stable reason plus the
// byte offset into the original input.
type Error = parse.Error

const (
	ReasonUnexpectedEnd   = parse.ReasonUnexpectedEnd
	ReasonInvalidEscape   = parse.ReasonInvalidEscape
	ReasonInvalidNumber   = parse.ReasonInvalidNumber
	ReasonNumericOverflow = parse.ReasonNumericOverflow
	ReasonInvalidDate     = parse.ReasonInvalidDate
	ReasonMissingMember   = parse.ReasonMissingMember
	ReasonUnknownMember   = parse.ReasonUnknownMember
	ReasonPathNotFound    = parse.ReasonPathNotFound
)

// SinkError wraps a failure reported by the caller's Sink so I/O
// faults stay distinguishable from parse errors.
type SinkError struct {
	Err error
}

func (e *SinkError) Error() string { return "sink: " + e.Err.Error() }

func (e *SinkError) Unwrap() error { return e.Err }
