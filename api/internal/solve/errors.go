package solve

import (
	"errors"
	"fmt"
)

// Kind tags the outcome of a solve.
type Kind int

const (
	KindOK Kind = iota
	KindInvalidInput
	KindUpstreamFailure
	KindMalformedOutput
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindInvalidInput:
		return "invalid_input"
	case KindUpstreamFailure:
		return "upstream_failure"
	case KindMalformedOutput:
		return "malformed_model_output"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the only error type returned by Solver.Solve.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the outcome kind from err. nil is KindOK; errors that did not
// come from the solver are reported as upstream failures.
func KindOf(err error) Kind {
	if err == nil {
		return KindOK
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUpstreamFailure
}

// Fixed messages surfaced to HTTP clients.
const (
	MsgInvalidImage = "Invalid image data URL"
	MsgInvalidJSON  = "Model returned invalid JSON"
)

func invalidInput() *Error {
	return &Error{Kind: KindInvalidInput, Msg: MsgInvalidImage}
}

func upstreamFailure(err error) *Error {
	return &Error{Kind: KindUpstreamFailure, Msg: err.Error(), Err: err}
}

func malformedOutput(err error) *Error {
	return &Error{Kind: KindMalformedOutput, Msg: MsgInvalidJSON, Err: err}
}
