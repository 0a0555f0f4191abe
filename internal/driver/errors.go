package driver

import "fmt"

// Kind is an error taxonomy tag from spec §7. It names a kind, not a Go
// type, so callers can switch on it via errors.As(*Error) and inspect Kind.
type Kind string

const (
	KindInvalidKey     Kind = "invalid_key"
	KindTimeout        Kind = "timeout"
	KindAmbiguousClick Kind = "ambiguous_click"
	KindClickNotFound  Kind = "click_not_found"
	KindClosedSession  Kind = "closed_session"
	KindLaunchFailure  Kind = "launch_failure"
	KindWriteFailure   Kind = "write_failure"
)

// Error is the concrete error type Session operations return for the
// failure kinds above; Resize's check for non-positive geometry returns a
// plain error instead. Message is human-readable and diagnostic per spec
// §7's "user-visible behavior" requirements.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func closedErr(op string) *Error {
	return &Error{Kind: KindClosedSession, Message: fmt.Sprintf("%s: session is closed", op)}
}

func invalidKeyErr(err error) *Error {
	return &Error{Kind: KindInvalidKey, Message: err.Error(), Err: err}
}

func timeoutErr(op, snapshot string) *Error {
	return &Error{
		Kind:    KindTimeout,
		Message: fmt.Sprintf("%s: timed out\ncurrent screen:%s", op, snapshot),
	}
}

func ambiguousClickErr(count int, pat string) *Error {
	return &Error{
		Kind: KindAmbiguousClick,
		Message: fmt.Sprintf(
			"click: pattern %q found %d matches; pass {first: true} or use a more specific pattern",
			pat, count,
		),
	}
}

func clickNotFoundErr(pat string) *Error {
	return &Error{Kind: KindClickNotFound, Message: fmt.Sprintf("click: pattern %q not found", pat)}
}

func launchFailureErr(err error) *Error {
	return &Error{Kind: KindLaunchFailure, Message: fmt.Sprintf("launch: %v", err), Err: err}
}

func writeFailureErr(op string, err error) *Error {
	return &Error{Kind: KindWriteFailure, Message: fmt.Sprintf("%s: write failed: %v", op, err), Err: err}
}
