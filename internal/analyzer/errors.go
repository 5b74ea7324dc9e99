package analyzer

import "fmt"

// Kind classifies pipeline failures. Each kind has a fixed recovery
// policy, applied at the Analyze boundary:
//
//	KindValidation  — surfaced to the caller as a rejection
//	KindInvocation  — recovered into the degraded result
//	KindExtraction  — recovered into the degraded result
//	KindPersistence — logged and swallowed; result unaffected
type Kind string

const (
	KindValidation  Kind = "validation"
	KindInvocation  Kind = "invocation"
	KindExtraction  Kind = "extraction"
	KindPersistence Kind = "persistence"
)

// Error wraps a pipeline failure with its kind.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ErrMissingDisplayName is the one failure that reaches callers: a request
// without a display name is rejected before any remote call is made.
var ErrMissingDisplayName = &Error{
	Kind: KindValidation,
	Err:  fmt.Errorf("display name is required"),
}
