package highlight

import "fmt"

// InvalidPatternError reports a regex that failed to compile. The offending
// entry never enters the store.
type InvalidPatternError struct {
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *InvalidPatternError) Unwrap() error { return e.Err }

// NotFoundError reports an operation on a pattern identifier that is not in
// the store.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("pattern %s not found", e.ID)
}
