package extract

import "fmt"

// ParseError represents a failure to parse a page's HTML. It aborts
// extraction for that page only, never the surrounding run.
type ParseError struct {
	URL   string
	Cause error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error for %s: %v", e.URL, e.Cause)
	}
	return fmt.Sprintf("parse error for %s", e.URL)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
