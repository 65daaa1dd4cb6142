package search

import "fmt"

// QueryError indicates the record store failed to execute a composed query.
type QueryError struct {
	Message string
	Cause   error
}

func (e *QueryError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("search: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("search: %s", e.Message)
}

func (e *QueryError) Unwrap() error {
	return e.Cause
}
