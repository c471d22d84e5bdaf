package errors

import "fmt"

// ColumnError is one entry of a structured per-column failure report.
// Encode and normalize operations collect these instead of aborting: a
// failure in one column never affects its siblings.
type ColumnError struct {
	Column  string    `json:"column"`
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
}

// Error implements the error interface
func (e ColumnError) Error() string {
	return fmt.Sprintf("column %q: [%s] %s", e.Column, e.Type, e.Message)
}

// NewColumnError creates a report entry for a column-local failure.
func NewColumnError(column, message string) ColumnError {
	return ColumnError{
		Column:  column,
		Type:    ErrTypeColumnOperation,
		Message: message,
	}
}

// ColumnReport is the collected outcome of a per-column operation pass.
type ColumnReport []ColumnError

// Failed returns the names of the columns that failed, in report order.
func (r ColumnReport) Failed() []string {
	names := make([]string, len(r))
	for i, e := range r {
		names[i] = e.Column
	}
	return names
}

// HasErrors reports whether any column failed.
func (r ColumnReport) HasErrors() bool {
	return len(r) > 0
}
