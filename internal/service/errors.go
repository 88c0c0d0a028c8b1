package service

import "fmt"

// ValidationError reports a malformed or missing input field.  It names
// the offending field so the HTTP layer can return a precise message, and
// it is a distinct type from the conflict and not-found sentinels so
// handlers can pick the right status code with errors.As / errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
