// Package errors defines the single domain error taxonomy shared by the
// account and transaction engines. Every rule violation surfaces as a
// *DomainError carrying a discrete code; there is no deeper hierarchy.
package errors

import "fmt"

// DomainError is a business-rule failure with a machine-readable code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches two domain errors by code so callers can use errors.Is
// against the package sentinels.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}
