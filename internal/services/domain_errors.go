package services

import (
	"errors"
	"fmt"
)

// ErrorKind tags a DomainError with the category the HTTP boundary maps to a
// status code. Dispatch is on the tag, never on the concrete error value.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindUnauthorized
	KindNotFound
	KindConflict
)

type DomainError struct {
	Kind    ErrorKind
	Message string
}

func (domainError *DomainError) Error() string {
	return domainError.Message
}

func NewValidationError(message string) *DomainError {
	return &DomainError{Kind: KindValidation, Message: message}
}

func NewUnauthorizedError(message string) *DomainError {
	return &DomainError{Kind: KindUnauthorized, Message: message}
}

func NewNotFoundError(message string) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: message}
}

// NewBusinessRuleError reports a state conflict such as a duplicate visit day
// or a report targeting a future month.
func NewBusinessRuleError(message string) *DomainError {
	return &DomainError{Kind: KindConflict, Message: message}
}

func NewPersonNotFoundError(personID string) *DomainError {
	return NewNotFoundError(fmt.Sprintf("Person with ID %s not found", personID))
}

func NewVisitNotFoundError(visitID string) *DomainError {
	return NewNotFoundError(fmt.Sprintf("Visit with ID %s not found", visitID))
}

func NewReportNotFoundError(reportID string) *DomainError {
	return NewNotFoundError(fmt.Sprintf("Report with ID %s not found", reportID))
}

func NewTimeEntryNotFoundError(timeID string) *DomainError {
	return NewNotFoundError(fmt.Sprintf("Time record with ID %s not found", timeID))
}

func NewDuplicateReportError(month int, year int) *DomainError {
	return NewBusinessRuleError(fmt.Sprintf("A report already exists for %d/%d", month, year))
}

// KindOf extracts the error kind from anywhere in a wrapped chain.
func KindOf(err error) (ErrorKind, bool) {
	var domainError *DomainError
	if errors.As(err, &domainError) {
		return domainError.Kind, true
	}
	return 0, false
}
