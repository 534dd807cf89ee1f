package services

import (
	"strings"
	"unicode/utf8"
)

const (
	MaxPersonNameLength = 255
	MaxNotesLength      = 2000
)

func ValidatePersonName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError("Person name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxPersonNameLength {
		return NewValidationError("Person name cannot exceed 255 characters")
	}
	return nil
}

func ValidatePersonNotes(notes *string) error {
	if notes != nil && utf8.RuneCountInString(*notes) > MaxNotesLength {
		return NewValidationError("Notes cannot exceed 2000 characters")
	}
	return nil
}
