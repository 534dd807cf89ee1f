package services

import (
	"strings"
	"time"
	"unicode/utf8"
)

const MaxTimeTypeLength = 100

func ValidateTimeType(timeType string) error {
	if strings.TrimSpace(timeType) == "" {
		return NewValidationError("Time type cannot be empty")
	}
	if utf8.RuneCountInString(timeType) > MaxTimeTypeLength {
		return NewValidationError("Time type cannot exceed 100 characters")
	}
	return nil
}

func ValidateTimeHours(hours int) error {
	if hours < 0 || hours > 24 {
		return NewValidationError("Hours must be an integer between 0 and 24")
	}
	return nil
}

func ValidateTimeMinutes(minutes int) error {
	if minutes < 0 || minutes > 59 {
		return NewValidationError("Minutes must be an integer between 0 and 59")
	}
	return nil
}

// ValidateRecordedOn rejects anything after the end of the current UTC day.
func ValidateRecordedOn(recordedOn time.Time, now time.Time) error {
	today := now.UTC()
	endOfToday := time.Date(today.Year(), today.Month(), today.Day(), 23, 59, 59, 999000000, time.UTC)
	if recordedOn.After(endOfToday) {
		return NewBusinessRuleError("Cannot record time for future dates")
	}
	return nil
}
