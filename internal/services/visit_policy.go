package services

import (
	"time"
	"unicode/utf8"
)

// ValidateVisitDate enforces the recording window: nothing in the future and
// nothing older than one year. A timestamp exactly one year ago is accepted.
func ValidateVisitDate(visitedAt time.Time, now time.Time) error {
	if visitedAt.After(now) {
		return NewValidationError("Cannot record visits for future dates")
	}
	oneYearAgo := now.AddDate(-1, 0, 0)
	if visitedAt.Before(oneYearAgo) {
		return NewValidationError("Cannot record visits older than 1 year")
	}
	return nil
}

func ValidateVisitNotes(notes *string) error {
	if notes != nil && utf8.RuneCountInString(*notes) > MaxNotesLength {
		return NewValidationError("Notes cannot exceed 2000 characters")
	}
	return nil
}

// VisitDayKey pins the one-visit-per-day rule to UTC calendar days so the
// check does not drift with the server locale.
func VisitDayKey(visitedAt time.Time) string {
	return visitedAt.UTC().Format("2006-01-02")
}
