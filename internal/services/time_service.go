package services

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jmswright/fieldlog/internal/models"
)

// DefaultTimeType is always offered even before the user has logged anything.
const DefaultTimeType = "Ministry"

type TimeEntryStore interface {
	Save(entry *models.TimeEntry) error
	FindByID(timeID string, userID string) (models.TimeEntry, bool, error)
	ListByUser(userID string, options TimeListOptions) ([]models.TimeEntry, error)
	Delete(timeID string, userID string) error
	DistinctTypes(userID string) ([]string, error)
}

type MonthFilter struct {
	Month int
	Year  int
}

type TimeListOptions struct {
	Types       []string
	Month       *MonthFilter
	ServiceYear int
	Limit       int
	Offset      int
}

type TimeEntryInput struct {
	Type       string
	RecordedOn time.Time
	Hours      int
	Minutes    int
}

type TimeService struct {
	entries TimeEntryStore
}

func NewTimeService(entries TimeEntryStore) *TimeService {
	return &TimeService{entries: entries}
}

func newTimeEntry(userID string, input TimeEntryInput, now time.Time) (models.TimeEntry, error) {
	if err := ValidateTimeType(input.Type); err != nil {
		return models.TimeEntry{}, err
	}
	if err := ValidateTimeHours(input.Hours); err != nil {
		return models.TimeEntry{}, err
	}
	if err := ValidateTimeMinutes(input.Minutes); err != nil {
		return models.TimeEntry{}, err
	}
	if err := ValidateRecordedOn(input.RecordedOn, now); err != nil {
		return models.TimeEntry{}, err
	}
	return models.TimeEntry{
		ID:         uuid.NewString(),
		UserID:     userID,
		Type:       input.Type,
		RecordedOn: input.RecordedOn,
		Hours:      input.Hours,
		Minutes:    input.Minutes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func (service *TimeService) CreateEntry(userID string, input TimeEntryInput, now time.Time) (models.TimeEntry, error) {
	entry, err := newTimeEntry(userID, input, now)
	if err != nil {
		return models.TimeEntry{}, err
	}
	if err := service.entries.Save(&entry); err != nil {
		return models.TimeEntry{}, err
	}
	return entry, nil
}

func (service *TimeService) GetEntry(timeID string, userID string) (models.TimeEntry, error) {
	entry, found, err := service.entries.FindByID(timeID, userID)
	if err != nil {
		return models.TimeEntry{}, err
	}
	if !found {
		return models.TimeEntry{}, NewTimeEntryNotFoundError(timeID)
	}
	return entry, nil
}

func (service *TimeService) ListEntries(userID string, options TimeListOptions) ([]models.TimeEntry, error) {
	return service.entries.ListByUser(userID, options)
}

// UpdateEntry validates every field before the first assignment so a failing
// update never leaves a half-applied entry.
func (service *TimeService) UpdateEntry(timeID string, userID string, input TimeEntryInput, now time.Time) (models.TimeEntry, error) {
	entry, err := service.GetEntry(timeID, userID)
	if err != nil {
		return models.TimeEntry{}, err
	}

	if err := ValidateTimeType(input.Type); err != nil {
		return models.TimeEntry{}, err
	}
	if err := ValidateTimeHours(input.Hours); err != nil {
		return models.TimeEntry{}, err
	}
	if err := ValidateTimeMinutes(input.Minutes); err != nil {
		return models.TimeEntry{}, err
	}
	if err := ValidateRecordedOn(input.RecordedOn, now); err != nil {
		return models.TimeEntry{}, err
	}

	entry.Type = input.Type
	entry.RecordedOn = input.RecordedOn
	entry.Hours = input.Hours
	entry.Minutes = input.Minutes
	entry.UpdatedAt = now

	if err := service.entries.Save(&entry); err != nil {
		return models.TimeEntry{}, err
	}
	return entry, nil
}

func (service *TimeService) DeleteEntry(timeID string, userID string) error {
	if _, err := service.GetEntry(timeID, userID); err != nil {
		return err
	}
	return service.entries.Delete(timeID, userID)
}

// ListTypes returns the user's distinct entry types merged with the built-in
// default, sorted alphabetically.
func (service *TimeService) ListTypes(userID string) ([]string, error) {
	userTypes, err := service.entries.DistinctTypes(userID)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{DefaultTimeType: true}
	types := []string{DefaultTimeType}
	for _, entryType := range userTypes {
		if !seen[entryType] {
			seen[entryType] = true
			types = append(types, entryType)
		}
	}
	sort.Strings(types)
	return types, nil
}
