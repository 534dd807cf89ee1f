package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmswright/fieldlog/internal/models"
)

// PersonWithVisits is the consistency unit the visit rules run against: a
// person row plus every visit it owns. All mutations validate before any
// state changes, so a failed call leaves the aggregate untouched.
type PersonWithVisits struct {
	Person models.Person
	Visits []models.Visit
}

func NewPerson(userID string, name string, address *string, notes *string, now time.Time) (models.Person, error) {
	if err := ValidatePersonName(name); err != nil {
		return models.Person{}, err
	}
	if err := ValidatePersonNotes(notes); err != nil {
		return models.Person{}, err
	}
	return models.Person{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Address:   address,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func newVisit(personID string, userID string, visitedAt time.Time, notes *string, now time.Time) (models.Visit, error) {
	if err := ValidateVisitDate(visitedAt, now); err != nil {
		return models.Visit{}, err
	}
	if err := ValidateVisitNotes(notes); err != nil {
		return models.Visit{}, err
	}
	return models.Visit{
		ID:        uuid.NewString(),
		PersonID:  personID,
		UserID:    userID,
		VisitedAt: visitedAt,
		Notes:     notes,
		CreatedAt: now,
	}, nil
}

func (aggregate *PersonWithVisits) UpdateName(name string, now time.Time) error {
	if err := ValidatePersonName(name); err != nil {
		return err
	}
	aggregate.Person.Name = name
	aggregate.Person.UpdatedAt = now
	return nil
}

func (aggregate *PersonWithVisits) UpdateAddress(address *string, now time.Time) {
	aggregate.Person.Address = address
	aggregate.Person.UpdatedAt = now
}

func (aggregate *PersonWithVisits) UpdateNotes(notes *string, now time.Time) error {
	if err := ValidatePersonNotes(notes); err != nil {
		return err
	}
	aggregate.Person.Notes = notes
	aggregate.Person.UpdatedAt = now
	return nil
}

// AddVisit enforces the one-visit-per-calendar-day rule before the new visit
// is constructed, matching the order the date window is checked in.
func (aggregate *PersonWithVisits) AddVisit(visitedAt time.Time, notes *string, now time.Time) (models.Visit, error) {
	dayKey := VisitDayKey(visitedAt)
	for _, existing := range aggregate.Visits {
		if VisitDayKey(existing.VisitedAt) == dayKey {
			return models.Visit{}, NewBusinessRuleError(fmt.Sprintf("A visit is already recorded for %s", dayKey))
		}
	}

	visit, err := newVisit(aggregate.Person.ID, aggregate.Person.UserID, visitedAt, notes, now)
	if err != nil {
		return models.Visit{}, err
	}

	aggregate.Visits = append(aggregate.Visits, visit)
	aggregate.Person.UpdatedAt = now
	return visit, nil
}

// UpdateVisit replaces the visit in place, preserving its ID and original
// CreatedAt. The target day may not collide with a different visit.
func (aggregate *PersonWithVisits) UpdateVisit(visitID string, visitedAt time.Time, notes *string, now time.Time) (models.Visit, error) {
	index := aggregate.visitIndex(visitID)
	if index < 0 {
		return models.Visit{}, NewValidationError("Visit not found")
	}

	dayKey := VisitDayKey(visitedAt)
	for _, other := range aggregate.Visits {
		if other.ID != visitID && VisitDayKey(other.VisitedAt) == dayKey {
			return models.Visit{}, NewBusinessRuleError(fmt.Sprintf("A visit is already recorded for %s", dayKey))
		}
	}

	if err := ValidateVisitDate(visitedAt, now); err != nil {
		return models.Visit{}, err
	}
	if err := ValidateVisitNotes(notes); err != nil {
		return models.Visit{}, err
	}

	existing := aggregate.Visits[index]
	replacement := models.Visit{
		ID:        existing.ID,
		PersonID:  existing.PersonID,
		UserID:    existing.UserID,
		VisitedAt: visitedAt,
		Notes:     notes,
		CreatedAt: existing.CreatedAt,
	}
	aggregate.Visits[index] = replacement
	aggregate.Person.UpdatedAt = now
	return replacement, nil
}

func (aggregate *PersonWithVisits) RemoveVisit(visitID string, now time.Time) error {
	index := aggregate.visitIndex(visitID)
	if index < 0 {
		return NewValidationError("Visit not found")
	}
	aggregate.Visits = append(aggregate.Visits[:index], aggregate.Visits[index+1:]...)
	aggregate.Person.UpdatedAt = now
	return nil
}

func (aggregate *PersonWithVisits) HasVisit(visitID string) bool {
	return aggregate.visitIndex(visitID) >= 0
}

func (aggregate *PersonWithVisits) VisitCount() int {
	return len(aggregate.Visits)
}

func (aggregate *PersonWithVisits) visitIndex(visitID string) int {
	for index, visit := range aggregate.Visits {
		if visit.ID == visitID {
			return index
		}
	}
	return -1
}
