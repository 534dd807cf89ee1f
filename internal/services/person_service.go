package services

import (
	"time"
)

// PersonStore is the persistence surface the person use cases need. Every
// lookup is scoped by user; rows owned by another user read as absent.
type PersonStore interface {
	Save(aggregate *PersonWithVisits) error
	FindByID(personID string, userID string) (PersonWithVisits, bool, error)
	FindByVisitID(visitID string, userID string) (PersonWithVisits, bool, error)
	ListByUser(userID string, options PersonListOptions) ([]PersonWithVisits, error)
	Delete(personID string, userID string) error
	DeleteVisit(visitID string, userID string) error
	Exists(personID string, userID string) (bool, error)
}

type PersonListOptions struct {
	Search string
	Limit  int
	Offset int
}

type PersonInput struct {
	Name    string
	Address *string
	Notes   *string
}

type VisitInput struct {
	VisitedAt time.Time
	Notes     *string
}

type PersonService struct {
	persons PersonStore
}

func NewPersonService(persons PersonStore) *PersonService {
	return &PersonService{persons: persons}
}

func (service *PersonService) CreatePerson(userID string, input PersonInput, now time.Time) (PersonWithVisits, error) {
	person, err := NewPerson(userID, input.Name, input.Address, input.Notes, now)
	if err != nil {
		return PersonWithVisits{}, err
	}

	aggregate := PersonWithVisits{Person: person}
	if err := service.persons.Save(&aggregate); err != nil {
		return PersonWithVisits{}, err
	}
	return aggregate, nil
}

func (service *PersonService) GetPerson(personID string, userID string) (PersonWithVisits, error) {
	aggregate, found, err := service.persons.FindByID(personID, userID)
	if err != nil {
		return PersonWithVisits{}, err
	}
	if !found {
		return PersonWithVisits{}, NewPersonNotFoundError(personID)
	}
	return aggregate, nil
}

func (service *PersonService) ListPersons(userID string, options PersonListOptions) ([]PersonWithVisits, error) {
	return service.persons.ListByUser(userID, options)
}

func (service *PersonService) UpdatePerson(personID string, userID string, input PersonInput, now time.Time) (PersonWithVisits, error) {
	aggregate, err := service.GetPerson(personID, userID)
	if err != nil {
		return PersonWithVisits{}, err
	}

	if err := aggregate.UpdateName(input.Name, now); err != nil {
		return PersonWithVisits{}, err
	}
	if err := aggregate.UpdateNotes(input.Notes, now); err != nil {
		return PersonWithVisits{}, err
	}
	aggregate.UpdateAddress(input.Address, now)

	if err := service.persons.Save(&aggregate); err != nil {
		return PersonWithVisits{}, err
	}
	return aggregate, nil
}

// DeletePerson removes the person and every visit it owns.
func (service *PersonService) DeletePerson(personID string, userID string) error {
	exists, err := service.persons.Exists(personID, userID)
	if err != nil {
		return err
	}
	if !exists {
		return NewPersonNotFoundError(personID)
	}
	return service.persons.Delete(personID, userID)
}

func (service *PersonService) RecordVisit(personID string, userID string, input VisitInput, now time.Time) (PersonWithVisits, error) {
	aggregate, err := service.GetPerson(personID, userID)
	if err != nil {
		return PersonWithVisits{}, err
	}

	if _, err := aggregate.AddVisit(input.VisitedAt, input.Notes, now); err != nil {
		return PersonWithVisits{}, err
	}

	if err := service.persons.Save(&aggregate); err != nil {
		return PersonWithVisits{}, err
	}
	return aggregate, nil
}

// UpdateVisitByID resolves the owning person from the visit, then applies the
// replacement through the aggregate. Returns the updated aggregate and the
// replaced visit.
func (service *PersonService) UpdateVisitByID(visitID string, userID string, input VisitInput, now time.Time) (PersonWithVisits, error) {
	aggregate, found, err := service.persons.FindByVisitID(visitID, userID)
	if err != nil {
		return PersonWithVisits{}, err
	}
	if !found {
		return PersonWithVisits{}, NewVisitNotFoundError(visitID)
	}

	if _, err := aggregate.UpdateVisit(visitID, input.VisitedAt, input.Notes, now); err != nil {
		return PersonWithVisits{}, err
	}

	if err := service.persons.Save(&aggregate); err != nil {
		return PersonWithVisits{}, err
	}
	return aggregate, nil
}

// DeleteVisit removes a visit through its owning aggregate. Used by the
// nested person/visit route; the flat route goes through DeleteVisitByID.
func (service *PersonService) DeleteVisit(personID string, visitID string, userID string, now time.Time) (PersonWithVisits, error) {
	aggregate, err := service.GetPerson(personID, userID)
	if err != nil {
		return PersonWithVisits{}, err
	}
	if !aggregate.HasVisit(visitID) {
		return PersonWithVisits{}, NewVisitNotFoundError(visitID)
	}

	if err := aggregate.RemoveVisit(visitID, now); err != nil {
		return PersonWithVisits{}, err
	}

	if err := service.persons.Save(&aggregate); err != nil {
		return PersonWithVisits{}, err
	}
	return aggregate, nil
}

// DeleteVisitByID deletes directly by visit id, scoped to the user. Deleting
// a visit that does not exist (or belongs to someone else) is a no-op.
func (service *PersonService) DeleteVisitByID(visitID string, userID string) error {
	return service.persons.DeleteVisit(visitID, userID)
}
