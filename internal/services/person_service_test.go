package services

import (
	"testing"
	"time"
)

type stubPersonStore struct {
	saved      *PersonWithVisits
	aggregate  PersonWithVisits
	found      bool
	exists     bool
	deleted    []string
	deletedVia []string
}

func (stub *stubPersonStore) Save(aggregate *PersonWithVisits) error {
	copied := *aggregate
	stub.saved = &copied
	return nil
}

func (stub *stubPersonStore) FindByID(string, string) (PersonWithVisits, bool, error) {
	return stub.aggregate, stub.found, nil
}

func (stub *stubPersonStore) FindByVisitID(string, string) (PersonWithVisits, bool, error) {
	return stub.aggregate, stub.found, nil
}

func (stub *stubPersonStore) ListByUser(string, PersonListOptions) ([]PersonWithVisits, error) {
	return nil, nil
}

func (stub *stubPersonStore) Delete(personID string, _ string) error {
	stub.deleted = append(stub.deleted, personID)
	return nil
}

func (stub *stubPersonStore) DeleteVisit(visitID string, _ string) error {
	stub.deletedVia = append(stub.deletedVia, visitID)
	return nil
}

func (stub *stubPersonStore) Exists(string, string) (bool, error) {
	return stub.exists, nil
}

func TestCreatePersonSavesAggregate(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	store := &stubPersonStore{}
	service := NewPersonService(store)

	aggregate, err := service.CreatePerson("user-1", PersonInput{Name: "Ana Silva"}, now)
	if err != nil {
		t.Fatalf("CreatePerson: %v", err)
	}
	if store.saved == nil {
		t.Fatal("expected aggregate saved")
	}
	if aggregate.Person.Name != "Ana Silva" || aggregate.Person.UserID != "user-1" {
		t.Fatalf("unexpected person: %+v", aggregate.Person)
	}
}

func TestCreatePersonRejectsInvalidInputWithoutSaving(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	store := &stubPersonStore{}
	service := NewPersonService(store)

	if _, err := service.CreatePerson("user-1", PersonInput{Name: ""}, now); err == nil {
		t.Fatal("expected validation error")
	}
	if store.saved != nil {
		t.Fatal("expected nothing saved")
	}
}

func TestGetPersonMissingMapsToNotFound(t *testing.T) {
	service := NewPersonService(&stubPersonStore{found: false})

	_, err := service.GetPerson("p-404", "user-1")
	if err == nil {
		t.Fatal("expected error")
	}
	if kind, _ := KindOf(err); kind != KindNotFound {
		t.Fatalf("expected not-found kind, got %v", err)
	}
	if err.Error() != "Person with ID p-404 not found" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestDeletePersonChecksExistenceFirst(t *testing.T) {
	store := &stubPersonStore{exists: false}
	service := NewPersonService(store)

	err := service.DeletePerson("p-404", "user-1")
	if kind, _ := KindOf(err); kind != KindNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
	if len(store.deleted) != 0 {
		t.Fatal("expected no delete issued")
	}

	store.exists = true
	if err := service.DeletePerson("p-1", "user-1"); err != nil {
		t.Fatalf("DeletePerson: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "p-1" {
		t.Fatalf("unexpected deletes: %v", store.deleted)
	}
}

func TestRecordVisitAppendsAndSaves(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	person, err := NewPerson("user-1", "Ana Silva", nil, nil, now)
	if err != nil {
		t.Fatalf("NewPerson: %v", err)
	}
	store := &stubPersonStore{aggregate: PersonWithVisits{Person: person}, found: true}
	service := NewPersonService(store)

	aggregate, err := service.RecordVisit(person.ID, "user-1", VisitInput{VisitedAt: now.AddDate(0, 0, -1)}, now)
	if err != nil {
		t.Fatalf("RecordVisit: %v", err)
	}
	if aggregate.VisitCount() != 1 {
		t.Fatalf("expected one visit, got %d", aggregate.VisitCount())
	}
	if store.saved == nil || store.saved.VisitCount() != 1 {
		t.Fatal("expected saved aggregate to carry the visit")
	}
}

func TestUpdateVisitByIDMissingVisit(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	service := NewPersonService(&stubPersonStore{found: false})

	_, err := service.UpdateVisitByID("v-404", "user-1", VisitInput{VisitedAt: now}, now)
	if kind, _ := KindOf(err); kind != KindNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
	if err.Error() != "Visit with ID v-404 not found" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestDeleteVisitByIDIsRowCountAgnostic(t *testing.T) {
	store := &stubPersonStore{}
	service := NewPersonService(store)

	if err := service.DeleteVisitByID("v-any", "user-1"); err != nil {
		t.Fatalf("DeleteVisitByID: %v", err)
	}
	if len(store.deletedVia) != 1 || store.deletedVia[0] != "v-any" {
		t.Fatalf("unexpected visit deletes: %v", store.deletedVia)
	}
}

func TestUpdatePersonValidationFailureDoesNotSave(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	person, err := NewPerson("user-1", "Ana Silva", nil, nil, now)
	if err != nil {
		t.Fatalf("NewPerson: %v", err)
	}
	store := &stubPersonStore{aggregate: PersonWithVisits{Person: person}, found: true}
	service := NewPersonService(store)

	if _, err := service.UpdatePerson(person.ID, "user-1", PersonInput{Name: "  "}, now); err == nil {
		t.Fatal("expected validation error")
	}
	if store.saved != nil {
		t.Fatal("expected no save after failed validation")
	}
}
