package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jmswright/fieldlog/internal/services"
	"gorm.io/gorm"
)

func newTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(filepath.Join(t.TempDir(), "fieldlog-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return database
}

func seedAggregate(t *testing.T, repo *PersonRepository, userID string, visitDays ...int) services.PersonWithVisits {
	t.Helper()

	now := time.Now().UTC()
	person, err := services.NewPerson(userID, "Ana Silva", nil, nil, now)
	if err != nil {
		t.Fatalf("NewPerson: %v", err)
	}
	aggregate := services.PersonWithVisits{Person: person}
	for _, daysAgo := range visitDays {
		if _, err := aggregate.AddVisit(now.AddDate(0, 0, -daysAgo), nil, now); err != nil {
			t.Fatalf("AddVisit(-%d days): %v", daysAgo, err)
		}
	}
	if err := repo.Save(&aggregate); err != nil {
		t.Fatalf("Save: %v", err)
	}
	return aggregate
}

func TestPersonRowsUseMigratedTable(t *testing.T) {
	t.Parallel()

	database := newTestDatabase(t)
	repo := NewPersonRepository(database)
	seedAggregate(t, repo, "user-1", 1)

	var count int64
	if err := database.Raw("SELECT COUNT(*) FROM persons").Scan(&count).Error; err != nil {
		t.Fatalf("count persons: %v", err)
	}
	if count != 1 {
		t.Fatalf("persons rows = %d, want 1", count)
	}
}

func TestPersonRepositorySaveRoundTrip(t *testing.T) {
	t.Parallel()

	repo := NewPersonRepository(newTestDatabase(t))
	saved := seedAggregate(t, repo, "user-1", 1, 2, 3)

	loaded, found, err := repo.FindByID(saved.Person.ID, "user-1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !found {
		t.Fatal("expected person found")
	}
	if loaded.Person.Name != "Ana Silva" {
		t.Fatalf("name = %q", loaded.Person.Name)
	}
	if loaded.VisitCount() != 3 {
		t.Fatalf("visits = %d, want 3", loaded.VisitCount())
	}
	// Newest first.
	if !loaded.Visits[0].VisitedAt.After(loaded.Visits[2].VisitedAt) {
		t.Fatal("expected visits ordered by visited_at DESC")
	}
}

func TestPersonRepositorySaveRemovesDroppedVisits(t *testing.T) {
	t.Parallel()

	repo := NewPersonRepository(newTestDatabase(t))
	aggregate := seedAggregate(t, repo, "user-1", 1, 2, 3)

	removed := aggregate.Visits[1].ID
	if err := aggregate.RemoveVisit(removed, time.Now().UTC()); err != nil {
		t.Fatalf("RemoveVisit: %v", err)
	}
	if err := repo.Save(&aggregate); err != nil {
		t.Fatalf("Save after removal: %v", err)
	}

	loaded, _, err := repo.FindByID(aggregate.Person.ID, "user-1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if loaded.VisitCount() != 2 {
		t.Fatalf("visits = %d, want 2", loaded.VisitCount())
	}
	if loaded.HasVisit(removed) {
		t.Fatal("expected removed visit gone from storage")
	}
}

func TestPersonRepositoryFindByVisitID(t *testing.T) {
	t.Parallel()

	repo := NewPersonRepository(newTestDatabase(t))
	aggregate := seedAggregate(t, repo, "user-1", 1)
	visitID := aggregate.Visits[0].ID

	loaded, found, err := repo.FindByVisitID(visitID, "user-1")
	if err != nil {
		t.Fatalf("FindByVisitID: %v", err)
	}
	if !found || loaded.Person.ID != aggregate.Person.ID {
		t.Fatalf("found=%v person=%q", found, loaded.Person.ID)
	}

	// Another user's lookup reads as absent.
	_, found, err = repo.FindByVisitID(visitID, "user-2")
	if err != nil {
		t.Fatalf("foreign FindByVisitID: %v", err)
	}
	if found {
		t.Fatal("expected foreign visit to read as absent")
	}
}

func TestPersonRepositoryListByUserSearch(t *testing.T) {
	t.Parallel()

	database := newTestDatabase(t)
	repo := NewPersonRepository(database)
	now := time.Now().UTC()

	names := []string{"Ana Silva", "Bruno Costa"}
	for _, name := range names {
		person, err := services.NewPerson("user-1", name, nil, nil, now)
		if err != nil {
			t.Fatalf("NewPerson: %v", err)
		}
		aggregate := services.PersonWithVisits{Person: person}
		if err := repo.Save(&aggregate); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	matches, err := repo.ListByUser("user-1", services.PersonListOptions{Search: "bruno"})
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(matches) != 1 || matches[0].Person.Name != "Bruno Costa" {
		t.Fatalf("matches = %v", matches)
	}
}

func TestPersonRepositoryDeleteCascadesVisits(t *testing.T) {
	t.Parallel()

	repo := NewPersonRepository(newTestDatabase(t))
	aggregate := seedAggregate(t, repo, "user-1", 1, 2)

	if err := repo.Delete(aggregate.Person.ID, "user-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	_, found, err := repo.FindByID(aggregate.Person.ID, "user-1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found {
		t.Fatal("expected person deleted")
	}
	_, found, err = repo.FindByVisitID(aggregate.Visits[0].ID, "user-1")
	if err != nil {
		t.Fatalf("FindByVisitID: %v", err)
	}
	if found {
		t.Fatal("expected visits deleted with the person")
	}
}
