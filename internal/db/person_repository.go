package db

import (
	"github.com/jmswright/fieldlog/internal/models"
	"github.com/jmswright/fieldlog/internal/services"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PersonRepository struct {
	database *gorm.DB
}

func NewPersonRepository(database *gorm.DB) *PersonRepository {
	return &PersonRepository{database: database}
}

// Save writes the whole aggregate: the person row, every visit it holds, and
// the removal of visits no longer in the aggregate.
func (repo *PersonRepository) Save(aggregate *services.PersonWithVisits) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&aggregate.Person).Error; err != nil {
			return err
		}

		keptIDs := make([]string, 0, len(aggregate.Visits))
		for index := range aggregate.Visits {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&aggregate.Visits[index]).Error; err != nil {
				return err
			}
			keptIDs = append(keptIDs, aggregate.Visits[index].ID)
		}

		cleanup := tx.Where("person_id = ? AND user_id = ?", aggregate.Person.ID, aggregate.Person.UserID)
		if len(keptIDs) > 0 {
			cleanup = cleanup.Where("id NOT IN ?", keptIDs)
		}
		return cleanup.Delete(&models.Visit{}).Error
	})
}

func (repo *PersonRepository) FindByID(personID string, userID string) (services.PersonWithVisits, bool, error) {
	var person models.Person
	result := repo.database.Where("id = ? AND user_id = ?", personID, userID).Limit(1).Find(&person)
	if result.Error != nil {
		return services.PersonWithVisits{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return services.PersonWithVisits{}, false, nil
	}

	visits, err := repo.listVisits(personID, userID)
	if err != nil {
		return services.PersonWithVisits{}, false, err
	}
	return services.PersonWithVisits{Person: person, Visits: visits}, true, nil
}

func (repo *PersonRepository) FindByVisitID(visitID string, userID string) (services.PersonWithVisits, bool, error) {
	var visit models.Visit
	result := repo.database.Where("id = ? AND user_id = ?", visitID, userID).Limit(1).Find(&visit)
	if result.Error != nil {
		return services.PersonWithVisits{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return services.PersonWithVisits{}, false, nil
	}
	return repo.FindByID(visit.PersonID, userID)
}

func (repo *PersonRepository) ListByUser(userID string, options services.PersonListOptions) ([]services.PersonWithVisits, error) {
	query := repo.database.Where("user_id = ?", userID).Order("name ASC")
	if options.Search != "" {
		pattern := "%" + options.Search + "%"
		query = query.Where(
			"name LIKE ? OR address LIKE ? OR notes LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if options.Limit > 0 {
		query = query.Limit(options.Limit)
	}
	if options.Offset > 0 {
		query = query.Offset(options.Offset)
	}

	persons := make([]models.Person, 0)
	if err := query.Find(&persons).Error; err != nil {
		return nil, err
	}
	if len(persons) == 0 {
		return []services.PersonWithVisits{}, nil
	}

	personIDs := make([]string, 0, len(persons))
	for _, person := range persons {
		personIDs = append(personIDs, person.ID)
	}

	visits := make([]models.Visit, 0)
	if err := repo.database.
		Where("person_id IN ? AND user_id = ?", personIDs, userID).
		Order("visited_at DESC").
		Find(&visits).Error; err != nil {
		return nil, err
	}

	visitsByPerson := make(map[string][]models.Visit, len(persons))
	for _, visit := range visits {
		visitsByPerson[visit.PersonID] = append(visitsByPerson[visit.PersonID], visit)
	}

	aggregates := make([]services.PersonWithVisits, 0, len(persons))
	for _, person := range persons {
		aggregates = append(aggregates, services.PersonWithVisits{
			Person: person,
			Visits: visitsByPerson[person.ID],
		})
	}
	return aggregates, nil
}

// Delete cascades to the person's visits.
func (repo *PersonRepository) Delete(personID string, userID string) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("person_id = ? AND user_id = ?", personID, userID).Delete(&models.Visit{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND user_id = ?", personID, userID).Delete(&models.Person{}).Error
	})
}

// DeleteVisit is row-count agnostic: deleting a visit that is absent or owned
// by another user succeeds without touching anything.
func (repo *PersonRepository) DeleteVisit(visitID string, userID string) error {
	return repo.database.Where("id = ? AND user_id = ?", visitID, userID).Delete(&models.Visit{}).Error
}

func (repo *PersonRepository) Exists(personID string, userID string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Person{}).
		Where("id = ? AND user_id = ?", personID, userID).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *PersonRepository) listVisits(personID string, userID string) ([]models.Visit, error) {
	visits := make([]models.Visit, 0)
	if err := repo.database.
		Where("person_id = ? AND user_id = ?", personID, userID).
		Order("visited_at DESC").
		Find(&visits).Error; err != nil {
		return nil, err
	}
	return visits, nil
}
