package db

import (
	"time"

	"github.com/jmswright/fieldlog/internal/models"
	"github.com/jmswright/fieldlog/internal/services"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TimeRepository struct {
	database *gorm.DB
}

func NewTimeRepository(database *gorm.DB) *TimeRepository {
	return &TimeRepository{database: database}
}

func (repo *TimeRepository) Save(entry *models.TimeEntry) error {
	return repo.database.Clauses(clause.OnConflict{UpdateAll: true}).Create(entry).Error
}

func (repo *TimeRepository) FindByID(timeID string, userID string) (models.TimeEntry, bool, error) {
	var entry models.TimeEntry
	result := repo.database.Where("id = ? AND user_id = ?", timeID, userID).Limit(1).Find(&entry)
	if result.Error != nil {
		return models.TimeEntry{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.TimeEntry{}, false, nil
	}
	return entry, true, nil
}

func (repo *TimeRepository) ListByUser(userID string, options services.TimeListOptions) ([]models.TimeEntry, error) {
	query := repo.database.Where("user_id = ?", userID).Order("recorded_on DESC, created_at DESC")

	if len(options.Types) > 0 {
		query = query.Where("type IN ?", options.Types)
	}
	if options.Month != nil {
		monthStart := time.Date(options.Month.Year, time.Month(options.Month.Month), 1, 0, 0, 0, 0, time.UTC)
		query = query.Where("recorded_on >= ? AND recorded_on < ?", monthStart, monthStart.AddDate(0, 1, 0))
	}
	if options.ServiceYear > 0 {
		// September 1 of the prior year up to (not including) the next September 1.
		windowStart := time.Date(options.ServiceYear-1, time.September, 1, 0, 0, 0, 0, time.UTC)
		query = query.Where("recorded_on >= ? AND recorded_on < ?", windowStart, windowStart.AddDate(1, 0, 0))
	}
	if options.Limit > 0 {
		query = query.Limit(options.Limit)
	}
	if options.Offset > 0 {
		query = query.Offset(options.Offset)
	}

	entries := make([]models.TimeEntry, 0)
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *TimeRepository) Delete(timeID string, userID string) error {
	return repo.database.Where("id = ? AND user_id = ?", timeID, userID).Delete(&models.TimeEntry{}).Error
}

func (repo *TimeRepository) DistinctTypes(userID string) ([]string, error) {
	types := make([]string, 0)
	if err := repo.database.Model(&models.TimeEntry{}).
		Distinct("type").
		Where("user_id = ?", userID).
		Order("type ASC").
		Pluck("type", &types).Error; err != nil {
		return nil, err
	}
	return types, nil
}
