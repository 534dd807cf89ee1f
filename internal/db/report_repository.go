package db

import (
	"github.com/jmswright/fieldlog/internal/models"
	"github.com/jmswright/fieldlog/internal/services"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReportRepository struct {
	database *gorm.DB
}

func NewReportRepository(database *gorm.DB) *ReportRepository {
	return &ReportRepository{database: database}
}

func (repo *ReportRepository) Save(report *models.Report) error {
	return repo.database.Clauses(clause.OnConflict{UpdateAll: true}).Create(report).Error
}

func (repo *ReportRepository) FindByID(reportID string, userID string) (models.Report, bool, error) {
	var report models.Report
	result := repo.database.Where("id = ? AND user_id = ?", reportID, userID).Limit(1).Find(&report)
	if result.Error != nil {
		return models.Report{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Report{}, false, nil
	}
	return report, true, nil
}

func (repo *ReportRepository) FindByPeriod(userID string, month int, year int) (models.Report, bool, error) {
	var report models.Report
	result := repo.database.
		Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		Limit(1).
		Find(&report)
	if result.Error != nil {
		return models.Report{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Report{}, false, nil
	}
	return report, true, nil
}

func (repo *ReportRepository) ListByUser(userID string, options services.ReportListOptions) ([]models.Report, error) {
	query := repo.database.Where("user_id = ?", userID).Order("year DESC, month DESC")

	if options.Month != nil {
		query = query.Where("year = ? AND month = ?", options.Month.Year, options.Month.Month)
	}
	if options.ServiceYear > 0 {
		startYear, startMonth, endYear, endMonth := services.ServiceYearBounds(options.ServiceYear)
		query = query.Where(
			"(year = ? AND month >= ?) OR (year = ? AND month <= ?)",
			startYear, startMonth, endYear, endMonth,
		)
	}
	if options.Limit > 0 {
		query = query.Limit(options.Limit)
	}
	if options.Offset > 0 {
		query = query.Offset(options.Offset)
	}

	reports := make([]models.Report, 0)
	if err := query.Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (repo *ReportRepository) Delete(reportID string, userID string) error {
	return repo.database.Where("id = ? AND user_id = ?", reportID, userID).Delete(&models.Report{}).Error
}
