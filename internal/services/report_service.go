package services

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmswright/fieldlog/internal/models"
)

type ReportStore interface {
	Save(report *models.Report) error
	FindByID(reportID string, userID string) (models.Report, bool, error)
	FindByPeriod(userID string, month int, year int) (models.Report, bool, error)
	ListByUser(userID string, options ReportListOptions) ([]models.Report, error)
	Delete(reportID string, userID string) error
}

// ReportTimeReader gives the report use cases read access to time entries
// without depending on the whole time store.
type ReportTimeReader interface {
	ListByUser(userID string, options TimeListOptions) ([]models.TimeEntry, error)
}

type ReportListOptions struct {
	Month       *MonthFilter
	ServiceYear int
	Limit       int
	Offset      int
}

type ReportInput struct {
	Month         int
	Year          int
	Studies       int
	MinistryHours int
	CreditHours   int
}

type ServiceYearSummary struct {
	TotalStudies           int
	TotalMinistryHours     int
	TotalCreditHours       int
	TotalHours             int
	MonthsReported         int
	AverageStudiesPerMonth float64
	AverageHoursPerMonth   float64
	Reports                []models.Report
}

type ReportDefaults struct {
	MinistryHours int
	CreditHours   int
}

type ReportService struct {
	reports ReportStore
	times   ReportTimeReader
}

func NewReportService(reports ReportStore, times ReportTimeReader) *ReportService {
	return &ReportService{reports: reports, times: times}
}

func newReport(userID string, input ReportInput, now time.Time) (models.Report, error) {
	if err := validateReportInput(input, now); err != nil {
		return models.Report{}, err
	}
	return models.Report{
		ID:            uuid.NewString(),
		UserID:        userID,
		Month:         input.Month,
		Year:          input.Year,
		Studies:       input.Studies,
		MinistryHours: input.MinistryHours,
		CreditHours:   input.CreditHours,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func validateReportInput(input ReportInput, now time.Time) error {
	if err := ValidateReportMonth(input.Month); err != nil {
		return err
	}
	if err := ValidateReportYear(input.Year); err != nil {
		return err
	}
	if err := ValidateReportStudies(input.Studies); err != nil {
		return err
	}
	if err := ValidateMinistryHours(input.MinistryHours); err != nil {
		return err
	}
	if err := ValidateCreditHours(input.CreditHours); err != nil {
		return err
	}
	return ValidateReportPeriod(input.Month, input.Year, now)
}

// CreateReport enforces one report per (month, year) per user.
func (service *ReportService) CreateReport(userID string, input ReportInput, now time.Time) (models.Report, error) {
	if err := validateReportInput(input, now); err != nil {
		return models.Report{}, err
	}

	_, exists, err := service.reports.FindByPeriod(userID, input.Month, input.Year)
	if err != nil {
		return models.Report{}, err
	}
	if exists {
		return models.Report{}, NewDuplicateReportError(input.Month, input.Year)
	}

	report, err := newReport(userID, input, now)
	if err != nil {
		return models.Report{}, err
	}
	if err := service.reports.Save(&report); err != nil {
		return models.Report{}, err
	}
	return report, nil
}

func (service *ReportService) GetReport(reportID string, userID string) (models.Report, error) {
	report, found, err := service.reports.FindByID(reportID, userID)
	if err != nil {
		return models.Report{}, err
	}
	if !found {
		return models.Report{}, NewReportNotFoundError(reportID)
	}
	return report, nil
}

func (service *ReportService) ListReports(userID string, options ReportListOptions) ([]models.Report, error) {
	return service.reports.ListByUser(userID, options)
}

func (service *ReportService) UpdateReport(reportID string, userID string, input ReportInput, now time.Time) (models.Report, error) {
	report, err := service.GetReport(reportID, userID)
	if err != nil {
		return models.Report{}, err
	}

	if err := validateReportInput(input, now); err != nil {
		return models.Report{}, err
	}

	// Moving the report onto another report's period would break uniqueness.
	if !report.IsSamePeriod(input.Month, input.Year) {
		other, exists, err := service.reports.FindByPeriod(userID, input.Month, input.Year)
		if err != nil {
			return models.Report{}, err
		}
		if exists && other.ID != report.ID {
			return models.Report{}, NewDuplicateReportError(input.Month, input.Year)
		}
	}

	report.Month = input.Month
	report.Year = input.Year
	report.Studies = input.Studies
	report.MinistryHours = input.MinistryHours
	report.CreditHours = input.CreditHours
	report.UpdatedAt = now

	if err := service.reports.Save(&report); err != nil {
		return models.Report{}, err
	}
	return report, nil
}

func (service *ReportService) DeleteReport(reportID string, userID string) error {
	if _, err := service.GetReport(reportID, userID); err != nil {
		return err
	}
	return service.reports.Delete(reportID, userID)
}

// GetServiceYearSummary aggregates the reports falling inside the service
// year window. Averages round to two decimals and are zero for an empty
// window rather than dividing by zero.
func (service *ReportService) GetServiceYearSummary(userID string, serviceYear int) (ServiceYearSummary, error) {
	if err := ValidateReportYear(serviceYear); err != nil {
		return ServiceYearSummary{}, err
	}

	reports, err := service.reports.ListByUser(userID, ReportListOptions{ServiceYear: serviceYear})
	if err != nil {
		return ServiceYearSummary{}, err
	}

	summary := ServiceYearSummary{Reports: reports, MonthsReported: len(reports)}
	for _, report := range reports {
		summary.TotalStudies += report.Studies
		summary.TotalMinistryHours += report.MinistryHours
		summary.TotalCreditHours += report.CreditHours
	}
	summary.TotalHours = summary.TotalMinistryHours + summary.TotalCreditHours

	if summary.MonthsReported > 0 {
		summary.AverageStudiesPerMonth = roundToCents(float64(summary.TotalStudies) / float64(summary.MonthsReported))
		summary.AverageHoursPerMonth = roundToCents(float64(summary.TotalHours) / float64(summary.MonthsReported))
	}
	return summary, nil
}

// GetReportDefaults pre-fills a report from the month's time entries. Each
// entry's minutes are floored to whole hours before summing, and entries
// whose type mentions "credit" count toward credit hours.
func (service *ReportService) GetReportDefaults(userID string, month int, year int) (ReportDefaults, error) {
	if err := ValidateReportMonth(month); err != nil {
		return ReportDefaults{}, err
	}
	if err := ValidateReportYear(year); err != nil {
		return ReportDefaults{}, err
	}

	entries, err := service.times.ListByUser(userID, TimeListOptions{Month: &MonthFilter{Month: month, Year: year}})
	if err != nil {
		return ReportDefaults{}, err
	}

	defaults := ReportDefaults{}
	for _, entry := range entries {
		hours := entry.TotalMinutes() / 60
		if strings.Contains(strings.ToLower(entry.Type), "credit") {
			defaults.CreditHours += hours
		} else {
			defaults.MinistryHours += hours
		}
	}
	return defaults, nil
}

func roundToCents(value float64) float64 {
	return math.Round(value*100) / 100
}
