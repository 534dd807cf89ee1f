package services

import "time"

// 31 days * 24 hours, the most a month of minutes can add up to.
const MaxMonthlyHours = 744

func ValidateReportMonth(month int) error {
	if month < 1 || month > 12 {
		return NewValidationError("Month must be an integer between 1 and 12")
	}
	return nil
}

func ValidateReportYear(year int) error {
	if year < 2000 || year > 2100 {
		return NewValidationError("Year must be an integer between 2000 and 2100")
	}
	return nil
}

func ValidateReportStudies(studies int) error {
	if studies < 0 {
		return NewValidationError("Studies must be a non-negative integer")
	}
	return nil
}

func ValidateMinistryHours(hours int) error {
	if hours < 0 || hours > MaxMonthlyHours {
		return NewValidationError("Ministry hours must be an integer between 0 and 744")
	}
	return nil
}

func ValidateCreditHours(hours int) error {
	if hours < 0 || hours > MaxMonthlyHours {
		return NewValidationError("Credit hours must be an integer between 0 and 744")
	}
	return nil
}

// ValidateReportPeriod compares first-of-month against first of the current
// month; reports for the running month are allowed, later months are not.
func ValidateReportPeriod(month int, year int, now time.Time) error {
	reportMonth := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	currentMonth := time.Date(now.UTC().Year(), now.UTC().Month(), 1, 0, 0, 0, 0, time.UTC)
	if reportMonth.After(currentMonth) {
		return NewBusinessRuleError("Cannot create reports for future months")
	}
	return nil
}

// ServiceYearBounds returns the inclusive month window of a service year:
// September of serviceYear-1 through August of serviceYear.
func ServiceYearBounds(serviceYear int) (startYear int, startMonth int, endYear int, endMonth int) {
	return serviceYear - 1, 9, serviceYear, 8
}

// InServiceYear reports whether (year, month) falls inside the service year.
func InServiceYear(month int, year int, serviceYear int) bool {
	if year == serviceYear-1 {
		return month >= 9
	}
	if year == serviceYear {
		return month <= 8
	}
	return false
}
