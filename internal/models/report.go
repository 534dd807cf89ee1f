package models

import (
	"fmt"
	"time"
)

type Report struct {
	ID            string `gorm:"primaryKey;size:36"`
	UserID        string `gorm:"size:36;not null;uniqueIndex:uidx_user_period"`
	Month         int    `gorm:"not null;uniqueIndex:uidx_user_period"`
	Year          int    `gorm:"not null;uniqueIndex:uidx_user_period"`
	Studies       int    `gorm:"not null;default:0"`
	MinistryHours int    `gorm:"not null;default:0"`
	CreditHours   int    `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (report Report) TotalHours() int {
	return report.MinistryHours + report.CreditHours
}

// PeriodKey identifies the report month as "YYYY-MM".
func (report Report) PeriodKey() string {
	return fmt.Sprintf("%04d-%02d", report.Year, report.Month)
}

func (report Report) IsSamePeriod(month int, year int) bool {
	return report.Month == month && report.Year == year
}
