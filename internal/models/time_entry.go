package models

import "time"

type TimeEntry struct {
	ID         string    `gorm:"primaryKey;size:36"`
	UserID     string    `gorm:"size:36;not null;index"`
	Type       string    `gorm:"size:100;not null"`
	RecordedOn time.Time `gorm:"type:date;not null"`
	Hours      int       `gorm:"not null"`
	Minutes    int       `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (entry TimeEntry) TotalMinutes() int {
	return entry.Hours*60 + entry.Minutes
}

func (entry TimeEntry) TotalHours() float64 {
	return float64(entry.Hours) + float64(entry.Minutes)/60
}
