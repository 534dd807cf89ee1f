package models

import "time"

// Visit rows are value-like: updates replace the row wholesale while
// preserving ID and CreatedAt.
type Visit struct {
	ID        string    `gorm:"primaryKey;size:36"`
	PersonID  string    `gorm:"size:36;not null;index"`
	UserID    string    `gorm:"size:36;not null;index"`
	VisitedAt time.Time `gorm:"not null"`
	Notes     *string   `gorm:"size:2000"`
	CreatedAt time.Time
}
