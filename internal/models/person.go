package models

import "time"

type Person struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"size:36;not null;index"`
	Name      string `gorm:"size:255;not null"`
	Address   *string
	Notes     *string `gorm:"size:2000"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName pins the table to "persons"; gorm would pluralize to "people".
func (Person) TableName() string {
	return "persons"
}
