package db

import "gorm.io/gorm"

type Repositories struct {
	Users   *UserRepository
	Persons *PersonRepository
	Times   *TimeRepository
	Reports *ReportRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:   NewUserRepository(database),
		Persons: NewPersonRepository(database),
		Times:   NewTimeRepository(database),
		Reports: NewReportRepository(database),
	}
}
