package db

import "gorm.io/gorm"

type Repositories struct {
	CycleEntries *CycleEntryRepository
	Predictions  *PredictionRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		CycleEntries: NewCycleEntryRepository(database),
		Predictions:  NewPredictionRepository(database),
	}
}
