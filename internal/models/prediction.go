package models

import "time"

// CyclePrediction is a stored prediction snapshot row. Snapshots are
// replaced wholesale for a user after every entry mutation.
type CyclePrediction struct {
	ID                   uint      `gorm:"primaryKey"`
	UserID               string    `gorm:"size:50;not null;index"`
	Position             int       `gorm:"not null"`
	Date                 time.Time `gorm:"type:date;not null"`
	PredictedCycleLength int       `gorm:"not null"`
	CreatedAt            time.Time
}

type Prediction struct {
	Date                 Day `json:"date"`
	PredictedCycleLength int `json:"predicted_cycle_length,omitempty"`
}
