package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	FlowNone   = "none"
	FlowLight  = "light"
	FlowMedium = "medium"
	FlowHeavy  = "heavy"
)

const MaxUserIDLength = 50

// Symptoms maps a symptom name to its severity or presence marker,
// e.g. {"cramps": "mild", "headache": true}.
type Symptoms map[string]any

// Format lists symptoms by name in sorted order, as "name" for presence
// markers and "name=value" otherwise. False markers are omitted.
func (symptoms Symptoms) Format(separator string) string {
	names := make([]string, 0, len(symptoms))
	for name := range symptoms {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		switch value := symptoms[name].(type) {
		case bool:
			if value {
				parts = append(parts, name)
			}
		case nil:
			parts = append(parts, name)
		default:
			parts = append(parts, fmt.Sprintf("%s=%v", name, value))
		}
	}
	return strings.Join(parts, separator)
}

type CycleEntry struct {
	ID            uint      `gorm:"primaryKey"`
	UserID        string    `gorm:"size:50;not null;uniqueIndex:uidx_cycle_entries_user_date"`
	Date          time.Time `gorm:"type:date;not null;uniqueIndex:uidx_cycle_entries_user_date"`
	FlowIntensity string    `gorm:"not null;default:none"`
	Symptoms      Symptoms  `gorm:"serializer:json"`
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Entry is the wire representation of a CycleEntry.
type Entry struct {
	ID            uint      `json:"id"`
	Date          Day       `json:"date"`
	FlowIntensity string    `json:"flow_intensity"`
	Symptoms      Symptoms  `json:"symptoms"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func IsValidFlowIntensity(flow string) bool {
	switch flow {
	case FlowNone, FlowLight, FlowMedium, FlowHeavy:
		return true
	default:
		return false
	}
}
