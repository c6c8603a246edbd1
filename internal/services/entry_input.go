package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/terraincognita07/cycletrack/internal/models"
)

const MaxEntryNotesLength = 2000

var (
	ErrInvalidUserID        = errors.New("invalid user id")
	ErrEntryDateRequired    = errors.New("date is required")
	ErrInvalidEntryDate     = errors.New("invalid date format")
	ErrInvalidFlowIntensity = errors.New("invalid flow intensity")
)

type EntryInput struct {
	Date          string
	FlowIntensity string
	Symptoms      models.Symptoms
	Notes         string
}

// EntryPatch carries a partial update; nil fields are left unchanged.
type EntryPatch struct {
	Date          *string
	FlowIntensity *string
	Symptoms      *models.Symptoms
	Notes         *string
}

type normalizedEntry struct {
	Date          models.Day
	FlowIntensity string
	Symptoms      models.Symptoms
	Notes         string
}

func NormalizeUserID(raw string) (string, error) {
	userID := strings.TrimSpace(raw)
	if userID == "" || len(userID) > models.MaxUserIDLength {
		return "", ErrInvalidUserID
	}
	return userID, nil
}

func normalizeEntryInput(input EntryInput) (normalizedEntry, error) {
	day, err := parseEntryDate(input.Date)
	if err != nil {
		return normalizedEntry{}, err
	}
	flow, err := normalizeFlowIntensity(input.FlowIntensity)
	if err != nil {
		return normalizedEntry{}, err
	}

	return normalizedEntry{
		Date:          day,
		FlowIntensity: flow,
		Symptoms:      normalizeSymptoms(input.Symptoms),
		Notes:         TrimEntryNotes(input.Notes),
	}, nil
}

func parseEntryDate(raw string) (models.Day, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return models.Day{}, ErrEntryDateRequired
	}
	day, err := models.ParseDay(value)
	if err != nil {
		return models.Day{}, ErrInvalidEntryDate
	}
	return day, nil
}

func normalizeFlowIntensity(raw string) (string, error) {
	flow := strings.ToLower(strings.TrimSpace(raw))
	if flow == "" {
		return models.FlowNone, nil
	}
	if !models.IsValidFlowIntensity(flow) {
		return "", ErrInvalidFlowIntensity
	}
	return flow, nil
}

func normalizeSymptoms(symptoms models.Symptoms) models.Symptoms {
	normalized := make(models.Symptoms, len(symptoms))
	for name, value := range symptoms {
		key := strings.TrimSpace(name)
		if key == "" {
			continue
		}
		normalized[key] = value
	}
	return normalized
}

func TrimEntryNotes(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) <= MaxEntryNotesLength {
		return trimmed
	}
	cut := MaxEntryNotesLength
	for cut > 0 && !utf8.RuneStart(trimmed[cut]) {
		cut--
	}
	return trimmed[:cut]
}
