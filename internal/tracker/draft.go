package tracker

import (
	"maps"

	"github.com/terraincognita07/cycletrack/internal/client"
	"github.com/terraincognita07/cycletrack/internal/models"
)

// Draft is the editable form state for one calendar day.
type Draft struct {
	Date          models.Day
	EntryID       uint
	FlowIntensity string
	Symptoms      models.Symptoms
	Notes         string
}

// NewDraft starts a form for date, prefilled from existing when the day
// already has an entry.
func NewDraft(date models.Day, existing *models.Entry) Draft {
	if existing == nil {
		return Draft{
			Date:          date,
			FlowIntensity: models.FlowNone,
			Symptoms:      models.Symptoms{},
		}
	}

	symptoms := models.Symptoms{}
	maps.Copy(symptoms, existing.Symptoms)
	flow := existing.FlowIntensity
	if flow == "" {
		flow = models.FlowNone
	}
	return Draft{
		Date:          date,
		EntryID:       existing.ID,
		FlowIntensity: flow,
		Symptoms:      symptoms,
		Notes:         existing.Notes,
	}
}

func (draft Draft) IsUpdate() bool {
	return draft.EntryID != 0
}

func (draft Draft) request(includeDate bool) client.EntryRequest {
	symptoms := draft.Symptoms
	if symptoms == nil {
		symptoms = models.Symptoms{}
	}
	request := client.EntryRequest{
		FlowIntensity: draft.FlowIntensity,
		Symptoms:      symptoms,
		Notes:         draft.Notes,
	}
	if includeDate {
		request.Date = draft.Date.String()
	}
	return request
}
