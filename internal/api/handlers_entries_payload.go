package api

import (
	"bytes"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cycletrack/internal/models"
	"github.com/terraincognita07/cycletrack/internal/services"
)

type entryPayload struct {
	Date          *string         `json:"date"`
	FlowIntensity *string         `json:"flow_intensity"`
	Symptoms      models.Symptoms `json:"symptoms"`
	Notes         *string         `json:"notes"`
}

type entryPatchPayload struct {
	Date          *string          `json:"date"`
	FlowIntensity *string          `json:"flow_intensity"`
	Symptoms      *models.Symptoms `json:"symptoms"`
	Notes         *string          `json:"notes"`
}

func parseEntryPayload(c *fiber.Ctx) (entryPayload, error) {
	payload := entryPayload{}
	if len(c.Body()) == 0 {
		return payload, nil
	}
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		return entryPayload{}, err
	}
	return payload, nil
}

// parseEntryPatchPayload decodes a partial update. A key sent as null
// clears the field; an absent key leaves it unchanged.
func parseEntryPatchPayload(c *fiber.Ctx) (entryPatchPayload, error) {
	payload := entryPatchPayload{}
	if len(c.Body()) == 0 {
		return payload, nil
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(c.Body(), &fields); err != nil {
		return entryPatchPayload{}, err
	}
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		return entryPatchPayload{}, err
	}

	if isJSONNull(fields, "date") {
		payload.Date = new(string)
	}
	if isJSONNull(fields, "flow_intensity") {
		payload.FlowIntensity = new(string)
	}
	if isJSONNull(fields, "symptoms") {
		payload.Symptoms = &models.Symptoms{}
	}
	if isJSONNull(fields, "notes") {
		payload.Notes = new(string)
	}
	return payload, nil
}

func isJSONNull(fields map[string]json.RawMessage, key string) bool {
	raw, ok := fields[key]
	return ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func (payload entryPayload) toInput() services.EntryInput {
	input := services.EntryInput{Symptoms: payload.Symptoms}
	if payload.Date != nil {
		input.Date = *payload.Date
	}
	if payload.FlowIntensity != nil {
		input.FlowIntensity = *payload.FlowIntensity
	}
	if payload.Notes != nil {
		input.Notes = *payload.Notes
	}
	return input
}

func (payload entryPatchPayload) toPatch() services.EntryPatch {
	return services.EntryPatch{
		Date:          payload.Date,
		FlowIntensity: payload.FlowIntensity,
		Symptoms:      payload.Symptoms,
		Notes:         payload.Notes,
	}
}
