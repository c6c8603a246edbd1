package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cycletrack/internal/services"
)

func entryValidationAPIError(c *fiber.Ctx, err error) (error, bool) {
	switch {
	case errors.Is(err, services.ErrEntryDateRequired):
		return apiError(c, fiber.StatusBadRequest, "Date is required"), true
	case errors.Is(err, services.ErrInvalidEntryDate):
		return apiError(c, fiber.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD"), true
	case errors.Is(err, services.ErrInvalidFlowIntensity):
		return apiError(c, fiber.StatusBadRequest, "Invalid flow intensity. Use none, light, medium or heavy"), true
	case errors.Is(err, services.ErrEntryDateConflict):
		return apiError(c, fiber.StatusConflict, "Entry already exists for this date"), true
	case errors.Is(err, services.ErrEntryNotFound):
		return apiError(c, fiber.StatusNotFound, "Entry not found"), true
	default:
		return nil, false
	}
}

func createEntryAPIError(c *fiber.Ctx, err error) error {
	if response, ok := entryValidationAPIError(c, err); ok {
		return response
	}
	return apiError(c, fiber.StatusInternalServerError, "Failed to create entry")
}

func updateEntryAPIError(c *fiber.Ctx, err error) error {
	if response, ok := entryValidationAPIError(c, err); ok {
		return response
	}
	return apiError(c, fiber.StatusInternalServerError, "Failed to update entry")
}

func deleteEntryAPIError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrEntryNotFound) {
		return apiError(c, fiber.StatusNotFound, "Entry not found")
	}
	return apiError(c, fiber.StatusInternalServerError, "Failed to delete entry")
}

func loadEntryAPIError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrEntryNotFound) {
		return apiError(c, fiber.StatusNotFound, "Entry not found")
	}
	return apiError(c, fiber.StatusInternalServerError, "Failed to load entry")
}
