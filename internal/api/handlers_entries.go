package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListEntries(c *fiber.Ctx) error {
	entries, err := handler.entries.ListEntries(currentUserID(c))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to fetch entries")
	}
	return sendJSONWithETag(c, entries)
}

func (handler *Handler) GetEntry(c *fiber.Ctx) error {
	id, ok := parseEntryID(c.Params("entry_id"))
	if !ok {
		return apiError(c, fiber.StatusNotFound, "Entry not found")
	}

	entry, err := handler.entries.GetEntry(currentUserID(c), id)
	if err != nil {
		return loadEntryAPIError(c, err)
	}
	return c.JSON(entry)
}

func (handler *Handler) CreateEntry(c *fiber.Ctx) error {
	payload, err := parseEntryPayload(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid JSON payload")
	}
	if payload.Date == nil {
		return apiError(c, fiber.StatusBadRequest, "Date is required")
	}

	entry, err := handler.entries.CreateEntry(currentUserID(c), payload.toInput())
	if err != nil {
		return createEntryAPIError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) UpdateEntry(c *fiber.Ctx) error {
	id, ok := parseEntryID(c.Params("entry_id"))
	if !ok {
		return apiError(c, fiber.StatusNotFound, "Entry not found")
	}

	payload, err := parseEntryPatchPayload(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid JSON payload")
	}

	entry, err := handler.entries.UpdateEntry(currentUserID(c), id, payload.toPatch())
	if err != nil {
		return updateEntryAPIError(c, err)
	}
	return c.JSON(entry)
}

func (handler *Handler) DeleteEntry(c *fiber.Ctx) error {
	id, ok := parseEntryID(c.Params("entry_id"))
	if !ok {
		return apiError(c, fiber.StatusNotFound, "Entry not found")
	}

	if err := handler.entries.DeleteEntry(currentUserID(c), id); err != nil {
		return deleteEntryAPIError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Entry deleted successfully"})
}
