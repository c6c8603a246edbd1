package api

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cycletrack/internal/services"
)

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	userID := currentUserID(c)
	exportRange, rangeError := parseExportRange(c)
	if rangeError != "" {
		return apiError(c, fiber.StatusBadRequest, rangeError)
	}

	rows, err := handler.exports.BuildCSVRows(userID, exportRange)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to load entries")
	}
	now := time.Now().In(handler.location)

	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(services.ExportCSVHeaders); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to build export")
	}
	if err := writer.WriteAll(rows); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to build export")
	}

	setExportAttachmentHeaders(c, "text/csv", buildExportFilename(userID, now, "csv"))
	return c.Send(output.Bytes())
}

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	userID := currentUserID(c)
	exportRange, rangeError := parseExportRange(c)
	if rangeError != "" {
		return apiError(c, fiber.StatusBadRequest, rangeError)
	}

	entries, err := handler.exports.BuildJSONEntries(userID, exportRange)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to load entries")
	}
	now := time.Now().In(handler.location)

	serialized, err := json.MarshalIndent(fiber.Map{
		"user_id":     userID,
		"exported_at": now.Format(time.RFC3339),
		"entries":     entries,
	}, "", "  ")
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to build export")
	}

	setExportAttachmentHeaders(c, fiber.MIMEApplicationJSON, buildExportFilename(userID, now, "json"))
	return c.Send(serialized)
}

func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	userID := currentUserID(c)
	exportRange, rangeError := parseExportRange(c)
	if rangeError != "" {
		return apiError(c, fiber.StatusBadRequest, rangeError)
	}

	summary, err := handler.exports.BuildSummary(userID, exportRange)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to load entries")
	}
	return c.JSON(summary)
}
