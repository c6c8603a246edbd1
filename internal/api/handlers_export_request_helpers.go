package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cycletrack/internal/services"
)

func parseExportRange(c *fiber.Ctx) (services.ExportRange, string) {
	exportRange, err := services.ParseExportRange(c.Query("from"), c.Query("to"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrExportFromDateInvalid):
			return services.ExportRange{}, "Invalid from date. Use YYYY-MM-DD"
		case errors.Is(err, services.ErrExportToDateInvalid):
			return services.ExportRange{}, "Invalid to date. Use YYYY-MM-DD"
		default:
			return services.ExportRange{}, "Invalid export range"
		}
	}
	return exportRange, ""
}

func buildExportFilename(userID string, now time.Time, extension string) string {
	return fmt.Sprintf("cycletrack-%s-%s.%s", userID, now.Format("2006-01-02"), extension)
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
}
