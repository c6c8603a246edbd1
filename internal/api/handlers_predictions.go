package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) ListPredictions(c *fiber.Ctx) error {
	predictions, err := handler.predictions.ListPredictions(currentUserID(c))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to fetch predictions")
	}
	return sendJSONWithETag(c, predictions)
}

func (handler *Handler) GetInsights(c *fiber.Ctx) error {
	insights, err := handler.insights.Build(currentUserID(c))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to build insights")
	}
	return c.JSON(insights)
}
