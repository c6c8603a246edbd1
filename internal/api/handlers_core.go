package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cycletrack/internal/services"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// RequireUserID validates the :user_id path segment and stores the
// normalized value for downstream handlers.
func (handler *Handler) RequireUserID(c *fiber.Ctx) error {
	userID, err := services.NormalizeUserID(c.Params("user_id"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid user id")
	}
	c.Locals(userIDLocalKey, userID)
	return c.Next()
}
