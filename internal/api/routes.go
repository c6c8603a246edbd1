package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	cycles := api.Group("/cycles/:user_id", handler.RequireUserID)
	cycles.Get("", handler.ListEntries)
	cycles.Post("", handler.CreateEntry)
	// Named sub-resources must be registered before the entry id routes.
	cycles.Get("/predictions", handler.ListPredictions)
	cycles.Get("/insights", handler.GetInsights)
	cycles.Get("/export/summary", handler.ExportSummary)
	cycles.Get("/export/csv", handler.ExportCSV)
	cycles.Get("/export/json", handler.ExportJSON)
	cycles.Get("/:entry_id", handler.GetEntry)
	cycles.Put("/:entry_id", handler.UpdateEntry)
	cycles.Delete("/:entry_id", handler.DeleteEntry)
}
