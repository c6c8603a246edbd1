package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cycletrack/internal/db"
	"github.com/terraincognita07/cycletrack/internal/models"
	"github.com/terraincognita07/cycletrack/internal/services"
)

func newCyclesTestApp(t *testing.T) (*fiber.App, *db.Repositories) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "cycletrack-api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	repositories := db.NewRepositories(database)
	predictionService := services.NewPredictionService(repositories.CycleEntries, repositories.Predictions)
	entryService := services.NewEntryService(repositories.CycleEntries, predictionService)
	insightsService := services.NewInsightsService(entryService, predictionService)
	exportService := services.NewExportService(entryService)

	app := fiber.New()
	RegisterRoutes(app, NewHandler(entryService, predictionService, insightsService, exportService, time.UTC))
	return app, repositories
}

func doJSONRequest(t *testing.T, app *fiber.App, method string, path string, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s request failed: %v", method, path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()

	payload := map[string]string{}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		t.Fatalf("decode error payload: %v", err)
	}
	return payload["error"]
}

func decodeJSON[T any](t *testing.T, body io.Reader) T {
	t.Helper()

	var value T
	if err := json.NewDecoder(body).Decode(&value); err != nil {
		t.Fatalf("decode json payload: %v", err)
	}
	return value
}

func createTestEntry(t *testing.T, app *fiber.App, userID string, body string) models.Entry {
	t.Helper()

	response := doJSONRequest(t, app, http.MethodPost, "/api/cycles/"+userID, body)
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201 creating entry, got %d", response.StatusCode)
	}
	return decodeJSON[models.Entry](t, response.Body)
}
