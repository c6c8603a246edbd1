package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/cycletrack/internal/db"
	"github.com/terraincognita07/cycletrack/internal/models"
)

func TestRunRefreshPredictionsCommandRebuildsSnapshots(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cycletrack-maintenance.db")
	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	repositories := db.NewRepositories(database)
	for _, date := range []time.Time{
		time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.January, 29, 0, 0, 0, 0, time.UTC),
	} {
		entry := models.CycleEntry{UserID: "test-user-1", Date: date, FlowIntensity: models.FlowLight}
		if err := repositories.CycleEntries.Create(&entry); err != nil {
			t.Fatalf("seed entry: %v", err)
		}
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	_ = sqlDB.Close()

	var out bytes.Buffer
	if err := RunRefreshPredictionsCommand(dbPath, "", &out); err != nil {
		t.Fatalf("RunRefreshPredictionsCommand() unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Predictions refreshed for 1 users") {
		t.Fatalf("unexpected output %q", out.String())
	}

	reopened, err := db.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	reopenedSQL, err := reopened.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = reopenedSQL.Close()
	})

	stored, err := db.NewRepositories(reopened).Predictions.ListByUser("test-user-1")
	if err != nil {
		t.Fatalf("list predictions: %v", err)
	}
	if len(stored) != 3 {
		t.Fatalf("expected 3 stored predictions, got %d", len(stored))
	}
}

func TestRunRefreshPredictionsCommandRejectsInvalidUser(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cycletrack-maintenance.db")

	var out bytes.Buffer
	err := RunRefreshPredictionsCommand(dbPath, strings.Repeat("x", 51), &out)
	if err == nil {
		t.Fatal("expected invalid user id error")
	}
}
