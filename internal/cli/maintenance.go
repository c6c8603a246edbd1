package cli

import (
	"fmt"
	"io"

	"github.com/terraincognita07/cycletrack/internal/db"
	"github.com/terraincognita07/cycletrack/internal/services"
)

// RunRefreshPredictionsCommand rebuilds stored prediction snapshots directly
// against the database, for one user or for everyone when userID is empty.
func RunRefreshPredictionsCommand(dbPath string, userID string, out io.Writer) error {
	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	defer sqlDB.Close()

	repositories := db.NewRepositories(database)
	predictionService := services.NewPredictionService(repositories.CycleEntries, repositories.Predictions)

	if userID != "" {
		normalized, err := services.NormalizeUserID(userID)
		if err != nil {
			return err
		}
		if err := predictionService.Refresh(normalized); err != nil {
			return fmt.Errorf("refresh predictions for %s: %w", normalized, err)
		}
		fmt.Fprintf(out, "Predictions refreshed for %s\n", normalized)
		return nil
	}

	refreshed, err := predictionService.RefreshAll()
	if err != nil {
		return fmt.Errorf("refresh predictions: %w", err)
	}
	fmt.Fprintf(out, "Predictions refreshed for %d users\n", refreshed)
	return nil
}
