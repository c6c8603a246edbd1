package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/terraincognita07/cycletrack/internal/models"
)

// PredictionHorizon is the number of future cycle starts predicted.
const PredictionHorizon = 3

var ErrPredictionsFetchFailed = errors.New("fetch predictions failed")

type PredictionEntryReader interface {
	ListByUser(userID string) ([]models.CycleEntry, error)
	ListUserIDs() ([]string, error)
}

type PredictionRepository interface {
	ReplaceForUser(userID string, predictions []models.CyclePrediction) error
	ListByUser(userID string) ([]models.CyclePrediction, error)
	ListUserIDs() ([]string, error)
}

type PredictionService struct {
	entries     PredictionEntryReader
	predictions PredictionRepository
}

func NewPredictionService(entries PredictionEntryReader, predictions PredictionRepository) *PredictionService {
	return &PredictionService{
		entries:     entries,
		predictions: predictions,
	}
}

// ComputePredictions projects the next cycle starts from the most recent
// entry using the rounded mean of positive gaps between date-ordered
// entries. It returns an empty slice when there is not enough data.
func ComputePredictions(records []models.CycleEntry) []models.Prediction {
	dates := make([]time.Time, 0, len(records))
	for _, record := range records {
		dates = append(dates, models.NewDay(record.Date).Time)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})

	average, ok := averagePositiveGap(dates)
	if !ok {
		return []models.Prediction{}
	}

	last := models.NewDay(dates[len(dates)-1])
	predictions := make([]models.Prediction, 0, PredictionHorizon)
	for i := 1; i <= PredictionHorizon; i++ {
		predictions = append(predictions, models.Prediction{
			Date:                 last.AddDays(average * i),
			PredictedCycleLength: average,
		})
	}
	return predictions
}

// ListPredictions serves the stored snapshot and falls back to computing
// from entries when no snapshot rows exist.
func (service *PredictionService) ListPredictions(userID string) ([]models.Prediction, error) {
	rows, err := service.predictions.ListByUser(userID)
	if err != nil {
		return nil, ErrPredictionsFetchFailed
	}
	if len(rows) > 0 {
		return predictionsFromRows(rows), nil
	}

	records, err := service.entries.ListByUser(userID)
	if err != nil {
		return nil, ErrPredictionsFetchFailed
	}
	return ComputePredictions(records), nil
}

// Refresh rebuilds the user's snapshot. When the rebuild fails the stored
// snapshot is dropped so ListPredictions computes from current entries.
func (service *PredictionService) Refresh(userID string) error {
	if err := service.rebuildSnapshot(userID); err != nil {
		if clearErr := service.predictions.ReplaceForUser(userID, nil); clearErr != nil {
			return errors.Join(err, fmt.Errorf("clear stale predictions: %w", clearErr))
		}
		return err
	}
	return nil
}

func (service *PredictionService) rebuildSnapshot(userID string) error {
	records, err := service.entries.ListByUser(userID)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}

	predictions := ComputePredictions(records)
	rows := make([]models.CyclePrediction, 0, len(predictions))
	for index, prediction := range predictions {
		rows = append(rows, models.CyclePrediction{
			UserID:               userID,
			Position:             index + 1,
			Date:                 prediction.Date.Time,
			PredictedCycleLength: prediction.PredictedCycleLength,
		})
	}

	if err := service.predictions.ReplaceForUser(userID, rows); err != nil {
		return fmt.Errorf("store predictions: %w", err)
	}
	return nil
}

// RefreshAll rebuilds snapshots for every user with entries or a stored
// snapshot and reports how many users were refreshed.
func (service *PredictionService) RefreshAll() (int, error) {
	entryUsers, err := service.entries.ListUserIDs()
	if err != nil {
		return 0, fmt.Errorf("list entry users: %w", err)
	}
	snapshotUsers, err := service.predictions.ListUserIDs()
	if err != nil {
		return 0, fmt.Errorf("list prediction users: %w", err)
	}

	seen := make(map[string]struct{}, len(entryUsers)+len(snapshotUsers))
	userIDs := make([]string, 0, len(entryUsers)+len(snapshotUsers))
	for _, userID := range append(entryUsers, snapshotUsers...) {
		if _, ok := seen[userID]; ok {
			continue
		}
		seen[userID] = struct{}{}
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)

	refreshed := 0
	var errs []error
	for _, userID := range userIDs {
		if err := service.Refresh(userID); err != nil {
			errs = append(errs, fmt.Errorf("user %q: %w", userID, err))
			continue
		}
		refreshed++
	}
	return refreshed, errors.Join(errs...)
}

func predictionsFromRows(rows []models.CyclePrediction) []models.Prediction {
	sorted := make([]models.CyclePrediction, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})

	predictions := make([]models.Prediction, 0, len(sorted))
	for _, row := range sorted {
		predictions = append(predictions, models.Prediction{
			Date:                 models.NewDay(row.Date),
			PredictedCycleLength: row.PredictedCycleLength,
		})
	}
	return predictions
}
