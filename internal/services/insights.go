package services

import (
	"math"
	"time"

	"github.com/terraincognita07/cycletrack/internal/models"
)

// Insights holds the display values derived from a user's entries and
// predictions. A nil pointer means there is not enough data; it is never
// folded into 0 or an empty date.
type Insights struct {
	AverageCycleLength *int        `json:"average_cycle_length"`
	NextPredictedDate  *models.Day `json:"next_predicted_date"`
	TotalTrackedCycles int         `json:"total_tracked_cycles"`
}

func BuildInsights(entries []models.Entry, predictions []models.Prediction) Insights {
	insights := Insights{TotalTrackedCycles: TotalTrackedCycles(entries)}
	if average, ok := AverageCycleLength(entries); ok {
		insights.AverageCycleLength = &average
	}
	if next, ok := NextPredictedDate(predictions); ok {
		insights.NextPredictedDate = &next
	}
	return insights
}

// AverageCycleLength averages the day gaps between neighbouring entries in
// the order given. Entries are not sorted: a gap that is zero or negative
// (duplicate or out-of-order dates) is skipped rather than reported. The
// second result is false when fewer than two entries exist or no gap is
// positive.
func AverageCycleLength(entries []models.Entry) (int, bool) {
	dates := make([]time.Time, 0, len(entries))
	for _, entry := range entries {
		dates = append(dates, entry.Date.Time)
	}
	return averagePositiveGap(dates)
}

// NextPredictedDate returns the first prediction as delivered; predictions
// are expected in chronological order already.
func NextPredictedDate(predictions []models.Prediction) (models.Day, bool) {
	if len(predictions) == 0 {
		return models.Day{}, false
	}
	return predictions[0].Date, true
}

func TotalTrackedCycles(entries []models.Entry) int {
	return len(entries)
}

func averagePositiveGap(dates []time.Time) (int, bool) {
	if len(dates) < 2 {
		return 0, false
	}

	totalDays := 0
	gaps := 0
	for i := 1; i < len(dates); i++ {
		diff := dayDifference(dates[i-1], dates[i])
		if diff <= 0 {
			continue
		}
		totalDays += diff
		gaps++
	}
	if gaps == 0 {
		return 0, false
	}
	return int(math.Round(float64(totalDays) / float64(gaps))), true
}

// dayDifference rounds to whole days so that time-of-day and DST offsets
// do not shift the result.
func dayDifference(from time.Time, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}
