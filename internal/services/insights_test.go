package services

import (
	"testing"
	"time"

	"github.com/terraincognita07/cycletrack/internal/models"
)

func TestAverageCycleLength(t *testing.T) {
	base := mustParseDay(t, "2025-01-01")

	tests := []struct {
		name   string
		dates  []models.Day
		want   int
		wantOK bool
	}{
		{name: "no entries", dates: nil, wantOK: false},
		{name: "single entry", dates: []models.Day{base}, wantOK: false},
		{name: "gaps of 28 and 30", dates: []models.Day{base, base.AddDays(28), base.AddDays(58)}, want: 29, wantOK: true},
		{name: "short second gap", dates: []models.Day{base, base.AddDays(28), base.AddDays(30)}, want: 15, wantOK: true},
		{name: "negative gap is skipped", dates: []models.Day{base, base.AddDays(-1), base.AddDays(28)}, want: 29, wantOK: true},
		{name: "duplicate dates only", dates: []models.Day{base, base, base}, wantOK: false},
		{name: "descending dates only", dates: []models.Day{base.AddDays(56), base.AddDays(28), base}, wantOK: false},
		{name: "half day rounds up", dates: []models.Day{base, base.AddDays(27), base.AddDays(55)}, want: 28, wantOK: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got, ok := AverageCycleLength(makeEntries(testCase.dates...))
			if ok != testCase.wantOK {
				t.Fatalf("expected ok=%v, got ok=%v (value %d)", testCase.wantOK, ok, got)
			}
			if ok && got != testCase.want {
				t.Fatalf("expected average %d, got %d", testCase.want, got)
			}
		})
	}
}

func TestAverageCycleLengthAbsorbsTimeOfDayNoise(t *testing.T) {
	entries := []models.Entry{
		{Date: models.Day{Time: time.Date(2025, time.January, 1, 23, 0, 0, 0, time.UTC)}},
		{Date: models.Day{Time: time.Date(2025, time.January, 29, 1, 0, 0, 0, time.UTC)}},
	}

	got, ok := AverageCycleLength(entries)
	if !ok || got != 27 {
		t.Fatalf("expected 27 days (27d 2h rounded), got %d ok=%v", got, ok)
	}
}

func TestNextPredictedDate(t *testing.T) {
	if _, ok := NextPredictedDate(nil); ok {
		t.Fatal("expected insufficient data for empty predictions")
	}

	first := mustParseDay(t, "2025-04-10")
	predictions := []models.Prediction{
		{Date: first, PredictedCycleLength: 29},
		{Date: mustParseDay(t, "2025-03-01"), PredictedCycleLength: 29},
	}
	got, ok := NextPredictedDate(predictions)
	if !ok {
		t.Fatal("expected a predicted date")
	}
	if !got.Equal(first.Time) {
		t.Fatalf("expected first prediction %s unchanged, got %s", first, got)
	}
}

func TestTotalTrackedCycles(t *testing.T) {
	if got := TotalTrackedCycles(nil); got != 0 {
		t.Fatalf("expected 0 for no entries, got %d", got)
	}
	base := mustParseDay(t, "2025-01-01")
	entries := makeEntries(base, base, base.AddDays(-3))
	if got := TotalTrackedCycles(entries); got != 3 {
		t.Fatalf("expected 3 entries counted, got %d", got)
	}
}

func TestBuildInsightsIsPureAndUsesNilForInsufficientData(t *testing.T) {
	empty := BuildInsights(nil, nil)
	if empty.AverageCycleLength != nil || empty.NextPredictedDate != nil {
		t.Fatalf("expected nil sentinels, got %#v", empty)
	}
	if empty.TotalTrackedCycles != 0 {
		t.Fatalf("expected zero total, got %d", empty.TotalTrackedCycles)
	}

	base := mustParseDay(t, "2025-01-01")
	entries := makeEntries(base, base.AddDays(28), base.AddDays(58))
	predictions := []models.Prediction{{Date: base.AddDays(87), PredictedCycleLength: 29}}

	first := BuildInsights(entries, predictions)
	second := BuildInsights(entries, predictions)
	if first.AverageCycleLength == nil || *first.AverageCycleLength != 29 {
		t.Fatalf("expected average 29, got %#v", first.AverageCycleLength)
	}
	if first.NextPredictedDate == nil || first.NextPredictedDate.String() != "2025-03-29" {
		t.Fatalf("expected next date 2025-03-29, got %#v", first.NextPredictedDate)
	}
	if *second.AverageCycleLength != *first.AverageCycleLength || second.NextPredictedDate.String() != first.NextPredictedDate.String() || second.TotalTrackedCycles != first.TotalTrackedCycles {
		t.Fatalf("expected repeated calls to match, got %#v and %#v", first, second)
	}
	if entries[0].Date.String() != "2025-01-01" || len(entries) != 3 {
		t.Fatal("expected input entries to be left untouched")
	}
}

func makeEntries(days ...models.Day) []models.Entry {
	entries := make([]models.Entry, 0, len(days))
	for index, day := range days {
		entries = append(entries, models.Entry{
			ID:            uint(index + 1),
			Date:          day,
			FlowIntensity: models.FlowNone,
			Symptoms:      models.Symptoms{},
		})
	}
	return entries
}

func mustParseDay(t *testing.T, raw string) models.Day {
	t.Helper()
	day, err := models.ParseDay(raw)
	if err != nil {
		t.Fatalf("parse day %q: %v", raw, err)
	}
	return day
}
