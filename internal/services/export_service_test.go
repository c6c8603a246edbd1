package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/cycletrack/internal/models"
)

type exportEntryListerStub struct {
	entries []models.Entry
	err     error
}

func (stub *exportEntryListerStub) ListEntries(string) ([]models.Entry, error) {
	return stub.entries, stub.err
}

func TestParseExportRange(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		wantErr error
	}{
		{name: "open range", from: "", to: ""},
		{name: "bounded", from: "2025-01-01", to: "2025-01-31"},
		{name: "same day", from: " 2025-01-01 ", to: "2025-01-01"},
		{name: "invalid from", from: "01/01/2025", wantErr: ErrExportFromDateInvalid},
		{name: "invalid to", to: "2025-02-30", wantErr: ErrExportToDateInvalid},
		{name: "reversed", from: "2025-02-01", to: "2025-01-01", wantErr: ErrExportRangeInvalid},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := ParseExportRange(testCase.from, testCase.to)
			if !errors.Is(err, testCase.wantErr) {
				t.Fatalf("expected error %v, got %v", testCase.wantErr, err)
			}
		})
	}
}

func TestExportServiceFiltersAndOrdersEntries(t *testing.T) {
	lister := &exportEntryListerStub{entries: []models.Entry{
		{ID: 3, Date: mustParseDay(t, "2025-03-01"), FlowIntensity: models.FlowMedium},
		{ID: 1, Date: mustParseDay(t, "2025-01-01"), FlowIntensity: "HEAVY", Symptoms: models.Symptoms{"fatigue": false, "cramps": "severe", "bloating": true}},
		{ID: 2, Date: mustParseDay(t, "2025-02-01")},
	}}
	service := NewExportService(lister)

	exportRange, err := ParseExportRange("", "2025-02-01")
	if err != nil {
		t.Fatalf("parse range: %v", err)
	}

	rows, err := service.BuildCSVRows("user-1", exportRange)
	if err != nil {
		t.Fatalf("build csv rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows in range, got %d", len(rows))
	}
	if rows[0][0] != "2025-01-01" || rows[0][1] != "Heavy" || rows[0][2] != "bloating; cramps=severe" {
		t.Fatalf("unexpected first row %v", rows[0])
	}
	if rows[1][0] != "2025-02-01" || rows[1][1] != "None" || rows[1][2] != "" {
		t.Fatalf("unexpected second row %v", rows[1])
	}

	exported, err := service.BuildJSONEntries("user-1", ExportRange{})
	if err != nil {
		t.Fatalf("build json entries: %v", err)
	}
	if len(exported) != 3 || exported[0].Flow != models.FlowHeavy || exported[2].Flow != models.FlowMedium {
		t.Fatalf("unexpected json entries %+v", exported)
	}
	if exported[1].Symptoms == nil {
		t.Fatal("expected empty symptoms map instead of nil")
	}

	summary, err := service.BuildSummary("user-1", ExportRange{})
	if err != nil {
		t.Fatalf("build summary: %v", err)
	}
	if !summary.HasData || summary.TotalEntries != 3 || summary.DateFrom != "2025-01-01" || summary.DateTo != "2025-03-01" {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestExportServicePropagatesListError(t *testing.T) {
	service := NewExportService(&exportEntryListerStub{err: errors.New("db down")})

	if _, err := service.BuildSummary("user-1", ExportRange{}); err == nil {
		t.Fatal("expected list error")
	}
}
