package api

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func seedExportEntries(t *testing.T) *fiber.App {
	t.Helper()

	app, _ := newCyclesTestApp(t)
	createTestEntry(t, app, "export-user", `{"date":"2025-01-01","flow_intensity":"heavy","symptoms":{"cramps":"mild","headache":true},"notes":"first day"}`)
	createTestEntry(t, app, "export-user", `{"date":"2025-01-29","flow_intensity":"light"}`)
	createTestEntry(t, app, "export-user", `{"date":"2025-02-28"}`)
	createTestEntry(t, app, "other-user", `{"date":"2025-01-15"}`)
	return app
}

func TestExportCSVWritesHeaderAndRows(t *testing.T) {
	app := seedExportEntries(t)

	response := doJSONRequest(t, app, http.MethodGet, "/api/cycles/export-user/export/csv", "")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	if contentType := response.Header.Get("Content-Type"); !strings.HasPrefix(contentType, "text/csv") {
		t.Fatalf("expected text/csv content type, got %q", contentType)
	}
	disposition := response.Header.Get("Content-Disposition")
	if !strings.Contains(disposition, "attachment") || !strings.Contains(disposition, "cycletrack-export-user-") {
		t.Fatalf("unexpected content disposition %q", disposition)
	}

	records, err := csv.NewReader(response.Body).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header and 3 rows, got %d records", len(records))
	}
	if strings.Join(records[0], ",") != "Date,Flow,Symptoms,Notes" {
		t.Fatalf("unexpected csv header %v", records[0])
	}
	first := records[1]
	if first[0] != "2025-01-01" || first[1] != "Heavy" || first[2] != "cramps=mild; headache" || first[3] != "first day" {
		t.Fatalf("unexpected first csv row %v", first)
	}
	if records[3][1] != "None" {
		t.Fatalf("expected default flow label None, got %q", records[3][1])
	}
}

func TestExportJSONRespectsRange(t *testing.T) {
	app := seedExportEntries(t)

	response := doJSONRequest(t, app, http.MethodGet, "/api/cycles/export-user/export/json?from=2025-01-02&to=2025-02-01", "")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	payload := struct {
		UserID     string           `json:"user_id"`
		ExportedAt string           `json:"exported_at"`
		Entries    []map[string]any `json:"entries"`
	}{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if payload.UserID != "export-user" || payload.ExportedAt == "" {
		t.Fatalf("unexpected export envelope %+v", payload)
	}
	if len(payload.Entries) != 1 || payload.Entries[0]["date"] != "2025-01-29" || payload.Entries[0]["flow"] != "light" {
		t.Fatalf("unexpected exported entries %#v", payload.Entries)
	}
}

func TestExportSummary(t *testing.T) {
	app := seedExportEntries(t)

	response := doJSONRequest(t, app, http.MethodGet, "/api/cycles/export-user/export/summary", "")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	summary := decodeJSON[map[string]any](t, response.Body)
	if summary["total_entries"] != float64(3) || summary["has_data"] != true {
		t.Fatalf("unexpected summary %#v", summary)
	}
	if summary["date_from"] != "2025-01-01" || summary["date_to"] != "2025-02-28" {
		t.Fatalf("unexpected summary bounds %#v", summary)
	}

	empty := doJSONRequest(t, app, http.MethodGet, "/api/cycles/nobody/export/summary", "")
	emptySummary := decodeJSON[map[string]any](t, empty.Body)
	if emptySummary["has_data"] != false || emptySummary["total_entries"] != float64(0) {
		t.Fatalf("unexpected empty summary %#v", emptySummary)
	}
}

func TestExportRejectsInvalidRange(t *testing.T) {
	app, _ := newCyclesTestApp(t)

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{name: "bad from", query: "?from=2025-13-01", want: "Invalid from date. Use YYYY-MM-DD"},
		{name: "bad to", query: "?to=yesterday", want: "Invalid to date. Use YYYY-MM-DD"},
		{name: "reversed", query: "?from=2025-03-01&to=2025-02-01", want: "Invalid export range"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			response := doJSONRequest(t, app, http.MethodGet, "/api/cycles/export-user/export/csv"+tc.query, "")
			if response.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", response.StatusCode)
			}
			if got := readAPIError(t, response.Body); got != tc.want {
				t.Fatalf("expected error %q, got %q", tc.want, got)
			}
		})
	}
}
