package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/terraincognita07/cycletrack/internal/i18n"
	"github.com/terraincognita07/cycletrack/internal/models"
	"github.com/terraincognita07/cycletrack/internal/services"
)

func newTestRenderer(t *testing.T, language string) (*Renderer, *bytes.Buffer) {
	t.Helper()

	messages, err := i18n.NewEmbeddedManager("en")
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}
	var out bytes.Buffer
	return NewRenderer(&out, messages, language), &out
}

func mustDay(t *testing.T, raw string) models.Day {
	t.Helper()
	day, err := models.ParseDay(raw)
	if err != nil {
		t.Fatalf("parse day %q: %v", raw, err)
	}
	return day
}

func TestRenderInsightsWithoutData(t *testing.T) {
	renderer, out := newTestRenderer(t, "en")

	if err := renderer.RenderInsights(services.BuildInsights(nil, nil)); err != nil {
		t.Fatalf("RenderInsights() unexpected error: %v", err)
	}

	rendered := out.String()
	if !strings.Contains(rendered, "Cycle Insights") {
		t.Fatalf("expected title, got:\n%s", rendered)
	}
	if strings.Count(rendered, "Not enough data") != 2 {
		t.Fatalf("expected two not-enough-data values, got:\n%s", rendered)
	}
	if !strings.Contains(rendered, "Total Tracked Cycles:") || !strings.HasSuffix(strings.TrimSpace(rendered), "0") {
		t.Fatalf("expected zero total, got:\n%s", rendered)
	}
}

func TestRenderInsightsWithData(t *testing.T) {
	renderer, out := newTestRenderer(t, "en")
	entries := []models.Entry{
		{Date: mustDay(t, "2025-01-01")},
		{Date: mustDay(t, "2025-01-29")},
		{Date: mustDay(t, "2025-02-28")},
	}
	predictions := []models.Prediction{{Date: mustDay(t, "2025-03-29"), PredictedCycleLength: 29}}

	if err := renderer.RenderInsights(services.BuildInsights(entries, predictions)); err != nil {
		t.Fatalf("RenderInsights() unexpected error: %v", err)
	}

	rendered := out.String()
	for _, want := range []string{"29 days", "2025-03-29"} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("expected %q in output:\n%s", want, rendered)
		}
	}
	if strings.Contains(rendered, "Not enough data") {
		t.Fatalf("did not expect sentinel text:\n%s", rendered)
	}
}

func TestRenderInsightsLocalized(t *testing.T) {
	renderer, out := newTestRenderer(t, "ru")

	if err := renderer.RenderInsights(services.BuildInsights(nil, nil)); err != nil {
		t.Fatalf("RenderInsights() unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Недостаточно данных") {
		t.Fatalf("expected russian sentinel text, got:\n%s", out.String())
	}
}

func TestRenderEntries(t *testing.T) {
	renderer, out := newTestRenderer(t, "en")

	if err := renderer.RenderEntries(nil); err != nil {
		t.Fatalf("RenderEntries() unexpected error: %v", err)
	}
	if strings.TrimSpace(out.String()) != "No entries recorded yet." {
		t.Fatalf("unexpected empty output %q", out.String())
	}

	out.Reset()
	entries := []models.Entry{{
		ID:            3,
		Date:          mustDay(t, "2025-01-01"),
		FlowIntensity: models.FlowHeavy,
		Symptoms:      models.Symptoms{"fatigue": true, "cramps": "mild", "headache": false},
		Notes:         "line one\nline two",
	}}
	if err := renderer.RenderEntries(entries); err != nil {
		t.Fatalf("RenderEntries() unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d lines:\n%s", len(lines), out.String())
	}
	row := lines[1]
	for _, want := range []string{"3", "2025-01-01", "Heavy", "cramps=mild, fatigue", "line one line two"} {
		if !strings.Contains(row, want) {
			t.Fatalf("expected %q in row %q", want, row)
		}
	}
	if strings.Contains(row, "headache") {
		t.Fatalf("expected absent symptom omitted, got %q", row)
	}
}

func TestRenderPredictions(t *testing.T) {
	renderer, out := newTestRenderer(t, "en")

	if err := renderer.RenderPredictions([]models.Prediction{}); err != nil {
		t.Fatalf("RenderPredictions() unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "No predictions yet") {
		t.Fatalf("unexpected empty output %q", out.String())
	}

	out.Reset()
	predictions := []models.Prediction{
		{Date: mustDay(t, "2025-03-29"), PredictedCycleLength: 29},
		{Date: mustDay(t, "2025-04-27"), PredictedCycleLength: 29},
	}
	if err := renderer.RenderPredictions(predictions); err != nil {
		t.Fatalf("RenderPredictions() unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 || !strings.Contains(lines[1], "2025-03-29") || !strings.Contains(lines[2], "29 days") {
		t.Fatalf("unexpected predictions output:\n%s", out.String())
	}
}

func TestNewRendererDisablesColorForNonTerminal(t *testing.T) {
	renderer, _ := newTestRenderer(t, "en")
	if renderer.color {
		t.Fatal("expected colour disabled for a buffer")
	}
}
