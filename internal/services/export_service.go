package services

import (
	"sort"
	"strings"

	"github.com/terraincognita07/cycletrack/internal/models"
)

var ExportCSVHeaders = []string{
	"Date",
	"Flow",
	"Symptoms",
	"Notes",
}

type ExportEntryLister interface {
	ListEntries(userID string) ([]models.Entry, error)
}

type ExportService struct {
	entries ExportEntryLister
}

type ExportSummary struct {
	TotalEntries int    `json:"total_entries"`
	HasData      bool   `json:"has_data"`
	DateFrom     string `json:"date_from"`
	DateTo       string `json:"date_to"`
}

type ExportJSONEntry struct {
	Date     string          `json:"date"`
	Flow     string          `json:"flow"`
	Symptoms models.Symptoms `json:"symptoms"`
	Notes    string          `json:"notes"`
}

func NewExportService(entries ExportEntryLister) *ExportService {
	return &ExportService{entries: entries}
}

// LoadEntries returns the user's entries inside exportRange in date order.
func (service *ExportService) LoadEntries(userID string, exportRange ExportRange) ([]models.Entry, error) {
	entries, err := service.entries.ListEntries(userID)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Entry, 0, len(entries))
	for _, entry := range entries {
		if exportRange.Contains(entry.Date) {
			filtered = append(filtered, entry)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.Before(filtered[j].Date.Time)
	})
	return filtered, nil
}

func (service *ExportService) BuildSummary(userID string, exportRange ExportRange) (ExportSummary, error) {
	entries, err := service.LoadEntries(userID, exportRange)
	if err != nil {
		return ExportSummary{}, err
	}
	if len(entries) == 0 {
		return ExportSummary{}, nil
	}

	return ExportSummary{
		TotalEntries: len(entries),
		HasData:      true,
		DateFrom:     entries[0].Date.String(),
		DateTo:       entries[len(entries)-1].Date.String(),
	}, nil
}

func (service *ExportService) BuildJSONEntries(userID string, exportRange ExportRange) ([]ExportJSONEntry, error) {
	entries, err := service.LoadEntries(userID, exportRange)
	if err != nil {
		return nil, err
	}

	exported := make([]ExportJSONEntry, 0, len(entries))
	for _, entry := range entries {
		symptoms := entry.Symptoms
		if symptoms == nil {
			symptoms = models.Symptoms{}
		}
		exported = append(exported, ExportJSONEntry{
			Date:     entry.Date.String(),
			Flow:     normalizeExportFlow(entry.FlowIntensity),
			Symptoms: symptoms,
			Notes:    entry.Notes,
		})
	}
	return exported, nil
}

// BuildCSVRows returns data rows matching ExportCSVHeaders.
func (service *ExportService) BuildCSVRows(userID string, exportRange ExportRange) ([][]string, error) {
	entries, err := service.LoadEntries(userID, exportRange)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			entry.Date.String(),
			csvFlowLabel(entry.FlowIntensity),
			entry.Symptoms.Format("; "),
			entry.Notes,
		})
	}
	return rows, nil
}

func csvFlowLabel(flow string) string {
	switch strings.ToLower(strings.TrimSpace(flow)) {
	case models.FlowLight:
		return "Light"
	case models.FlowMedium:
		return "Medium"
	case models.FlowHeavy:
		return "Heavy"
	default:
		return "None"
	}
}

func normalizeExportFlow(flow string) string {
	switch strings.ToLower(strings.TrimSpace(flow)) {
	case models.FlowLight:
		return models.FlowLight
	case models.FlowMedium:
		return models.FlowMedium
	case models.FlowHeavy:
		return models.FlowHeavy
	default:
		return models.FlowNone
	}
}
