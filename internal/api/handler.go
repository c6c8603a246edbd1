package api

import (
	"time"

	"github.com/terraincognita07/cycletrack/internal/models"
	"github.com/terraincognita07/cycletrack/internal/services"
)

type EntryService interface {
	ListEntries(userID string) ([]models.Entry, error)
	GetEntry(userID string, id uint) (models.Entry, error)
	CreateEntry(userID string, input services.EntryInput) (models.Entry, error)
	UpdateEntry(userID string, id uint, patch services.EntryPatch) (models.Entry, error)
	DeleteEntry(userID string, id uint) error
}

type PredictionLister interface {
	ListPredictions(userID string) ([]models.Prediction, error)
}

type InsightsBuilder interface {
	Build(userID string) (services.Insights, error)
}

type ExportBuilder interface {
	BuildSummary(userID string, exportRange services.ExportRange) (services.ExportSummary, error)
	BuildJSONEntries(userID string, exportRange services.ExportRange) ([]services.ExportJSONEntry, error)
	BuildCSVRows(userID string, exportRange services.ExportRange) ([][]string, error)
}

type Handler struct {
	entries     EntryService
	predictions PredictionLister
	insights    InsightsBuilder
	exports     ExportBuilder
	location    *time.Location
}

func NewHandler(entries EntryService, predictions PredictionLister, insights InsightsBuilder, exports ExportBuilder, location *time.Location) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		entries:     entries,
		predictions: predictions,
		insights:    insights,
		exports:     exports,
		location:    location,
	}
}
