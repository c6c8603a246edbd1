package services

import (
	"sort"

	"github.com/terraincognita07/cycletrack/internal/models"
)

type InsightsEntryLister interface {
	ListEntries(userID string) ([]models.Entry, error)
}

type InsightsPredictionLister interface {
	ListPredictions(userID string) ([]models.Prediction, error)
}

type InsightsService struct {
	entries     InsightsEntryLister
	predictions InsightsPredictionLister
}

func NewInsightsService(entries InsightsEntryLister, predictions InsightsPredictionLister) *InsightsService {
	return &InsightsService{
		entries:     entries,
		predictions: predictions,
	}
}

func (service *InsightsService) Build(userID string) (Insights, error) {
	entries, err := service.entries.ListEntries(userID)
	if err != nil {
		return Insights{}, err
	}
	predictions, err := service.predictions.ListPredictions(userID)
	if err != nil {
		return Insights{}, err
	}

	ordered := make([]models.Entry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date.Time)
	})

	return BuildInsights(ordered, predictions), nil
}
