package services

import (
	"errors"
	"log"
	"time"

	"github.com/terraincognita07/cycletrack/internal/models"
)

var (
	ErrEntryNotFound      = errors.New("entry not found")
	ErrEntryDateConflict  = errors.New("entry already exists for this date")
	ErrEntryLoadFailed    = errors.New("load entry failed")
	ErrEntryCreateFailed  = errors.New("create entry failed")
	ErrEntryUpdateFailed  = errors.New("update entry failed")
	ErrEntryDeleteFailed  = errors.New("delete entry failed")
	ErrEntriesFetchFailed = errors.New("fetch entries failed")
)

type EntryRepository interface {
	ListByUser(userID string) ([]models.CycleEntry, error)
	FindByID(userID string, id uint) (models.CycleEntry, bool, error)
	FindByUserAndDay(userID string, day time.Time) (models.CycleEntry, bool, error)
	Create(entry *models.CycleEntry) error
	Save(entry *models.CycleEntry) error
	Delete(entry *models.CycleEntry) error
}

type PredictionRefresher interface {
	Refresh(userID string) error
}

type EntryService struct {
	entries     EntryRepository
	predictions PredictionRefresher
}

func NewEntryService(entries EntryRepository, predictions PredictionRefresher) *EntryService {
	return &EntryService{
		entries:     entries,
		predictions: predictions,
	}
}

// ListEntries returns the user's entries ordered by date.
func (service *EntryService) ListEntries(userID string) ([]models.Entry, error) {
	records, err := service.entries.ListByUser(userID)
	if err != nil {
		return nil, ErrEntriesFetchFailed
	}
	return EntriesFromRecords(records), nil
}

func (service *EntryService) GetEntry(userID string, id uint) (models.Entry, error) {
	record, found, err := service.entries.FindByID(userID, id)
	if err != nil {
		return models.Entry{}, ErrEntryLoadFailed
	}
	if !found {
		return models.Entry{}, ErrEntryNotFound
	}
	return EntryFromRecord(record), nil
}

func (service *EntryService) CreateEntry(userID string, input EntryInput) (models.Entry, error) {
	normalized, err := normalizeEntryInput(input)
	if err != nil {
		return models.Entry{}, err
	}

	occupied, err := service.dayOccupied(userID, normalized.Date, 0)
	if err != nil {
		return models.Entry{}, ErrEntryLoadFailed
	}
	if occupied {
		return models.Entry{}, ErrEntryDateConflict
	}

	record := models.CycleEntry{
		UserID:        userID,
		Date:          normalized.Date.Time,
		FlowIntensity: normalized.FlowIntensity,
		Symptoms:      normalized.Symptoms,
		Notes:         normalized.Notes,
	}
	if err := service.entries.Create(&record); err != nil {
		// A concurrent create for the same day loses on the unique index.
		if occupied, checkErr := service.dayOccupied(userID, normalized.Date, 0); checkErr == nil && occupied {
			return models.Entry{}, ErrEntryDateConflict
		}
		return models.Entry{}, ErrEntryCreateFailed
	}

	service.refreshPredictions(userID)
	return EntryFromRecord(record), nil
}

func (service *EntryService) UpdateEntry(userID string, id uint, patch EntryPatch) (models.Entry, error) {
	record, found, err := service.entries.FindByID(userID, id)
	if err != nil {
		return models.Entry{}, ErrEntryLoadFailed
	}
	if !found {
		return models.Entry{}, ErrEntryNotFound
	}

	if patch.Date != nil {
		day, err := parseEntryDate(*patch.Date)
		if err != nil {
			return models.Entry{}, err
		}
		occupied, err := service.dayOccupied(userID, day, record.ID)
		if err != nil {
			return models.Entry{}, ErrEntryLoadFailed
		}
		if occupied {
			return models.Entry{}, ErrEntryDateConflict
		}
		record.Date = day.Time
	}
	if patch.FlowIntensity != nil {
		flow, err := normalizeFlowIntensity(*patch.FlowIntensity)
		if err != nil {
			return models.Entry{}, err
		}
		record.FlowIntensity = flow
	}
	if patch.Symptoms != nil {
		record.Symptoms = normalizeSymptoms(*patch.Symptoms)
	}
	if patch.Notes != nil {
		record.Notes = TrimEntryNotes(*patch.Notes)
	}

	if err := service.entries.Save(&record); err != nil {
		return models.Entry{}, ErrEntryUpdateFailed
	}

	service.refreshPredictions(userID)
	return EntryFromRecord(record), nil
}

func (service *EntryService) DeleteEntry(userID string, id uint) error {
	record, found, err := service.entries.FindByID(userID, id)
	if err != nil {
		return ErrEntryLoadFailed
	}
	if !found {
		return ErrEntryNotFound
	}
	if err := service.entries.Delete(&record); err != nil {
		return ErrEntryDeleteFailed
	}

	service.refreshPredictions(userID)
	return nil
}

func (service *EntryService) dayOccupied(userID string, day models.Day, exceptID uint) (bool, error) {
	existing, found, err := service.entries.FindByUserAndDay(userID, day.Time)
	if err != nil {
		return false, err
	}
	return found && existing.ID != exceptID, nil
}

// refreshPredictions never fails the mutation. A failed refresh leaves no
// snapshot, so predictions are computed from entries until the scheduler
// stores a new one.
func (service *EntryService) refreshPredictions(userID string) {
	if service.predictions == nil {
		return
	}
	if err := service.predictions.Refresh(userID); err != nil {
		log.Printf("refresh predictions for user %q failed: %v", userID, err)
	}
}

func EntryFromRecord(record models.CycleEntry) models.Entry {
	symptoms := record.Symptoms
	if symptoms == nil {
		symptoms = models.Symptoms{}
	}
	return models.Entry{
		ID:            record.ID,
		Date:          models.NewDay(record.Date),
		FlowIntensity: record.FlowIntensity,
		Symptoms:      symptoms,
		Notes:         record.Notes,
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}
}

func EntriesFromRecords(records []models.CycleEntry) []models.Entry {
	entries := make([]models.Entry, 0, len(records))
	for _, record := range records {
		entries = append(entries, EntryFromRecord(record))
	}
	return entries
}
