package tracker

import (
	"context"
	"errors"
	"sort"

	"github.com/terraincognita07/cycletrack/internal/client"
	"github.com/terraincognita07/cycletrack/internal/models"
	"github.com/terraincognita07/cycletrack/internal/services"
)

type CyclesAPI interface {
	ListEntries(ctx context.Context, userID string) ([]models.Entry, error)
	CreateEntry(ctx context.Context, userID string, entry client.EntryRequest) (models.Entry, error)
	UpdateEntry(ctx context.Context, userID string, id uint, entry client.EntryRequest) (models.Entry, error)
	DeleteEntry(ctx context.Context, userID string, id uint) error
	ListPredictions(ctx context.Context, userID string) ([]models.Prediction, error)
}

// Session holds one user's entries and predictions for the lifetime of a
// tracking screen. Calls are issued one at a time; a prediction refresh is
// only requested after the server acknowledged the mutation.
type Session struct {
	api         CyclesAPI
	userID      string
	entries     []models.Entry
	predictions []models.Prediction
	selected    models.Day
}

func NewSession(api CyclesAPI, userID string) *Session {
	return &Session{
		api:         api,
		userID:      userID,
		entries:     []models.Entry{},
		predictions: []models.Prediction{},
	}
}

// Load replaces the cached data. On failure the previous cache is kept.
func (s *Session) Load(ctx context.Context) error {
	entries, err := s.api.ListEntries(ctx, s.userID)
	if err != nil {
		return userError(MessageLoadFailed, err)
	}
	predictions, err := s.api.ListPredictions(ctx, s.userID)
	if err != nil {
		return userError(MessageLoadFailed, err)
	}

	s.entries = sortedEntries(entries)
	s.predictions = clonePredictions(predictions)
	return nil
}

func (s *Session) SaveEntry(ctx context.Context, date models.Day, draft Draft) (models.Entry, error) {
	draft.Date = date
	saved, err := s.api.CreateEntry(ctx, s.userID, draft.request(true))
	if err != nil {
		if errors.Is(err, client.ErrEntryConflict) {
			return models.Entry{}, userError(MessageDateConflict, err)
		}
		return models.Entry{}, userError(MessageSaveFailed, err)
	}

	s.entries = insertByDate(s.entries, saved)
	if err := s.refreshPredictions(ctx); err != nil {
		return saved, userError(MessageSaveFailed, err)
	}
	return saved, nil
}

func (s *Session) UpdateEntry(ctx context.Context, id uint, draft Draft) (models.Entry, error) {
	updated, err := s.api.UpdateEntry(ctx, s.userID, id, draft.request(false))
	if err != nil {
		return models.Entry{}, userError(MessageUpdateFailed, err)
	}

	replaced := make([]models.Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		if entry.ID == id {
			replaced = append(replaced, updated)
			continue
		}
		replaced = append(replaced, entry)
	}
	s.entries = sortedEntries(replaced)

	if err := s.refreshPredictions(ctx); err != nil {
		return updated, userError(MessageUpdateFailed, err)
	}
	return updated, nil
}

func (s *Session) DeleteEntry(ctx context.Context, id uint) error {
	if err := s.api.DeleteEntry(ctx, s.userID, id); err != nil {
		return userError(MessageDeleteFailed, err)
	}

	kept := make([]models.Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		if entry.ID != id {
			kept = append(kept, entry)
		}
	}
	s.entries = kept

	if err := s.refreshPredictions(ctx); err != nil {
		return userError(MessageDeleteFailed, err)
	}
	return nil
}

// Submit creates or updates depending on whether the draft was opened on
// an existing entry.
func (s *Session) Submit(ctx context.Context, draft Draft) (models.Entry, error) {
	if draft.IsUpdate() {
		return s.UpdateEntry(ctx, draft.EntryID, draft)
	}
	return s.SaveEntry(ctx, draft.Date, draft)
}

// Select marks date as the active day and returns a draft for it.
func (s *Session) Select(date models.Day) Draft {
	s.selected = date
	if existing, ok := s.EntryForDate(date); ok {
		return NewDraft(date, &existing)
	}
	return NewDraft(date, nil)
}

func (s *Session) EntryForDate(date models.Day) (models.Entry, bool) {
	for _, entry := range s.entries {
		if entry.Date.Equal(date.Time) {
			return entry, true
		}
	}
	return models.Entry{}, false
}

func (s *Session) Entries() []models.Entry {
	return sortedEntries(s.entries)
}

func (s *Session) Predictions() []models.Prediction {
	return clonePredictions(s.predictions)
}

func (s *Session) Insights() services.Insights {
	return services.BuildInsights(s.entries, s.predictions)
}

func (s *Session) refreshPredictions(ctx context.Context) error {
	predictions, err := s.api.ListPredictions(ctx, s.userID)
	if err != nil {
		return err
	}
	s.predictions = clonePredictions(predictions)
	return nil
}

func insertByDate(entries []models.Entry, entry models.Entry) []models.Entry {
	index := sort.Search(len(entries), func(i int) bool {
		return entries[i].Date.After(entry.Date.Time)
	})
	inserted := make([]models.Entry, 0, len(entries)+1)
	inserted = append(inserted, entries[:index]...)
	inserted = append(inserted, entry)
	return append(inserted, entries[index:]...)
}

func sortedEntries(entries []models.Entry) []models.Entry {
	sorted := make([]models.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date.Time)
	})
	return sorted
}

func clonePredictions(predictions []models.Prediction) []models.Prediction {
	cloned := make([]models.Prediction, len(predictions))
	copy(cloned, predictions)
	return cloned
}
