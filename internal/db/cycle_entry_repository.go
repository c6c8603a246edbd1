package db

import (
	"time"

	"github.com/terraincognita07/cycletrack/internal/models"
	"gorm.io/gorm"
)

type CycleEntryRepository struct {
	database *gorm.DB
}

func NewCycleEntryRepository(database *gorm.DB) *CycleEntryRepository {
	return &CycleEntryRepository{database: database}
}

func (repo *CycleEntryRepository) ListByUser(userID string) ([]models.CycleEntry, error) {
	entries := make([]models.CycleEntry, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("date ASC, id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *CycleEntryRepository) ListUserIDs() ([]string, error) {
	userIDs := make([]string, 0)
	if err := repo.database.
		Model(&models.CycleEntry{}).
		Distinct("user_id").
		Order("user_id ASC").
		Pluck("user_id", &userIDs).Error; err != nil {
		return nil, err
	}
	return userIDs, nil
}

func (repo *CycleEntryRepository) FindByID(userID string, id uint) (models.CycleEntry, bool, error) {
	entry := models.CycleEntry{}
	result := repo.database.
		Where("id = ? AND user_id = ?", id, userID).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.CycleEntry{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.CycleEntry{}, false, nil
	}
	return entry, true, nil
}

func (repo *CycleEntryRepository) FindByUserAndDay(userID string, day time.Time) (models.CycleEntry, bool, error) {
	dayStart := models.NewDay(day).Time
	dayEnd := dayStart.AddDate(0, 0, 1)

	entry := models.CycleEntry{}
	result := repo.database.
		Where("user_id = ? AND date >= ? AND date < ?", userID, dayStart, dayEnd).
		Order("id ASC").
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.CycleEntry{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.CycleEntry{}, false, nil
	}
	return entry, true, nil
}

func (repo *CycleEntryRepository) Create(entry *models.CycleEntry) error {
	return repo.database.Create(entry).Error
}

func (repo *CycleEntryRepository) Save(entry *models.CycleEntry) error {
	return repo.database.Save(entry).Error
}

func (repo *CycleEntryRepository) Delete(entry *models.CycleEntry) error {
	return repo.database.Where("user_id = ?", entry.UserID).Delete(&models.CycleEntry{}, entry.ID).Error
}
