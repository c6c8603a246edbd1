package db

import (
	"github.com/terraincognita07/cycletrack/internal/models"
	"gorm.io/gorm"
)

type PredictionRepository struct {
	database *gorm.DB
}

func NewPredictionRepository(database *gorm.DB) *PredictionRepository {
	return &PredictionRepository{database: database}
}

// ReplaceForUser swaps the user's snapshot in one transaction; an empty
// slice clears it.
func (repo *PredictionRepository) ReplaceForUser(userID string, predictions []models.CyclePrediction) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.CyclePrediction{}).Error; err != nil {
			return err
		}
		if len(predictions) == 0 {
			return nil
		}
		return tx.Create(&predictions).Error
	})
}

func (repo *PredictionRepository) ListByUser(userID string) ([]models.CyclePrediction, error) {
	rows := make([]models.CyclePrediction, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("position ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (repo *PredictionRepository) ListUserIDs() ([]string, error) {
	userIDs := make([]string, 0)
	if err := repo.database.
		Model(&models.CyclePrediction{}).
		Distinct("user_id").
		Order("user_id ASC").
		Pluck("user_id", &userIDs).Error; err != nil {
		return nil, err
	}
	return userIDs, nil
}
