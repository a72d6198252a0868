package db

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/terraincognita07/selene/internal/models"
	"gorm.io/gorm"
)

type MeasurementRepository struct {
	database *gorm.DB
}

func NewMeasurementRepository(database *gorm.DB) *MeasurementRepository {
	return &MeasurementRepository{database: database}
}

// ListByUser returns every measurement for the user, oldest day first,
// with value payloads decoded. Legacy payload shapes are normalized by
// the decode step, so callers only ever see canonical values.
func (repo *MeasurementRepository) ListByUser(userID uint) ([]models.Measurement, error) {
	measurements := make([]models.Measurement, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("date ASC, created_at ASC, id ASC").
		Find(&measurements).Error; err != nil {
		return nil, err
	}

	for index := range measurements {
		value, err := models.DecodeMeasurementValue(measurements[index].Type, []byte(measurements[index].RawValue))
		if err != nil {
			return nil, fmt.Errorf("decode measurement %s: %w", measurements[index].ID, err)
		}
		measurements[index].Value = value
	}
	return measurements, nil
}

// Create assigns the id and persists the encoded value payload. The
// store owns id assignment; callers leave ID empty.
func (repo *MeasurementRepository) Create(measurement *models.Measurement) error {
	if measurement.ID == "" {
		measurement.ID = uuid.NewString()
	}

	encoded, err := models.EncodeMeasurementValue(measurement.Value)
	if err != nil {
		return err
	}
	measurement.RawValue = encoded

	return repo.database.Create(measurement).Error
}

// Delete removes one measurement by id. Deleting an id that does not
// exist is not an error.
func (repo *MeasurementRepository) Delete(userID uint, id string) error {
	return repo.database.
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&models.Measurement{}).Error
}
