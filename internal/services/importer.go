package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/terraincognita07/selene/internal/models"
)

// legacyTypeSpotting is the old top-level type some exports used
// before spotting became a period flow option.
const legacyTypeSpotting = "spotting"

// ImportRecord is one externally supplied raw record. The incoming id
// is ignored: the store assigns ids on write.
type ImportRecord struct {
	ID    string          `json:"id"`
	Type  string          `json:"type"`
	Date  string          `json:"date"`
	Value json.RawMessage `json:"value"`
}

// ImportSummary reports the outcome of one batch. Duplicates are not
// errors and not writes; skipped records were malformed or failed to
// write.
type ImportSummary struct {
	Imported   int `json:"imported"`
	Skipped    int `json:"skipped"`
	Duplicates int `json:"duplicates"`
}

type DedupSummary struct {
	Removed int `json:"removed"`
	Kept    int `json:"kept"`
}

type ImportMeasurementStore interface {
	ListByUser(userID uint) ([]models.Measurement, error)
	Create(measurement *models.Measurement) error
	Delete(userID uint, id string) error
}

type ImportService struct {
	store    ImportMeasurementStore
	location *time.Location
}

func NewImportService(store ImportMeasurementStore, location *time.Location) *ImportService {
	if location == nil {
		location = time.UTC
	}
	return &ImportService{store: store, location: location}
}

// ImportBatch validates, normalizes and writes a JSON array of raw
// records. Per-record failures never abort the batch; only a malformed
// top-level payload or a failing duplicate-check read do.
func (service *ImportService) ImportBatch(userID uint, payload []byte) (ImportSummary, error) {
	records := make([]ImportRecord, 0)
	if err := json.Unmarshal(payload, &records); err != nil {
		return ImportSummary{}, fmt.Errorf("parse import payload: %w", err)
	}

	existing, err := service.store.ListByUser(userID)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("load existing measurements: %w", err)
	}

	existingKeys := make(map[string]struct{}, len(existing))
	for _, measurement := range existing {
		existingKeys[dayTypeKey(measurement.Date, measurement.Type)] = struct{}{}
	}

	summary := ImportSummary{}
	for _, record := range records {
		measurement, ok := service.normalizeImportRecord(record)
		if !ok {
			summary.Skipped++
			continue
		}

		key := dayTypeKey(measurement.Date, measurement.Type)
		if _, duplicate := existingKeys[key]; duplicate {
			summary.Duplicates++
			continue
		}

		measurement.UserID = userID
		if err := service.store.Create(&measurement); err != nil {
			summary.Skipped++
			continue
		}
		existingKeys[key] = struct{}{}
		summary.Imported++
	}
	return summary, nil
}

// DeduplicateUser is the maintenance pass over the live store: for
// every (date, type) group with more than one member it deletes all
// but the earliest-created record.
func (service *ImportService) DeduplicateUser(userID uint) (DedupSummary, error) {
	measurements, err := service.store.ListByUser(userID)
	if err != nil {
		return DedupSummary{}, fmt.Errorf("load measurements: %w", err)
	}

	groups := make(map[string][]models.Measurement)
	for _, measurement := range measurements {
		key := dayTypeKey(measurement.Date, measurement.Type)
		groups[key] = append(groups[key], measurement)
	}

	summary := DedupSummary{}
	for _, group := range groups {
		if len(group) < 2 {
			continue
		}
		sort.Slice(group, func(i, j int) bool {
			if group[i].CreatedAt.Equal(group[j].CreatedAt) {
				return group[i].ID < group[j].ID
			}
			return group[i].CreatedAt.Before(group[j].CreatedAt)
		})
		for _, extra := range group[1:] {
			if err := service.store.Delete(userID, extra.ID); err != nil {
				return summary, fmt.Errorf("delete duplicate %s: %w", extra.ID, err)
			}
			summary.Removed++
		}
	}
	summary.Kept = len(measurements) - summary.Removed
	return summary, nil
}

// normalizeImportRecord validates the record shape and maps legacy
// forms onto the current model. A false return means skip-and-count.
func (service *ImportService) normalizeImportRecord(record ImportRecord) (models.Measurement, bool) {
	recordType := strings.TrimSpace(record.Type)
	raw := []byte(record.Value)

	if recordType == legacyTypeSpotting {
		recordType = models.MeasurementPeriod
		raw = []byte(`{"option":"spotting"}`)
	}
	if !models.IsValidMeasurementType(recordType) {
		return models.Measurement{}, false
	}

	day, err := ParseDay(strings.TrimSpace(record.Date), service.location)
	if err != nil {
		return models.Measurement{}, false
	}

	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return models.Measurement{}, false
	}
	value, err := models.DecodeMeasurementValue(recordType, raw)
	if err != nil {
		return models.Measurement{}, false
	}

	return models.Measurement{
		Date:  day,
		Type:  recordType,
		Value: value,
	}, true
}

func dayTypeKey(day time.Time, measurementType string) string {
	return FormatDay(day) + "|" + measurementType
}
