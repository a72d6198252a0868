package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/terraincognita07/selene/internal/models"
)

const exportFilePrefix = "selene-data-"

type ExportMeasurementReader interface {
	ListByUser(userID uint) ([]models.Measurement, error)
}

type ExportService struct {
	measurements ExportMeasurementReader
}

// ExportEntry mirrors the import file format, so an export can be fed
// straight back into the importer.
type ExportEntry struct {
	ID    string                  `json:"id"`
	Type  string                  `json:"type"`
	Date  string                  `json:"date"`
	Value models.MeasurementValue `json:"value"`
}

func NewExportService(measurements ExportMeasurementReader) *ExportService {
	return &ExportService{measurements: measurements}
}

// BuildExport returns the raw measurement array as pretty-printed JSON
// plus the dated download filename.
func (service *ExportService) BuildExport(userID uint, now time.Time) ([]byte, string, error) {
	measurements, err := service.measurements.ListByUser(userID)
	if err != nil {
		return nil, "", fmt.Errorf("load measurements: %w", err)
	}

	entries := make([]ExportEntry, 0, len(measurements))
	for _, measurement := range measurements {
		entries = append(entries, ExportEntry{
			ID:    measurement.ID,
			Type:  measurement.Type,
			Date:  FormatDay(measurement.Date),
			Value: measurement.Value,
		})
	}

	payload, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("encode export: %w", err)
	}

	fileName := exportFilePrefix + FormatDay(DateAtLocation(now, now.Location())) + ".json"
	return payload, fileName, nil
}
