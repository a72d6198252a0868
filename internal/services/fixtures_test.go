package services

import (
	"fmt"
	"time"

	"github.com/terraincognita07/selene/internal/models"
)

func mustParseDay(raw string) time.Time {
	parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		panic(err)
	}
	return parsed
}

func makePeriod(date string, option string) models.Measurement {
	return models.Measurement{
		ID:        fmt.Sprintf("period-%s", date),
		Date:      mustParseDay(date),
		Type:      models.MeasurementPeriod,
		Value:     models.FlowValue{Option: option},
		CreatedAt: mustParseDay(date),
	}
}

func makeBbt(date string, temperature float64) models.Measurement {
	return models.Measurement{
		ID:        fmt.Sprintf("bbt-%s", date),
		Date:      mustParseDay(date),
		Type:      models.MeasurementBbt,
		Value:     models.TemperatureValue{Temperature: temperature},
		CreatedAt: mustParseDay(date),
	}
}

// threeCycleFixture is the canonical history used across tests: three
// periods starting 28 days apart, so two closed cycles of length 28.
func threeCycleFixture() []models.Measurement {
	return []models.Measurement{
		makePeriod("2025-01-01", models.FlowMedium),
		makePeriod("2025-01-02", models.FlowHeavy),
		makePeriod("2025-01-03", models.FlowMedium),
		makePeriod("2025-01-29", models.FlowMedium),
		makePeriod("2025-01-30", models.FlowLight),
		makePeriod("2025-02-26", models.FlowMedium),
		makePeriod("2025-02-27", models.FlowLight),
	}
}
