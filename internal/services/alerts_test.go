package services

import (
	"testing"

	"github.com/terraincognita07/selene/internal/models"
)

func TestDetectIncompleteMonthsFlagsPartialMonths(t *testing.T) {
	measurements := []models.Measurement{
		// March: full period, not flagged.
		makePeriod("2025-03-01", models.FlowMedium),
		makePeriod("2025-03-02", models.FlowMedium),
		makePeriod("2025-03-03", models.FlowLight),
		// April: two flow days, flagged.
		makePeriod("2025-04-01", models.FlowMedium),
		makePeriod("2025-04-02", models.FlowLight),
		// May: nothing logged, not flagged.
		// June: one flow day plus spotting; spotting does not count.
		makePeriod("2025-06-01", models.FlowHeavy),
		makePeriod("2025-06-02", models.FlowSpotting),
	}

	now := mustParseDay("2025-07-15")
	incomplete := DetectIncompleteMonths(measurements, now, DefaultAlertConfig())
	if len(incomplete) != 2 {
		t.Fatalf("expected 2 incomplete months, got %+v", incomplete)
	}
	if incomplete[0].Month != "2025-04" || incomplete[0].PeriodDayCount != 2 {
		t.Fatalf("unexpected first alert: %+v", incomplete[0])
	}
	if incomplete[1].Month != "2025-06" || incomplete[1].PeriodDayCount != 1 {
		t.Fatalf("unexpected second alert: %+v", incomplete[1])
	}
}

func TestDetectIncompleteMonthsNeverFlagsCurrentMonth(t *testing.T) {
	measurements := []models.Measurement{
		makePeriod("2025-07-01", models.FlowMedium),
	}

	now := mustParseDay("2025-07-15")
	incomplete := DetectIncompleteMonths(measurements, now, DefaultAlertConfig())
	if len(incomplete) != 0 {
		t.Fatalf("the accumulating month must not be flagged, got %+v", incomplete)
	}
}

func TestDetectIncompleteMonthsRespectsLookback(t *testing.T) {
	measurements := []models.Measurement{
		makePeriod("2024-11-01", models.FlowMedium), // before the window
		makePeriod("2025-05-01", models.FlowMedium), // inside the window
	}

	now := mustParseDay("2025-07-15")
	config := AlertConfig{LookbackMonths: 3, MinPeriodDaysPerMonth: 3}
	incomplete := DetectIncompleteMonths(measurements, now, config)
	if len(incomplete) != 1 || incomplete[0].Month != "2025-05" {
		t.Fatalf("expected only the in-window month, got %+v", incomplete)
	}
}

func TestDetectIncompleteMonthsCountsDistinctDays(t *testing.T) {
	// Two entries on the same day count once.
	measurements := []models.Measurement{
		makePeriod("2025-06-01", models.FlowLight),
		{
			ID:     "period-2025-06-01-b",
			UserID: 1,
			Date:   mustParseDay("2025-06-01"),
			Type:   models.MeasurementPeriod,
			Value:  models.FlowValue{Option: models.FlowHeavy},
		},
	}

	now := mustParseDay("2025-07-15")
	incomplete := DetectIncompleteMonths(measurements, now, DefaultAlertConfig())
	if len(incomplete) != 1 || incomplete[0].PeriodDayCount != 1 {
		t.Fatalf("expected one distinct flow day, got %+v", incomplete)
	}
}
