package services

import (
	"testing"

	"github.com/terraincognita07/selene/internal/models"
)

func TestSegmentCyclesGapLaw(t *testing.T) {
	measurements := []models.Measurement{
		makePeriod("2025-01-01", models.FlowMedium),
		makePeriod("2025-01-02", models.FlowMedium),
		makePeriod("2025-01-03", models.FlowMedium),
		makePeriod("2025-01-29", models.FlowMedium),
		makePeriod("2025-01-30", models.FlowMedium),
		makePeriod("2025-02-26", models.FlowMedium),
		makePeriod("2025-02-27", models.FlowMedium),
	}

	cycles := SegmentCycles(measurements)
	if len(cycles) != 2 {
		t.Fatalf("expected 2 closed cycles, got %d", len(cycles))
	}

	for index, cycle := range cycles {
		if cycle.CycleLength != 28 {
			t.Fatalf("cycle %d: expected length 28, got %d", index, cycle.CycleLength)
		}
	}
	if cycles[0].PeriodLength != 3 || cycles[1].PeriodLength != 2 {
		t.Fatalf("unexpected period lengths: %d, %d", cycles[0].PeriodLength, cycles[1].PeriodLength)
	}
	if cycles[0].CycleNumber != 1 || cycles[1].CycleNumber != 2 {
		t.Fatalf("unexpected cycle numbers: %d, %d", cycles[0].CycleNumber, cycles[1].CycleNumber)
	}
	if cycles[0].AnchorID != "period-2025-01-01" {
		t.Fatalf("unexpected anchor id: %s", cycles[0].AnchorID)
	}
	if FormatDay(cycles[1].StartDate) != "2025-01-29" || FormatDay(cycles[1].EndDate) != "2025-01-30" {
		t.Fatalf("unexpected cycle 2 bounds: %s..%s", FormatDay(cycles[1].StartDate), FormatDay(cycles[1].EndDate))
	}
}

func TestSegmentCyclesGapBoundary(t *testing.T) {
	// A 7-day gap stays in the same period; 8 days starts a new cycle.
	sameSegment := SegmentCycles([]models.Measurement{
		makePeriod("2025-01-01", models.FlowMedium),
		makePeriod("2025-01-08", models.FlowMedium),
		makePeriod("2025-02-05", models.FlowMedium),
	})
	if len(sameSegment) != 1 {
		t.Fatalf("expected 1 closed cycle for 7-day gap, got %d", len(sameSegment))
	}
	if sameSegment[0].PeriodLength != 2 {
		t.Fatalf("expected both flow days in one segment, got period length %d", sameSegment[0].PeriodLength)
	}

	splitSegments := SegmentCycles([]models.Measurement{
		makePeriod("2025-01-01", models.FlowMedium),
		makePeriod("2025-01-09", models.FlowMedium),
		makePeriod("2025-02-05", models.FlowMedium),
	})
	if len(splitSegments) != 2 {
		t.Fatalf("expected 2 closed cycles for 8-day gap, got %d", len(splitSegments))
	}
	if splitSegments[0].CycleLength != 8 {
		t.Fatalf("expected first cycle length 8, got %d", splitSegments[0].CycleLength)
	}
}

func TestSegmentCyclesIgnoresSpottingAndNone(t *testing.T) {
	measurements := []models.Measurement{
		makePeriod("2025-01-01", models.FlowMedium),
		makePeriod("2025-01-02", models.FlowSpotting),
		makePeriod("2025-01-15", models.FlowNone),
		makePeriod("2025-01-29", models.FlowMedium),
	}

	cycles := SegmentCycles(measurements)
	if len(cycles) != 1 {
		t.Fatalf("expected 1 closed cycle, got %d", len(cycles))
	}
	if cycles[0].PeriodLength != 1 {
		t.Fatalf("spotting/none must not count as flow days, got period length %d", cycles[0].PeriodLength)
	}
	if cycles[0].CycleLength != 28 {
		t.Fatalf("expected cycle length 28, got %d", cycles[0].CycleLength)
	}
}

func TestSegmentCyclesTooLittleData(t *testing.T) {
	if cycles := SegmentCycles(nil); len(cycles) != 0 {
		t.Fatalf("expected no cycles for empty input, got %d", len(cycles))
	}

	single := []models.Measurement{makePeriod("2025-01-01", models.FlowMedium)}
	if cycles := SegmentCycles(single); len(cycles) != 0 {
		t.Fatalf("a lone flow day must not close a cycle, got %d", len(cycles))
	}
}

func TestApplyCycleExclusions(t *testing.T) {
	cycles := SegmentCycles(threeCycleFixture())
	marked := ApplyCycleExclusions(cycles, map[string]bool{"period-2025-01-01": true})

	if !marked[0].IsExcluded {
		t.Fatal("expected first cycle to be excluded")
	}
	if marked[1].IsExcluded {
		t.Fatal("expected second cycle to stay included")
	}
	if cycles[0].IsExcluded {
		t.Fatal("input slice must not be mutated")
	}
}
