package services

import (
	"sort"
	"time"

	"github.com/terraincognita07/selene/internal/models"
)

// CycleGapThresholdDays is the largest gap between two period-flow
// days that still belongs to the same period. A strictly larger gap
// starts a new cycle.
const CycleGapThresholdDays = 7

// Cycle is a derived segment between two period starts. It is never
// stored; AnchorID carries the first measurement's id so the UI can
// key cycles stably across recomputes.
type Cycle struct {
	CycleNumber  int       `json:"cycle_number"`
	AnchorID     string    `json:"anchor_id"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	CycleLength  int       `json:"cycle_length"`
	PeriodLength int       `json:"period_length"`
	IsExcluded   bool      `json:"is_excluded"`
}

// PeriodFlowDays filters to period measurements that count as flow
// days. Spotting and none are point data for the calendar, not flow,
// so they never influence segmentation or statistics.
func PeriodFlowDays(measurements []models.Measurement) []models.Measurement {
	flowDays := make([]models.Measurement, 0, len(measurements))
	for _, measurement := range measurements {
		option, ok := measurement.FlowOption()
		if !ok || option == models.FlowNone || option == models.FlowSpotting {
			continue
		}
		flowDays = append(flowDays, measurement)
	}

	sort.Slice(flowDays, func(i, j int) bool {
		return flowDays[i].Date.Before(flowDays[j].Date)
	})
	return flowDays
}

// SegmentCycles groups a user's period-flow days into closed cycles.
// Cycle length is measured start-to-start, so the final still-open
// segment has no defined length and is not returned.
func SegmentCycles(measurements []models.Measurement) []Cycle {
	segments := periodSegments(PeriodFlowDays(measurements))
	if len(segments) < 2 {
		return nil
	}

	cycles := make([]Cycle, 0, len(segments)-1)
	for index := 0; index < len(segments)-1; index++ {
		segment := segments[index]
		first := segment[0]
		last := segment[len(segment)-1]
		nextStart := segments[index+1][0].Date

		cycles = append(cycles, Cycle{
			CycleNumber:  index + 1,
			AnchorID:     first.ID,
			StartDate:    DateAtLocation(first.Date, first.Date.Location()),
			EndDate:      DateAtLocation(last.Date, last.Date.Location()),
			CycleLength:  DaysBetween(first.Date, nextStart),
			PeriodLength: len(segment),
		})
	}
	return cycles
}

// ApplyCycleExclusions marks cycles the user chose to leave out of
// statistics, matched by anchor id.
func ApplyCycleExclusions(cycles []Cycle, excludedAnchorIDs map[string]bool) []Cycle {
	if len(excludedAnchorIDs) == 0 {
		return cycles
	}
	marked := make([]Cycle, len(cycles))
	copy(marked, cycles)
	for index := range marked {
		if excludedAnchorIDs[marked[index].AnchorID] {
			marked[index].IsExcluded = true
		}
	}
	return marked
}

// periodSegments splits ascending flow days wherever the gap exceeds
// the threshold. The final segment is the still-open period.
func periodSegments(flowDays []models.Measurement) [][]models.Measurement {
	if len(flowDays) == 0 {
		return nil
	}

	segments := make([][]models.Measurement, 0)
	current := []models.Measurement{flowDays[0]}
	for index := 1; index < len(flowDays); index++ {
		gap := DaysBetween(flowDays[index-1].Date, flowDays[index].Date)
		if gap > CycleGapThresholdDays {
			segments = append(segments, current)
			current = nil
		}
		current = append(current, flowDays[index])
	}
	return append(segments, current)
}

// segmentStartDates returns the first flow day of every segment, the
// open one included. The last entry is the current cycle's start.
func segmentStartDates(measurements []models.Measurement) []time.Time {
	segments := periodSegments(PeriodFlowDays(measurements))
	starts := make([]time.Time, 0, len(segments))
	for _, segment := range segments {
		first := segment[0]
		starts = append(starts, DateAtLocation(first.Date, first.Date.Location()))
	}
	return starts
}
