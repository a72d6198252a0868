package services

import (
	"math"
	"sort"
	"time"

	"github.com/terraincognita07/selene/internal/models"
)

// MinimumBbtSamplesPerCycleDay is the smallest historical sample count
// a cycle day needs before it appears in the averaged overlay. A lone
// reading is not a reliable average.
const MinimumBbtSamplesPerCycleDay = 2

// BbtPoint is one value on the shared cycle-day x-axis used by both
// the historical overlay and the live trace.
type BbtPoint struct {
	CycleDay    int     `json:"cycle_day"`
	Temperature float64 `json:"temperature"`
}

// HistoricalBbtAverage aligns closed-cycle temperature readings by
// 1-indexed cycle day and averages the days with enough samples,
// rounded to two decimals.
func HistoricalBbtAverage(measurements []models.Measurement, now time.Time) []BbtPoint {
	starts := segmentStartDates(measurements)
	if len(starts) < 2 {
		return nil
	}

	samplesByCycleDay := make(map[int][]float64)
	for _, measurement := range measurements {
		temperature, ok := measurement.Temperature()
		if !ok {
			continue
		}
		// Closed cycles only: [start_i, start_i+1).
		for index := 0; index < len(starts)-1; index++ {
			offset := DaysBetween(starts[index], measurement.Date)
			if offset < 0 || DaysBetween(starts[index+1], measurement.Date) >= 0 {
				continue
			}
			cycleDay := offset + 1
			samplesByCycleDay[cycleDay] = append(samplesByCycleDay[cycleDay], temperature)
		}
	}

	points := make([]BbtPoint, 0, len(samplesByCycleDay))
	for cycleDay, samples := range samplesByCycleDay {
		if len(samples) < MinimumBbtSamplesPerCycleDay {
			continue
		}
		total := 0.0
		for _, sample := range samples {
			total += sample
		}
		points = append(points, BbtPoint{
			CycleDay:    cycleDay,
			Temperature: roundTo2(total / float64(len(samples))),
		})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].CycleDay < points[j].CycleDay
	})
	return points
}

// CurrentCycleBbt returns the open cycle's readings, unaveraged, from
// the cycle start through today.
func CurrentCycleBbt(measurements []models.Measurement, now time.Time) []BbtPoint {
	starts := segmentStartDates(measurements)
	if len(starts) == 0 {
		return nil
	}

	currentStart := starts[len(starts)-1]
	today := DateAtLocation(now, now.Location())

	points := make([]BbtPoint, 0)
	for _, measurement := range measurements {
		temperature, ok := measurement.Temperature()
		if !ok {
			continue
		}
		offset := DaysBetween(currentStart, measurement.Date)
		if offset < 0 || DaysBetween(measurement.Date, today) < 0 {
			continue
		}
		points = append(points, BbtPoint{CycleDay: offset + 1, Temperature: temperature})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].CycleDay < points[j].CycleDay
	})
	return points
}

func roundTo2(value float64) float64 {
	return math.Round(value*100) / 100
}
