package services

import (
	"math"

	"github.com/terraincognita07/selene/internal/models"
)

const (
	// MinimumCyclesForPredictions gates every statistic and prediction:
	// below it the answer is "not enough data", never a guessed default.
	MinimumCyclesForPredictions = 2

	// RecencyDecayFactor is the per-cycle-back weight decay, so the
	// newest cycle dominates while older ones still smooth outliers.
	RecencyDecayFactor = 0.8
)

// CycleStatistics holds unrounded derived values. Callers that feed a
// length into date arithmetic round it to whole days first; the floats
// here are for display only.
type CycleStatistics struct {
	AverageCycleLength  float64 `json:"average_cycle_length"`
	CycleVariation      float64 `json:"cycle_variation"`
	AveragePeriodLength float64 `json:"average_period_length"`
}

// BuildCycleStatistics segments the measurement list and computes
// recency-weighted statistics. The second return is false when fewer
// than MinimumCyclesForPredictions closed cycles exist.
func BuildCycleStatistics(measurements []models.Measurement) (CycleStatistics, bool) {
	return BuildCycleStatisticsFromCycles(SegmentCycles(measurements))
}

// BuildCycleStatisticsFromCycles computes statistics over already
// segmented cycles, skipping user-excluded ones.
func BuildCycleStatisticsFromCycles(cycles []Cycle) (CycleStatistics, bool) {
	included := make([]Cycle, 0, len(cycles))
	for _, cycle := range cycles {
		if !cycle.IsExcluded {
			included = append(included, cycle)
		}
	}
	if len(included) < MinimumCyclesForPredictions {
		return CycleStatistics{}, false
	}

	cycleLengths := make([]float64, 0, len(included))
	periodLengths := make([]float64, 0, len(included))
	for _, cycle := range included {
		cycleLengths = append(cycleLengths, float64(cycle.CycleLength))
		periodLengths = append(periodLengths, float64(cycle.PeriodLength))
	}

	return CycleStatistics{
		AverageCycleLength:  WeightedRecencyAverage(cycleLengths, RecencyDecayFactor),
		CycleVariation:      populationStdDev(cycleLengths),
		AveragePeriodLength: WeightedRecencyAverage(periodLengths, RecencyDecayFactor),
	}, true
}

// WeightedRecencyAverage computes the mean with exponential weights:
// the i-th oldest of n values carries decay^(n-1-i), so the newest
// value always has weight 1.
func WeightedRecencyAverage(values []float64, decay float64) float64 {
	if len(values) == 0 {
		return 0
	}

	weight := 1.0
	weightedSum := 0.0
	totalWeight := 0.0
	for index := len(values) - 1; index >= 0; index-- {
		weightedSum += values[index] * weight
		totalWeight += weight
		weight *= decay
	}
	return weightedSum / totalWeight
}

// populationStdDev divides by n, not n-1: the segmented cycles are the
// whole population under consideration, not a sample from it.
func populationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	mean := 0.0
	for _, value := range values {
		mean += value
	}
	mean /= float64(len(values))

	sumSquares := 0.0
	for _, value := range values {
		deviation := value - mean
		sumSquares += deviation * deviation
	}
	return math.Sqrt(sumSquares / float64(len(values)))
}
