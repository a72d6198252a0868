package services

import (
	"math"
	"time"

	"github.com/terraincognita07/selene/internal/models"
)

const (
	// DaysBeforePeriodForOvulation is the assumed luteal phase length.
	DaysBeforePeriodForOvulation = 14

	FertileWindowDaysBeforeOvulation = 5
	FertileWindowDaysAfterOvulation  = 1
)

// CyclePrediction projects the immediate next cycle. All fields are
// local calendar dates.
type CyclePrediction struct {
	NextPeriodStart    time.Time `json:"next_period_start"`
	OvulationDate      time.Time `json:"ovulation_date"`
	FertileWindowStart time.Time `json:"fertile_window_start"`
	FertileWindowEnd   time.Time `json:"fertile_window_end"`
}

// PeriodStatus describes the ongoing period, if any. DaysLeft counts
// whole days remaining after today and is meaningful only while
// InPeriod is true.
type PeriodStatus struct {
	InPeriod            bool `json:"in_period"`
	DaysLeft            int  `json:"days_left"`
	PeriodExpectedToday bool `json:"period_expected_today"`
}

// LastPeriodStart finds the first day of the most recent unbroken run
// of period-flow days: starting from the newest flow day, the start
// pointer extends backward while consecutive dates differ by at most
// one day.
func LastPeriodStart(measurements []models.Measurement) (time.Time, bool) {
	flowDays := PeriodFlowDays(measurements)
	if len(flowDays) == 0 {
		return time.Time{}, false
	}

	index := len(flowDays) - 1
	start := flowDays[index].Date
	for index > 0 && DaysBetween(flowDays[index-1].Date, start) <= 1 {
		index--
		start = flowDays[index].Date
	}
	return DateAtLocation(start, start.Location()), true
}

// CycleOutlook precomputes everything the per-day calendar queries
// need, so rendering a month costs one segmentation pass plus cheap
// modular arithmetic per cell. Lengths are rounded to whole days once
// here; no date offset ever uses an unrounded average.
type CycleOutlook struct {
	lastPeriodStart time.Time
	cycleLength     int
	periodLength    int
	valid           bool
}

func NewCycleOutlook(measurements []models.Measurement) CycleOutlook {
	stats, statsOK := BuildCycleStatistics(measurements)
	lastStart, startOK := LastPeriodStart(measurements)
	if !statsOK || !startOK {
		return CycleOutlook{}
	}

	cycleLength := int(math.Round(stats.AverageCycleLength))
	periodLength := int(math.Round(stats.AveragePeriodLength))
	if cycleLength <= 0 {
		return CycleOutlook{}
	}

	return CycleOutlook{
		lastPeriodStart: lastStart,
		cycleLength:     cycleLength,
		periodLength:    periodLength,
		valid:           true,
	}
}

func (outlook CycleOutlook) Valid() bool {
	return outlook.valid
}

// Predict projects the next cycle from the last period start. The
// second return is false when stats or the anchor are unavailable.
func (outlook CycleOutlook) Predict() (CyclePrediction, bool) {
	if !outlook.valid {
		return CyclePrediction{}, false
	}

	nextPeriodStart := outlook.lastPeriodStart.AddDate(0, 0, outlook.cycleLength)
	ovulationDate := nextPeriodStart.AddDate(0, 0, -DaysBeforePeriodForOvulation)
	return CyclePrediction{
		NextPeriodStart:    nextPeriodStart,
		OvulationDate:      ovulationDate,
		FertileWindowStart: ovulationDate.AddDate(0, 0, -FertileWindowDaysBeforeOvulation),
		FertileWindowEnd:   ovulationDate.AddDate(0, 0, FertileWindowDaysAfterOvulation),
	}, true
}

// PredictNextCycle is the one-shot form for callers without an outlook.
func PredictNextCycle(measurements []models.Measurement) (CyclePrediction, bool) {
	return NewCycleOutlook(measurements).Predict()
}

// IsPredictedPeriod reports whether the day falls inside the ongoing
// period window or the period window of any future projected cycle.
// The right cycle is found by integer division on elapsed days, never
// by looping cycle-by-cycle.
func (outlook CycleOutlook) IsPredictedPeriod(day time.Time) bool {
	if !outlook.valid {
		return false
	}
	elapsed := DaysBetween(outlook.lastPeriodStart, day)
	if elapsed < 0 {
		return false
	}
	return elapsed%outlook.cycleLength < outlook.periodLength
}

// IsPredictedOvulation is true only on the exact ovulation day of the
// current or a future projected cycle.
func (outlook CycleOutlook) IsPredictedOvulation(day time.Time) bool {
	if !outlook.valid {
		return false
	}
	elapsed := DaysBetween(outlook.lastPeriodStart, day)
	if elapsed < 0 {
		return false
	}
	return (elapsed+DaysBeforePeriodForOvulation)%outlook.cycleLength == 0
}

// IsInFertileWindow is true inside the inclusive fertile window of the
// current or a future projected cycle.
func (outlook CycleOutlook) IsInFertileWindow(day time.Time) bool {
	if !outlook.valid {
		return false
	}
	elapsed := DaysBetween(outlook.lastPeriodStart, day)
	if elapsed < 0 {
		return false
	}
	offset := (elapsed + DaysBeforePeriodForOvulation) % outlook.cycleLength
	return offset <= FertileWindowDaysAfterOvulation ||
		offset >= outlook.cycleLength-FertileWindowDaysBeforeOvulation
}

// IsToday compares a candidate day against the current local date.
func IsToday(day time.Time, now time.Time, location *time.Location) bool {
	return sameDay(DateAtLocation(now, location), DateAtLocation(day, location))
}

// CurrentPeriodStatus combines the ongoing-period window with the
// expected-today flag. PeriodExpectedToday turns off the moment a real
// period measurement exists for today.
func (outlook CycleOutlook) CurrentPeriodStatus(measurements []models.Measurement, today time.Time) PeriodStatus {
	if !outlook.valid {
		return PeriodStatus{}
	}

	day := DateAtLocation(today, today.Location())
	status := PeriodStatus{}

	elapsed := DaysBetween(outlook.lastPeriodStart, day)
	if elapsed >= 0 && elapsed < outlook.periodLength {
		status.InPeriod = true
		status.DaysLeft = outlook.periodLength - elapsed - 1
	}

	prediction, _ := outlook.Predict()
	if sameDay(prediction.NextPeriodStart, day) && !hasPeriodMeasurementOn(measurements, day) {
		status.PeriodExpectedToday = true
	}
	return status
}

// hasPeriodMeasurementOn reports whether any period response exists
// for the day. Spotting counts: the user answered, the prediction is
// no longer pending.
func hasPeriodMeasurementOn(measurements []models.Measurement, day time.Time) bool {
	for _, measurement := range measurements {
		option, ok := measurement.FlowOption()
		if !ok || option == models.FlowNone {
			continue
		}
		if sameDay(measurement.Date, day) {
			return true
		}
	}
	return false
}
