package services

import (
	"sort"
	"time"

	"github.com/terraincognita07/selene/internal/models"
)

// AlertConfig tunes incomplete-month detection. The defaults mirror
// long-standing tracker behavior; both knobs stay configurable because
// neither value has a firm clinical basis.
type AlertConfig struct {
	LookbackMonths        int
	MinPeriodDaysPerMonth int
}

func DefaultAlertConfig() AlertConfig {
	return AlertConfig{LookbackMonths: 6, MinPeriodDaysPerMonth: 3}
}

// IncompleteMonth flags a month that has some period-flow days logged
// but fewer than the configured minimum, which usually means logging
// stopped partway through a period.
type IncompleteMonth struct {
	Month          string `json:"month"`
	PeriodDayCount int    `json:"period_day_count"`
}

// DetectIncompleteMonths scans the completed months inside the
// lookback window. The current month is still accumulating and is
// never flagged; months with zero flow days are not flagged either,
// since no data is not the same defect as partial data.
func DetectIncompleteMonths(measurements []models.Measurement, now time.Time, config AlertConfig) []IncompleteMonth {
	if config.LookbackMonths <= 0 {
		config.LookbackMonths = DefaultAlertConfig().LookbackMonths
	}
	if config.MinPeriodDaysPerMonth <= 0 {
		config.MinPeriodDaysPerMonth = DefaultAlertConfig().MinPeriodDaysPerMonth
	}

	today := DateAtLocation(now, now.Location())
	currentMonthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	windowStart := currentMonthStart.AddDate(0, -config.LookbackMonths, 0)

	daysByMonth := make(map[string]map[string]struct{})
	for _, measurement := range PeriodFlowDays(measurements) {
		day := DateAtLocation(measurement.Date, today.Location())
		if day.Before(windowStart) || !day.Before(currentMonthStart) {
			continue
		}
		month := day.Format("2006-01")
		if daysByMonth[month] == nil {
			daysByMonth[month] = make(map[string]struct{})
		}
		daysByMonth[month][FormatDay(day)] = struct{}{}
	}

	incomplete := make([]IncompleteMonth, 0)
	for month, days := range daysByMonth {
		if len(days) > 0 && len(days) < config.MinPeriodDaysPerMonth {
			incomplete = append(incomplete, IncompleteMonth{Month: month, PeriodDayCount: len(days)})
		}
	}

	sort.Slice(incomplete, func(i, j int) bool {
		return incomplete[i].Month < incomplete[j].Month
	})
	return incomplete
}
