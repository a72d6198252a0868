package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/selene/internal/models"
	"github.com/terraincognita07/selene/internal/services"
)

type calendarDayView struct {
	Date                 string `json:"date"`
	HasPeriod            bool   `json:"has_period"`
	Flow                 string `json:"flow,omitempty"`
	HasData              bool   `json:"has_data"`
	IsToday              bool   `json:"is_today"`
	IsPredictedPeriod    bool   `json:"is_predicted_period"`
	IsPredictedOvulation bool   `json:"is_predicted_ovulation"`
	IsInFertileWindow    bool   `json:"is_in_fertile_window"`
}

// GetCalendarMonth returns one flag set per day of the requested
// month. The outlook is built once; each cell costs only modular
// arithmetic.
func (handler *Handler) GetCalendarMonth(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	monthStart, err := time.ParseInLocation("2006-01", c.Params("month"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid month, expected YYYY-MM")
	}

	measurements, err := handler.measurements.ListByUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch measurements")
	}

	outlook := services.NewCycleOutlook(measurements)
	now := handler.now()

	flowByDay := make(map[string]string)
	dataByDay := make(map[string]bool)
	for _, measurement := range measurements {
		key := services.FormatDay(measurement.Date)
		dataByDay[key] = true
		if option, ok := measurement.FlowOption(); ok && option != models.FlowNone {
			flowByDay[key] = option
		}
	}

	nextMonth := monthStart.AddDate(0, 1, 0)
	days := make([]calendarDayView, 0, 31)
	for day := monthStart; day.Before(nextMonth); day = day.AddDate(0, 0, 1) {
		key := services.FormatDay(day)
		days = append(days, calendarDayView{
			Date:                 key,
			HasPeriod:            flowByDay[key] != "",
			Flow:                 flowByDay[key],
			HasData:              dataByDay[key],
			IsToday:              services.IsToday(day, now, handler.location),
			IsPredictedPeriod:    outlook.IsPredictedPeriod(day),
			IsPredictedOvulation: outlook.IsPredictedOvulation(day),
			IsInFertileWindow:    outlook.IsInFertileWindow(day),
		})
	}

	return c.JSON(fiber.Map{"month": monthStart.Format("2006-01"), "days": days})
}
