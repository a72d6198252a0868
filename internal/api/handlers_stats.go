package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/selene/internal/services"
)

type statsOverviewView struct {
	Available        bool                       `json:"available"`
	Stats            *services.CycleStatistics  `json:"stats,omitempty"`
	Prediction       *services.CyclePrediction  `json:"prediction,omitempty"`
	Cycles           []services.Cycle           `json:"cycles"`
	IncompleteMonths []services.IncompleteMonth `json:"incomplete_months"`
}

// GetStatsOverview returns everything the statistics page shows. With
// fewer than two closed cycles it responds available=false and the UI
// renders its getting-started state.
func (handler *Handler) GetStatsOverview(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	measurements, err := handler.measurements.ListByUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch stats")
	}

	view := statsOverviewView{
		Cycles:           services.SegmentCycles(measurements),
		IncompleteMonths: services.DetectIncompleteMonths(measurements, handler.now(), handler.alertConfig),
	}

	if stats, ok := services.BuildCycleStatistics(measurements); ok {
		view.Stats = &stats
		if prediction, ok := services.PredictNextCycle(measurements); ok {
			view.Prediction = &prediction
			view.Available = true
		}
	}

	return c.JSON(view)
}

// GetPeriodStatus answers the dashboard's "where am I right now"
// question.
func (handler *Handler) GetPeriodStatus(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	measurements, err := handler.measurements.ListByUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch period status")
	}

	outlook := services.NewCycleOutlook(measurements)
	status := outlook.CurrentPeriodStatus(measurements, handler.now())
	return c.JSON(fiber.Map{"available": outlook.Valid(), "status": status})
}

func (handler *Handler) GetBbtChart(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	measurements, err := handler.measurements.ListByUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch bbt data")
	}

	now := handler.now()
	return c.JSON(fiber.Map{
		"historical": services.HistoricalBbtAverage(measurements, now),
		"current":    services.CurrentCycleBbt(measurements, now),
	})
}
