package api

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/selene/internal/models"
	"github.com/terraincognita07/selene/internal/services"
)

type measurementInput struct {
	Date  string          `json:"date"`
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

type measurementView struct {
	ID        string                  `json:"id"`
	Date      string                  `json:"date"`
	Type      string                  `json:"type"`
	Value     models.MeasurementValue `json:"value"`
	CreatedAt time.Time               `json:"created_at"`
}

func (handler *Handler) GetMeasurements(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	measurements, err := handler.measurements.ListByUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch measurements")
	}

	views := make([]measurementView, 0, len(measurements))
	for _, measurement := range measurements {
		views = append(views, measurementView{
			ID:        measurement.ID,
			Date:      services.FormatDay(measurement.Date),
			Type:      measurement.Type,
			Value:     measurement.Value,
			CreatedAt: measurement.CreatedAt,
		})
	}
	return c.JSON(views)
}

// CreateMeasurement logs one data point. Edits are delete-then-create,
// so a second measurement for an occupied (date, type) slot is a
// conflict, not an overwrite.
func (handler *Handler) CreateMeasurement(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := measurementInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	measurementType := strings.TrimSpace(input.Type)
	if !models.IsValidMeasurementType(measurementType) {
		return apiError(c, fiber.StatusBadRequest, "invalid measurement type")
	}

	day, err := services.ParseDay(strings.TrimSpace(input.Date), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	value, err := models.DecodeMeasurementValue(measurementType, []byte(input.Value))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid measurement value")
	}

	existing, err := handler.measurements.ListByUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save measurement")
	}
	for _, other := range existing {
		if other.Type == measurementType && services.FormatDay(other.Date) == services.FormatDay(day) {
			return apiError(c, fiber.StatusConflict, "measurement already exists for this date and type")
		}
	}

	measurement := models.Measurement{
		UserID: user.ID,
		Date:   day,
		Type:   measurementType,
		Value:  value,
	}
	if err := handler.measurements.Create(&measurement); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save measurement")
	}

	return c.Status(fiber.StatusCreated).JSON(measurementView{
		ID:        measurement.ID,
		Date:      services.FormatDay(measurement.Date),
		Type:      measurement.Type,
		Value:     measurement.Value,
		CreatedAt: measurement.CreatedAt,
	})
}

func (handler *Handler) DeleteMeasurement(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return apiError(c, fiber.StatusBadRequest, "measurement id is required")
	}

	if err := handler.measurements.Delete(user.ID, id); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to delete measurement")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
