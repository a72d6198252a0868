package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ImportMeasurements ingests a JSON array of raw records. Malformed
// records are counted and skipped; only an unparseable payload fails
// the whole call.
func (handler *Handler) ImportMeasurements(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	summary, err := handler.importer.ImportBatch(user.ID, c.Body())
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid import file")
	}
	return c.JSON(summary)
}

func (handler *Handler) ExportMeasurements(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload, fileName, err := handler.exporter.BuildExport(user.ID, handler.now())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	return c.Send(payload)
}

// DeduplicateMeasurements runs the maintenance pass that collapses
// (date, type) duplicates down to the earliest-created record.
func (handler *Handler) DeduplicateMeasurements(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	summary, err := handler.importer.DeduplicateUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "dedup failed")
	}
	return c.JSON(summary)
}
