package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/selene/internal/db"
	"github.com/terraincognita07/selene/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	measurements *db.MeasurementRepository
	users        *db.UserRepository
	importer     *services.ImportService
	exporter     *services.ExportService
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	alertConfig  services.AlertConfig
}

func NewHandler(database *gorm.DB, secretKey string, location *time.Location) *Handler {
	if location == nil {
		location = time.UTC
	}

	measurements := db.NewMeasurementRepository(database)
	return &Handler{
		measurements: measurements,
		users:        db.NewUserRepository(database),
		importer:     services.NewImportService(measurements, location),
		exporter:     services.NewExportService(measurements),
		secretKey:    []byte(secretKey),
		location:     location,
		alertConfig:  services.DefaultAlertConfig(),
	}
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) now() time.Time {
	return time.Now().In(handler.location)
}
