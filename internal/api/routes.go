package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Get("/setup-status", handler.SetupStatus)
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	measurements := api.Group("/measurements", handler.AuthRequired)
	measurements.Get("", handler.GetMeasurements)
	measurements.Post("", handler.CreateMeasurement)
	measurements.Delete("/:id", handler.DeleteMeasurement)

	calendar := api.Group("/calendar", handler.AuthRequired)
	calendar.Get("/:month", handler.GetCalendarMonth)

	stats := api.Group("/stats", handler.AuthRequired)
	stats.Get("/overview", handler.GetStatsOverview)

	period := api.Group("/period", handler.AuthRequired)
	period.Get("/status", handler.GetPeriodStatus)

	bbt := api.Group("/bbt", handler.AuthRequired)
	bbt.Get("/chart", handler.GetBbtChart)

	data := api.Group("/data", handler.AuthRequired)
	data.Post("/import", handler.ImportMeasurements)
	data.Get("/export", handler.ExportMeasurements)
	data.Post("/dedup", handler.DeduplicateMeasurements)
}
