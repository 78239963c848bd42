package http

import (
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, handler *Handler) {
	// Health check
	app.Get("/health", handler.HealthCheck)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		// Dashboard endpoints
		api.Get("/dashboard", handler.GetDashboard)
		api.Get("/stations", handler.GetStations)
		api.Get("/alarms", handler.GetAlarms)
		api.Get("/directions", handler.GetDirections)
		api.Get("/trend", handler.GetTrend)
		api.Get("/congestion", handler.GetCongestion)
		api.Get("/history", handler.GetHistory)

		// Geometry endpoint
		api.Post("/snap", handler.Snap)
	}
}
