package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/13roger10/Belezza.ai-sub001/cache"
	"github.com/13roger10/Belezza.ai-sub001/controllers"
	"github.com/13roger10/Belezza.ai-sub001/middleware"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(app *fiber.App, h *controllers.AppointmentHandler, store cache.Store) {
	auth := middleware.Protected(store)
	limited := middleware.RateLimit(store, 30, time.Minute)

	appointment := app.Group("/appointments", auth)
	appointment.Get("/", h.GetAll)
	appointment.Get("/:id", h.Get)
	appointment.Post("/", limited, h.Create)
	appointment.Post("/:id/confirm", h.Confirm)
	appointment.Post("/:id/start", h.Start)
	appointment.Post("/:id/complete", h.Complete)
	appointment.Post("/:id/cancel", limited, h.Cancel)

	app.Get("/professionals/:id/availability", auth, h.Availability)
	app.Get("/admin/messages/failed", auth, h.FailedMessages)
}
