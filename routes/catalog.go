package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/13roger10/Belezza.ai-sub001/cache"
	"github.com/13roger10/Belezza.ai-sub001/controllers"
	"github.com/13roger10/Belezza.ai-sub001/middleware"
)

// SetupCatalogRoutes configures service, schedule, block and client routes
func SetupCatalogRoutes(app *fiber.App, store cache.Store) {
	auth := middleware.Protected(store)

	service := app.Group("/services", auth)
	service.Get("/", controllers.GetAllServices)
	service.Get("/:id", controllers.GetService)
	service.Post("/", controllers.CreateService)
	service.Patch("/:id", controllers.UpdateService)
	service.Delete("/:id", controllers.DeleteService)

	schedule := app.Group("/work-schedules", auth)
	schedule.Get("/", controllers.GetAllWorkSchedules)
	schedule.Get("/:id", controllers.GetWorkSchedule)
	schedule.Post("/", controllers.CreateWorkSchedule)
	schedule.Patch("/:id", controllers.UpdateWorkSchedule)
	schedule.Delete("/:id", controllers.DeleteWorkSchedule)

	block := app.Group("/time-blocks", auth)
	block.Get("/", controllers.GetAllTimeBlocks)
	block.Post("/", controllers.CreateTimeBlock)
	block.Delete("/:id", controllers.DeleteTimeBlock)

	client := app.Group("/clients", auth)
	client.Get("/", controllers.GetAllClients)
	client.Post("/", controllers.CreateClient)
	client.Patch("/:id/blocked", controllers.SetClientBlocked)
}
