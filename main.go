package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/13roger10/Belezza.ai-sub001/cache"
	"github.com/13roger10/Belezza.ai-sub001/controllers"
	"github.com/13roger10/Belezza.ai-sub001/cron"
	"github.com/13roger10/Belezza.ai-sub001/db"
	"github.com/13roger10/Belezza.ai-sub001/routes"
	"github.com/13roger10/Belezza.ai-sub001/scheduling"
	"github.com/13roger10/Belezza.ai-sub001/utils"
)

func main() {
	app := fiber.New()
	db.Init()

	ttlStore := cache.Noop()
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisStore, err := cache.NewRedis(addr)
		if err != nil {
			log.Fatal("Failed to connect to Redis: ", err)
		}
		ttlStore = redisStore
	}

	store := scheduling.NewGormStore(db.DB)
	sender := utils.NewEmailSender()
	cron.StartCronJobs(store, sender)

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	handler := controllers.NewAppointmentHandler(store, sender, scheduling.SystemClock())
	routes.SetupAppointmentRoutes(app, handler, ttlStore)
	routes.SetupCatalogRoutes(app, ttlStore)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
