package db

import (
	"log"

	"github.com/13roger10/Belezza.ai-sub001/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	err := DB.AutoMigrate(
		&models.Salon{},
		&models.Professional{},
		&models.Client{},
		&models.Service{},
		&models.Appointment{},
		&models.ServiceLineItem{},
		&models.WorkSchedule{},
		&models.TimeBlock{},
		&models.OutboundMessage{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	log.Println("Migrations applied successfully")
}
