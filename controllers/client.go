package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/13roger10/Belezza.ai-sub001/db"
	"github.com/13roger10/Belezza.ai-sub001/models"
	"github.com/13roger10/Belezza.ai-sub001/utils"
)

// GetAllClients retrieves the salon's clients
func GetAllClients(c *fiber.Ctx) error {
	var clients []models.Client
	if err := db.DB.Where("salon_id = ?", salonID(c)).Find(&clients).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch clients",
			Error:   err.Error(),
		})
	}
	return c.JSON(clients)
}

// CreateClient registers a client with the salon
func CreateClient(c *fiber.Ctx) error {
	client := new(models.Client)
	if err := c.BodyParser(client); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	client.SalonID = salonID(c)
	// No-show bookkeeping belongs to the lifecycle engine, not the API.
	client.NoShowCount = 0
	client.Blocked = false
	if err := db.DB.Create(client).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create client",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// SetClientBlocked lets staff manually block or unblock a client.
func SetClientBlocked(c *fiber.Ctx) error {
	id := c.Params("id")
	var body struct {
		Blocked bool `json:"blocked"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	var client models.Client
	if err := db.DB.Where("salon_id = ?", salonID(c)).First(&client, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Client not found",
			Error:   err.Error(),
		})
	}
	client.Blocked = body.Blocked
	if err := db.DB.Save(&client).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update client",
			Error:   err.Error(),
		})
	}
	return c.JSON(client)
}
