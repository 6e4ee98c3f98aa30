package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/13roger10/Belezza.ai-sub001/db"
	"github.com/13roger10/Belezza.ai-sub001/models"
	"github.com/13roger10/Belezza.ai-sub001/utils"
)

// GetAllTimeBlocks retrieves the salon's time blocks
func GetAllTimeBlocks(c *fiber.Ctx) error {
	var blocks []models.TimeBlock
	if err := db.DB.Where("salon_id = ?", salonID(c)).Find(&blocks).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch time blocks",
			Error:   err.Error(),
		})
	}
	return c.JSON(blocks)
}

// CreateTimeBlock creates an unavailability window for a professional
func CreateTimeBlock(c *fiber.Ctx) error {
	block := new(models.TimeBlock)
	if err := c.BodyParser(block); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	block.SalonID = salonID(c)
	if !block.EndTime.After(block.StartTime) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Block end must be after start",
		})
	}
	if err := db.DB.Create(block).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create time block",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(block)
}

// DeleteTimeBlock removes an unavailability window
func DeleteTimeBlock(c *fiber.Ctx) error {
	id := c.Params("id")
	var block models.TimeBlock
	if err := db.DB.Where("salon_id = ?", salonID(c)).First(&block, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Time block not found",
			Error:   err.Error(),
		})
	}
	if err := db.DB.Delete(&block).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete time block",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
