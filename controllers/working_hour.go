package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/13roger10/Belezza.ai-sub001/db"
	"github.com/13roger10/Belezza.ai-sub001/models"
	"github.com/13roger10/Belezza.ai-sub001/utils"
)

// GetAllWorkSchedules retrieves the salon's work schedules
func GetAllWorkSchedules(c *fiber.Ctx) error {
	var schedules []models.WorkSchedule
	if err := db.DB.Where("salon_id = ?", salonID(c)).Find(&schedules).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get work schedules",
		})
	}
	return c.JSON(schedules)
}

// GetWorkSchedule retrieves a specific work schedule by ID
func GetWorkSchedule(c *fiber.Ctx) error {
	id := c.Params("id")
	var schedule models.WorkSchedule
	if err := db.DB.Where("salon_id = ?", salonID(c)).First(&schedule, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Work schedule not found",
		})
	}
	return c.JSON(schedule)
}

// CreateWorkSchedule creates a work schedule for a professional's weekday
func CreateWorkSchedule(c *fiber.Ctx) error {
	schedule := new(models.WorkSchedule)
	if err := c.BodyParser(schedule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	schedule.SalonID = salonID(c)
	if err := validateScheduleTimes(schedule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid schedule times",
			Error:   err.Error(),
		})
	}
	if err := db.DB.Create(schedule).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create work schedule",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(schedule)
}

// UpdateWorkSchedule updates an existing work schedule
func UpdateWorkSchedule(c *fiber.Ctx) error {
	id := c.Params("id")
	var schedule models.WorkSchedule
	if err := db.DB.Where("salon_id = ?", salonID(c)).First(&schedule, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Work schedule not found",
		})
	}
	if err := c.BodyParser(&schedule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if err := validateScheduleTimes(&schedule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid schedule times",
			Error:   err.Error(),
		})
	}
	if err := db.DB.Save(&schedule).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update work schedule",
		})
	}
	return c.JSON(schedule)
}

// DeleteWorkSchedule deletes a work schedule by ID
func DeleteWorkSchedule(c *fiber.Ctx) error {
	id := c.Params("id")
	var schedule models.WorkSchedule
	if err := db.DB.Where("salon_id = ?", salonID(c)).First(&schedule, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Work schedule not found",
		})
	}
	if err := db.DB.Delete(&schedule).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete work schedule",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func validateScheduleTimes(schedule *models.WorkSchedule) error {
	start, err := models.MinuteOfDay(schedule.StartTime)
	if err != nil {
		return err
	}
	end, err := models.MinuteOfDay(schedule.EndTime)
	if err != nil {
		return err
	}
	if end <= start {
		return fmt.Errorf("end %s must be after start %s", schedule.EndTime, schedule.StartTime)
	}
	if (schedule.BreakStart == nil) != (schedule.BreakEnd == nil) {
		return fmt.Errorf("break start and end must be set together")
	}
	if schedule.BreakStart == nil {
		return nil
	}
	breakStart, err := models.MinuteOfDay(*schedule.BreakStart)
	if err != nil {
		return err
	}
	breakEnd, err := models.MinuteOfDay(*schedule.BreakEnd)
	if err != nil {
		return err
	}
	if breakEnd <= breakStart {
		return fmt.Errorf("break end %s must be after break start %s", *schedule.BreakEnd, *schedule.BreakStart)
	}
	if breakStart < start || breakEnd > end {
		return fmt.Errorf("break %s-%s must lie within working hours %s-%s",
			*schedule.BreakStart, *schedule.BreakEnd, schedule.StartTime, schedule.EndTime)
	}
	return nil
}
