package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/13roger10/Belezza.ai-sub001/db"
	"github.com/13roger10/Belezza.ai-sub001/models"
	"github.com/13roger10/Belezza.ai-sub001/scheduling"
	"github.com/13roger10/Belezza.ai-sub001/utils"
)

// AppointmentHandler exposes booking and lifecycle operations over HTTP. The
// scheduling engines are injected so handlers stay thin.
type AppointmentHandler struct {
	Booker    *scheduling.AuditedBooker
	Lifecycle *scheduling.AuditedLifecycle
	Store     scheduling.Store
	Clock     scheduling.Clock
}

func NewAppointmentHandler(store scheduling.Store, sender scheduling.NotificationSender, clock scheduling.Clock) *AppointmentHandler {
	return &AppointmentHandler{
		Booker:    scheduling.NewAuditedBooker(scheduling.NewBooker(store, clock, sender)),
		Lifecycle: scheduling.NewAuditedLifecycle(scheduling.NewLifecycle(store, clock), store),
		Store:     store,
		Clock:     clock,
	}
}

func salonID(c *fiber.Ctx) uint {
	id, _ := c.Locals("salonID").(uint)
	return id
}

// Create books a new appointment from a booking request.
func (h *AppointmentHandler) Create(c *fiber.Ctx) error {
	var req scheduling.BookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	req.SalonID = salonID(c)

	appointment, err := h.Booker.Book(c.UserContext(), req)
	if err != nil {
		return bookingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// bookingError maps scheduling rejections onto distinct responses; a
// conflict and a working-hours violation must read differently.
func bookingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, scheduling.ErrSchedulingConflict):
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Time slot not available",
			Error:   err.Error(),
		})
	case errors.Is(err, scheduling.ErrOutsideWorkingHours):
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Appointment is outside working hours or during break",
			Error:   err.Error(),
		})
	case errors.Is(err, scheduling.ErrInvalidServiceSelection),
		errors.Is(err, scheduling.ErrSlotMisaligned),
		errors.Is(err, scheduling.ErrTooShortNotice):
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid booking request",
			Error:   err.Error(),
		})
	case errors.Is(err, scheduling.ErrClientBlocked):
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "Client is blocked from booking",
			Error:   err.Error(),
		})
	case errors.Is(err, models.ErrInvalidTransition):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "Invalid appointment transition",
			Error:   err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to process appointment",
			Error:   err.Error(),
		})
	}
}

func (h *AppointmentHandler) GetAll(c *fiber.Ctx) error {
	var appointments []models.Appointment
	if err := db.DB.Preload("Items").Preload("Client").Preload("Professional").
		Where("salon_id = ?", salonID(c)).
		Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointments)
}

func (h *AppointmentHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	var appointment models.Appointment
	if err := db.DB.Preload("Items.Service").Preload("Client").Preload("Professional").
		Where("salon_id = ?", salonID(c)).
		First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointment)
}

func (h *AppointmentHandler) Confirm(c *fiber.Ctx) error {
	return h.lifecycleMove(c, h.Lifecycle.Confirm)
}

func (h *AppointmentHandler) Start(c *fiber.Ctx) error {
	return h.lifecycleMove(c, h.Lifecycle.Start)
}

func (h *AppointmentHandler) Complete(c *fiber.Ctx) error {
	return h.lifecycleMove(c, h.Lifecycle.Complete)
}

func (h *AppointmentHandler) lifecycleMove(c *fiber.Ctx, move func(ctx context.Context, id uint) (*models.Appointment, error)) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid appointment id",
			Error:   err.Error(),
		})
	}
	appointment, err := move(c.UserContext(), uint(id))
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(appointment)
}

func (h *AppointmentHandler) Cancel(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid appointment id",
			Error:   err.Error(),
		})
	}
	var body struct {
		Reason   string `json:"reason"`
		ByClient bool   `json:"by_client"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	appointment, err := h.Lifecycle.Cancel(c.UserContext(), uint(id), body.Reason, body.ByClient)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(appointment)
}

// Availability returns the free slots of a professional on a given day.
func (h *AppointmentHandler) Availability(c *fiber.Ctx) error {
	professionalID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid professional id",
			Error:   err.Error(),
		})
	}
	salon, err := h.Store.FindSalon(c.UserContext(), salonID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load salon",
			Error:   err.Error(),
		})
	}

	// The date names a calendar day in the salon's timezone; parsing it in
	// UTC would shift it onto the previous day for salons west of UTC.
	day, err := time.ParseInLocation("2006-01-02", c.Query("date"), salon.Location())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid or missing date, expected YYYY-MM-DD",
			Error:   err.Error(),
		})
	}
	durationMin := c.QueryInt("duration", 0)
	duration := time.Duration(durationMin) * time.Minute
	if duration <= 0 {
		duration = time.Duration(salon.SlotGranularityMin) * time.Minute
	}

	slots, err := scheduling.FreeSlots(c.UserContext(), h.Store, h.Clock, salon, uint(professionalID), day, duration)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to compute availability",
			Error:   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"slots": slots})
}

// FailedMessages lists permanently failed outbound messages for operators.
func (h *AppointmentHandler) FailedMessages(c *fiber.Ctx) error {
	messages, err := h.Store.FindFailed(c.UserContext(), salonID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch messages",
			Error:   err.Error(),
		})
	}
	return c.JSON(messages)
}
