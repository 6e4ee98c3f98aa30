package scheduling

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/13roger10/Belezza.ai-sub001/models"
)

// BookingRequest is a request to create an appointment. Either ServiceID
// (legacy single-service form) or Items is set, never both.
type BookingRequest struct {
	SalonID        uint              `json:"salon_id"`
	ClientID       uint              `json:"client_id"`
	ProfessionalID uint              `json:"professional_id"`
	StartTime      time.Time         `json:"start_time"`
	ServiceID      uint              `json:"service_id,omitempty"`
	Items          []LineItemRequest `json:"items,omitempty"`
}

// Booker runs the foreground booking flow: resolve services and span, check
// working hours, check conflicts, and create the appointment, with the
// conflict check and the insert in one transaction so two concurrent
// requests for the same slot cannot both succeed.
type Booker struct {
	store  Store
	clock  Clock
	sender NotificationSender
}

func NewBooker(store Store, clock Clock, sender NotificationSender) *Booker {
	return &Booker{store: store, clock: clock, sender: sender}
}

// Book validates and creates the appointment. The returned appointment is
// PENDING, or CONFIRMED when the salon auto-confirms. A confirmation message
// is queued alongside it.
func (b *Booker) Book(ctx context.Context, req BookingRequest) (*models.Appointment, error) {
	salon, err := b.store.FindSalon(ctx, req.SalonID)
	if err != nil {
		return nil, fmt.Errorf("loading salon %d: %w", req.SalonID, err)
	}

	client, err := b.store.GetClient(ctx, req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("loading client %d: %w", req.ClientID, err)
	}
	if client.Blocked {
		return nil, ErrClientBlocked
	}

	ids := make([]uint, 0, len(req.Items)+1)
	if req.ServiceID != 0 {
		ids = append(ids, req.ServiceID)
	}
	for _, item := range req.Items {
		ids = append(ids, item.ServiceID)
	}
	catalog, err := b.store.FindServices(ctx, req.SalonID, ids)
	if err != nil {
		return nil, fmt.Errorf("loading services: %w", err)
	}
	items, err := ResolveItems(req.ServiceID, req.Items, catalog)
	if err != nil {
		return nil, err
	}
	span, err := TotalSpan(items)
	if err != nil {
		return nil, err
	}

	now := b.clock.Now()
	if req.StartTime.Before(now.Add(time.Duration(salon.MinAdvanceBookingHours) * time.Hour)) {
		return nil, ErrTooShortNotice
	}
	if salon.SlotGranularityMin > 0 {
		local := req.StartTime.In(salon.Location())
		if (local.Hour()*60+local.Minute())%salon.SlotGranularityMin != 0 || local.Second() != 0 {
			return nil, ErrSlotMisaligned
		}
	}

	// End is derived once here and persisted; conflict queries compare the
	// stored interval, never re-deriving the duration.
	end := req.StartTime.Add(span)

	status := models.StatusPending
	if salon.AutoConfirm {
		status = models.StatusConfirmed
	}
	appointment := &models.Appointment{
		SalonID:        req.SalonID,
		ClientID:       req.ClientID,
		ProfessionalID: req.ProfessionalID,
		StartTime:      req.StartTime,
		EndTime:        end,
		Status:         status,
		Items:          items,
	}

	message := &models.OutboundMessage{
		SalonID:   req.SalonID,
		Kind:      models.MessageConfirmation,
		Recipient: client.Email,
		Subject:   "Your appointment is booked",
		Body: fmt.Sprintf("Hi %s, your appointment on %s has been booked.",
			client.Name, req.StartTime.In(salon.Location()).Format("Mon 02 Jan 15:04")),
	}

	err = b.store.Transact(ctx, func(tx Store) error {
		detector := NewConflictDetector(tx)
		if err := detector.CheckWorkingHours(ctx, req.ProfessionalID, req.StartTime, end, salon.Location()); err != nil {
			return err
		}
		conflicts, err := detector.FindConflicts(ctx, req.ProfessionalID, req.StartTime, end)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return ErrSchedulingConflict
		}
		if err := tx.SaveAppointment(ctx, appointment); err != nil {
			return err
		}
		message.AppointmentID = &appointment.ID
		return tx.SaveMessage(ctx, message)
	})
	if err != nil {
		return nil, err
	}

	// Dispatch after the booking committed; a slow channel must not hold the
	// booking transaction open and a failed send must not fail the booking.
	// A failed confirmation stays FAILED and is picked up by the retry sweep.
	providerID, sendErr := b.sender.Send(ctx, message.Recipient, message.Subject, message.Body)
	message.Attempts++
	if sendErr != nil {
		message.Status = models.MessageFailed
		message.LastError = sendErr.Error()
		log.Printf("confirmation for appointment %d: %v", appointment.ID, sendErr)
	} else {
		now := b.clock.Now()
		message.Status = models.MessageSent
		message.ProviderID = providerID
		message.LastError = ""
		message.SentAt = &now
	}
	if err := b.store.SaveMessage(ctx, message); err != nil {
		log.Printf("confirmation for appointment %d: recording outcome: %v", appointment.ID, err)
	}
	return appointment, nil
}
