package scheduling

import (
	"context"
	"log"

	"github.com/13roger10/Belezza.ai-sub001/models"
)

// AuditedBooker wraps Booker and logs every booking outcome. The engine
// itself stays free of logging; auditing is plain composition at the call
// site.
type AuditedBooker struct {
	inner *Booker
}

func NewAuditedBooker(inner *Booker) *AuditedBooker {
	return &AuditedBooker{inner: inner}
}

func (a *AuditedBooker) Book(ctx context.Context, req BookingRequest) (*models.Appointment, error) {
	appointment, err := a.inner.Book(ctx, req)
	if err != nil {
		log.Printf("booking rejected: client %d, professional %d, start %s: %v",
			req.ClientID, req.ProfessionalID, req.StartTime.Format("2006-01-02 15:04"), err)
		return nil, err
	}
	log.Printf("appointment %d booked: client %d, professional %d, %s - %s, status %s",
		appointment.ID, appointment.ClientID, appointment.ProfessionalID,
		appointment.StartTime.Format("2006-01-02 15:04"),
		appointment.EndTime.Format("15:04"), appointment.Status)
	return appointment, nil
}

// AuditedLifecycle wraps Lifecycle and logs every transition with the status
// before and after.
type AuditedLifecycle struct {
	inner *Lifecycle
	store Store
}

func NewAuditedLifecycle(inner *Lifecycle, store Store) *AuditedLifecycle {
	return &AuditedLifecycle{inner: inner, store: store}
}

func (a *AuditedLifecycle) Confirm(ctx context.Context, appointmentID uint) (*models.Appointment, error) {
	return a.logged(ctx, "confirm", appointmentID, a.inner.Confirm)
}

func (a *AuditedLifecycle) Start(ctx context.Context, appointmentID uint) (*models.Appointment, error) {
	return a.logged(ctx, "start", appointmentID, a.inner.Start)
}

func (a *AuditedLifecycle) Complete(ctx context.Context, appointmentID uint) (*models.Appointment, error) {
	return a.logged(ctx, "complete", appointmentID, a.inner.Complete)
}

func (a *AuditedLifecycle) Cancel(ctx context.Context, appointmentID uint, reason string, byClient bool) (*models.Appointment, error) {
	return a.logged(ctx, "cancel", appointmentID, func(ctx context.Context, id uint) (*models.Appointment, error) {
		return a.inner.Cancel(ctx, id, reason, byClient)
	})
}

func (a *AuditedLifecycle) logged(ctx context.Context, op string, appointmentID uint, move func(context.Context, uint) (*models.Appointment, error)) (*models.Appointment, error) {
	before := "unknown"
	if current, err := a.store.FindAppointment(ctx, appointmentID); err == nil {
		before = string(current.Status)
	}
	appointment, err := move(ctx, appointmentID)
	if err != nil {
		log.Printf("appointment %d: %s rejected in status %s: %v", appointmentID, op, before, err)
		return nil, err
	}
	log.Printf("appointment %d: %s, %s -> %s", appointmentID, op, before, appointment.Status)
	return appointment, nil
}
