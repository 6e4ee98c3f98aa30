package scheduling

import (
	"context"
	"time"

	"github.com/13roger10/Belezza.ai-sub001/models"
)

// ReminderKind selects which reminder flag gates a sweep.
type ReminderKind string

const (
	Reminder24h ReminderKind = "24h"
	Reminder2h  ReminderKind = "2h"
)

// ScheduleStore is the persistence contract for appointments, work schedules
// and time blocks of a professional.
type ScheduleStore interface {
	// FindConflicts returns occupying appointments of the professional that
	// overlap [start, end). Inside a transaction the read is part of the
	// transaction's isolation: a concurrent booking for the same slot cannot
	// commit alongside one that passed this check on an empty result.
	FindConflicts(ctx context.Context, professionalID uint, start, end time.Time) ([]models.Appointment, error)
	FindBlocks(ctx context.Context, professionalID uint, start, end time.Time) ([]models.TimeBlock, error)
	FindWorkSchedule(ctx context.Context, professionalID uint, weekday time.Weekday) (*models.WorkSchedule, error)
	FindAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	SaveAppointment(ctx context.Context, a *models.Appointment) error
	// FindNeedingReminder returns confirmed appointments starting within
	// [start, end] whose flag for kind is still false.
	FindNeedingReminder(ctx context.Context, kind ReminderKind, start, end time.Time) ([]models.Appointment, error)
	// FindNoShowCandidates returns confirmed appointments whose start time is
	// before cutoff.
	FindNoShowCandidates(ctx context.Context, cutoff time.Time) ([]models.Appointment, error)
	FindServices(ctx context.Context, salonID uint, ids []uint) (map[uint]models.Service, error)
	FindSalon(ctx context.Context, id uint) (*models.Salon, error)
}

// ClientStore mutates client no-show bookkeeping. Only the lifecycle engine
// calls the mutators.
type ClientStore interface {
	GetClient(ctx context.Context, id uint) (*models.Client, error)
	// IncrementNoShow bumps the counter and returns the new value.
	IncrementNoShow(ctx context.Context, id uint) (int, error)
	SetBlocked(ctx context.Context, id uint, blocked bool) error
}

// MessageStore is the persistence contract for outbound notifications.
type MessageStore interface {
	// FindRetryable returns failed messages created after createdAfter with
	// fewer than maxAttempts attempts, oldest first. Messages stuck in
	// retrying since before staleBefore are reclaimed as retryable too.
	FindRetryable(ctx context.Context, createdAfter, staleBefore time.Time, maxAttempts int) ([]models.OutboundMessage, error)
	FindFailed(ctx context.Context, salonID uint) ([]models.OutboundMessage, error)
	FindMessage(ctx context.Context, id uint) (*models.OutboundMessage, error)
	// FindMessageByKey returns the message with the given idempotency key, or
	// nil when none exists.
	FindMessageByKey(ctx context.Context, key string) (*models.OutboundMessage, error)
	SaveMessage(ctx context.Context, m *models.OutboundMessage) error
}

// Store aggregates the collaborator contracts plus transactional execution.
// Transact runs fn against a store view whose operations belong to one
// transaction; conflict reads inside it lock the matched rows.
type Store interface {
	ScheduleStore
	ClientStore
	MessageStore
	Transact(ctx context.Context, fn func(Store) error) error
}

// NotificationSender delivers one message and returns the provider's message
// id. The engine does not care whether the channel is email, SMS or push.
type NotificationSender interface {
	Send(ctx context.Context, target, subject, body string) (string, error)
}
