package scheduling

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/13roger10/Belezza.ai-sub001/models"
)

// transactRetries bounds re-runs of a serializable transaction that aborts
// with a serialization failure.
const transactRetries = 3

// GormStore implements Store on a *gorm.DB. Transact runs at SERIALIZABLE
// isolation: FOR UPDATE row locks cannot protect a check-then-insert against
// an empty conflict set (there is no row to lock), so two concurrent bookings
// for a free slot would both pass at READ COMMITTED. Under SERIALIZABLE one
// of them aborts with a serialization failure and is re-run, and the re-run
// sees the committed appointment and returns the conflict.
type GormStore struct {
	db   *gorm.DB
	inTx bool
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Transact(ctx context.Context, fn func(Store) error) error {
	if s.inTx {
		return fn(s)
	}
	var err error
	for attempt := 0; attempt < transactRetries; attempt++ {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(&GormStore{db: tx, inTx: true})
		}, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if !isSerializationFailure(err) {
			return err
		}
	}
	return err
}

// isSerializationFailure reports whether err is Postgres aborting a
// serializable transaction (SQLSTATE 40001), the one error class Transact
// re-runs.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "40001"
}

func (s *GormStore) FindConflicts(ctx context.Context, professionalID uint, start, end time.Time) ([]models.Appointment, error) {
	q := s.db.WithContext(ctx).
		Where("professional_id = ? AND status NOT IN ? AND start_time < ? AND end_time > ?",
			professionalID, []models.AppointmentStatus{models.StatusCanceled, models.StatusNoShow}, end, start)
	if s.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var appointments []models.Appointment
	if err := q.Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

func (s *GormStore) FindBlocks(ctx context.Context, professionalID uint, start, end time.Time) ([]models.TimeBlock, error) {
	var blocks []models.TimeBlock
	// Weekly blocks recur, so they are fetched regardless of the window and
	// expanded by the caller.
	err := s.db.WithContext(ctx).
		Where("professional_id = ? AND (weekly OR (start_time < ? AND end_time > ?))", professionalID, end, start).
		Find(&blocks).Error
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

func (s *GormStore) FindWorkSchedule(ctx context.Context, professionalID uint, weekday time.Weekday) (*models.WorkSchedule, error) {
	var schedule models.WorkSchedule
	err := s.db.WithContext(ctx).
		Where("professional_id = ? AND weekday = ?", professionalID, weekday).
		First(&schedule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (s *GormStore) FindAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	q := s.db.WithContext(ctx).Preload("Items")
	if s.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var appointment models.Appointment
	if err := q.First(&appointment, id).Error; err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (s *GormStore) SaveAppointment(ctx context.Context, a *models.Appointment) error {
	return s.db.WithContext(ctx).Save(a).Error
}

func (s *GormStore) FindNeedingReminder(ctx context.Context, kind ReminderKind, start, end time.Time) ([]models.Appointment, error) {
	flag := "reminder24h_sent"
	if kind == Reminder2h {
		flag = "reminder2h_sent"
	}
	var appointments []models.Appointment
	err := s.db.WithContext(ctx).
		Where("status = ? AND "+flag+" = false AND start_time BETWEEN ? AND ?", models.StatusConfirmed, start, end).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (s *GormStore) FindNoShowCandidates(ctx context.Context, cutoff time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.WithContext(ctx).
		Where("status = ? AND start_time < ?", models.StatusConfirmed, cutoff).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (s *GormStore) FindServices(ctx context.Context, salonID uint, ids []uint) (map[uint]models.Service, error) {
	var services []models.Service
	err := s.db.WithContext(ctx).
		Where("salon_id = ? AND id IN ? AND active", salonID, ids).
		Find(&services).Error
	if err != nil {
		return nil, err
	}
	catalog := make(map[uint]models.Service, len(services))
	for _, svc := range services {
		catalog[svc.ID] = svc
	}
	return catalog, nil
}

func (s *GormStore) FindSalon(ctx context.Context, id uint) (*models.Salon, error) {
	var salon models.Salon
	if err := s.db.WithContext(ctx).First(&salon, id).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

func (s *GormStore) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	if err := s.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (s *GormStore) IncrementNoShow(ctx context.Context, id uint) (int, error) {
	err := s.db.WithContext(ctx).Model(&models.Client{}).
		Where("id = ?", id).
		UpdateColumn("no_show_count", gorm.Expr("no_show_count + 1")).Error
	if err != nil {
		return 0, err
	}
	var client models.Client
	if err := s.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return 0, err
	}
	return client.NoShowCount, nil
}

func (s *GormStore) SetBlocked(ctx context.Context, id uint, blocked bool) error {
	return s.db.WithContext(ctx).Model(&models.Client{}).
		Where("id = ?", id).
		Update("blocked", blocked).Error
}

func (s *GormStore) FindRetryable(ctx context.Context, createdAfter, staleBefore time.Time, maxAttempts int) ([]models.OutboundMessage, error) {
	var messages []models.OutboundMessage
	err := s.db.WithContext(ctx).
		Where("attempts < ? AND created_at > ? AND (status = ? OR (status = ? AND updated_at < ?))",
			maxAttempts, createdAfter, models.MessageFailed, models.MessageRetrying, staleBefore).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *GormStore) FindFailed(ctx context.Context, salonID uint) ([]models.OutboundMessage, error) {
	var messages []models.OutboundMessage
	err := s.db.WithContext(ctx).
		Where("salon_id = ? AND status = ?", salonID, models.MessageFailed).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *GormStore) FindMessage(ctx context.Context, id uint) (*models.OutboundMessage, error) {
	q := s.db.WithContext(ctx)
	if s.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var message models.OutboundMessage
	if err := q.First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (s *GormStore) FindMessageByKey(ctx context.Context, key string) (*models.OutboundMessage, error) {
	q := s.db.WithContext(ctx)
	if s.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var message models.OutboundMessage
	err := q.Where("idempotency_key = ?", key).First(&message).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (s *GormStore) SaveMessage(ctx context.Context, m *models.OutboundMessage) error {
	return s.db.WithContext(ctx).Save(m).Error
}
