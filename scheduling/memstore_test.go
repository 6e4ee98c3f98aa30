package scheduling

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/13roger10/Belezza.ai-sub001/models"
)

// memData is the shared state behind memStore. The mutex serializes
// transactions, standing in for the database's row locking.
type memData struct {
	mu           sync.Mutex
	salons       map[uint]*models.Salon
	clients      map[uint]*models.Client
	services     map[uint]models.Service
	schedules    map[uint]map[time.Weekday]*models.WorkSchedule
	blocks       []models.TimeBlock
	appointments map[uint]*models.Appointment
	messages     map[uint]*models.OutboundMessage
	nextID       uint
	clock        Clock
}

// memStore is the test double for Store. Top-level calls take the lock per
// call; inside Transact the whole function runs under one hold of the lock.
type memStore struct {
	data *memData
	inTx bool
}

func newMemStore(clock Clock) *memStore {
	return &memStore{data: &memData{
		salons:       make(map[uint]*models.Salon),
		clients:      make(map[uint]*models.Client),
		services:     make(map[uint]models.Service),
		schedules:    make(map[uint]map[time.Weekday]*models.WorkSchedule),
		appointments: make(map[uint]*models.Appointment),
		messages:     make(map[uint]*models.OutboundMessage),
		clock:        clock,
	}}
}

func (s *memStore) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.data.mu.Lock()
	return s.data.mu.Unlock
}

func (s *memStore) Transact(ctx context.Context, fn func(Store) error) error {
	if s.inTx {
		return fn(s)
	}
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	return fn(&memStore{data: s.data, inTx: true})
}

func (s *memStore) FindConflicts(ctx context.Context, professionalID uint, start, end time.Time) ([]models.Appointment, error) {
	defer s.lock()()
	var out []models.Appointment
	for _, a := range s.data.appointments {
		if a.ProfessionalID == professionalID && a.Occupying() && Overlaps(start, end, a.StartTime, a.EndTime) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *memStore) FindBlocks(ctx context.Context, professionalID uint, start, end time.Time) ([]models.TimeBlock, error) {
	defer s.lock()()
	var out []models.TimeBlock
	for _, b := range s.data.blocks {
		if b.ProfessionalID != professionalID {
			continue
		}
		if b.Weekly || Overlaps(start, end, b.StartTime, b.EndTime) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *memStore) FindWorkSchedule(ctx context.Context, professionalID uint, weekday time.Weekday) (*models.WorkSchedule, error) {
	defer s.lock()()
	ws, ok := s.data.schedules[professionalID][weekday]
	if !ok {
		return nil, nil
	}
	copied := *ws
	return &copied, nil
}

func (s *memStore) FindAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	defer s.lock()()
	a, ok := s.data.appointments[id]
	if !ok {
		return nil, fmt.Errorf("appointment %d not found", id)
	}
	copied := *a
	return &copied, nil
}

func (s *memStore) SaveAppointment(ctx context.Context, a *models.Appointment) error {
	defer s.lock()()
	if a.ID == 0 {
		s.data.nextID++
		a.ID = s.data.nextID
		a.CreatedAt = s.data.clock.Now()
	}
	a.UpdatedAt = s.data.clock.Now()
	copied := *a
	s.data.appointments[a.ID] = &copied
	return nil
}

func (s *memStore) FindNeedingReminder(ctx context.Context, kind ReminderKind, start, end time.Time) ([]models.Appointment, error) {
	defer s.lock()()
	var out []models.Appointment
	for _, a := range s.data.appointments {
		if a.Status != models.StatusConfirmed {
			continue
		}
		sent := a.Reminder24hSent
		if kind == Reminder2h {
			sent = a.Reminder2hSent
		}
		if sent {
			continue
		}
		if !a.StartTime.Before(start) && !a.StartTime.After(end) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *memStore) FindNoShowCandidates(ctx context.Context, cutoff time.Time) ([]models.Appointment, error) {
	defer s.lock()()
	var out []models.Appointment
	for _, a := range s.data.appointments {
		if a.Status == models.StatusConfirmed && a.StartTime.Before(cutoff) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *memStore) FindServices(ctx context.Context, salonID uint, ids []uint) (map[uint]models.Service, error) {
	defer s.lock()()
	out := make(map[uint]models.Service)
	for _, id := range ids {
		if svc, ok := s.data.services[id]; ok && svc.SalonID == salonID && svc.Active {
			out[id] = svc
		}
	}
	return out, nil
}

func (s *memStore) FindSalon(ctx context.Context, id uint) (*models.Salon, error) {
	defer s.lock()()
	salon, ok := s.data.salons[id]
	if !ok {
		return nil, fmt.Errorf("salon %d not found", id)
	}
	copied := *salon
	return &copied, nil
}

func (s *memStore) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	defer s.lock()()
	client, ok := s.data.clients[id]
	if !ok {
		return nil, fmt.Errorf("client %d not found", id)
	}
	copied := *client
	return &copied, nil
}

func (s *memStore) IncrementNoShow(ctx context.Context, id uint) (int, error) {
	defer s.lock()()
	client, ok := s.data.clients[id]
	if !ok {
		return 0, fmt.Errorf("client %d not found", id)
	}
	client.NoShowCount++
	return client.NoShowCount, nil
}

func (s *memStore) SetBlocked(ctx context.Context, id uint, blocked bool) error {
	defer s.lock()()
	client, ok := s.data.clients[id]
	if !ok {
		return fmt.Errorf("client %d not found", id)
	}
	client.Blocked = blocked
	return nil
}

func (s *memStore) FindRetryable(ctx context.Context, createdAfter, staleBefore time.Time, maxAttempts int) ([]models.OutboundMessage, error) {
	defer s.lock()()
	var out []models.OutboundMessage
	for _, m := range s.data.messages {
		if m.Attempts >= maxAttempts || !m.CreatedAt.After(createdAfter) {
			continue
		}
		if m.Status == models.MessageFailed || (m.Status == models.MessageRetrying && m.UpdatedAt.Before(staleBefore)) {
			out = append(out, *m)
		}
	}
	// Oldest first.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].CreatedAt.Before(out[j-1].CreatedAt); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out, nil
}

func (s *memStore) FindFailed(ctx context.Context, salonID uint) ([]models.OutboundMessage, error) {
	defer s.lock()()
	var out []models.OutboundMessage
	for _, m := range s.data.messages {
		if m.SalonID == salonID && m.Status == models.MessageFailed {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (s *memStore) FindMessage(ctx context.Context, id uint) (*models.OutboundMessage, error) {
	defer s.lock()()
	m, ok := s.data.messages[id]
	if !ok {
		return nil, fmt.Errorf("message %d not found", id)
	}
	copied := *m
	return &copied, nil
}

func (s *memStore) FindMessageByKey(ctx context.Context, key string) (*models.OutboundMessage, error) {
	defer s.lock()()
	for _, m := range s.data.messages {
		if m.IdempotencyKey == key {
			copied := *m
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *memStore) SaveMessage(ctx context.Context, m *models.OutboundMessage) error {
	defer s.lock()()
	if m.ID == 0 {
		s.data.nextID++
		m.ID = s.data.nextID
		if m.CreatedAt.IsZero() {
			m.CreatedAt = s.data.clock.Now()
		}
		if m.Status == "" {
			m.Status = models.MessageQueued
		}
		if m.IdempotencyKey == "" {
			m.IdempotencyKey = fmt.Sprintf("msg-%d", m.ID)
		}
	}
	m.UpdatedAt = s.data.clock.Now()
	copied := *m
	s.data.messages[m.ID] = &copied
	return nil
}

// fakeClock is a settable clock for window math.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{t: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// fakeSender records dispatches and can be told to fail.
type fakeSender struct {
	mu    sync.Mutex
	sends []string
	fail  error
}

func (s *fakeSender) Send(ctx context.Context, target, subject, body string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return "", s.fail
	}
	s.sends = append(s.sends, target)
	return fmt.Sprintf("provider-%d", len(s.sends)), nil
}

func (s *fakeSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sends)
}

func (s *fakeSender) setFail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = err
}
