package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/13roger10/Belezza.ai-sub001/models"
	"gorm.io/gorm"
)

func seedFailedMessage(t *testing.T, store *memStore, clock *fakeClock, recipient string, attempts int, age time.Duration) uint {
	t.Helper()
	message := &models.OutboundMessage{
		SalonID:   1,
		Kind:      models.MessageConfirmation,
		Recipient: recipient,
		Subject:   "Appointment confirmed",
		Body:      "See you soon.",
		Status:    models.MessageFailed,
		Attempts:  attempts,
		LastError: "smtp timeout",
		Model:     gorm.Model{CreatedAt: clock.Now().Add(-age)},
	}
	if err := store.SaveMessage(context.Background(), message); err != nil {
		t.Fatal(err)
	}
	return message.ID
}

func TestRetrySweep_RedeliversFailed(t *testing.T) {
	clock := newFakeClock(monday(9, 0))
	store := newMemStore(clock)
	id := seedFailedMessage(t, store, clock, "ana@example.com", 1, time.Hour)
	sender := &fakeSender{}
	sweeper := NewRetrySweeper(store, sender, clock)

	if err := sweeper.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if sender.count() != 1 {
		t.Fatalf("sends = %d, want 1", sender.count())
	}
	message, _ := store.FindMessage(context.Background(), id)
	if message.Status != models.MessageSent {
		t.Errorf("status = %s, want %s", message.Status, models.MessageSent)
	}
	if message.Attempts != 2 {
		t.Errorf("attempts = %d, want 2", message.Attempts)
	}
	if message.LastError != "" {
		t.Errorf("last error = %q, want cleared", message.LastError)
	}
	if message.SentAt == nil || message.ProviderID == "" {
		t.Error("sent timestamp or provider id missing")
	}
}

func TestRetrySweep_AttemptsExhaustedNotSelected(t *testing.T) {
	clock := newFakeClock(monday(9, 0))
	store := newMemStore(clock)
	id := seedFailedMessage(t, store, clock, "ana@example.com", MaxDeliveryAttempts, time.Hour)
	sender := &fakeSender{}
	sweeper := NewRetrySweeper(store, sender, clock)

	if err := sweeper.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if sender.count() != 0 {
		t.Fatalf("sends = %d, want 0", sender.count())
	}
	message, _ := store.FindMessage(context.Background(), id)
	if message.Status != models.MessageFailed {
		t.Errorf("status = %s, want it left %s", message.Status, models.MessageFailed)
	}
}

func TestRetrySweep_ExpiredNotSelected(t *testing.T) {
	clock := newFakeClock(monday(9, 0))
	store := newMemStore(clock)
	seedFailedMessage(t, store, clock, "ana@example.com", 1, RetryWindow+time.Hour)
	sender := &fakeSender{}
	sweeper := NewRetrySweeper(store, sender, clock)

	if err := sweeper.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if sender.count() != 0 {
		t.Fatalf("sends = %d, want 0: message is older than the retry window", sender.count())
	}
}

func TestRetrySweep_FailureCountsAttempt(t *testing.T) {
	clock := newFakeClock(monday(9, 0))
	store := newMemStore(clock)
	id := seedFailedMessage(t, store, clock, "ana@example.com", 1, time.Hour)
	sender := &fakeSender{}
	sender.setFail(errors.New("mailbox full"))
	sweeper := NewRetrySweeper(store, sender, clock)

	if err := sweeper.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	message, _ := store.FindMessage(context.Background(), id)
	if message.Status != models.MessageFailed {
		t.Errorf("status = %s, want %s", message.Status, models.MessageFailed)
	}
	if message.Attempts != 2 {
		t.Errorf("attempts = %d, want 2", message.Attempts)
	}
	if message.LastError != "mailbox full" {
		t.Errorf("last error = %q, want the latest failure", message.LastError)
	}
}

func TestRetrySweep_OldestFirst(t *testing.T) {
	clock := newFakeClock(monday(9, 0))
	store := newMemStore(clock)
	seedFailedMessage(t, store, clock, "newer@example.com", 0, time.Hour)
	seedFailedMessage(t, store, clock, "oldest@example.com", 0, 3*time.Hour)
	seedFailedMessage(t, store, clock, "middle@example.com", 0, 2*time.Hour)
	sender := &fakeSender{}
	sweeper := NewRetrySweeper(store, sender, clock)

	if err := sweeper.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := []string{"oldest@example.com", "middle@example.com", "newer@example.com"}
	sender.mu.Lock()
	got := append([]string(nil), sender.sends...)
	sender.mu.Unlock()
	if len(got) != len(want) {
		t.Fatalf("sends = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sends = %v, want oldest first %v", got, want)
		}
	}
}

func TestRetrySweep_StaleRetryingReclaimed(t *testing.T) {
	clock := newFakeClock(monday(9, 0))
	store := newMemStore(clock)
	// Claimed by a sweep that died before dispatching: retrying, attempt
	// already counted, untouched since.
	message := &models.OutboundMessage{
		SalonID:   1,
		Kind:      models.MessageReminder24h,
		Recipient: "ana@example.com",
		Subject:   "Appointment reminder",
		Body:      "Tomorrow at 10:00.",
		Status:    models.MessageRetrying,
		Attempts:  1,
	}
	if err := store.SaveMessage(context.Background(), message); err != nil {
		t.Fatal(err)
	}
	clock.Advance(20 * time.Minute)

	sender := &fakeSender{}
	sweeper := NewRetrySweeper(store, sender, clock)
	if err := sweeper.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if sender.count() != 1 {
		t.Fatalf("sends = %d, want 1", sender.count())
	}
	got, _ := store.FindMessage(context.Background(), message.ID)
	if got.Status != models.MessageSent {
		t.Errorf("status = %s, want %s", got.Status, models.MessageSent)
	}
	if got.Attempts != 1 {
		t.Errorf("attempts = %d, want 1: a reclaim must not count a second attempt", got.Attempts)
	}
}

func TestRetrySweep_FreshRetryingLeftAlone(t *testing.T) {
	clock := newFakeClock(monday(9, 0))
	store := newMemStore(clock)
	message := &models.OutboundMessage{
		SalonID:   1,
		Kind:      models.MessageReminder24h,
		Recipient: "ana@example.com",
		Subject:   "Appointment reminder",
		Body:      "Tomorrow at 10:00.",
		Status:    models.MessageRetrying,
		Attempts:  1,
	}
	if err := store.SaveMessage(context.Background(), message); err != nil {
		t.Fatal(err)
	}
	clock.Advance(5 * time.Minute)

	sender := &fakeSender{}
	sweeper := NewRetrySweeper(store, sender, clock)
	if err := sweeper.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if sender.count() != 0 {
		t.Fatalf("sends = %d, want 0: the owning sweep may still be mid-dispatch", sender.count())
	}
}
