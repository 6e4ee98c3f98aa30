package scheduling

import (
	"context"
	"log"
	"time"

	"github.com/13roger10/Belezza.ai-sub001/models"
)

// Retry policy: a failed message is eligible while it has fewer than
// MaxDeliveryAttempts attempts and is younger than RetryWindow. Messages past
// either bound stay failed and are surfaced to operators, never silently
// dropped and never retried forever.
const (
	MaxDeliveryAttempts = 3
	RetryWindow         = 24 * time.Hour
	retryStaleAfter     = 15 * time.Minute
)

// RetrySweeper re-attempts delivery of failed outbound messages, oldest
// first. A message is claimed (failed -> retrying, attempts incremented) and
// committed before the dispatch call, so a slow provider never holds a row
// lock and a concurrent sweep cannot claim the same message twice.
type RetrySweeper struct {
	store  Store
	sender NotificationSender
	clock  Clock
}

func NewRetrySweeper(store Store, sender NotificationSender, clock Clock) *RetrySweeper {
	return &RetrySweeper{store: store, sender: sender, clock: clock}
}

// Run executes one sweep. Per-message failures are logged and do not stop
// the batch.
func (s *RetrySweeper) Run(ctx context.Context) error {
	now := s.clock.Now()
	messages, err := s.store.FindRetryable(ctx, now.Add(-RetryWindow), now.Add(-retryStaleAfter), MaxDeliveryAttempts)
	if err != nil {
		return err
	}
	for i := range messages {
		if err := s.retry(ctx, messages[i].ID); err != nil {
			log.Printf("retry sweep: message %d: %v", messages[i].ID, err)
		}
	}
	return nil
}

func (s *RetrySweeper) retry(ctx context.Context, messageID uint) error {
	var claimed *models.OutboundMessage
	err := s.store.Transact(ctx, func(tx Store) error {
		message, err := tx.FindMessage(ctx, messageID)
		if err != nil {
			return err
		}
		// Guard: another invocation may have claimed or delivered it since
		// the candidate query. A retrying row is reclaimable only once it has
		// sat untouched past the stale cutoff (crash between claim and
		// dispatch); its attempt was already counted at the original claim.
		stale := message.Status == models.MessageRetrying && s.clock.Now().Sub(message.UpdatedAt) >= retryStaleAfter
		if message.Status != models.MessageFailed && !stale {
			return nil
		}
		if message.Attempts >= MaxDeliveryAttempts || s.clock.Now().Sub(message.CreatedAt) >= RetryWindow {
			return nil
		}
		if !stale {
			message.Attempts++
		}
		message.Status = models.MessageRetrying
		if err := tx.SaveMessage(ctx, message); err != nil {
			return err
		}
		claimed = message
		return nil
	})
	if err != nil || claimed == nil {
		return err
	}

	providerID, sendErr := s.sender.Send(ctx, claimed.Recipient, claimed.Subject, claimed.Body)
	if sendErr != nil {
		claimed.Status = models.MessageFailed
		claimed.LastError = sendErr.Error()
		if err := s.store.SaveMessage(ctx, claimed); err != nil {
			return err
		}
		return sendErr
	}

	now := s.clock.Now()
	claimed.Status = models.MessageSent
	claimed.ProviderID = providerID
	claimed.LastError = ""
	claimed.SentAt = &now
	return s.store.SaveMessage(ctx, claimed)
}
