package scheduling

import (
	"context"
	"log"
	"time"

	"github.com/13roger10/Belezza.ai-sub001/models"
)

// DefaultNoShowGrace is how long past its start a confirmed appointment may
// sit before the sweep marks it a no-show.
const DefaultNoShowGrace = 15 * time.Minute

// NoShowSweeper finds confirmed appointments whose start time has passed by
// more than the grace period and marks them no-shows. Each appointment is
// processed in its own transaction: status change, client counter and the
// blocked flag commit together, so a crash mid-sweep cannot double-count.
// Re-running the sweep is safe because the status guard skips appointments
// already marked.
type NoShowSweeper struct {
	store Store
	clock Clock
	grace time.Duration
}

func NewNoShowSweeper(store Store, clock Clock, grace time.Duration) *NoShowSweeper {
	if grace <= 0 {
		grace = DefaultNoShowGrace
	}
	return &NoShowSweeper{store: store, clock: clock, grace: grace}
}

// Run executes one sweep. A failure on one appointment is logged and does
// not stop the rest of the batch.
func (s *NoShowSweeper) Run(ctx context.Context) error {
	cutoff := s.clock.Now().Add(-s.grace)
	candidates, err := s.store.FindNoShowCandidates(ctx, cutoff)
	if err != nil {
		return err
	}
	for _, candidate := range candidates {
		if err := s.markNoShow(ctx, candidate.ID); err != nil {
			log.Printf("no-show sweep: appointment %d: %v", candidate.ID, err)
		}
	}
	return nil
}

func (s *NoShowSweeper) markNoShow(ctx context.Context, appointmentID uint) error {
	return s.store.Transact(ctx, func(tx Store) error {
		appointment, err := tx.FindAppointment(ctx, appointmentID)
		if err != nil {
			return err
		}
		// Guard: a previous sweep, or a staff action between query and lock,
		// may have moved the appointment on already.
		if appointment.Status != models.StatusConfirmed {
			return nil
		}
		if err := appointment.Transition(models.StatusNoShow); err != nil {
			return err
		}
		if err := tx.SaveAppointment(ctx, appointment); err != nil {
			return err
		}

		count, err := tx.IncrementNoShow(ctx, appointment.ClientID)
		if err != nil {
			return err
		}
		salon, err := tx.FindSalon(ctx, appointment.SalonID)
		if err != nil {
			return err
		}
		if salon.MaxNoShows > 0 && count >= salon.MaxNoShows {
			return tx.SetBlocked(ctx, appointment.ClientID, true)
		}
		return nil
	})
}
