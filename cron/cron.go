package cron

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/13roger10/Belezza.ai-sub001/scheduling"
)

// Sweep cadences. Each reminder window is wider than half its cadence, so
// consecutive sweeps overlap and nothing slips between them.
const (
	noShowSpec      = "*/5 * * * *"
	reminder24hSpec = "*/30 * * * *"
	reminder2hSpec  = "*/15 * * * *"
	retrySpec       = "*/15 * * * *"
)

// StartCronJobs registers and starts the background sweeps. Sweeps are
// independent entries that may overlap with each other and with a previous
// invocation of themselves; all of them are idempotent by construction.
func StartCronJobs(store scheduling.Store, sender scheduling.NotificationSender) *cron.Cron {
	clock := scheduling.SystemClock()
	noShow := scheduling.NewNoShowSweeper(store, clock, scheduling.DefaultNoShowGrace)
	reminder24h := scheduling.NewReminderSweeper(store, sender, clock, scheduling.Reminder24h)
	reminder2h := scheduling.NewReminderSweeper(store, sender, clock, scheduling.Reminder2h)
	retry := scheduling.NewRetrySweeper(store, sender, clock)

	c := cron.New()
	jobs := []struct {
		spec string
		name string
		run  func(context.Context) error
	}{
		{noShowSpec, "no-show sweep", noShow.Run},
		{reminder24hSpec, "24h reminder sweep", reminder24h.Run},
		{reminder2hSpec, "2h reminder sweep", reminder2h.Run},
		{retrySpec, "retry sweep", retry.Run},
	}
	for _, job := range jobs {
		job := job
		_, err := c.AddFunc(job.spec, func() {
			if err := job.run(context.Background()); err != nil {
				log.Printf("%s failed: %v", job.name, err)
			}
		})
		if err != nil {
			log.Fatalf("Failed to add cron job %s: %v", job.name, err)
		}
	}
	c.Start()
	log.Println("Cron job scheduler started")
	return c
}
