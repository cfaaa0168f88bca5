package workers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"bloodbank_backend/internal/logger"
	"bloodbank_backend/internal/repositories"
)

const eventSweepInterval = time.Hour

// EventWorker closes out donation events whose date has passed.
type EventWorker struct {
	db        *gorm.DB
	eventRepo repositories.EventRepository
	interval  time.Duration
	clock     func() time.Time
}

func NewEventWorker(db *gorm.DB, eventRepo repositories.EventRepository) *EventWorker {
	return &EventWorker{
		db:        db,
		eventRepo: eventRepo,
		interval:  eventSweepInterval,
		clock:     time.Now,
	}
}

// Start sweeps once immediately, then on every tick until ctx is done.
func (w *EventWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *EventWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Event worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *EventWorker) sweep(ctx context.Context) int64 {
	completed, err := w.eventRepo.CompletePast(w.db.WithContext(ctx), w.clock())
	if err != nil {
		logger.CtxWithError(ctx, "Failed to complete past donation events", err)
		return 0
	}
	if completed > 0 {
		logger.CtxInfo(ctx, "Completed past donation events", "count", completed)
	}
	return completed
}
