// Package watch runs periodic overdue replanning across every plan.
package watch

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/carlosvictorodrigues/Editaliza-sub011/internal/schedule"
	"github.com/carlosvictorodrigues/Editaliza-sub011/internal/store"
)

// DefaultInterval is how often the watcher sweeps plans for overdue
// sessions when no interval is configured.
const DefaultInterval = time.Hour

// Watcher sweeps all plans on an interval and replans whichever have
// overdue sessions. Per-plan serialization is the engine's job; the
// watcher just drives it.
type Watcher struct {
	svc       *schedule.Service
	repo      store.Repo
	scheduler *gocron.Scheduler
	interval  time.Duration
}

// New creates a Watcher sweeping at the given interval.
func New(svc *schedule.Service, repo store.Repo, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{
		svc:       svc,
		repo:      repo,
		scheduler: gocron.NewScheduler(time.UTC),
		interval:  interval,
	}
}

// Start begins the periodic sweep in the background.
func (w *Watcher) Start() error {
	if _, err := w.scheduler.Every(w.interval).Do(w.sweep); err != nil {
		return err
	}
	w.scheduler.StartAsync()
	return nil
}

// Stop halts the periodic sweep. A sweep already in flight finishes.
func (w *Watcher) Stop() {
	w.scheduler.Stop()
}

func (w *Watcher) sweep() {
	if err := w.RunOnce(context.Background()); err != nil {
		log.Printf("watch: sweep failed: %v", err)
	}
}

// RunOnce replans every plan a single time and logs the outcome per
// plan. Plans with invalid configuration (a passed exam date, typically)
// are skipped, not treated as failures.
func (w *Watcher) RunOnce(ctx context.Context) error {
	plans, err := w.repo.Plans(ctx)
	if err != nil {
		return err
	}

	for _, p := range plans {
		result, err := w.svc.Replan(ctx, p.ID)
		if err != nil {
			switch {
			case errors.Is(err, schedule.ErrInvalidConfiguration):
				log.Printf("watch: plan %d skipped: %v", p.ID, err)
			case errors.Is(err, schedule.ErrInfeasibleSchedule):
				log.Printf("watch: plan %d infeasible: %v", p.ID, err)
			default:
				log.Printf("watch: plan %d replan failed: %v", p.ID, err)
			}
			continue
		}
		if !result.NoOp() {
			log.Printf("watch: plan %d rescheduled %d sessions", p.ID, result.RescheduledCount)
		}
	}
	return nil
}
