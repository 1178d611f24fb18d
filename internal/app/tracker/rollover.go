package tracker

import (
	"context"
	"log"
	"time"

	"github.com/lifegame-app/lifegame/internal/domain"
	"github.com/lifegame-app/lifegame/internal/infra/metrics"
)

// CheckRollover finalizes the open day if the calendar has moved on. Safe
// to call from the startup path and the periodic ticker concurrently: the
// store is re-read and the already-saved check re-run inside the lock, so
// a day can never be appended twice.
func (t *Tracker) CheckRollover() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rolloverLocked()
}

func (t *Tracker) rolloverLocked() {
	today := domain.Day(t.now())

	// Always re-read; a cached record could race another rollover check.
	cp, err := t.db.CurrentProgress()
	if err != nil {
		log.Printf("[tracker] rollover: load current progress: %v", err)
		return
	}
	if cp == nil {
		// Nothing persisted yet (first run, no toggles). Still reseed
		// the working record if the calendar moved under us.
		if t.progress.Date != "" && t.progress.Date != today {
			t.progress = domain.NewCurrentProgress(today, t.goals)
			t.publishGauges()
		}
		return
	}
	if cp.Date == today {
		return
	}

	history, err := t.db.History()
	if err != nil {
		// Appending blind could duplicate the outgoing day. Skip this
		// round; the ticker retries shortly.
		log.Printf("[tracker] rollover: load history: %v", err)
		return
	}

	if domain.FindEntry(history, cp.Date) == nil {
		history = append(history, cp.Entry())
		domain.SortHistory(history)
		if err := t.db.SaveHistory(history); err != nil {
			log.Printf("[tracker] rollover: save history: %v", err)
			return
		}
	}
	t.history = history

	fresh := domain.NewCurrentProgress(today, t.goals)
	if err := t.db.SaveCurrentProgress(fresh); err != nil {
		log.Printf("[tracker] rollover: save current progress: %v", err)
	}
	t.progress = fresh

	metrics.Rollovers.Inc()
	t.publishGauges()
	t.fireChanged()
	log.Printf("[tracker] rolled %s into history, started %s", cp.Date, today)
}

// RunRolloverLoop re-runs the rollover check on a fixed interval until the
// context is cancelled. Call in a goroutine.
func (t *Tracker) RunRolloverLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.CheckRollover()
		}
	}
}
