// Package tracker owns the mutable application state: the goal set, the
// finalized history, the baseline, and the single live "today" record.
// Everything else reads derived views; the tracker is the only writer.
//
// Persistence failures are logged here at the boundary and replaced with
// safe defaults so the app stays usable offline.
package tracker

import (
	"log"
	"sync"
	"time"

	"github.com/lifegame-app/lifegame/internal/app/gamification"
	"github.com/lifegame-app/lifegame/internal/domain"
	"github.com/lifegame-app/lifegame/internal/infra/metrics"
	"github.com/lifegame-app/lifegame/internal/infra/sqlite"
)

// Tracker coordinates the day lifecycle and all state mutations. All
// methods are safe for concurrent use; the rollover read-modify-write is
// one critical section.
type Tracker struct {
	mu sync.Mutex
	db *sqlite.DB

	now func() time.Time

	goals    []domain.Goal
	history  []domain.HistoryEntry
	baseline int
	name     string
	progress domain.CurrentProgress

	// True when the store had goals at load time. A fresh install pulls
	// from the sync server instead of pushing an empty state over it.
	hadLocalGoals bool

	// onChange fires after every local mutation; the daemon arms the
	// debounced sync with it.
	onChange func()
}

// New creates a tracker bound to the store.
func New(db *sqlite.DB) *Tracker {
	return &Tracker{db: db, now: time.Now}
}

// NewWithClock creates a tracker with an injected clock, for tests.
func NewWithClock(db *sqlite.DB, clock func() time.Time) *Tracker {
	return &Tracker{db: db, now: clock}
}

// OnChange registers the hook fired after local mutations.
func (t *Tracker) OnChange(fn func()) {
	t.mu.Lock()
	t.onChange = fn
	t.mu.Unlock()
}

// Load reads all persisted state, seeds today's working record, and runs
// the startup rollover check. It never fails: unreadable values are
// logged and replaced with defaults.
func (t *Tracker) Load() {
	t.mu.Lock()
	defer t.mu.Unlock()

	goals, err := t.db.Goals()
	if err != nil {
		log.Printf("[tracker] load goals: %v (using defaults)", err)
		goals = nil
	}
	t.hadLocalGoals = goals != nil
	if goals == nil {
		goals = domain.DefaultGoals()
	}
	t.goals = goals

	if t.history, err = t.db.History(); err != nil {
		log.Printf("[tracker] load history: %v (starting empty)", err)
		t.history = []domain.HistoryEntry{}
	}
	if t.baseline, err = t.db.Baseline(); err != nil {
		log.Printf("[tracker] load baseline: %v (using default)", err)
		t.baseline = domain.DefaultBaseline
	}
	if t.name, err = t.db.Name(); err != nil {
		log.Printf("[tracker] load name: %v", err)
		t.name = ""
	}

	today := domain.Day(t.now())
	cp, err := t.db.CurrentProgress()
	if err != nil {
		log.Printf("[tracker] load current progress: %v", err)
		cp = nil
	}

	switch {
	case cp != nil && cp.Date != today:
		// A previous day is still open: finalize it and start fresh.
		t.rolloverLocked()
	case cp != nil:
		t.progress = *cp
		t.progress.Points = domain.SumPoints(t.goals, t.progress.Completions)
	default:
		// First run. A history entry for today means the day was
		// already partially recorded under the old history-only
		// model; adopt its completions.
		if e := domain.FindEntry(t.history, today); e != nil && e.Completions != nil {
			t.progress = domain.CurrentProgress{
				Date:        today,
				Points:      domain.SumPoints(t.goals, e.Completions),
				Completions: e.Completions.Clone(),
			}
		} else {
			t.progress = domain.NewCurrentProgress(today, t.goals)
		}
	}

	t.publishGauges()
}

// ─── Accessors ──────────────────────────────────────────────────────────────

// Goals returns a snapshot of the current goal set.
func (t *Tracker) Goals() []domain.Goal {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]domain.Goal(nil), t.goals...)
}

// History returns a snapshot of the finalized entries, sorted by date.
func (t *Tracker) History() []domain.HistoryEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	h := append([]domain.HistoryEntry(nil), t.history...)
	domain.SortHistory(h)
	return h
}

// Baseline returns the daily point target.
func (t *Tracker) Baseline() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.baseline
}

// Name returns the display name, "" when unset.
func (t *Tracker) Name() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.name
}

// Progress returns a snapshot of the live day.
func (t *Tracker) Progress() domain.CurrentProgress {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := t.progress
	p.Completions = p.Completions.Clone()
	return p
}

// TodayPoints returns the live point total.
func (t *Tracker) TodayPoints() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progress.Points
}

// ─── Mutations ──────────────────────────────────────────────────────────────

// Toggle flips a goal's completion for today, recomputes the live total,
// and persists the current progress. This is the sole intra-day write
// path; history is only written at rollover.
func (t *Tracker) Toggle(goalID string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	found := false
	for _, g := range t.goals {
		if g.ID == goalID {
			found = true
			break
		}
	}
	if !found {
		return 0, domain.ErrGoalNotFound
	}

	if t.progress.Completions == nil {
		t.progress.Completions = make(domain.CompletionMap)
	}
	t.progress.Completions[goalID] = !t.progress.Completions[goalID]
	t.progress.Points = domain.SumPoints(t.goals, t.progress.Completions)

	if err := t.db.SaveCurrentProgress(t.progress); err != nil {
		log.Printf("[tracker] save current progress: %v", err)
	}

	metrics.GoalToggles.Inc()
	t.publishGauges()
	t.fireChanged()
	return t.progress.Points, nil
}

// AddGoal creates a goal with a generated id and seeds today's completion.
func (t *Tracker) AddGoal(title string, points int) domain.Goal {
	t.mu.Lock()
	defer t.mu.Unlock()

	g := domain.Goal{ID: domain.NewGoalID(), Title: title, Points: points}
	t.goals = append(t.goals, g)
	if t.progress.Completions == nil {
		t.progress.Completions = make(domain.CompletionMap)
	}
	t.progress.Completions[g.ID] = false

	t.saveGoalsLocked()
	t.fireChanged()
	return g
}

// UpdateGoal edits a goal's title and point value.
func (t *Tracker) UpdateGoal(id, title string, points int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.goals {
		if t.goals[i].ID != id {
			continue
		}
		t.goals[i].Title = title
		t.goals[i].Points = points
		t.progress.Points = domain.SumPoints(t.goals, t.progress.Completions)
		t.saveGoalsLocked()
		t.saveProgressLocked()
		t.publishGauges()
		t.fireChanged()
		return nil
	}
	return domain.ErrGoalNotFound
}

// DeleteGoal removes a goal and today's completion key for it. Historical
// completions keep the dead key; consumers skip ids they no longer know.
func (t *Tracker) DeleteGoal(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.goals {
		if t.goals[i].ID != id {
			continue
		}
		t.goals = append(t.goals[:i], t.goals[i+1:]...)
		delete(t.progress.Completions, id)
		t.progress.Points = domain.SumPoints(t.goals, t.progress.Completions)
		t.saveGoalsLocked()
		t.saveProgressLocked()
		t.publishGauges()
		t.fireChanged()
		return nil
	}
	return domain.ErrGoalNotFound
}

// SetBaseline updates the daily point target.
func (t *Tracker) SetBaseline(v int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.baseline = v
	if err := t.db.SaveBaseline(v); err != nil {
		log.Printf("[tracker] save baseline: %v", err)
	}
	t.publishGauges()
	t.fireChanged()
}

// SetName updates the display name.
func (t *Tracker) SetName(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.name = name
	if err := t.db.SaveName(name); err != nil {
		log.Printf("[tracker] save name: %v", err)
	}
	t.fireChanged()
}

// ─── Derived views ──────────────────────────────────────────────────────────

// Level derives the level view. Lifetime points are the finalized totals
// plus the live day; decay runs from the earliest recorded date.
func (t *Tracker) Level() domain.LevelData {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.levelLocked()
}

func (t *Tracker) levelLocked() domain.LevelData {
	total := domain.TotalPoints(t.history) + t.progress.Points

	var start time.Time
	if earliest := domain.EarliestDate(t.history); earliest != "" {
		if d, err := domain.ParseDay(earliest); err == nil {
			start = d
		}
	}
	return gamification.CalculateLevel(total, start, t.now())
}

// Streak derives the consecutive-day count.
func (t *Tracker) Streak() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.streakLocked()
}

func (t *Tracker) streakLocked() int {
	return gamification.CalculateStreak(t.history, t.baseline, t.progress.Points, t.now())
}

// Stats derives the aggregate statistics view.
func (t *Tracker) Stats() domain.Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return gamification.ComputeStats(t.history, t.goals, t.progress.Points, t.progress.Completions, t.now())
}

// Summary derives the compact home-view snapshot.
func (t *Tracker) Summary() domain.Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	stats := gamification.ComputeStats(t.history, t.goals, t.progress.Points, t.progress.Completions, t.now())
	return gamification.Summarize(t.history, t.baseline, t.progress.Points, stats.WeekPoints)
}

// ─── Sync support ───────────────────────────────────────────────────────────

// Snapshot returns the pushable local state. The live day is deliberately
// absent: in-progress points only reach the server after rollover.
func (t *Tracker) Snapshot() domain.User {
	t.mu.Lock()
	defer t.mu.Unlock()

	h := append([]domain.HistoryEntry(nil), t.history...)
	domain.SortHistory(h)
	return domain.User{
		Name:     t.name,
		Baseline: t.baseline,
		Goals:    append([]domain.Goal(nil), t.goals...),
		History:  h,
	}
}

// HadLocalGoals reports whether the store held goals at load time.
func (t *Tracker) HadLocalGoals() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.hadLocalGoals
}

// ApplyRemote overwrites local state from a pulled server record. Zero
// fields are skipped, mirroring the server's falsy-field merge.
func (t *Tracker) ApplyRemote(u domain.User) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if u.History != nil {
		t.history = u.History
		if err := t.db.SaveHistory(u.History); err != nil {
			log.Printf("[tracker] save pulled history: %v", err)
		}
	}
	if u.Goals != nil {
		t.goals = u.Goals
		t.hadLocalGoals = true
		t.saveGoalsLocked()
	}
	if u.Baseline != 0 {
		t.baseline = u.Baseline
		if err := t.db.SaveBaseline(u.Baseline); err != nil {
			log.Printf("[tracker] save pulled baseline: %v", err)
		}
	}
	if u.Name != "" {
		t.name = u.Name
		if err := t.db.SaveName(u.Name); err != nil {
			log.Printf("[tracker] save pulled name: %v", err)
		}
	}

	t.progress.Points = domain.SumPoints(t.goals, t.progress.Completions)
	t.publishGauges()
}

// ─── Internal helpers ───────────────────────────────────────────────────────

func (t *Tracker) saveGoalsLocked() {
	t.hadLocalGoals = true
	if err := t.db.SaveGoals(t.goals); err != nil {
		log.Printf("[tracker] save goals: %v", err)
	}
}

func (t *Tracker) saveProgressLocked() {
	if err := t.db.SaveCurrentProgress(t.progress); err != nil {
		log.Printf("[tracker] save current progress: %v", err)
	}
}

func (t *Tracker) fireChanged() {
	if t.onChange != nil {
		go t.onChange()
	}
}

func (t *Tracker) publishGauges() {
	metrics.TodayPoints.Set(float64(t.progress.Points))
	metrics.StreakDays.Set(float64(t.streakLocked()))
	metrics.Level.Set(float64(t.levelLocked().Level))
}
