package tracker_test

import (
	"errors"
	"testing"
	"time"

	"github.com/lifegame-app/lifegame/internal/app/tracker"
	"github.com/lifegame-app/lifegame/internal/domain"
	"github.com/lifegame-app/lifegame/internal/infra/sqlite"
)

// testDB creates a temporary SQLite database for testing.
func testDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func clockAt(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

var tuesday = time.Date(2024, 3, 12, 9, 30, 0, 0, time.UTC)

func TestLoad_FreshInstall(t *testing.T) {
	db := testDB(t)
	tr := tracker.NewWithClock(db, clockAt(tuesday))
	tr.Load()

	goals := tr.Goals()
	if len(goals) != 3 {
		t.Fatalf("expected 3 default goals, got %d", len(goals))
	}
	if tr.Baseline() != domain.DefaultBaseline {
		t.Errorf("expected default baseline, got %d", tr.Baseline())
	}
	if tr.HadLocalGoals() {
		t.Error("fresh install should report no local goals")
	}

	p := tr.Progress()
	if p.Date != "2024-03-12" || p.Points != 0 {
		t.Errorf("unexpected seeded progress: %+v", p)
	}
	for _, g := range goals {
		if p.Completions[g.ID] {
			t.Errorf("goal %s should start unchecked", g.ID)
		}
	}
}

func TestToggle_PersistsAndRecomputes(t *testing.T) {
	db := testDB(t)
	tr := tracker.NewWithClock(db, clockAt(tuesday))
	tr.Load()

	pts, err := tr.Toggle("smoke") // +100
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if pts != 100 {
		t.Errorf("expected 100 points, got %d", pts)
	}

	pts, _ = tr.Toggle("wake") // +70
	if pts != 170 {
		t.Errorf("expected 170 points, got %d", pts)
	}

	pts, _ = tr.Toggle("smoke") // untoggle
	if pts != 70 {
		t.Errorf("expected 70 after untoggle, got %d", pts)
	}

	// A second tracker over the same store sees the persisted day.
	tr2 := tracker.NewWithClock(db, clockAt(tuesday))
	tr2.Load()
	if tr2.TodayPoints() != 70 {
		t.Errorf("expected persisted 70, got %d", tr2.TodayPoints())
	}
	if !tr2.Progress().Completions["wake"] {
		t.Error("expected wake completion to survive reload")
	}
}

func TestToggle_UnknownGoal(t *testing.T) {
	db := testDB(t)
	tr := tracker.NewWithClock(db, clockAt(tuesday))
	tr.Load()

	if _, err := tr.Toggle("nope"); !errors.Is(err, domain.ErrGoalNotFound) {
		t.Errorf("expected ErrGoalNotFound, got %v", err)
	}
}

func TestRollover_FinalizesOutgoingDay(t *testing.T) {
	db := testDB(t)

	// Monday's day is still open in the store.
	monday := domain.CurrentProgress{
		Date:        "2024-03-11",
		Points:      130,
		Completions: domain.CompletionMap{"smoke": true, "exercise": true},
	}
	if err := db.SaveCurrentProgress(monday); err != nil {
		t.Fatalf("seed: %v", err)
	}

	tr := tracker.NewWithClock(db, clockAt(tuesday))
	tr.Load()

	history := tr.History()
	if len(history) != 1 {
		t.Fatalf("expected 1 finalized entry, got %d", len(history))
	}
	if history[0].Date != "2024-03-11" || history[0].Points != 130 {
		t.Errorf("unexpected finalized entry: %+v", history[0])
	}

	p := tr.Progress()
	if p.Date != "2024-03-12" || p.Points != 0 {
		t.Errorf("expected fresh day, got %+v", p)
	}

	// And it reached the store.
	stored, err := db.CurrentProgress()
	if err != nil || stored == nil || stored.Date != "2024-03-12" {
		t.Errorf("expected persisted fresh day, got %+v (%v)", stored, err)
	}
}

func TestRollover_Idempotent(t *testing.T) {
	db := testDB(t)
	if err := db.SaveCurrentProgress(domain.CurrentProgress{
		Date:        "2024-03-11",
		Points:      60,
		Completions: domain.CompletionMap{"wake": true},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	tr := tracker.NewWithClock(db, clockAt(tuesday))
	tr.Load()

	// The startup check already ran; fire the periodic check on top.
	tr.CheckRollover()
	tr.CheckRollover()

	count := 0
	for _, e := range tr.History() {
		if e.Date == "2024-03-11" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly 1 entry for the outgoing day, got %d", count)
	}
}

func TestRollover_AlreadySavedDayNotDuplicated(t *testing.T) {
	db := testDB(t)

	// The outgoing day is already in history (e.g. a pull put it there).
	if err := db.SaveHistory([]domain.HistoryEntry{
		{Date: "2024-03-11", Points: 999, Completions: domain.CompletionMap{}},
	}); err != nil {
		t.Fatalf("seed history: %v", err)
	}
	if err := db.SaveCurrentProgress(domain.CurrentProgress{
		Date: "2024-03-11", Points: 60, Completions: domain.CompletionMap{},
	}); err != nil {
		t.Fatalf("seed progress: %v", err)
	}

	tr := tracker.NewWithClock(db, clockAt(tuesday))
	tr.Load()

	history := tr.History()
	if len(history) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(history))
	}
	// The pre-existing entry wins; rollover must not overwrite it.
	if history[0].Points != 999 {
		t.Errorf("expected existing entry preserved, got %+v", history[0])
	}
}

func TestLoad_AdoptsTodayHistoryEntry(t *testing.T) {
	db := testDB(t)

	// No current progress, but today was already recorded under the old
	// history-only model.
	if err := db.SaveHistory([]domain.HistoryEntry{
		{Date: "2024-03-12", Points: 100, Completions: domain.CompletionMap{"smoke": true}},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	tr := tracker.NewWithClock(db, clockAt(tuesday))
	tr.Load()

	p := tr.Progress()
	if !p.Completions["smoke"] {
		t.Error("expected today's recorded completions to be adopted")
	}
	if p.Points != 100 {
		t.Errorf("expected 100 points from adopted completions, got %d", p.Points)
	}
}

func TestDeleteGoal_RemovesCompletion(t *testing.T) {
	db := testDB(t)
	tr := tracker.NewWithClock(db, clockAt(tuesday))
	tr.Load()

	tr.Toggle("smoke")
	tr.Toggle("wake")
	if err := tr.DeleteGoal("smoke"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if tr.TodayPoints() != 70 {
		t.Errorf("expected 70 after deleting the +100 goal, got %d", tr.TodayPoints())
	}
	if _, ok := tr.Progress().Completions["smoke"]; ok {
		t.Error("expected completion key removed with the goal")
	}
	if len(tr.Goals()) != 2 {
		t.Errorf("expected 2 goals, got %d", len(tr.Goals()))
	}
}

func TestAddAndUpdateGoal(t *testing.T) {
	db := testDB(t)
	tr := tracker.NewWithClock(db, clockAt(tuesday))
	tr.Load()

	g := tr.AddGoal("Read a chapter", 20)
	if g.ID == "" {
		t.Fatal("expected a generated id")
	}

	tr.Toggle(g.ID)
	if tr.TodayPoints() != 20 {
		t.Errorf("expected 20, got %d", tr.TodayPoints())
	}

	if err := tr.UpdateGoal(g.ID, "Read two chapters", 40); err != nil {
		t.Fatalf("update: %v", err)
	}
	// Point value changes retroactively adjust the live total.
	if tr.TodayPoints() != 40 {
		t.Errorf("expected 40 after edit, got %d", tr.TodayPoints())
	}

	if err := tr.UpdateGoal("missing", "x", 1); !errors.Is(err, domain.ErrGoalNotFound) {
		t.Errorf("expected ErrGoalNotFound, got %v", err)
	}
}

func TestApplyRemote_SkipsZeroFields(t *testing.T) {
	db := testDB(t)
	tr := tracker.NewWithClock(db, clockAt(tuesday))
	tr.Load()
	tr.SetBaseline(80)
	tr.SetName("Sam")

	// Zero-valued fields mean "absent" on the wire and must not clobber.
	tr.ApplyRemote(domain.User{
		History: []domain.HistoryEntry{{Date: "2024-03-10", Points: 55, Completions: domain.CompletionMap{}}},
	})

	if tr.Baseline() != 80 {
		t.Errorf("baseline clobbered: %d", tr.Baseline())
	}
	if tr.Name() != "Sam" {
		t.Errorf("name clobbered: %q", tr.Name())
	}
	if len(tr.History()) != 1 {
		t.Errorf("expected pulled history applied, got %d entries", len(tr.History()))
	}
}

func TestSnapshot_ExcludesLiveDay(t *testing.T) {
	db := testDB(t)
	tr := tracker.NewWithClock(db, clockAt(tuesday))
	tr.Load()
	tr.Toggle("smoke")

	snap := tr.Snapshot()
	if len(snap.History) != 0 {
		t.Errorf("live day must not be pushed, got %d history entries", len(snap.History))
	}
	if len(snap.Goals) != 3 {
		t.Errorf("expected 3 goals in snapshot, got %d", len(snap.Goals))
	}
}

func TestDerivedViews(t *testing.T) {
	db := testDB(t)
	if err := db.SaveHistory([]domain.HistoryEntry{
		{Date: "2024-03-10", Points: 60, Completions: domain.CompletionMap{}},
		{Date: "2024-03-11", Points: 70, Completions: domain.CompletionMap{}},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	tr := tracker.NewWithClock(db, clockAt(tuesday))
	tr.Load()
	tr.Toggle("smoke") // 100 points today

	if got := tr.Streak(); got != 3 {
		t.Errorf("expected streak 3, got %d", got)
	}

	ld := tr.Level()
	// 230 lifetime points, start 2024-03-10: ceil(2.4 days) = 3 → decay 30.
	if ld.Decay != 30 {
		t.Errorf("expected decay 30, got %d", ld.Decay)
	}
	if ld.NetXP != 200 {
		t.Errorf("expected netXP 200, got %d", ld.NetXP)
	}
	if ld.Level != 1 {
		t.Errorf("expected level 1, got %d", ld.Level)
	}

	stats := tr.Stats()
	if stats.WeekPoints != 230 {
		t.Errorf("expected week 230, got %d", stats.WeekPoints)
	}
	if len(stats.GraphData) != 7 {
		t.Errorf("expected 7 graph points, got %d", len(stats.GraphData))
	}

	sum := tr.Summary()
	if sum.DaysTracked != 2 || sum.BestDay != 70 {
		t.Errorf("unexpected summary: %+v", sum)
	}
}
