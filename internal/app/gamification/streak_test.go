package gamification_test

import (
	"testing"
	"time"

	"github.com/lifegame-app/lifegame/internal/app/gamification"
	"github.com/lifegame-app/lifegame/internal/domain"
)

func dayKey(now time.Time, daysAgo int) string {
	return domain.Day(now.AddDate(0, 0, -daysAgo))
}

func entry(date string, points int) domain.HistoryEntry {
	return domain.HistoryEntry{Date: date, Points: points}
}

func TestCalculateStreak_TodayAndYesterday(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	history := []domain.HistoryEntry{
		entry(dayKey(now, 1), 55),
		entry(dayKey(now, 2), 40), // below baseline, ends the run
	}

	got := gamification.CalculateStreak(history, 50, 60, now)
	if got != 2 {
		t.Errorf("expected streak 2, got %d", got)
	}
}

func TestCalculateStreak_GapBreaksImmediately(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	// Yesterday missing entirely; a strong day before it must not count.
	history := []domain.HistoryEntry{
		entry(dayKey(now, 2), 100),
	}

	got := gamification.CalculateStreak(history, 50, 60, now)
	if got != 1 {
		t.Errorf("expected streak 1 (gap at yesterday), got %d", got)
	}
}

func TestCalculateStreak_TodayBelowBaselineStillScansBack(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	history := []domain.HistoryEntry{
		entry(dayKey(now, 1), 80),
		entry(dayKey(now, 2), 80),
	}

	// Today hasn't qualified (yet) but yesterday's run still counts.
	got := gamification.CalculateStreak(history, 50, 10, now)
	if got != 2 {
		t.Errorf("expected streak 2, got %d", got)
	}
}

func TestCalculateStreak_ZeroBaseline(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	history := []domain.HistoryEntry{entry(dayKey(now, 1), 100)}

	if got := gamification.CalculateStreak(history, 0, 100, now); got != 0 {
		t.Errorf("expected 0 with no baseline, got %d", got)
	}
}

func TestCalculateStreak_EmptyHistory(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)

	if got := gamification.CalculateStreak(nil, 50, 60, now); got != 1 {
		t.Errorf("expected 1 (today only), got %d", got)
	}
	if got := gamification.CalculateStreak(nil, 50, 10, now); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestCalculateStreak_SkipsStaleTodayEntry(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	// A leftover history entry for today must not derail the backward scan.
	history := []domain.HistoryEntry{
		entry(dayKey(now, 0), 5),
		entry(dayKey(now, 1), 70),
		entry(dayKey(now, 2), 70),
	}

	got := gamification.CalculateStreak(history, 50, 90, now)
	if got != 3 {
		t.Errorf("expected streak 3, got %d", got)
	}
}

func TestCalculateStreak_LongRun(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	var history []domain.HistoryEntry
	for i := 1; i <= 30; i++ {
		history = append(history, entry(dayKey(now, i), 60))
	}

	got := gamification.CalculateStreak(history, 50, 60, now)
	if got != 31 {
		t.Errorf("expected streak 31, got %d", got)
	}
}

func TestCalculateStreak_UnsortedInput(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	// Storage order is insertion order; the calculator must sort itself.
	history := []domain.HistoryEntry{
		entry(dayKey(now, 3), 60),
		entry(dayKey(now, 1), 60),
		entry(dayKey(now, 2), 60),
	}

	got := gamification.CalculateStreak(history, 50, 60, now)
	if got != 4 {
		t.Errorf("expected streak 4, got %d", got)
	}
}
