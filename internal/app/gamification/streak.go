package gamification

import (
	"sort"
	"time"

	"github.com/lifegame-app/lifegame/internal/domain"
)

// CalculateStreak counts consecutive qualifying days, today backward.
// Today counts if the live total meets the baseline; history is then
// scanned one calendar day at a time. Any day that is missing or below
// baseline ends the streak — the scan never skips over a gap.
func CalculateStreak(history []domain.HistoryEntry, baseline, todayPoints int, now time.Time) int {
	if baseline == 0 {
		return 0
	}

	streak := 0
	if todayPoints >= baseline {
		streak++
	}

	sorted := append([]domain.HistoryEntry(nil), history...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})

	expected := now.AddDate(0, 0, -1)
	for _, e := range sorted {
		key := domain.Day(expected)
		switch {
		case e.Date > key:
			// Entry newer than the day we want (a stale entry for
			// today, say) — skip it, keep looking.
			continue
		case e.Date < key:
			// No entry for the expected day: gap, streak ends here.
			return streak
		default:
			if e.Points < baseline {
				return streak
			}
			streak++
			expected = expected.AddDate(0, 0, -1)
		}
	}
	return streak
}
