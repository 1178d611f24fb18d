package domain

import "sort"

// HistoryEntry is one finalized calendar day: its total points and the
// completion map it was closed with. At most one entry exists per date;
// writers enforce the invariant, the store does not.
type HistoryEntry struct {
	Date        string        `json:"date"` // day key, see DayFormat
	Points      int           `json:"points"`
	Completions CompletionMap `json:"completions"`
}

// CurrentProgress is the single live "today" record. It is owned by the
// tracker and only becomes a HistoryEntry at rollover.
type CurrentProgress struct {
	Date        string        `json:"date"`
	Points      int           `json:"points"`
	Completions CompletionMap `json:"completions"`
}

// NewCurrentProgress seeds a fresh day: zero points, all goals unchecked.
func NewCurrentProgress(day string, goals []Goal) CurrentProgress {
	m := make(CompletionMap, len(goals))
	for _, g := range goals {
		m[g.ID] = false
	}
	return CurrentProgress{Date: day, Points: 0, Completions: m}
}

// Entry converts the live record into its finalized history form.
func (p CurrentProgress) Entry() HistoryEntry {
	return HistoryEntry{Date: p.Date, Points: p.Points, Completions: p.Completions.Clone()}
}

// SortHistory orders entries by date ascending. Storage order is insertion
// order, so every consumer sorts before use.
func SortHistory(entries []HistoryEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})
}

// FindEntry returns the entry for the given day key, or nil.
func FindEntry(entries []HistoryEntry, day string) *HistoryEntry {
	for i := range entries {
		if entries[i].Date == day {
			return &entries[i]
		}
	}
	return nil
}

// TotalPoints sums the finalized daily totals.
func TotalPoints(entries []HistoryEntry) int {
	total := 0
	for _, e := range entries {
		total += e.Points
	}
	return total
}

// EarliestDate returns the oldest day key in the history, or "" when empty.
func EarliestDate(entries []HistoryEntry) string {
	earliest := ""
	for _, e := range entries {
		if earliest == "" || e.Date < earliest {
			earliest = e.Date
		}
	}
	return earliest
}
