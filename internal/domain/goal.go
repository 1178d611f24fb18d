// Package domain holds the core lifegame types: goals, daily history,
// in-progress day state, and the derived level/statistics views.
package domain

import "github.com/google/uuid"

// Goal is a daily habit worth a fixed number of points. Positive points
// reward a good habit, negative points penalize a bad one.
type Goal struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Points int    `json:"points"`
}

// NewGoalID generates a unique id for a user-created goal.
// Seed goals keep their fixed literal ids.
func NewGoalID() string {
	return uuid.NewString()
}

// DefaultGoals is the builtin goal set used when the store has none.
func DefaultGoals() []Goal {
	return []Goal{
		{ID: "smoke", Title: "Didn't smoke today", Points: 100},
		{ID: "exercise", Title: "Did exercise", Points: 30},
		{ID: "wake", Title: "Woke up early", Points: 70},
	}
}

// CompletionMap maps goal id → checked-off, scoped to a single calendar day.
// Keys need not cover the current goal set: goals can be deleted after a
// day was recorded, and their completions survive in history.
type CompletionMap map[string]bool

// Clone returns a copy so callers can hand out snapshots safely.
func (m CompletionMap) Clone() CompletionMap {
	cp := make(CompletionMap, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

// SumPoints totals the point values of every goal marked complete.
// Completions for goals not in the current set contribute nothing.
func SumPoints(goals []Goal, completions CompletionMap) int {
	total := 0
	for _, g := range goals {
		if completions[g.ID] {
			total += g.Points
		}
	}
	return total
}

// DefaultBaseline is the daily point target until the user sets one.
const DefaultBaseline = 50
