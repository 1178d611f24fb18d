package cli

import (
	"fmt"
	"strings"

	"github.com/lifegame-app/lifegame/internal/app/tracker"
	"github.com/lifegame-app/lifegame/internal/daemon"
	"github.com/lifegame-app/lifegame/internal/domain"
	"github.com/lifegame-app/lifegame/internal/infra/sqlite"
)

// openTracker opens the local store and loads the tracker. Commands
// that only read or mutate local state use this instead of a full
// daemon.
func openTracker() (*tracker.Tracker, *sqlite.DB, error) {
	db, err := sqlite.Open(daemon.Home())
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	t := tracker.New(db)
	t.Load()
	return t, db, nil
}

// resolveGoal matches a goal by ID, by exact title, or by unique title
// prefix, so `lifegame check exer` works.
func resolveGoal(goals []domain.Goal, ref string) (domain.Goal, error) {
	for _, g := range goals {
		if g.ID == ref || strings.EqualFold(g.Title, ref) {
			return g, nil
		}
	}

	var matches []domain.Goal
	for _, g := range goals {
		if strings.HasPrefix(strings.ToLower(g.Title), strings.ToLower(ref)) {
			matches = append(matches, g)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return domain.Goal{}, fmt.Errorf("no goal matches %q", ref)
	default:
		titles := make([]string, len(matches))
		for i, g := range matches {
			titles[i] = g.Title
		}
		return domain.Goal{}, fmt.Errorf("%q is ambiguous: %s", ref, strings.Join(titles, ", "))
	}
}

// mark renders a completion checkbox.
func mark(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
