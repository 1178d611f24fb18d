package gamification

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/lifegame-app/lifegame/internal/domain"
)

// ComputeStats aggregates history plus the live day into the week/year
// totals, the 7-day graph series, and the loss ranking. Today's live
// points always win over a stale history entry for the same date in the
// graph; goals deleted after being recorded are silently skipped in the
// loss analysis.
func ComputeStats(history []domain.HistoryEntry, goals []domain.Goal, todayPoints int, todayCompletions domain.CompletionMap, now time.Time) domain.Stats {
	todayKey := domain.Day(now)
	weekStart := domain.Day(now.AddDate(0, 0, -6))
	yearStart := fmt.Sprintf("%04d-01-01", now.Year())

	// Pre-seed the last 7 calendar days at 0 so the graph always has a
	// bar per day, recorded or not.
	graphKeys := make([]string, 0, 7)
	daily := make(map[string]int, 7)
	for i := 6; i >= 0; i-- {
		k := domain.Day(now.AddDate(0, 0, -i))
		graphKeys = append(graphKeys, k)
		daily[k] = 0
	}

	weekPoints, yearPoints := 0, 0
	lossByGoal := make(map[string]*domain.Loss)

	accumulateLosses := func(completions domain.CompletionMap) {
		for id, done := range completions {
			if !done {
				continue
			}
			for _, g := range goals {
				if g.ID != id || g.Points >= 0 {
					continue
				}
				l := lossByGoal[id]
				if l == nil {
					l = &domain.Loss{Title: g.Title}
					lossByGoal[id] = l
				}
				l.TotalLoss += g.Points
				l.Count++
			}
		}
	}

	for _, e := range history {
		if e.Date >= weekStart {
			weekPoints += e.Points
		}
		if e.Date >= yearStart {
			yearPoints += e.Points
		}
		if _, ok := daily[e.Date]; ok {
			daily[e.Date] = e.Points
		}
		accumulateLosses(e.Completions)
	}

	// The live day.
	weekPoints += todayPoints
	yearPoints += todayPoints
	daily[todayKey] = todayPoints
	accumulateLosses(todayCompletions)

	losses := make([]domain.Loss, 0, len(lossByGoal))
	for _, l := range lossByGoal {
		losses = append(losses, *l)
	}
	sort.Slice(losses, func(i, j int) bool {
		if losses[i].TotalLoss != losses[j].TotalLoss {
			return losses[i].TotalLoss < losses[j].TotalLoss // worst first
		}
		return losses[i].Title < losses[j].Title
	})

	graph := make([]domain.GraphPoint, 0, len(graphKeys))
	for _, k := range graphKeys {
		graph = append(graph, domain.GraphPoint{Date: k[5:], Points: daily[k]})
	}

	return domain.Stats{
		WeekPoints: weekPoints,
		YearPoints: yearPoints,
		Losses:     losses,
		GraphData:  graph,
	}
}

// Summarize builds the compact home-view snapshot from history and the
// live day. Percentages divide by the configured baseline (today) and
// baseline*7 (week), clamped to [0,100].
func Summarize(history []domain.HistoryEntry, baseline, todayPoints, weekPoints int) domain.Summary {
	days := len(history)
	total := domain.TotalPoints(history)

	avg := 0
	if days > 0 {
		avg = int(math.Round(float64(total) / float64(days)))
	}

	best := 0
	for _, e := range history {
		if e.Points > best {
			best = e.Points
		}
	}

	effective := baseline
	if avg > effective {
		effective = avg
	}

	s := domain.Summary{
		DaysTracked:       days,
		TotalPoints:       total,
		AveragePoints:     avg,
		BestDay:           best,
		EffectiveBaseline: effective,
	}
	if baseline > 0 {
		s.TodayPercent = clampPercent(todayPoints * 100 / baseline)
		s.WeekPercent = clampPercent(weekPoints * 100 / (baseline * 7))
	}
	return s
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
