// Package metrics provides Prometheus metrics for lifegame: counters and
// gauges for rollovers, goal toggles, sync traffic, and the derived
// progress views.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Rollover ───────────────────────────────────────────────────────────────

// Rollovers counts finalized calendar days.
var Rollovers = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "lifegame",
	Name:      "rollovers_total",
	Help:      "Total days finalized into history.",
})

// ─── Goals ──────────────────────────────────────────────────────────────────

// GoalToggles counts goal check/uncheck operations.
var GoalToggles = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "lifegame",
	Name:      "goal_toggles_total",
	Help:      "Total goal completion toggles.",
})

// TodayPoints tracks the live point total for the current day.
var TodayPoints = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "lifegame",
	Name:      "today_points",
	Help:      "Live point total for the in-progress day.",
})

// ─── Derived progress ───────────────────────────────────────────────────────

// StreakDays tracks the current consecutive-day streak.
var StreakDays = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "lifegame",
	Name:      "streak_days",
	Help:      "Current consecutive days meeting the baseline.",
})

// Level tracks the current derived level.
var Level = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "lifegame",
	Name:      "level",
	Help:      "Current derived level.",
})

// ─── Sync ───────────────────────────────────────────────────────────────────

// SyncRequests counts sync operations by kind and outcome.
var SyncRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "lifegame",
	Name:      "sync_requests_total",
	Help:      "Total sync client operations.",
}, []string{"op", "result"})
