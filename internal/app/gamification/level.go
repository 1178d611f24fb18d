// Package gamification implements the pure progress-derivation engine:
// level/XP computation with daily decay, gap-sensitive streak counting,
// and multi-window statistics. Nothing here touches storage or the clock;
// every function is deterministic given its arguments.
package gamification

import (
	"math"
	"time"

	"github.com/lifegame-app/lifegame/internal/domain"
)

// DailyDecay is the XP lost per day elapsed since the start date. It models
// disengagement: standing still slowly costs levels.
const DailyDecay = 10

// The cost to advance from level L to L+1 starts at 1000 and grows by 500
// per transition: 1000, 1500, 2000, ...
const (
	baseLevelCost = 1000
	levelCostStep = 500
)

// levelCost returns the XP cost of the transition out of level l.
func levelCost(l int) int {
	return baseLevelCost + levelCostStep*(l-1)
}

// CalculateLevel derives the level view from lifetime points. start is the
// date tracking began (zero time means no decay has accrued); now supplies
// the clock so the computation stays pure.
func CalculateLevel(totalPoints int, start, now time.Time) domain.LevelData {
	days := 0
	if !start.IsZero() {
		diff := now.Sub(start)
		if diff < 0 {
			diff = -diff
		}
		days = int(math.Ceil(diff.Hours() / 24))
	}

	decay := days * DailyDecay
	netXP := totalPoints - decay
	if netXP < 0 {
		netXP = 0
	}

	// Walk the cumulative curve: floor is the XP at the bottom of the
	// current level, next is the XP at the bottom of the one above.
	level := 1
	floor := 0
	next := levelCost(1)
	for netXP >= next {
		level++
		floor = next
		next += levelCost(level)
	}

	return domain.LevelData{
		Level:          level,
		Progress:       float64(netXP-floor) / float64(next-floor),
		NextLevelXP:    next,
		CurrentLevelXP: floor,
		NetXP:          netXP,
		Decay:          decay,
	}
}
