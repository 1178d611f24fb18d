package domain

// LevelData is the derived level/XP view. It is recomputed from lifetime
// totals on every read and never persisted.
type LevelData struct {
	Level          int     `json:"level"`
	Progress       float64 `json:"progress"` // fraction of the way to the next level
	NextLevelXP    int     `json:"next_level_xp"`
	CurrentLevelXP int     `json:"current_level_xp"`
	NetXP          int     `json:"net_xp"`
	Decay          int     `json:"decay"`
}

// Loss is one entry of the "what drags me down" ranking: a negative-point
// goal with how much it cost in total and how often it was recorded.
type Loss struct {
	Title     string `json:"title"`
	TotalLoss int    `json:"total_loss"` // sum of negative points, more negative = worse
	Count     int    `json:"count"`
}

// GraphPoint is one bar of the 7-day graph series.
type GraphPoint struct {
	Date   string `json:"date"` // MM-DD label
	Points int    `json:"points"`
}

// Stats is the full aggregate view over history plus the live day.
type Stats struct {
	WeekPoints int          `json:"week_points"`
	YearPoints int          `json:"year_points"`
	Losses     []Loss       `json:"losses"`
	GraphData  []GraphPoint `json:"graph_data"` // 7 entries, chronological
}

// Summary is the compact home-view snapshot.
type Summary struct {
	DaysTracked       int `json:"days_tracked"`
	TotalPoints       int `json:"total_points"`
	AveragePoints     int `json:"average_points"`
	BestDay           int `json:"best_day"`
	EffectiveBaseline int `json:"effective_baseline"` // max(baseline, average)
	TodayPercent      int `json:"today_percent"`      // clamped to [0,100]
	WeekPercent       int `json:"week_percent"`       // clamped to [0,100]
}
