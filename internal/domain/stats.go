package domain

// LevelStats holds the per-day distribution of one priority level.
type LevelStats struct {
	Label      string  `json:"label"`
	Total      int     `json:"total"`
	Max        int     `json:"max"`
	Mean       float64 `json:"mean"`
	Median     float64 `json:"median"`
	ActiveDays int     `json:"active_days"`
}

// GridSummary aggregates a grid for reporting.
type GridSummary struct {
	Total      int          `json:"total"`
	Skipped    int          `json:"skipped"`
	ActiveDays int          `json:"active_days"`
	BusiestDay int          `json:"busiest_day"` // 1-based day of month, 0 when the grid is empty
	Levels     []LevelStats `json:"levels"`
}
