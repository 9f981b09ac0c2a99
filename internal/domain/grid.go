package domain

import "time"

// SkipReason explains why an event did not land in a grid cell.
type SkipReason string

const (
	SkipMalformed   SkipReason = "malformed"
	SkipOutOfPeriod SkipReason = "out_of_period"
	SkipOutOfRange  SkipReason = "out_of_range"
	SkipUnmatched   SkipReason = "unmatched"
)

// ActivityGrid is a fixed-shape count table indexed by (priority level, day index).
// Counts has len(Ranking.Categories) rows of PeriodLength columns.
type ActivityGrid struct {
	Year         int                `json:"year"`
	Month        time.Month         `json:"month"`
	PeriodLength int                `json:"period_length"`
	Location     string             `json:"location"`
	Ranking      Ranking            `json:"ranking"`
	Counts       [][]int            `json:"counts"`
	Skipped      map[SkipReason]int `json:"skipped"`
}

// NewActivityGrid allocates an all-zero grid. The caller validates the shape.
func NewActivityGrid(year int, month time.Month, periodLength int, loc *time.Location, ranking Ranking) *ActivityGrid {
	counts := make([][]int, ranking.Len())
	for i := range counts {
		counts[i] = make([]int, periodLength)
	}
	return &ActivityGrid{
		Year:         year,
		Month:        month,
		PeriodLength: periodLength,
		Location:     loc.String(),
		Ranking:      ranking.Clone(),
		Counts:       counts,
		Skipped:      make(map[SkipReason]int),
	}
}

// Levels returns the number of priority levels (rows).
func (g *ActivityGrid) Levels() int {
	return len(g.Counts)
}

// Cell returns the count at (level, day), or 0 outside the grid.
func (g *ActivityGrid) Cell(level, day int) int {
	if level < 0 || level >= len(g.Counts) || day < 0 || day >= g.PeriodLength {
		return 0
	}
	return g.Counts[level][day]
}

// LevelTotal sums one row.
func (g *ActivityGrid) LevelTotal(level int) int {
	if level < 0 || level >= len(g.Counts) {
		return 0
	}
	total := 0
	for _, c := range g.Counts[level] {
		total += c
	}
	return total
}

// DayTotal sums one column across every level.
func (g *ActivityGrid) DayTotal(day int) int {
	total := 0
	for level := range g.Counts {
		total += g.Cell(level, day)
	}
	return total
}

// Total sums every cell.
func (g *ActivityGrid) Total() int {
	total := 0
	for level := range g.Counts {
		total += g.LevelTotal(level)
	}
	return total
}

// SkippedTotal sums the skip counters.
func (g *ActivityGrid) SkippedTotal() int {
	total := 0
	for _, n := range g.Skipped {
		total += n
	}
	return total
}

// Clone returns a deep copy.
func (g *ActivityGrid) Clone() *ActivityGrid {
	out := *g
	out.Ranking = g.Ranking.Clone()
	out.Counts = make([][]int, len(g.Counts))
	for i, row := range g.Counts {
		out.Counts[i] = append([]int(nil), row...)
	}
	out.Skipped = make(map[SkipReason]int, len(g.Skipped))
	for k, v := range g.Skipped {
		out.Skipped[k] = v
	}
	return &out
}
