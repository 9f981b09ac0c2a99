package usecase

import (
	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/github-activity-grid/internal/domain"
)

// Summarize computes per-level distribution statistics for a grid.
func Summarize(grid *domain.ActivityGrid) domain.GridSummary {
	summary := domain.GridSummary{
		Total:   grid.Total(),
		Skipped: grid.SkippedTotal(),
		Levels:  make([]domain.LevelStats, 0, grid.Levels()),
	}

	for level, row := range grid.Counts {
		ls := domain.LevelStats{Label: grid.Ranking.Categories[level].Label}
		data := stats.LoadRawData(row)
		if sum, err := data.Sum(); err == nil {
			ls.Total = int(sum)
		}
		if max, err := data.Max(); err == nil {
			ls.Max = int(max)
		}
		if mean, err := data.Mean(); err == nil {
			ls.Mean = mean
		}
		if median, err := data.Median(); err == nil {
			ls.Median = median
		}
		for _, c := range row {
			if c > 0 {
				ls.ActiveDays++
			}
		}
		summary.Levels = append(summary.Levels, ls)
	}

	busiest := 0
	for day := 0; day < grid.PeriodLength; day++ {
		n := grid.DayTotal(day)
		if n > 0 {
			summary.ActiveDays++
		}
		if n > busiest {
			busiest = n
			summary.BusiestDay = day + 1
		}
	}
	return summary
}
