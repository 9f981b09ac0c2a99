// Package scale maps raw counts onto a small number of intensity levels.
package scale

import (
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/github-activity-grid/internal/domain"
)

// Threshold is an ascending list of cut points. A value's level is the number of
// cut points strictly below it, so len(Threshold)+1 levels exist.
type Threshold []float64

// DefaultStarThreshold classifies repositories by stargazers: 0, >0, >10, >30, >50.
var DefaultStarThreshold = Threshold{0, 10, 30, 50}

// NewThreshold validates that cuts are strictly ascending.
func NewThreshold(cuts ...float64) (Threshold, error) {
	for i := 1; i < len(cuts); i++ {
		if cuts[i] <= cuts[i-1] {
			return nil, goerr.Wrap(domain.ErrInvalidArgument, "threshold cut points must be strictly ascending",
				goerr.V("index", i), goerr.V("cuts", cuts))
		}
	}
	return Threshold(append([]float64(nil), cuts...)), nil
}

// Levels returns the number of distinct levels.
func (t Threshold) Levels() int {
	return len(t) + 1
}

// Level returns the intensity level of v.
func (t Threshold) Level(v float64) int {
	return sort.Search(len(t), func(i int) bool { return t[i] >= v })
}

// Quantile derives up to n-1 cut points from the non-zero values so that active
// cells spread evenly over levels 1..n-1, with zero always at level 0 and the
// largest value always at the top level returned.
// Duplicate percentiles collapse, and percentiles undefined for very small
// samples are left out, so fewer levels may come back for sparse or flat data.
func Quantile(values []int, n int) (Threshold, error) {
	if n < 2 {
		return nil, goerr.Wrap(domain.ErrInvalidArgument, "quantile scale needs at least two levels", goerr.V("levels", n))
	}
	var active stats.Float64Data
	for _, v := range values {
		if v > 0 {
			active = append(active, float64(v))
		}
	}
	cuts := Threshold{0}
	if len(active) == 0 {
		return cuts, nil
	}
	top, err := active.Max()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to compute maximum")
	}
	for i := 1; i < n-1; i++ {
		p, err := stats.Percentile(active, float64(i)*100/float64(n-1))
		if err != nil {
			continue
		}
		if p > cuts[len(cuts)-1] && p < top {
			cuts = append(cuts, p)
		}
	}
	return cuts, nil
}

// Flatten returns every cell of a grid in row order.
func Flatten(grid *domain.ActivityGrid) []int {
	out := make([]int, 0, grid.Levels()*grid.PeriodLength)
	for _, row := range grid.Counts {
		out = append(out, row...)
	}
	return out
}
