package scale

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-activity-grid/internal/domain"
)

func TestThreshold_Level(t *testing.T) {
	testCases := []struct {
		stars    float64
		expected int
	}{
		{0, 0},
		{1, 1},
		{10, 1},
		{11, 2},
		{30, 2},
		{31, 3},
		{50, 3},
		{51, 4},
		{5000, 4},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, DefaultStarThreshold.Level(tc.stars), "stars=%v", tc.stars)
	}
	assert.Equal(t, 5, DefaultStarThreshold.Levels())
}

func TestNewThreshold(t *testing.T) {
	th, err := NewThreshold(1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, Threshold{1, 2, 3}, th)

	_, err = NewThreshold(1, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
}

func TestQuantile(t *testing.T) {
	t.Run("all zero keeps a single cut", func(t *testing.T) {
		th, err := Quantile([]int{0, 0, 0}, 5)
		require.NoError(t, err)
		assert.Equal(t, Threshold{0}, th)
		assert.Equal(t, 0, th.Level(0))
	})

	t.Run("zero stays at level zero and the max reaches the top", func(t *testing.T) {
		values := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 0}
		th, err := Quantile(values, 5)
		require.NoError(t, err)
		assert.Equal(t, 0, th.Level(0))
		assert.Equal(t, 1, th.Level(1))
		assert.Equal(t, th.Levels()-1, th.Level(8))
		for i := 1; i < len(th); i++ {
			assert.Greater(t, th[i], th[i-1])
		}
	})

	t.Run("sparse data still puts the maximum on top", func(t *testing.T) {
		for _, values := range [][]int{{42}, {3, 7}, {1, 2, 9}} {
			th, err := Quantile(values, 5)
			require.NoError(t, err, "values=%v", values)
			largest := values[len(values)-1]
			assert.Equal(t, th.Levels()-1, th.Level(float64(largest)), "values=%v", values)
			assert.Equal(t, 1, th.Level(float64(values[0])), "values=%v", values)
		}
	})

	t.Run("too few levels", func(t *testing.T) {
		_, err := Quantile([]int{1}, 1)
		assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
	})
}

func TestFlatten(t *testing.T) {
	grid := domain.NewActivityGrid(2024, time.March, 2, time.UTC, domain.Ranking{Categories: []domain.Category{{Label: "a"}, {Label: "b"}}})
	grid.Counts[0][1] = 3
	grid.Counts[1][0] = 4
	assert.Equal(t, []int{0, 3, 4, 0}, Flatten(grid))
}
