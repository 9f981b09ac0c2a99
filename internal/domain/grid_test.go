package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestActivityGrid_Accessors(t *testing.T) {
	g := NewActivityGrid(2024, time.March, 3, time.UTC, DefaultRanking())
	assert.Equal(t, 4, g.Levels())
	assert.Equal(t, "UTC", g.Location)

	g.Counts[0][0] = 2
	g.Counts[1][0] = 1
	g.Counts[3][2] = 4
	g.Skipped[SkipMalformed] = 2

	assert.Equal(t, 2, g.Cell(0, 0))
	assert.Equal(t, 0, g.Cell(0, 3))
	assert.Equal(t, 0, g.Cell(-1, 0))
	assert.Equal(t, 3, g.DayTotal(0))
	assert.Equal(t, 4, g.LevelTotal(3))
	assert.Equal(t, 0, g.LevelTotal(9))
	assert.Equal(t, 7, g.Total())
	assert.Equal(t, 2, g.SkippedTotal())
}

func TestActivityGrid_Clone(t *testing.T) {
	g := NewActivityGrid(2024, time.March, 2, time.UTC, DefaultRanking())
	g.Counts[0][1] = 5

	c := g.Clone()
	assert.Equal(t, g, c)

	c.Counts[0][1] = 9
	c.Skipped[SkipUnmatched] = 1
	c.Ranking.Categories[0].Types[0] = "changed"
	assert.Equal(t, 5, g.Counts[0][1])
	assert.Zero(t, g.SkippedTotal())
	assert.Equal(t, "PushEvent", g.Ranking.Categories[0].Types[0])
}
