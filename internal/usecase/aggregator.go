// Package usecase contains the business logic of the application.
package usecase

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/naka-gawa/github-activity-grid/internal/domain"
)

type aggregateConfig struct {
	loc *time.Location
}

// AggregateOption customizes Aggregate.
type AggregateOption func(*aggregateConfig)

// WithLocation sets the time zone used to decide an event's calendar day.
// The default is UTC.
func WithLocation(loc *time.Location) AggregateOption {
	return func(c *aggregateConfig) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// Aggregate folds events into a fresh ActivityGrid of shape
// [ranking.Len()][periodLength] for the given calendar month.
//
// Events are visited in input order. An event is skipped (and counted in
// grid.Skipped) when its timestamp does not parse, when it falls outside the
// month, when its day index is not below periodLength, or when its type matches
// no category and the ranking's fallback is FallbackDrop.
//
// Only caller misconfiguration is an error, and it always wraps
// domain.ErrInvalidArgument.
func Aggregate(events []domain.Event, periodLength int, month time.Month, year int, ranking domain.Ranking, opts ...AggregateOption) (*domain.ActivityGrid, error) {
	if periodLength <= 0 {
		return nil, goerr.Wrap(domain.ErrInvalidArgument, "period length must be positive",
			goerr.V("period_length", periodLength))
	}
	if month < time.January || month > time.December {
		return nil, goerr.Wrap(domain.ErrInvalidArgument, "month out of range", goerr.V("month", int(month)))
	}
	if err := ranking.Validate(); err != nil {
		return nil, err
	}

	cfg := aggregateConfig{loc: time.UTC}
	for _, opt := range opts {
		opt(&cfg)
	}

	grid := domain.NewActivityGrid(year, month, periodLength, cfg.loc, ranking)
	for _, ev := range events {
		ts, ok := parseTimestamp(ev.CreatedAt)
		if !ok {
			grid.Skipped[domain.SkipMalformed]++
			continue
		}
		ts = ts.In(cfg.loc)
		if ts.Year() != year || ts.Month() != month {
			grid.Skipped[domain.SkipOutOfPeriod]++
			continue
		}
		day := ts.Day() - 1
		if day >= periodLength {
			grid.Skipped[domain.SkipOutOfRange]++
			continue
		}
		level, ok := grid.Ranking.Level(ev.Type)
		if !ok {
			grid.Skipped[domain.SkipUnmatched]++
			continue
		}
		grid.Counts[level][day]++
	}
	return grid, nil
}

// parseTimestamp accepts RFC 3339 with or without fractional seconds.
func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// DaysIn returns the number of days in the given month.
func DaysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
