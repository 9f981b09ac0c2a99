package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-activity-grid/internal/domain"
	"github.com/naka-gawa/github-activity-grid/internal/gateway"
)

// SubjectKind selects whose activity is fetched.
type SubjectKind string

const (
	SubjectUser SubjectKind = "user"
	SubjectOrg  SubjectKind = "org"
)

// Source selects the upstream data set.
type Source string

const (
	// SourceEvents reads the public events feed (most recent page only).
	SourceEvents Source = "events"
	// SourceContributions reads the GraphQL contribution collection for the period.
	SourceContributions Source = "contributions"
)

// ParseSource validates a source name.
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceEvents, SourceContributions:
		return Source(s), nil
	}
	return "", goerr.Wrap(domain.ErrInvalidArgument, "unknown source", goerr.V("source", s))
}

// Subject is one widget's worth of activity.
type Subject struct {
	Kind SubjectKind `json:"kind"`
	Name string      `json:"name"`
}

// Period identifies the month being aggregated.
type Period struct {
	Year     int
	Month    time.Month
	Length   int // 0 means the number of days in the month
	Location *time.Location
}

func (p Period) length() int {
	if p.Length == 0 {
		return DaysIn(p.Month, p.Year)
	}
	return p.Length
}

func (p Period) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

// bounds returns the first instant of the month and of the following month.
func (p Period) bounds() (time.Time, time.Time) {
	from := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, p.location())
	return from, from.AddDate(0, 1, 0)
}

// GridResult is the aggregation outcome for one subject.
type GridResult struct {
	Subject    Subject              `json:"subject"`
	Source     Source               `json:"source"`
	Events     int                  `json:"events"`
	FetchError string               `json:"fetch_error,omitempty"`
	Grid       *domain.ActivityGrid `json:"grid"`
	Summary    domain.GridSummary   `json:"summary"`
}

// Service is the use case for building activity grids from GitHub.
// It orchestrates fetching and aggregation.
type Service struct {
	fetcher gateway.Fetcher
	logger  *slog.Logger
}

// NewService creates a new Service instance.
func NewService(fetcher gateway.Fetcher, logger *slog.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Grids fetches and aggregates every subject concurrently. A failed fetch is logged
// and aggregated as an empty event list; only invalid arguments or a cancelled
// context fail the call. Results keep the order of subjects.
func (s *Service) Grids(ctx context.Context, subjects []Subject, source Source, period Period, ranking domain.Ranking) ([]*GridResult, error) {
	if len(subjects) == 0 {
		return nil, goerr.Wrap(domain.ErrInvalidArgument, "at least one user or organization is required")
	}
	if _, err := ParseSource(string(source)); err != nil {
		return nil, err
	}
	// Fail fast on misconfiguration before any network I/O.
	if _, err := Aggregate(nil, period.length(), period.Month, period.Year, ranking); err != nil {
		return nil, err
	}

	s.logger.Debug("starting grid aggregation", "subjects", len(subjects), "source", source)
	results := make([]*GridResult, len(subjects))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, subject := range subjects {
		eg.Go(func() error {
			result, err := s.grid(egCtx, subject, source, period, ranking)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	s.logger.Debug("grid aggregation complete", "subjects", len(subjects))
	return results, nil
}

func (s *Service) grid(ctx context.Context, subject Subject, source Source, period Period, ranking domain.Ranking) (*GridResult, error) {
	result := &GridResult{Subject: subject, Source: source}

	events, err := s.fetch(ctx, subject, source, period)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		if errors.Is(err, domain.ErrInvalidArgument) {
			return nil, err
		}
		s.logger.Warn("fetch failed, rendering without events",
			"kind", subject.Kind, "name", subject.Name, "error", err)
		result.FetchError = err.Error()
		events = nil
	}
	result.Events = len(events)

	grid, err := Aggregate(events, period.length(), period.Month, period.Year, ranking, WithLocation(period.location()))
	if err != nil {
		return nil, err
	}
	result.Grid = grid
	result.Summary = Summarize(grid)

	s.logger.Debug("aggregated subject",
		"name", subject.Name, "events", len(events), "counted", grid.Total(), "skipped", grid.SkippedTotal())
	return result, nil
}

func (s *Service) fetch(ctx context.Context, subject Subject, source Source, period Period) ([]domain.Event, error) {
	switch {
	case subject.Kind == SubjectUser && source == SourceEvents:
		return s.fetcher.FetchUserEvents(ctx, subject.Name)
	case subject.Kind == SubjectOrg && source == SourceEvents:
		return s.fetcher.FetchOrgEvents(ctx, subject.Name)
	case subject.Kind == SubjectUser && source == SourceContributions:
		from, to := period.bounds()
		return s.fetcher.FetchContributions(ctx, subject.Name, from, to)
	}
	return nil, goerr.Wrap(domain.ErrInvalidArgument, "source not available for subject",
		goerr.V("kind", subject.Kind), goerr.V("source", source))
}
