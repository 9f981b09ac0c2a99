package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/naka-gawa/github-activity-grid/internal/domain"
	"github.com/naka-gawa/github-activity-grid/internal/scale"
)

// hexRowWidth is the number of repositories per hex grid row.
const hexRowWidth = 10

// LayoutHexGrid places repositories in rows of ten centered on the origin
// and classifies each by stargazer count.
func LayoutHexGrid(repos []domain.Repository, threshold scale.Threshold) []domain.HexCell {
	cells := make([]domain.HexCell, 0, len(repos))
	for i, repo := range repos {
		cells = append(cells, domain.HexCell{
			Repository: repo,
			Q:          i%hexRowWidth - hexRowWidth/2,
			R:          i/hexRowWidth - hexRowWidth/2,
			Level:      threshold.Level(float64(repo.Stars)),
		})
	}
	return cells
}

// HexGrid fetches the user's repositories and lays them out on a hex grid.
// Unlike Grids, a fetch failure is returned since there is nothing to render.
func (s *Service) HexGrid(ctx context.Context, user string, threshold scale.Threshold) ([]domain.HexCell, error) {
	if user == "" {
		return nil, goerr.Wrap(domain.ErrInvalidArgument, "user is required")
	}
	repos, err := s.fetcher.FetchRepositories(ctx, user)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch repositories", goerr.V("user", user))
	}
	s.logger.Debug("fetched repositories", "user", user, "count", len(repos))
	return LayoutHexGrid(repos, threshold), nil
}

// QuantileHexGrid is HexGrid with cut points derived from the repositories'
// own star counts, spread over at most levels intensity levels.
func (s *Service) QuantileHexGrid(ctx context.Context, user string, levels int) ([]domain.HexCell, error) {
	if user == "" {
		return nil, goerr.Wrap(domain.ErrInvalidArgument, "user is required")
	}
	repos, err := s.fetcher.FetchRepositories(ctx, user)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch repositories", goerr.V("user", user))
	}
	stars := make([]int, len(repos))
	for i, r := range repos {
		stars[i] = r.Stars
	}
	threshold, err := scale.Quantile(stars, levels)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("derived star quantiles", "user", user, "cuts", []float64(threshold))
	return LayoutHexGrid(repos, threshold), nil
}
