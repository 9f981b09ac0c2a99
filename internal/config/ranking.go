package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"

	"github.com/naka-gawa/github-activity-grid/internal/domain"
)

// LoadRankingFromFile loads a category ranking from a YAML file:
//
//	fallback: lowest
//	categories:
//	  - label: Push
//	    types: [PushEvent]
//	    color: "#f1fa8c"
func LoadRankingFromFile(path string) (domain.Ranking, error) {
	if path == "" {
		return domain.Ranking{}, goerr.New("ranking file path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Ranking{}, goerr.Wrap(err, "ranking file not found", goerr.V("path", path))
		}
		return domain.Ranking{}, goerr.Wrap(err, "failed to read ranking file", goerr.V("path", path))
	}

	var ranking domain.Ranking
	if err := yaml.Unmarshal(data, &ranking); err != nil {
		return domain.Ranking{}, goerr.Wrap(err, "failed to parse YAML ranking", goerr.V("path", path))
	}
	if err := ranking.Validate(); err != nil {
		return domain.Ranking{}, goerr.Wrap(err, "invalid ranking", goerr.V("path", path))
	}
	return ranking, nil
}
