// Package config loads runtime configuration from the environment and from files.
package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/m-mizutani/goerr/v2"
)

// Env holds settings read from environment variables.
type Env struct {
	GitHubToken string `env:"GITHUB_TOKEN"`
	APIURL      string `env:"GITHUB_API_URL"`
	GraphQLURL  string `env:"GITHUB_GRAPHQL_URL"`
	LogFormat   string `env:"ACTIVITY_GRID_LOG_FORMAT" envDefault:"auto"`
	TimeZone    string `env:"ACTIVITY_GRID_TZ" envDefault:"UTC"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (*Env, error) {
	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return nil, goerr.Wrap(err, "parse env")
	}
	return &cfg, nil
}
