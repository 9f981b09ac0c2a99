// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/github-activity-grid/internal/domain"
)

// pageSize is the single page requested from list endpoints. Pagination is not followed.
const pageSize = 100

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchUserEvents(ctx context.Context, user string) ([]domain.Event, error)
	FetchOrgEvents(ctx context.Context, org string) ([]domain.Event, error)
	FetchContributions(ctx context.Context, user string, from, to time.Time) ([]domain.Event, error)
	FetchRepositories(ctx context.Context, user string) ([]domain.Repository, error)
}

// Options configures NewGitHubGateway. Empty fields fall back to github.com.
type Options struct {
	Token      string
	APIURL     string
	GraphQLURL string
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *slog.Logger
}

// rawEvent mirrors the events API loosely: a missing or malformed field
// decodes to a zero value instead of failing the whole page.
type rawEvent struct {
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
	Repo      struct {
		Name string `json:"name"`
	} `json:"repo"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(opts Options, logger *slog.Logger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create rate limit waiter")
	}
	var transport http.RoundTripper = rateLimitWaiter
	if opts.Token != "" {
		transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token}),
		}
	}
	httpClient := &http.Client{Transport: transport}

	restClient := github.NewClient(httpClient)
	if opts.APIURL != "" {
		baseURL, err := url.Parse(strings.TrimSuffix(opts.APIURL, "/") + "/")
		if err != nil {
			return nil, goerr.Wrap(err, "invalid GitHub API URL", goerr.V("url", opts.APIURL))
		}
		restClient.BaseURL = baseURL
	}

	graphqlClient := githubv4.NewClient(httpClient)
	if opts.GraphQLURL != "" {
		graphqlClient = githubv4.NewEnterpriseClient(opts.GraphQLURL, httpClient)
	}

	return &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        logger,
	}, nil
}

// FetchUserEvents returns the most recent public events performed by user.
func (g *GitHubGateway) FetchUserEvents(ctx context.Context, user string) ([]domain.Event, error) {
	g.logger.Debug("fetching user events", "user", user)
	return g.fetchEvents(ctx, fmt.Sprintf("users/%s/events", url.PathEscape(user)))
}

// FetchOrgEvents returns the most recent public events of an organization.
func (g *GitHubGateway) FetchOrgEvents(ctx context.Context, org string) ([]domain.Event, error) {
	g.logger.Debug("fetching organization events", "org", org)
	return g.fetchEvents(ctx, fmt.Sprintf("orgs/%s/events", url.PathEscape(org)))
}

func (g *GitHubGateway) fetchEvents(ctx context.Context, path string) ([]domain.Event, error) {
	req, err := g.restClient.NewRequest(http.MethodGet, fmt.Sprintf("%s?per_page=%d", path, pageSize), nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build events request", goerr.V("path", path))
	}
	var raw []rawEvent
	if _, err := g.restClient.Do(ctx, req, &raw); err != nil {
		return nil, goerr.Wrap(err, "failed to list events with REST API", goerr.V("path", path))
	}
	events := make([]domain.Event, 0, len(raw))
	for _, r := range raw {
		events = append(events, domain.Event{
			Type:       r.Type,
			CreatedAt:  r.CreatedAt,
			Repository: r.Repo.Name,
		})
	}
	g.logger.Debug("completed fetching events", "path", path, "count", len(events))
	return events, nil
}

// FetchRepositories returns the public repositories owned by user.
func (g *GitHubGateway) FetchRepositories(ctx context.Context, user string) ([]domain.Repository, error) {
	g.logger.Debug("fetching repositories", "user", user)
	opts := &github.RepositoryListByUserOptions{ListOptions: github.ListOptions{PerPage: pageSize}}
	repos, _, err := g.restClient.Repositories.ListByUser(ctx, user, opts)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list repositories with REST API", goerr.V("user", user))
	}
	out := make([]domain.Repository, 0, len(repos))
	for _, r := range repos {
		out = append(out, domain.Repository{
			Name:  r.GetName(),
			URL:   r.GetHTMLURL(),
			Stars: r.GetStargazersCount(),
		})
	}
	return out, nil
}
