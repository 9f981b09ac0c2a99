package gateway

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-activity-grid/internal/domain"
)

// setupTestGateway creates a GitHubGateway that communicates with a mock HTTP server.
func setupTestGateway(t *testing.T, handler http.Handler) *GitHubGateway {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	restClient := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	restClient.BaseURL = baseURL

	return &GitHubGateway{
		restClient:    restClient,
		graphqlClient: githubv4.NewEnterpriseClient(server.URL, server.Client()),
		logger:        slog.New(slog.DiscardHandler),
	}
}

func TestGitHubGateway_FetchEvents(t *testing.T) {
	testCases := []struct {
		name           string
		fetch          func(g *GitHubGateway) ([]domain.Event, error)
		expectedPath   string
		status         int
		body           string
		expected       []domain.Event
		expectedErrMsg string
	}{
		{
			name: "user events - missing fields decode to empty strings",
			fetch: func(g *GitHubGateway) ([]domain.Event, error) {
				return g.FetchUserEvents(context.Background(), "octo")
			},
			expectedPath: "/users/octo/events",
			status:       http.StatusOK,
			body: `[
				{"type":"PushEvent","created_at":"2024-03-05T10:00:00Z","repo":{"name":"octo/a"}},
				{"type":"WatchEvent","repo":{"name":"octo/b"}},
				{"created_at":"2024-03-06T10:00:00Z"}
			]`,
			expected: []domain.Event{
				{Type: "PushEvent", CreatedAt: "2024-03-05T10:00:00Z", Repository: "octo/a"},
				{Type: "WatchEvent", Repository: "octo/b"},
				{CreatedAt: "2024-03-06T10:00:00Z"},
			},
		},
		{
			name: "org events",
			fetch: func(g *GitHubGateway) ([]domain.Event, error) {
				return g.FetchOrgEvents(context.Background(), "acme")
			},
			expectedPath: "/orgs/acme/events",
			status:       http.StatusOK,
			body:         `[{"type":"IssueCommentEvent","created_at":"2024-03-05T11:00:00Z","repo":{"name":"acme/x"}}]`,
			expected: []domain.Event{
				{Type: "IssueCommentEvent", CreatedAt: "2024-03-05T11:00:00Z", Repository: "acme/x"},
			},
		},
		{
			name: "empty page",
			fetch: func(g *GitHubGateway) ([]domain.Event, error) {
				return g.FetchUserEvents(context.Background(), "octo")
			},
			expectedPath: "/users/octo/events",
			status:       http.StatusOK,
			body:         `[]`,
			expected:     []domain.Event{},
		},
		{
			name: "error case - GitHub API returns an error",
			fetch: func(g *GitHubGateway) ([]domain.Event, error) {
				return g.FetchUserEvents(context.Background(), "octo")
			},
			expectedPath:   "/users/octo/events",
			status:         http.StatusInternalServerError,
			body:           `{"message": "Internal Server Error"}`,
			expectedErrMsg: "failed to list events with REST API",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := setupTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tc.expectedPath, r.URL.Path)
				assert.Equal(t, "100", r.URL.Query().Get("per_page"))
				w.WriteHeader(tc.status)
				fmt.Fprint(w, tc.body)
			}))

			events, err := tc.fetch(g)
			if tc.expectedErrMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, events)
		})
	}
}

func TestGitHubGateway_FetchRepositories(t *testing.T) {
	g := setupTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octo/repos", r.URL.Path)
		fmt.Fprint(w, `[
			{"name":"alpha","html_url":"https://github.com/octo/alpha","stargazers_count":12},
			{"name":"beta","html_url":"https://github.com/octo/beta"}
		]`)
	}))

	repos, err := g.FetchRepositories(context.Background(), "octo")
	require.NoError(t, err)
	assert.Equal(t, []domain.Repository{
		{Name: "alpha", URL: "https://github.com/octo/alpha", Stars: 12},
		{Name: "beta", URL: "https://github.com/octo/beta", Stars: 0},
	}, repos)
}

func TestGitHubGateway_FetchContributions(t *testing.T) {
	testCases := []struct {
		name           string
		responseBody   string
		expected       []domain.Event
		expectedErrMsg string
	}{
		{
			name: "happy path - flattens every contribution kind",
			responseBody: `{"data":{"user":{"contributionsCollection":{
				"commitContributionsByRepository":[{"repository":{"nameWithOwner":"octo/a"},"contributions":{"nodes":[{"occurredAt":"2024-03-05T08:00:00Z","commitCount":2}]}}],
				"issueContributions":{"nodes":[{"occurredAt":"2024-03-06T09:00:00Z","issue":{"repository":{"nameWithOwner":"octo/b"}}}]},
				"pullRequestContributions":{"nodes":[{"occurredAt":"2024-03-07T10:00:00Z","pullRequest":{"repository":{"nameWithOwner":"octo/c"}}}]},
				"pullRequestReviewContributions":{"nodes":[{"occurredAt":"2024-03-08T11:00:00Z","pullRequestReview":{"repository":{"nameWithOwner":"octo/d"}}}]}
			}}}}`,
			expected: []domain.Event{
				{Type: ContributionPush, CreatedAt: "2024-03-05T08:00:00Z", Repository: "octo/a"},
				{Type: ContributionPush, CreatedAt: "2024-03-05T08:00:00Z", Repository: "octo/a"},
				{Type: ContributionIssue, CreatedAt: "2024-03-06T09:00:00Z", Repository: "octo/b"},
				{Type: ContributionPR, CreatedAt: "2024-03-07T10:00:00Z", Repository: "octo/c"},
				{Type: ContributionReview, CreatedAt: "2024-03-08T11:00:00Z", Repository: "octo/d"},
			},
		},
		{
			name:           "error case",
			responseBody:   `{"errors":[{"message":"Something went wrong"}]}`,
			expectedErrMsg: "failed to execute GraphQL query for contributions",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := setupTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.Contains(t, string(body), "contributionsCollection")
				assert.Contains(t, string(body), `"login":"octo"`)
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, tc.responseBody)
			}))

			from := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
			events, err := g.FetchContributions(context.Background(), "octo", from, from.AddDate(0, 1, 0))
			if tc.expectedErrMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, events)
		})
	}
}

func TestNewGitHubGateway(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	g, err := NewGitHubGateway(Options{APIURL: "https://ghe.example.com/api/v3"}, logger)
	require.NoError(t, err)
	assert.Equal(t, "https://ghe.example.com/api/v3/", g.restClient.BaseURL.String())

	g, err = NewGitHubGateway(Options{Token: "secret"}, logger)
	require.NoError(t, err)
	assert.Equal(t, "https://api.github.com/", g.restClient.BaseURL.String())
}
