package gateway

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/shurcooL/githubv4"

	"github.com/naka-gawa/github-activity-grid/internal/domain"
)

// Event types assigned to contributions so they rank like REST events.
const (
	ContributionPush   = "PushEvent"
	ContributionIssue  = "IssuesEvent"
	ContributionPR     = "PullRequestEvent"
	ContributionReview = "PullRequestReviewEvent"
)

type repositoryRef struct {
	NameWithOwner string
}

// contributionsQuery reads the first page of each contribution kind in the window.
type contributionsQuery struct {
	User struct {
		ContributionsCollection struct {
			CommitContributionsByRepository []struct {
				Repository    repositoryRef
				Contributions struct {
					Nodes []struct {
						OccurredAt  githubv4.DateTime
						CommitCount int
					}
				} `graphql:"contributions(first: 100)"`
			} `graphql:"commitContributionsByRepository(maxRepositories: 100)"`
			IssueContributions struct {
				Nodes []struct {
					OccurredAt githubv4.DateTime
					Issue      struct {
						Repository repositoryRef
					}
				}
			} `graphql:"issueContributions(first: 100)"`
			PullRequestContributions struct {
				Nodes []struct {
					OccurredAt  githubv4.DateTime
					PullRequest struct {
						Repository repositoryRef
					}
				}
			} `graphql:"pullRequestContributions(first: 100)"`
			PullRequestReviewContributions struct {
				Nodes []struct {
					OccurredAt        githubv4.DateTime
					PullRequestReview struct {
						Repository repositoryRef
					}
				}
			} `graphql:"pullRequestReviewContributions(first: 100)"`
		} `graphql:"contributionsCollection(from: $from, to: $to)"`
	} `graphql:"user(login: $login)"`
}

// FetchContributions reads the user's contribution collection between from and to
// and flattens it into events. A commit contribution with CommitCount n yields n
// PushEvent records on that day.
func (g *GitHubGateway) FetchContributions(ctx context.Context, user string, from, to time.Time) ([]domain.Event, error) {
	g.logger.Debug("fetching contributions", "user", user, "from", from, "to", to)
	variables := map[string]interface{}{
		"login": githubv4.String(user),
		"from":  githubv4.DateTime{Time: from},
		"to":    githubv4.DateTime{Time: to},
	}

	var q contributionsQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, goerr.Wrap(err, "failed to execute GraphQL query for contributions", goerr.V("user", user))
	}

	c := q.User.ContributionsCollection
	var events []domain.Event
	add := func(typ string, at githubv4.DateTime, repo string) {
		events = append(events, domain.Event{
			Type:       typ,
			CreatedAt:  at.UTC().Format(time.RFC3339),
			Repository: repo,
		})
	}

	for _, byRepo := range c.CommitContributionsByRepository {
		for _, n := range byRepo.Contributions.Nodes {
			for i := 0; i < n.CommitCount; i++ {
				add(ContributionPush, n.OccurredAt, byRepo.Repository.NameWithOwner)
			}
		}
	}
	for _, n := range c.IssueContributions.Nodes {
		add(ContributionIssue, n.OccurredAt, n.Issue.Repository.NameWithOwner)
	}
	for _, n := range c.PullRequestContributions.Nodes {
		add(ContributionPR, n.OccurredAt, n.PullRequest.Repository.NameWithOwner)
	}
	for _, n := range c.PullRequestReviewContributions.Nodes {
		add(ContributionReview, n.OccurredAt, n.PullRequestReview.Repository.NameWithOwner)
	}

	g.logger.Debug("completed fetching contributions", "user", user, "count", len(events))
	return events, nil
}
