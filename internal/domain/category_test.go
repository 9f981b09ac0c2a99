package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCategory_Matches(t *testing.T) {
	c := Category{Label: "PRs", Types: []string{"PullRequest*", "CreateEvent"}}

	assert.True(t, c.Matches("PullRequestEvent"))
	assert.True(t, c.Matches("PullRequestReviewCommentEvent"))
	assert.True(t, c.Matches("CreateEvent"))
	assert.False(t, c.Matches("PushEvent"))
	assert.False(t, c.Matches(""))
	assert.False(t, Category{Label: "Other"}.Matches("PushEvent"))
}

func TestRanking_Level(t *testing.T) {
	r := DefaultRanking()

	testCases := []struct {
		eventType string
		level     int
		ok        bool
	}{
		{"PushEvent", 0, true},
		{"IssueCommentEvent", 1, true},
		{"PullRequestReviewEvent", 2, true},
		{"WatchEvent", 3, true},
		{"", 3, true},
	}
	for _, tc := range testCases {
		level, ok := r.Level(tc.eventType)
		assert.Equal(t, tc.ok, ok, tc.eventType)
		assert.Equal(t, tc.level, level, tc.eventType)
	}

	r.Fallback = FallbackDrop
	_, ok := r.Level("WatchEvent")
	assert.False(t, ok)
}

func TestRanking_Validate(t *testing.T) {
	require.NoError(t, DefaultRanking().Validate())

	testCases := []struct {
		name    string
		ranking Ranking
	}{
		{"no categories", Ranking{Fallback: FallbackDrop}},
		{"unset fallback", Ranking{Categories: []Category{{Label: "a"}}}},
		{"missing label", Ranking{Categories: []Category{{Types: []string{"PushEvent"}}}, Fallback: FallbackDrop}},
		{"bad pattern", Ranking{Categories: []Category{{Label: "a", Types: []string{"Push["}}}, Fallback: FallbackDrop}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.ranking.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidArgument))
		})
	}
}

func TestFallback_YAML(t *testing.T) {
	var r Ranking
	err := yaml.Unmarshal([]byte("fallback: lowest\ncategories:\n  - label: Push\n    types: [PushEvent]\n"), &r)
	require.NoError(t, err)
	assert.Equal(t, FallbackLowest, r.Fallback)
	assert.Equal(t, []string{"Push"}, r.Labels())

	err = yaml.Unmarshal([]byte("fallback: sometimes\n"), &r)
	require.Error(t, err)

	f, err := ParseFallback(" DROP ")
	require.NoError(t, err)
	assert.Equal(t, FallbackDrop, f)
	assert.Equal(t, "drop", f.String())
}
