package domain

import (
	"path"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Fallback decides what happens to an event whose type matches no category.
type Fallback int

const (
	// FallbackUnset is rejected by Validate so the policy is always chosen explicitly.
	FallbackUnset Fallback = iota
	// FallbackDrop skips unmatched events.
	FallbackDrop
	// FallbackLowest counts unmatched events in the last (lowest priority) level.
	FallbackLowest
)

// ParseFallback converts "drop" or "lowest" into a Fallback.
func ParseFallback(s string) (Fallback, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "drop":
		return FallbackDrop, nil
	case "lowest":
		return FallbackLowest, nil
	}
	return FallbackUnset, goerr.Wrap(ErrInvalidArgument, "unknown fallback policy", goerr.V("fallback", s))
}

func (f Fallback) String() string {
	switch f {
	case FallbackDrop:
		return "drop"
	case FallbackLowest:
		return "lowest"
	}
	return "unset"
}

// MarshalText implements encoding.TextMarshaler.
func (f Fallback) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Fallback) UnmarshalText(text []byte) error {
	v, err := ParseFallback(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Category maps event types to one priority level of a grid.
// Types entries are exact event type names or path.Match globs such as "PullRequest*".
type Category struct {
	Label string   `json:"label" yaml:"label"`
	Types []string `json:"types" yaml:"types"`
	Color string   `json:"color,omitempty" yaml:"color,omitempty"`
}

// Matches reports whether eventType belongs to the category.
func (c Category) Matches(eventType string) bool {
	if eventType == "" {
		return false
	}
	for _, t := range c.Types {
		if t == eventType {
			return true
		}
		if ok, err := path.Match(t, eventType); err == nil && ok {
			return true
		}
	}
	return false
}

// Ranking is an ordered list of categories, highest priority first.
type Ranking struct {
	Categories []Category `json:"categories" yaml:"categories"`
	Fallback   Fallback   `json:"fallback" yaml:"fallback"`
}

// Len returns the number of priority levels.
func (r Ranking) Len() int {
	return len(r.Categories)
}

// Level returns the index of the first category matching eventType.
// When nothing matches, the fallback policy decides: FallbackLowest yields the last
// level, anything else reports false.
func (r Ranking) Level(eventType string) (int, bool) {
	for i, c := range r.Categories {
		if c.Matches(eventType) {
			return i, true
		}
	}
	if r.Fallback == FallbackLowest && len(r.Categories) > 0 {
		return len(r.Categories) - 1, true
	}
	return 0, false
}

// Labels returns the category labels in level order.
func (r Ranking) Labels() []string {
	labels := make([]string, len(r.Categories))
	for i, c := range r.Categories {
		labels[i] = c.Label
	}
	return labels
}

// Validate checks that the ranking can be used for aggregation.
func (r Ranking) Validate() error {
	if len(r.Categories) == 0 {
		return goerr.Wrap(ErrInvalidArgument, "ranking has no categories")
	}
	if r.Fallback != FallbackDrop && r.Fallback != FallbackLowest {
		return goerr.Wrap(ErrInvalidArgument, "ranking fallback policy must be drop or lowest",
			goerr.V("fallback", r.Fallback.String()))
	}
	for i, c := range r.Categories {
		if c.Label == "" {
			return goerr.Wrap(ErrInvalidArgument, "category label is required", goerr.V("level", i))
		}
		for _, t := range c.Types {
			if _, err := path.Match(t, ""); err != nil {
				return goerr.Wrap(ErrInvalidArgument, "malformed category pattern",
					goerr.V("label", c.Label), goerr.V("pattern", t))
			}
		}
	}
	return nil
}

// Clone returns a deep copy so a grid never shares slices with the caller's ranking.
func (r Ranking) Clone() Ranking {
	out := Ranking{Fallback: r.Fallback, Categories: make([]Category, len(r.Categories))}
	for i, c := range r.Categories {
		out.Categories[i] = Category{
			Label: c.Label,
			Types: append([]string(nil), c.Types...),
			Color: c.Color,
		}
	}
	return out
}

// DefaultRanking is the block graph ranking: pushes first, then issue comments,
// then reviews, with everything else counted in the "Other" level.
func DefaultRanking() Ranking {
	return Ranking{
		Categories: []Category{
			{Label: "Push", Types: []string{"PushEvent"}, Color: "#f1fa8c"},
			{Label: "Issue Comment", Types: []string{"IssueCommentEvent"}, Color: "#ff5555"},
			{Label: "Review", Types: []string{"PullRequestReviewEvent"}, Color: "#ff79c6"},
			{Label: "Other", Types: nil, Color: "#8be9fd"},
		},
		Fallback: FallbackLowest,
	}
}
