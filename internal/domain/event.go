// Package domain contains the core data structures and domain logic for the application.
package domain

// Event is a single activity record as reported by GitHub.
// CreatedAt is kept as the raw ISO-8601 text because the source is untrusted;
// it is parsed during aggregation and a bad value only drops that event.
type Event struct {
	Type       string `json:"type"`
	CreatedAt  string `json:"created_at"`
	Repository string `json:"repository"`
}
