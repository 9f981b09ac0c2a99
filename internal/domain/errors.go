package domain

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for domain operations
var (
	// ErrInvalidArgument marks caller misconfiguration. It is fatal to the call.
	ErrInvalidArgument = goerr.New("invalid argument")
)
