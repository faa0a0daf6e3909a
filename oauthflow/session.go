package oauthflow

import "time"

// Result is the terminal outcome of an OAuth session. Once recorded it
// never changes; both the browser result page and the polling endpoint
// report the same value.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Session tracks a single browser consent flow, keyed by its state
// token. RedirectURI is the callback URL bound at creation time and is
// the one used for the token exchange, never one re-derived from the
// incoming request.
type Session struct {
	State       string
	RedirectURI string
	CreatedAt   time.Time
	Result      *Result
}
