package oauthflow

import (
	"net/url"
	"strings"
)

// AuthEndpoint is Google's OAuth2 authorization endpoint, which fronts
// the Antigravity consent flow.
const AuthEndpoint = "https://accounts.google.com/o/oauth2/v2/auth"

// BuildAuthURL produces the provider authorization URL for a session.
// Pure and deterministic: identical inputs always yield the same URL.
func BuildAuthURL(state, redirectURI, clientID string, scopes []string) string {
	q := url.Values{}
	q.Set("access_type", "offline")
	q.Set("scope", strings.Join(scopes, " "))
	q.Set("state", state)
	q.Set("prompt", "consent")
	q.Set("response_type", "code")
	q.Set("client_id", clientID)
	q.Set("redirect_uri", redirectURI)
	return AuthEndpoint + "?" + q.Encode()
}
