package config

import (
	"strconv"
	"strings"
	"time"
)

type OAuthConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetScopes() []string
	GetSessionTTL() time.Duration
	GetStrictIDTokenVerification() bool
}

type OAuth struct{}

var _ OAuthConfig = OAuth{}

// Built-in Antigravity client identity. Google treats this as a public
// ("installed application") client, so the secret is not confidential.
const (
	defaultClientID     = "1071006060591-tmhssin04fd4e8ijev6d9vkjtq4ra1nl.apps.googleusercontent.com"
	defaultClientSecret = "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"
)

var defaultScopes = []string{
	"https://www.googleapis.com/auth/cloud-platform",
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
	"https://www.googleapis.com/auth/cclog",
	"https://www.googleapis.com/auth/experimentsandconfigs",
}

func (OAuth) GetClientID() string {
	return GetEnv("OAUTH_CLIENT_ID", defaultClientID)
}

func (OAuth) GetClientSecret() string {
	return GetEnv("OAUTH_CLIENT_SECRET", defaultClientSecret)
}

func (OAuth) GetScopes() []string {
	if v := GetEnv("OAUTH_SCOPES", ""); v != "" {
		return strings.Fields(v)
	}
	scopes := make([]string, len(defaultScopes))
	copy(scopes, defaultScopes)
	return scopes
}

// GetSessionTTL returns the maximum age of a pending OAuth session.
// Completed sessions are evicted on the same schedule, so callers must
// poll for a result within this window.
func (OAuth) GetSessionTTL() time.Duration {
	if v := GetEnv("SESSION_TTL_MINUTES", ""); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			return time.Duration(minutes) * time.Minute
		}
	}
	return 30 * time.Minute
}

// GetStrictIDTokenVerification enables signature verification of the
// id_token against Google's published keys before an account is saved.
func (OAuth) GetStrictIDTokenVerification() bool {
	return GetEnv("STRICT_ID_TOKEN_VERIFICATION", "") == "true"
}
