// Package exchange performs the code-for-token round trip against
// Google's OAuth2 endpoints for the Antigravity client.
package exchange

import (
	"context"

	"github.com/ACG22333/Antigravity2Api/accounts"
	"github.com/ACG22333/Antigravity2Api/internal/config"
	"github.com/ACG22333/Antigravity2Api/internal/errors"
	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

const (
	googleTokenURL = "https://oauth2.googleapis.com/token"
	googleJWKSURL  = "https://www.googleapis.com/oauth2/v3/certs"
	googleIssuer   = "https://accounts.google.com"
)

// RateLimiter gates outbound calls to the provider token endpoint.
// golang.org/x/time/rate.Limiter satisfies it.
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// GoogleExchanger swaps an authorization code for Antigravity account
// credentials. Timeouts are owned by the caller's context; the session
// core never sees them.
type GoogleExchanger struct {
	clientID     string
	clientSecret string
	limiter      RateLimiter
	verifier     *oidc.IDTokenVerifier // nil unless strict verification is enabled
}

func NewGoogleExchanger(cfg config.OAuthConfig, limiter RateLimiter) *GoogleExchanger {
	g := &GoogleExchanger{
		clientID:     cfg.GetClientID(),
		clientSecret: cfg.GetClientSecret(),
		limiter:      limiter,
	}
	if cfg.GetStrictIDTokenVerification() {
		// Remote key set fetches Google's JWKS on first use only.
		keySet := oidc.NewRemoteKeySet(context.Background(), googleJWKSURL)
		g.verifier = oidc.NewVerifier(googleIssuer, keySet, &oidc.Config{ClientID: g.clientID})
	}
	return g
}

// Exchange redeems the authorization code. redirectURI must be the
// exact value the authorization request carried or Google rejects the
// exchange with a redirect_uri_mismatch error.
func (g *GoogleExchanger) Exchange(ctx context.Context, code, redirectURI string) (*accounts.Credentials, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, errors.Wrapf(err, "rate limiter")
		}
	}

	conf := &oauth2.Config{
		ClientID:     g.clientID,
		ClientSecret: g.clientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://accounts.google.com/o/oauth2/v2/auth",
			TokenURL: googleTokenURL,
		},
		RedirectURL: redirectURI,
	}

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Wrapf(err, "code exchange")
	}

	creds := &accounts.Credentials{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
	}

	if rawIDToken, ok := token.Extra("id_token").(string); ok && rawIDToken != "" {
		creds.IDToken = rawIDToken
		if g.verifier != nil {
			if _, err := g.verifier.Verify(ctx, rawIDToken); err != nil {
				return nil, errors.Wrapf(err, "id token verification")
			}
		}
		if email, subject, err := identityClaims(rawIDToken); err == nil {
			creds.Email = email
			creds.Subject = subject
		}
	}

	return creds, nil
}

// identityClaims extracts the email and subject from an id_token. The
// token comes straight from Google over TLS, so outside strict mode the
// signature is not re-verified here.
func identityClaims(rawIDToken string) (email, subject string, err error) {
	claims := jwt.MapClaims{}
	if _, _, err = jwt.NewParser().ParseUnverified(rawIDToken, claims); err != nil {
		return "", "", err
	}
	email, _ = claims["email"].(string)
	subject, _ = claims.GetSubject()
	return email, subject, nil
}
