package oauthflow

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ACG22333/Antigravity2Api/accounts"
	"github.com/ACG22333/Antigravity2Api/internal/config"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultPort is used when the configured server port is missing or
	// not numeric.
	DefaultPort = 8080

	// CallbackPath is the local path Google redirects back to.
	CallbackPath = "/oauth-callback"
)

// Session status values reported to polling callers. An expired session
// and one that never existed are deliberately indistinguishable.
const (
	StatusExpired   = "expired"
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Exchanger swaps an authorization code for account credentials. It
// owns its own timeout and rate-limit policy.
type Exchanger interface {
	Exchange(ctx context.Context, code, redirectURI string) (*accounts.Credentials, error)
}

// AccountAdder persists a newly obtained credential as an account.
type AccountAdder interface {
	AddAccount(creds *accounts.Credentials) error
}

// Service orchestrates the browser consent flow: it starts sessions,
// processes the provider callback and answers status polls. Every
// failure mode of the callback path becomes a terminal session result;
// nothing is raised past this boundary.
type Service struct {
	repo      Repo
	exchanger Exchanger
	accounts  AccountAdder
	clientID  string
	scopes    []string
	ttl       time.Duration
}

func NewService(repo Repo, exchanger Exchanger, accountAdder AccountAdder, cfg config.OAuthConfig) *Service {
	return &Service{
		repo:      repo,
		exchanger: exchanger,
		accounts:  accountAdder,
		clientID:  cfg.GetClientID(),
		scopes:    cfg.GetScopes(),
		ttl:       cfg.GetSessionTTL(),
	}
}

// StartResponse is returned to the caller that initiates a flow. The
// caller opens AuthURL in a browser and polls with State.
type StartResponse struct {
	State       string `json:"state"`
	AuthURL     string `json:"authUrl"`
	RedirectURI string `json:"redirectUri"`
	ExpiresInMs int64  `json:"expiresInMs"`
}

// StartSession creates a pending session bound to the local callback
// URL derived from port, and returns the authorization URL to open.
// It never fails: a malformed port falls back to DefaultPort.
func (s *Service) StartSession(port string) StartResponse {
	p, err := strconv.Atoi(port)
	if err != nil || p <= 0 || p > 65535 {
		p = DefaultPort
	}
	redirectURI := fmt.Sprintf("http://localhost:%d%s", p, CallbackPath)

	state, err := s.repo.Create(redirectURI)
	if err != nil {
		// Only reachable through store misuse; log and return an
		// unpollable session rather than failing the caller.
		log.Err(err).Msg("Failed to create OAuth session")
	}

	return StartResponse{
		State:       state,
		AuthURL:     BuildAuthURL(state, redirectURI, s.clientID, s.scopes),
		RedirectURI: redirectURI,
		ExpiresInMs: s.ttl.Milliseconds(),
	}
}

// CallbackParams carries the query parameters of the provider redirect.
type CallbackParams struct {
	State            string
	Code             string
	Error            string
	ErrorDescription string
}

// CompleteCallback drives a session from pending to its terminal
// result. The token exchange runs at most once per session even when
// duplicate redirects race; the loser observes the recorded outcome.
func (s *Service) CompleteCallback(ctx context.Context, p CallbackParams) Result {
	if p.State == "" {
		return Result{Success: false, Message: "Missing state parameter"}
	}

	sess, err := s.repo.Get(p.State)
	if err != nil {
		return Result{Success: false, Message: "Login session expired or not found. Please start a new login."}
	}

	if p.Error != "" {
		msg := p.ErrorDescription
		if msg == "" {
			msg = p.Error
		}
		return s.finish(p.State, Result{Success: false, Message: "Authorization failed: " + msg})
	}

	if p.Code == "" {
		return s.finish(p.State, Result{Success: false, Message: "Missing authorization code"})
	}

	claimed, err := s.repo.BeginExchange(p.State)
	if err != nil {
		return Result{Success: false, Message: "Login session expired or not found. Please start a new login."}
	}
	if !claimed {
		// A duplicate or delayed redirect; report whatever the first
		// delivery produced, or ask the caller to keep polling.
		if cur, err := s.repo.Get(p.State); err == nil && cur.Result != nil {
			return *cur.Result
		}
		return Result{Success: false, Message: "Authorization is already being processed. Poll the session status for the outcome."}
	}

	// Exchange against the redirect URI recorded at session creation,
	// never one re-derived from the incoming request.
	creds, err := s.exchanger.Exchange(ctx, p.Code, sess.RedirectURI)
	if err != nil {
		return s.finish(p.State, Result{Success: false, Message: "Token exchange failed: " + err.Error()})
	}

	if err := s.accounts.AddAccount(creds); err != nil {
		return s.finish(p.State, Result{Success: false, Message: "Failed to save account: " + err.Error()})
	}

	msg := "Login successful. You can close this window."
	if creds.Email != "" {
		msg = fmt.Sprintf("Account %s added successfully. You can close this window.", creds.Email)
	}
	return s.finish(p.State, Result{Success: true, Message: msg})
}

// Status is the three-way answer to a session poll.
type Status struct {
	Status  string `json:"status"`
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
}

// GetStatus reports the current state of a session. Polling is the
// durable delivery channel; the browser result page is best-effort.
func (s *Service) GetStatus(state string) Status {
	sess, err := s.repo.Get(state)
	if err != nil {
		return Status{Status: StatusExpired}
	}
	if sess.Result == nil {
		return Status{Status: StatusPending}
	}
	success := sess.Result.Success
	return Status{Status: StatusCompleted, Success: &success, Message: sess.Result.Message}
}

// finish records the terminal result on the session before returning
// it, so a later poll observes the same outcome the callback computed.
func (s *Service) finish(state string, r Result) Result {
	if err := s.repo.SetResult(state, r); err != nil {
		log.Err(err).Str("state", state).Msg("Failed to record session result")
	}
	return r
}
