package oauthflow

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"github.com/ACG22333/Antigravity2Api/internal/errors"
)

// stateTokenBytes is the entropy of a state token. 32 bytes = 256 bits,
// well above the 128-bit minimum for an unguessable token.
const stateTokenBytes = 32

// InMemoryRepo is a thread-safe in-memory implementation of the Repo
// interface. Expired sessions are swept lazily at the start of every
// operation, so no background janitor is needed.
type InMemoryRepo struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*sessionEntry
}

type sessionEntry struct {
	session    Session
	exchanging bool
}

// NewInMemoryRepo creates a new in-memory session repository whose
// sessions expire ttl after creation, terminal or not.
func NewInMemoryRepo(ttl time.Duration) *InMemoryRepo {
	return &InMemoryRepo{
		ttl:      ttl,
		sessions: make(map[string]*sessionEntry),
	}
}

// Create mints a state token and inserts a pending session
func (r *InMemoryRepo) Create(redirectURI string) (string, error) {
	if redirectURI == "" {
		return "", errors.Wrapf(errors.ErrInternal, "redirectURI cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictExpired()

	state := generateStateToken()
	for {
		if _, exists := r.sessions[state]; !exists {
			break
		}
		state = generateStateToken()
	}

	r.sessions[state] = &sessionEntry{
		session: Session{
			State:       state,
			RedirectURI: redirectURI,
			CreatedAt:   time.Now(),
		},
	}
	return state, nil
}

// Get retrieves a session by state token
func (r *InMemoryRepo) Get(state string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictExpired()

	entry, exists := r.sessions[state]
	if !exists {
		return nil, errors.ErrSessionNotFound
	}

	// Return a copy to prevent external modifications
	session := entry.session
	if entry.session.Result != nil {
		result := *entry.session.Result
		session.Result = &result
	}
	return &session, nil
}

// SetResult records the terminal outcome for a session. First write wins.
func (r *InMemoryRepo) SetResult(state string, result Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictExpired()

	entry, exists := r.sessions[state]
	if !exists {
		return errors.ErrSessionNotFound
	}
	if entry.session.Result != nil {
		return errors.ErrResultAlreadySet
	}

	entry.session.Result = &result
	return nil
}

// BeginExchange claims the single token-exchange attempt for a session.
func (r *InMemoryRepo) BeginExchange(state string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictExpired()

	entry, exists := r.sessions[state]
	if !exists {
		return false, errors.ErrSessionNotFound
	}
	if entry.exchanging || entry.session.Result != nil {
		return false, nil
	}

	entry.exchanging = true
	return true, nil
}

// evictExpired removes sessions older than the TTL. Callers must hold
// the mutex.
func (r *InMemoryRepo) evictExpired() {
	now := time.Now()
	for state, entry := range r.sessions {
		if now.Sub(entry.session.CreatedAt) > r.ttl {
			delete(r.sessions, state)
		}
	}
}

// generateStateToken creates a random base64url state token
func generateStateToken() string {
	b := make([]byte, stateTokenBytes)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
