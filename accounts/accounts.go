package accounts

import (
	"sync"
	"time"

	"github.com/ACG22333/Antigravity2Api/internal/errors"
	"github.com/google/uuid"
)

// Credentials are the OAuth2 tokens obtained for a Google account
// through the browser consent flow.
type Credentials struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	IDToken      string    `json:"id_token,omitempty"`
	Expiry       time.Time `json:"expiry"`
	Email        string    `json:"email,omitempty"`
	Subject      string    `json:"subject,omitempty"`
}

// Account is a stored Antigravity account with its credentials.
type Account struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	Credentials Credentials `json:"credentials"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Manager owns account persistence. Logging in with an email that is
// already registered replaces that account's credentials instead of
// creating a duplicate.
type Manager struct {
	mu   sync.Mutex
	repo Repo
}

func NewManager(repo Repo) *Manager {
	return &Manager{repo: repo}
}

// AddAccount persists a newly obtained credential, upserting by email.
func (m *Manager) AddAccount(creds *Credentials) error {
	if creds == nil {
		return errors.ErrNilCredentials
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if creds.Email != "" {
		existing, err := m.repo.GetByEmail(creds.Email)
		if err == nil {
			existing.Credentials = *creds
			existing.UpdatedAt = now
			return m.repo.Upsert(existing)
		}
		if !errors.Is(err, errors.ErrAccountNotFound) {
			return errors.Wrapf(err, "lookup account by email")
		}
	}

	return m.repo.Upsert(Account{
		ID:          uuid.NewString(),
		Email:       creds.Email,
		Credentials: *creds,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

// List returns all stored accounts.
func (m *Manager) List() ([]Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.repo.List()
}

// Delete removes an account by ID.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.repo.Delete(id)
}
