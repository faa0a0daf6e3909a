package accounts

import (
	"sort"
	"sync"

	"github.com/ACG22333/Antigravity2Api/internal/errors"
)

// InMemoryRepo is a thread-safe in-memory implementation of the Repo
// interface
type InMemoryRepo struct {
	mu       sync.RWMutex
	accounts map[string]Account // id -> Account
}

// NewInMemoryRepo creates a new in-memory account repository
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		accounts: make(map[string]Account),
	}
}

// Upsert stores or replaces an account
func (r *InMemoryRepo) Upsert(account Account) error {
	if account.ID == "" {
		return errors.Wrapf(errors.ErrInternal, "account ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.accounts[account.ID] = account
	return nil
}

// GetByID retrieves an account by ID
func (r *InMemoryRepo) GetByID(id string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, exists := r.accounts[id]
	if !exists {
		return Account{}, errors.ErrAccountNotFound
	}
	return account, nil
}

// GetByEmail retrieves an account by email
func (r *InMemoryRepo) GetByEmail(email string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, account := range r.accounts {
		if account.Email == email {
			return account, nil
		}
	}
	return Account{}, errors.ErrAccountNotFound
}

// List returns all accounts ordered by creation time
func (r *InMemoryRepo) List() ([]Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		list = append(list, account)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

// Delete removes an account
func (r *InMemoryRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[id]; !exists {
		return errors.ErrAccountNotFound
	}
	delete(r.accounts, id)
	return nil
}
