package accounts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/ACG22333/Antigravity2Api/internal/errors"
)

const accountsFileName = "accounts.json"

// FileRepo persists the account list as a single JSON file under the
// configured data folder. The whole list is held in memory and written
// back atomically (temp file + rename) after every mutation.
type FileRepo struct {
	mu       sync.Mutex
	path     string
	accounts map[string]Account
}

// NewFileRepo creates the data folder if needed and loads any existing
// account file.
func NewFileRepo(dataFolder string) (*FileRepo, error) {
	if err := os.MkdirAll(dataFolder, 0o700); err != nil {
		return nil, errors.Wrapf(err, "create data folder")
	}

	r := &FileRepo{
		path:     filepath.Join(dataFolder, accountsFileName),
		accounts: make(map[string]Account),
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileRepo) load() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "read accounts file")
	}

	var list []Account
	if err := json.Unmarshal(data, &list); err != nil {
		return errors.Wrapf(err, "parse accounts file")
	}
	for _, account := range list {
		r.accounts[account.ID] = account
	}
	return nil
}

// save writes the account list to disk. Callers must hold the mutex.
func (r *FileRepo) save() error {
	list := r.sortedList()
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "marshal accounts")
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrapf(err, "write accounts file")
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return errors.Wrapf(err, "replace accounts file")
	}
	return nil
}

func (r *FileRepo) sortedList() []Account {
	list := make([]Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		list = append(list, account)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list
}

// Upsert stores or replaces an account and writes the file
func (r *FileRepo) Upsert(account Account) error {
	if account.ID == "" {
		return errors.Wrapf(errors.ErrInternal, "account ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.accounts[account.ID] = account
	return r.save()
}

// GetByID retrieves an account by ID
func (r *FileRepo) GetByID(id string) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, exists := r.accounts[id]
	if !exists {
		return Account{}, errors.ErrAccountNotFound
	}
	return account, nil
}

// GetByEmail retrieves an account by email
func (r *FileRepo) GetByEmail(email string) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.accounts {
		if account.Email == email {
			return account, nil
		}
	}
	return Account{}, errors.ErrAccountNotFound
}

// List returns all accounts ordered by creation time
func (r *FileRepo) List() ([]Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sortedList(), nil
}

// Delete removes an account and writes the file
func (r *FileRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[id]; !exists {
		return errors.ErrAccountNotFound
	}
	delete(r.accounts, id)
	return r.save()
}
