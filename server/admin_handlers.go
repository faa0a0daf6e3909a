package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/ACG22333/Antigravity2Api/internal/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// RequireManagementKey guards the account management endpoints with a
// bearer key compared against the configured bcrypt hash. With no key
// configured the endpoints are disabled outright.
func (s *Server) RequireManagementKey(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.managementKeyHash == nil {
			http.Error(w, "management endpoints disabled", http.StatusForbidden)
			return
		}

		key := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if key == "" || key == r.Header.Get("Authorization") {
			http.Error(w, "missing management key", http.StatusUnauthorized)
			return
		}

		if err := bcrypt.CompareHashAndPassword(s.managementKeyHash, []byte(key)); err != nil {
			http.Error(w, "invalid management key", http.StatusUnauthorized)
			return
		}

		next(w, r)
	}
}

// accountSummary is the management view of an account. Tokens are
// never returned over HTTP.
type accountSummary struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Expiry    time.Time `json:"expiry"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AdminAccountsListHandler lists stored accounts
func (s *Server) AdminAccountsListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.accounts.List()
		if err != nil {
			log.Err(err).Msg("Failed to list accounts")
			http.Error(w, "failed to list accounts", http.StatusInternalServerError)
			return
		}

		summaries := make([]accountSummary, 0, len(list))
		for _, account := range list {
			summaries = append(summaries, accountSummary{
				ID:        account.ID,
				Email:     account.Email,
				Expiry:    account.Credentials.Expiry,
				CreatedAt: account.CreatedAt,
				UpdatedAt: account.UpdatedAt,
			})
		}
		writeJSON(w, http.StatusOK, summaries)
	}
}

// AdminAccountDeleteHandler removes an account by ID
func (s *Server) AdminAccountDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if id == "" {
			http.Error(w, "missing account id", http.StatusBadRequest)
			return
		}

		if err := s.accounts.Delete(id); err != nil {
			if errors.Is(err, errors.ErrAccountNotFound) {
				http.Error(w, "account not found", http.StatusNotFound)
				return
			}
			log.Err(err).Str("id", id).Msg("Failed to delete account")
			http.Error(w, "failed to delete account", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
