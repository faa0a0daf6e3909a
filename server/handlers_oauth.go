package server

import (
	"encoding/json"
	"net/http"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
)

// OAuthStartHandler initiates a login flow. The response carries the
// authorization URL to open in a browser and the state token to poll
// with. This endpoint never fails.
func (s *Server) OAuthStartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := s.flow.StartSession(s.config.GetPort())
		writeJSON(w, http.StatusOK, resp)
	}
}

// OAuthStatusHandler answers "what is the current state of session X"
// for polling consumers. Expired and never-existed tokens are
// indistinguishable so the endpoint does not leak token validity.
func (s *Server) OAuthStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := r.URL.Query().Get("state")
		if state == "" {
			http.Error(w, "Missing state parameter", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, s.flow.GetStatus(state))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
