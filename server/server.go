package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/ACG22333/Antigravity2Api/accounts"
	"github.com/ACG22333/Antigravity2Api/internal/config"
	"github.com/ACG22333/Antigravity2Api/oauthflow"
	"golang.org/x/crypto/bcrypt"
)

type Server struct {
	env      string // Environment (e.g., "development", "production")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	flow     *oauthflow.Service
	accounts *accounts.Manager

	// bcrypt hash of the management key; nil disables the admin routes
	managementKeyHash []byte
}

func New(cfg config.Config, flow *oauthflow.Service, accountManager *accounts.Manager) (*Server, error) {
	s := &Server{
		mux:      http.NewServeMux(),
		config:   cfg,
		flow:     flow,
		accounts: accountManager,
	}
	s.env = cfg.GetEnv()

	hash, err := prepareManagementKeyHash(cfg)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to prepare management key: %w", err)
	}
	s.managementKeyHash = hash

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

// prepareManagementKeyHash prefers a pre-computed bcrypt hash from the
// environment and falls back to hashing the plaintext key at startup.
func prepareManagementKeyHash(cfg config.SecurityConfig) ([]byte, error) {
	if hash := cfg.GetManagementKeyHash(); hash != "" {
		return []byte(hash), nil
	}
	key := cfg.GetManagementKey()
	if key == "" {
		return nil, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return hash, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
