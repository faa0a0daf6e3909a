package server

import "net/http"

func (s *Server) initRoutes() {
	// OAuth flow
	s.RegisterRouteHandler("GET "+RouteOAuthStart, ChainMiddleware(s.OAuthStartHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteOAuthStatus, ChainMiddleware(s.OAuthStatusHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteOAuthCallback, s.OAuthCallbackHandler())
	s.RegisterRouteFunc("POST "+RouteOAuthCallback, s.OAuthCallbackHandler()) // For form_post response mode

	// Account management (require management key)
	s.RegisterRouteHandler("GET "+RouteAdminAccounts, ChainMiddleware(s.AdminAccountsListHandler(), s.AdminMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteAdminAccountByID, ChainMiddleware(s.AdminAccountDeleteHandler(), s.AdminMiddleware()...))

	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())
}

// HealthHandler reports process liveness
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
