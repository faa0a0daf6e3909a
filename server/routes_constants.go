package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// OAuth flow routes
	RouteOAuthStart    = "/oauth/start"
	RouteOAuthStatus   = "/oauth/status"
	RouteOAuthCallback = "/oauth-callback"

	// Account management routes
	RouteAdminAccounts    = "/admin/accounts"
	RouteAdminAccountByID = "/admin/accounts/{id}"

	// Health
	RouteHealth = "/healthz"
)
