package config

type SecurityConfig interface {
	GetManagementKey() string
	GetManagementKeyHash() string
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetManagementKey returns the plaintext key protecting the account
// management endpoints. Empty disables those endpoints.
func (Security) GetManagementKey() string {
	return GetEnv("MANAGEMENT_KEY", "")
}

// GetManagementKeyHash returns a pre-computed bcrypt hash of the
// management key, for deployments that do not want the plaintext key in
// the environment. Takes precedence over MANAGEMENT_KEY.
func (Security) GetManagementKeyHash() string {
	return GetEnv("MANAGEMENT_KEY_HASH", "")
}
