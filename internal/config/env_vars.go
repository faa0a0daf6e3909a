package config

import "os"

const (
	portEnvVar   = "PORT"
	appNameVar   = "APP_NAME"
	folderEnvVar = "FOLDER"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

// GetPort returns the numeric listening port. Malformed values are
// handled downstream by falling back to the default port.
func (EnvVars) GetPort() string {
	return GetEnv(portEnvVar, "8080")
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Antigravity2Api")
}

func (EnvVars) GetDataFolder() string {
	return GetEnv(folderEnvVar, "./data")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
