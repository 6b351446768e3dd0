package config

import (
	"os"
)

const (
	// The listener address is fixed.
	listenAddr = ":3000"

	appNameVar  = "APP_NAME"
	logLevelVar = "LOG_LEVEL"
	envVar      = "ENV"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	return listenAddr
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Bsky Session")
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelVar, "info")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv(envVar)
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
