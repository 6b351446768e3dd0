package config

import (
	"time"

	"github.com/jrsteele09/bsky-session-server/internal/errors"
)

const defaultServiceURL = "https://bsky.social"

type ProviderConfig interface {
	GetServiceURL() string
	GetProviderTimeout() (time.Duration, error)
}

type Provider struct{}

var _ ProviderConfig = Provider{}

func (Provider) GetServiceURL() string {
	return GetEnv("BSKY_SERVICE", defaultServiceURL)
}

func (Provider) GetProviderTimeout() (time.Duration, error) {
	raw := GetEnv("PROVIDER_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(raw)
	if err != nil || timeout <= 0 {
		return 0, errors.Wrapf(errors.ErrInvalidConfig, "PROVIDER_TIMEOUT %q", raw)
	}
	return timeout, nil
}
