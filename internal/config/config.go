package config

type Config interface {
	EnvConfig
	CredentialsConfig
	CookieConfig
	ProviderConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetLogLevel() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	Credentials
	Cookies
	Provider
}

func New() Config {
	return mainConfig{}
}

// Validate checks everything that must hold before the listener is bound.
func Validate(c Config) error {
	if err := ValidateCredentials(c); err != nil {
		return err
	}
	if _, err := c.GetProviderTimeout(); err != nil {
		return err
	}
	return nil
}
