package config

import (
	"os"
	"regexp"

	"github.com/jrsteele09/bsky-session-server/internal/errors"
)

const (
	identifierEnvVar = "IDENTIFIER"
	passwordEnvVar   = "PASSWORD"
)

var appPasswordPattern = regexp.MustCompile(`^[a-z0-9]{4}-[a-z0-9]{4}-[a-z0-9]{4}-[a-z0-9]{4}$`)

type CredentialsConfig interface {
	GetIdentifier() string
	GetPassword() string
}

type Credentials struct{}

var _ CredentialsConfig = Credentials{}

func (Credentials) GetIdentifier() string {
	return os.Getenv(identifierEnvVar)
}

func (Credentials) GetPassword() string {
	return os.Getenv(passwordEnvVar)
}

// IsValidAppPassword reports whether p has the xxxx-xxxx-xxxx-xxxx app password shape.
func IsValidAppPassword(p string) bool {
	return appPasswordPattern.MatchString(p)
}

// ValidateCredentials returns ErrMissingCredentials when either value is unset and
// ErrInvalidAppPassword when the password is not an app password.
func ValidateCredentials(c CredentialsConfig) error {
	if c.GetIdentifier() == "" || c.GetPassword() == "" {
		return errors.ErrMissingCredentials
	}
	if !IsValidAppPassword(c.GetPassword()) {
		return errors.ErrInvalidAppPassword
	}
	return nil
}
