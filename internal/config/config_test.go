package config_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/bsky-session-server/internal/config"
	"github.com/jrsteele09/bsky-session-server/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestIsValidAppPassword(t *testing.T) {
	tests := []struct {
		password string
		valid    bool
	}{
		{"abcd-efgh-ijkl-mnop", true},
		{"a1b2-c3d4-e5f6-g7h8", true},
		{"short", false},
		{"ABCD-efgh-ijkl-mnop", false},
		{"abcd-efgh-ijkl", false},
		{"abcd-efgh-ijkl-mnop-qrst", false},
		{"abcd_efgh_ijkl_mnop", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			require.Equal(t, tt.valid, config.IsValidAppPassword(tt.password))
		})
	}
}

func TestValidateCredentials(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		t.Setenv("IDENTIFIER", "alice.bsky.social")
		t.Setenv("PASSWORD", "abcd-efgh-ijkl-mnop")
		require.NoError(t, config.ValidateCredentials(config.New()))
	})

	t.Run("missing identifier", func(t *testing.T) {
		t.Setenv("IDENTIFIER", "")
		t.Setenv("PASSWORD", "abcd-efgh-ijkl-mnop")
		require.ErrorIs(t, config.ValidateCredentials(config.New()), errors.ErrMissingCredentials)
	})

	t.Run("missing password", func(t *testing.T) {
		t.Setenv("IDENTIFIER", "alice.bsky.social")
		t.Setenv("PASSWORD", "")
		require.ErrorIs(t, config.ValidateCredentials(config.New()), errors.ErrMissingCredentials)
	})

	t.Run("malformed password", func(t *testing.T) {
		t.Setenv("IDENTIFIER", "alice.bsky.social")
		t.Setenv("PASSWORD", "short")
		require.ErrorIs(t, config.ValidateCredentials(config.New()), errors.ErrInvalidAppPassword)
	})
}

func TestValidate_ProviderTimeout(t *testing.T) {
	t.Setenv("IDENTIFIER", "alice.bsky.social")
	t.Setenv("PASSWORD", "abcd-efgh-ijkl-mnop")

	t.Setenv("PROVIDER_TIMEOUT", "")
	timeout, err := config.New().GetProviderTimeout()
	require.NoError(t, err)
	require.Equal(t, 10*time.Second, timeout)

	t.Setenv("PROVIDER_TIMEOUT", "not-a-duration")
	require.ErrorIs(t, config.Validate(config.New()), errors.ErrInvalidConfig)

	t.Setenv("PROVIDER_TIMEOUT", "-1s")
	require.ErrorIs(t, config.Validate(config.New()), errors.ErrInvalidConfig)
}

func TestDefaults(t *testing.T) {
	t.Setenv("BSKY_SERVICE", "")
	t.Setenv("COOKIE_SECRET", "")
	t.Setenv("ENV", "")

	c := config.New()
	require.Equal(t, ":3000", c.GetPort())
	require.Equal(t, "https://bsky.social", c.GetServiceURL())
	require.Nil(t, c.GetCookieSecret())
	require.Equal(t, "DEV", c.GetEnv())

	t.Setenv("COOKIE_SECRET", "s3cret")
	require.Equal(t, []byte("s3cret"), c.GetCookieSecret())
}
