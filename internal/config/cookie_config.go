package config

type CookieConfig interface {
	GetCookieSecret() []byte
}

type Cookies struct{}

var _ CookieConfig = Cookies{}

// GetCookieSecret returns the HMAC key used to sign session cookies, or nil when
// cookies are written unsigned.
func (Cookies) GetCookieSecret() []byte {
	secret := GetEnv("COOKIE_SECRET", "")
	if secret == "" {
		return nil
	}
	return []byte(secret)
}
