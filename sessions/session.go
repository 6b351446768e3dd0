package sessions

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// SessionData is the Bluesky session carried between requests in the client's cookies.
// A session is only usable when every field has been populated; partial sessions are
// discarded and replaced by a fresh login.
type SessionData struct {
	AccessJwt  string  // Short-lived bearer token
	RefreshJwt string  // Used to mint a new access/refresh pair
	Handle     string  // Human-readable account name, e.g. alice.bsky.social
	Did        string  // Stable account identifier assigned by the provider
	Active     bool    // Whether the account is usable
	Status     *string // Reason the account is inactive, nil when active
}

// StatusString returns the status or "" when none is set.
func (s *SessionData) StatusString() string {
	if s.Status == nil {
		return ""
	}
	return *s.Status
}

// SameTokens reports whether both sessions hold the same access and refresh tokens.
func (s *SessionData) SameTokens(other *SessionData) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.AccessJwt == other.AccessJwt && s.RefreshJwt == other.RefreshJwt
}

func (s *SessionData) Clone() *SessionData {
	if s == nil {
		return nil
	}
	clone := *s
	if s.Status != nil {
		status := *s.Status
		clone.Status = &status
	}
	return &clone
}

// AccessExpiry reads the exp claim of the access token without verifying its signature.
// The provider remains the authority on validity; this is only used to skip a
// validation round trip for tokens that have plainly expired.
func (s *SessionData) AccessExpiry() (time.Time, bool) {
	token, _, err := jwtlib.NewParser().ParseUnverified(s.AccessJwt, jwtlib.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
