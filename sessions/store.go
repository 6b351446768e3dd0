package sessions

import (
	"context"
	"net/http"
)

// Store obtains and revalidates sessions against the remote identity provider.
// Implementations keep no per-session state between calls.
type Store interface {
	// Login creates a brand new session with the configured credentials
	Login(ctx context.Context) (*SessionData, error)

	// Resume validates session, refreshing it if needed. When the tokens were not
	// rotated the input pointer is returned unchanged.
	Resume(ctx context.Context, session *SessionData) (*SessionData, error)
}

// CookieCodec moves sessions in and out of HTTP cookies.
type CookieCodec interface {
	// DecodeHeader rebuilds a session from a raw Cookie header
	DecodeHeader(header string) (*SessionData, error)

	// Write adds the Set-Cookie directives for session to the response
	Write(w http.ResponseWriter, session *SessionData) error
}
