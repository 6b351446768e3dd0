// Package atproto implements sessions.Store against an AT Protocol PDS using
// app-password sessions (com.atproto.server.*).
package atproto

import (
	"context"
	"net/http"
	"time"

	comatproto "github.com/bluesky-social/indigo/api/atproto"
	"github.com/bluesky-social/indigo/xrpc"
	"github.com/jrsteele09/bsky-session-server/internal/config"
	"github.com/jrsteele09/bsky-session-server/internal/errors"
	"github.com/jrsteele09/bsky-session-server/internal/utils"
	"github.com/jrsteele09/bsky-session-server/sessions"
	"github.com/rs/zerolog/log"
)

var _ sessions.Store = (*Store)(nil)

// Store talks to the provider with a fresh xrpc.Client per call, so no session is
// ever shared between requests. Only the http.Client is reused.
type Store struct {
	host        string
	credentials config.CredentialsConfig
	httpClient  *http.Client
	nowTime     func() time.Time
}

// StoreOption defines a function type to modify the Store instance.
type StoreOption func(*Store)

// WithHTTPClient replaces the http.Client used for provider calls
func WithHTTPClient(c *http.Client) StoreOption {
	return func(s *Store) {
		s.httpClient = c
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) StoreOption {
	return func(s *Store) {
		s.nowTime = nowFunc
	}
}

// NewStore creates a Store for the PDS at host, e.g. https://bsky.social.
func NewStore(host string, credentials config.CredentialsConfig, timeout time.Duration, options ...StoreOption) (*Store, error) {
	if host == "" {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "[atproto NewStore] host is required")
	}
	if credentials == nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "[atproto NewStore] credentials are required")
	}

	s := &Store{
		host:        host,
		credentials: credentials,
		httpClient:  &http.Client{Timeout: timeout},
		nowTime:     time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Login calls com.atproto.server.createSession with the configured identifier and
// app password. Accounts that do not report a status are treated as active.
func (s *Store) Login(ctx context.Context) (*sessions.SessionData, error) {
	out, err := comatproto.ServerCreateSession(ctx, s.client(nil), &comatproto.ServerCreateSession_Input{
		Identifier: s.credentials.GetIdentifier(),
		Password:   s.credentials.GetPassword(),
	})
	if err != nil {
		return nil, errors.WithCause(errors.ErrLoginFailed, err)
	}

	session := &sessions.SessionData{
		AccessJwt:  out.AccessJwt,
		RefreshJwt: out.RefreshJwt,
		Handle:     out.Handle,
		Did:        out.Did,
		Active:     utils.ValueOr(out.Active, true),
		Status:     out.Status,
	}
	log.Ctx(ctx).Info().Str("handle", session.Handle).Str("did", session.Did).Msg("Obtained new session tokens")
	return session, nil
}

// Resume checks session with com.atproto.server.getSession. If the access token is
// rejected, or has visibly expired already, the refresh token is exchanged via
// com.atproto.server.refreshSession.
func (s *Store) Resume(ctx context.Context, session *sessions.SessionData) (*sessions.SessionData, error) {
	logger := log.Ctx(ctx)

	if exp, ok := session.AccessExpiry(); ok && !s.nowTime().Before(exp) {
		logger.Debug().Time("exp", exp).Msg("Access token expired, refreshing")
	} else {
		_, err := comatproto.ServerGetSession(ctx, s.client(&xrpc.AuthInfo{
			AccessJwt:  session.AccessJwt,
			RefreshJwt: session.RefreshJwt,
			Handle:     session.Handle,
			Did:        session.Did,
		}))
		if err == nil {
			return session, nil
		}
		logger.Debug().Err(err).Msg("getSession rejected access token, refreshing")
	}

	// refreshSession authenticates with the refresh token in place of the access token.
	out, err := comatproto.ServerRefreshSession(ctx, s.client(&xrpc.AuthInfo{
		AccessJwt:  session.RefreshJwt,
		RefreshJwt: session.RefreshJwt,
		Handle:     session.Handle,
		Did:        session.Did,
	}))
	if err != nil {
		return nil, errors.WithCause(errors.ErrResumeFailed, err)
	}

	refreshed := &sessions.SessionData{
		AccessJwt:  out.AccessJwt,
		RefreshJwt: out.RefreshJwt,
		Handle:     out.Handle,
		Did:        out.Did,
		Active:     utils.ValueOr(out.Active, true),
		Status:     out.Status,
	}
	if refreshed.SameTokens(session) {
		return session, nil
	}
	return refreshed, nil
}

func (s *Store) client(auth *xrpc.AuthInfo) *xrpc.Client {
	return &xrpc.Client{
		Client: s.httpClient,
		Host:   s.host,
		Auth:   auth,
	}
}
