package sessions

import (
	"context"
	"net/http"

	"github.com/jrsteele09/bsky-session-server/internal/errors"
	"github.com/rs/zerolog/log"
)

// Manager decides per request whether the cookies a client sent can be trusted or a
// new session has to be fetched from the provider.
type Manager struct {
	store Store
	codec CookieCodec
}

// NewManager creates a Manager backed by store, persisting sessions with codec.
func NewManager(store Store, codec CookieCodec) (*Manager, error) {
	if store == nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "[NewManager] store is required")
	}
	if codec == nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "[NewManager] codec is required")
	}
	return &Manager{store: store, codec: codec}, nil
}

// Initialize returns the session described by cookieHeader when it is complete.
// Otherwise it logs in, writes the new cookies to w and reports tokensUpdated.
func (m *Manager) Initialize(ctx context.Context, cookieHeader string, w http.ResponseWriter) (session *SessionData, tokensUpdated bool, err error) {
	logger := log.Ctx(ctx)

	if cookieHeader != "" {
		session, err = m.codec.DecodeHeader(cookieHeader)
		if err == nil {
			logger.Debug().Str("handle", session.Handle).Msg("Session restored from cookies")
			return session, false, nil
		}
		if !errors.Is(err, errors.ErrIncompleteSession) && !errors.Is(err, errors.ErrCookieTampered) {
			return nil, false, errors.Wrapf(err, "[Manager Initialize] decode cookies")
		}
		logger.Info().Err(err).Msg("Invalid cookies, logging in")
	} else {
		logger.Info().Msg("No cookies, logging in")
	}

	session, err = m.store.Login(ctx)
	if err != nil {
		return nil, false, errors.Wrapf(err, "[Manager Initialize] login")
	}

	if w != nil {
		if err := m.Persist(w, session); err != nil {
			return nil, false, err
		}
	}
	return session, true, nil
}

// EnsureValid resumes session with the provider, falling back to a fresh login when
// the provider rejects it. rotated is true whenever the returned tokens differ from
// the ones passed in.
func (m *Manager) EnsureValid(ctx context.Context, session *SessionData) (resumed *SessionData, rotated bool, err error) {
	logger := log.Ctx(ctx)

	resumed, err = m.store.Resume(ctx, session)
	if err == nil {
		rotated = !resumed.SameTokens(session)
		if rotated {
			logger.Info().Str("handle", resumed.Handle).Msg("Tokens were rotated during session validation")
		}
		return resumed, rotated, nil
	}

	logger.Warn().Err(err).Msg("Session resume failed, logging in")
	resumed, err = m.store.Login(ctx)
	if err != nil {
		return nil, false, errors.Wrapf(err, "[Manager EnsureValid] login")
	}
	return resumed, true, nil
}

// Persist writes session to the response as cookies.
func (m *Manager) Persist(w http.ResponseWriter, session *SessionData) error {
	if err := m.codec.Write(w, session); err != nil {
		return errors.Wrapf(err, "[Manager Persist]")
	}
	return nil
}
