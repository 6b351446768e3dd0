package server

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// FaviconHandler answers favicon requests with 204 and never touches the session.
func (s *Server) FaviconHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}

// SessionHandler makes sure the caller holds a usable Bluesky session and greets them.
// New cookies are only sent when tokens were issued or rotated during this request.
func (s *Server) SessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := log.Ctx(ctx)

		// HTTP/2 clients may split cookies across several headers.
		cookieHeader := strings.Join(r.Header.Values("Cookie"), "; ")

		session, tokensUpdated, err := s.sessions.Initialize(ctx, cookieHeader, w)
		if err != nil {
			s.internalError(w, r, err)
			return
		}

		if !tokensUpdated && cookieHeader != "" {
			logger.Debug().Msg("Cookies present, ensuring session is valid")
			resumed, rotated, err := s.sessions.EnsureValid(ctx, session)
			if err != nil {
				s.internalError(w, r, err)
				return
			}
			if rotated {
				if err := s.sessions.Persist(w, resumed); err != nil {
					s.internalError(w, r, err)
					return
				}
			}
			session = resumed
		}

		logger.Info().Str("handle", session.Handle).Bool("tokens_updated", tokensUpdated).Msg("Session ready")
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(helloBody))
	}
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	log.Ctx(r.Context()).Error().Err(err).Msg("Failed to initialize session")
	w.Header().Del("Set-Cookie")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(internalErrorBody))
}
