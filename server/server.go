package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jrsteele09/bsky-session-server/internal/config"
	"github.com/jrsteele09/bsky-session-server/internal/errors"
	"github.com/jrsteele09/bsky-session-server/sessions"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	router   chi.Router
	routes   []string
	config   config.EnvConfig
	sessions *sessions.Manager
}

func New(config config.EnvConfig, manager *sessions.Manager) (*Server, error) {
	if manager == nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "[Server New] session manager is required")
	}

	s := &Server{
		router:   chi.NewRouter(),
		config:   config,
		sessions: manager,
	}
	s.env = config.GetEnv()
	s.router.Use(middleware.Recoverer)

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// RegisterRouteFunc registers handler for every method on pattern.
func (s *Server) RegisterRouteFunc(pattern string, handler http.HandlerFunc) {
	s.routes = append(s.routes, pattern)
	s.router.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		log.Debug().Str("route", route).Msg("Registered route")
	}
}
