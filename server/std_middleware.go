package server

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"slices"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const requestIDHeader = "X-Request-Id"

// ChainMiddleware wraps handler so that mw[0] runs first.
func ChainMiddleware(handler http.HandlerFunc, mw ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	for _, wrap := range slices.Backward(mw) {
		handler = wrap(handler)
	}
	return handler
}

// LoggingMiddleware tags the request with a request id and stores a logger carrying it
// in the request context, where log.Ctx picks it up. Panics further down are logged
// there and answered with the regular 500 response.
func (s *Server) LoggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		logger := log.With().Str("request_id", requestID).Logger()
		logger.Info().Str("method", r.Method).Str("path", r.URL.Path).Msg("Received request")
		r = r.WithContext(logger.WithContext(r.Context()))

		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error().Interface("panic", rec).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
				s.internalError(w, r, fmt.Errorf("panic: %v", rec))
			}
		}()
		next(w, r)
	}
}
