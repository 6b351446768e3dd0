package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/jrsteele09/bsky-session-server/internal/config"
	"github.com/jrsteele09/bsky-session-server/internal/logging"
	"github.com/jrsteele09/bsky-session-server/server"
	"github.com/jrsteele09/bsky-session-server/sessions"
	"github.com/jrsteele09/bsky-session-server/sessions/atproto"
	"github.com/jrsteele09/bsky-session-server/sessions/cookie"
	"github.com/rs/zerolog/log"
)

func main() {
	// A missing .env file is fine; real environment variables take precedence.
	_ = godotenv.Load()

	if err := run(); err != nil {
		log.Error().Err(err).Msg("Error running server")
		os.Exit(1)
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	logging.Setup(c.GetEnv(), c.GetLogLevel())

	// Nothing is bound until the configuration is known to be usable.
	if err := config.Validate(c); err != nil {
		return err
	}

	handler, err := newHandler(c)
	if err != nil {
		return err
	}

	if c.GetEnv() == "DEV" {
		printBanner(os.Stdout, c.GetAppName())
	}

	httpServer := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serveUntilStopped(httpServer, stopSignal(), 5*time.Second)
}

func newHandler(c config.Config) (http.Handler, error) {
	timeout, err := c.GetProviderTimeout()
	if err != nil {
		return nil, err
	}

	store, err := atproto.NewStore(c.GetServiceURL(), c, timeout)
	if err != nil {
		return nil, fmt.Errorf("atproto.NewStore: %w", err)
	}

	codec := cookie.NewCodec(c.GetCookieSecret())
	log.Info().Str("provider", c.GetServiceURL()).Bool("signed_cookies", codec.Signed()).Msg("Session store configured")

	manager, err := sessions.NewManager(store, codec)
	if err != nil {
		return nil, fmt.Errorf("sessions.NewManager: %w", err)
	}

	return server.New(c, manager)
}

// serveUntilStopped runs srv until it fails or stop fires, then drains in-flight
// requests for at most grace.
func serveUntilStopped(srv *http.Server, stop <-chan os.Signal, grace time.Duration) error {
	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server listening")
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", srv.Addr, err)
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

func stopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func printBanner(w io.Writer, appName string) {
	_, _ = fmt.Fprintln(w, figure.NewFigure(appName, "cybermedium", true).String())
}
