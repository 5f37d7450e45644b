// Package server contains the HTTP server that hosts Dark Star games. Each
// client creates its own session and plays it by sending commands; deferred
// output is pushed over a websocket.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dekarrin/darkstar/internal/dsw"
	"github.com/dekarrin/darkstar/internal/game"
	"github.com/dekarrin/darkstar/internal/logging"
	"github.com/dekarrin/darkstar/internal/tuning"
	"github.com/dekarrin/darkstar/server/api"
	"github.com/dekarrin/darkstar/server/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// DefaultListenAddress is used by ServeForever when no address is given.
const DefaultListenAddress = "localhost:8080"

const shutdownTimeout = 5 * time.Second

// Config configures a Server.
type Config struct {
	// WorldFile is the DSW data or manifest file each session's world is
	// loaded from.
	WorldFile string

	// TuningFile is an optional YAML tuning file shared by every session.
	TuningFile string

	// Log receives diagnostics. If nil, nothing is logged.
	Log *logrus.Logger
}

// Server is an HTTP server that provides Dark Star games. The zero-value of a
// Server should not be used directly; call New() to get one ready for use.
type Server struct {
	router   chi.Router
	sessions *session.Store
	log      *logrus.Logger
}

// New creates a new Server. The world file is loaded once to check it before
// New returns.
func New(cfg Config) (*Server, error) {
	log := cfg.Log
	if log == nil {
		log = logging.Discard()
	}
	dsw.SetLogger(log.WithField("component", "dsw"))

	loadWorld := func() (*game.World, error) {
		return dsw.LoadResourceBundle(cfg.WorldFile)
	}
	if _, err := loadWorld(); err != nil {
		return nil, fmt.Errorf("load world: %w", err)
	}

	tune, err := tuning.Load(cfg.TuningFile)
	if err != nil {
		return nil, fmt.Errorf("load tuning: %w", err)
	}

	srv := &Server{
		sessions: session.NewStore(loadWorld, tune, log.WithField("component", "session")),
		log:      log,
	}

	a := api.New(srv.sessions, log.WithField("component", "api"))

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Mount(api.PathPrefix, a.Router())
	srv.router = r

	return srv, nil
}

// Handler returns the root handler of the server.
func (srv *Server) Handler() http.Handler {
	return srv.router
}

// Close ends every running game.
func (srv *Server) Close() {
	srv.sessions.CloseAll()
}

// ServeForever listens on addr for HTTP requests until ctx is done, then shuts
// down gracefully and ends every running game. If addr is "",
// DefaultListenAddress is used.
func (srv *Server) ServeForever(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultListenAddress
	}

	httpSrv := &http.Server{
		Addr:    addr,
		Handler: srv.router,
	}
	defer srv.Close()

	errCh := make(chan error, 1)
	go func() {
		srv.log.Infof("Listening on %s", addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	srv.log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
