package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emrekoc/campushire/internal/bootstrap"
	"github.com/emrekoc/campushire/internal/config"
	"github.com/emrekoc/campushire/internal/db"
)

// sessionCleanupInterval is how often expired session rows are purged.
const sessionCleanupInterval = time.Hour

// Server holds the state for the HTTP server
type Server struct {
	config      *config.Config
	router      *gin.Engine
	database    *db.PostgresDB
	deps        *bootstrap.Dependencies
	logger      zerolog.Logger
	http        *http.Server
	stopCleanup chan struct{}
}

// NewServer creates and initializes a new server instance by calling the
// bootstrap functions in order.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	database, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, database, lgr)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	router := bootstrap.SetupRouter(cfg, deps, lgr)

	return &Server{
		config:      cfg,
		router:      router,
		database:    database,
		deps:        deps,
		logger:      lgr,
		stopCleanup: make(chan struct{}),
	}, nil
}

// runSessionCleanup periodically deletes sessions past their absolute expiry.
// Revocation does not depend on this; it only keeps the table from growing.
func (s *Server) runSessionCleanup() {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			removed, err := s.deps.Repos.SessionRepository.CleanupExpired(ctx, time.Now())
			cancel()
			if err != nil {
				s.logger.Warn().Err(err).Msg("Session cleanup failed")
				continue
			}
			if removed > 0 {
				s.logger.Info().Int64("removed", removed).Msg("Expired sessions purged")
			}
		case <-s.stopCleanup:
			return
		}
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run() error {
	s.logger.Info().Str("port", s.config.Server.Port).Msg("Starting server...")

	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go s.runSessionCleanup()

	errCh := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		s.database.Close()
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		s.logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	return s.Shutdown()
}

// Shutdown stops the HTTP server gracefully and closes the database pool
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	close(s.stopCleanup)

	var shutdownErr error
	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Error().Err(err).Msg("HTTP server shutdown error")
		shutdownErr = err
	}

	s.database.Close()
	s.logger.Info().Msg("Server stopped")
	return shutdownErr
}
