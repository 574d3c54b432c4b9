// Package server assembles the HTTP server for graphweave.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/graphweave/graphweave/internal/profile"
	"github.com/graphweave/graphweave/plugin/ai/credential"
	apiv1 "github.com/graphweave/graphweave/server/router/api/v1"
	"github.com/graphweave/graphweave/server/router/frontend"
)

// Server is the graphweave HTTP server.
type Server struct {
	Profile *profile.Profile

	echoServer *echo.Echo
	apiService *apiv1.APIV1Service
}

// NewServer creates the server with its routes registered.
func NewServer(profile *profile.Profile, logger *slog.Logger) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.Secure())

	s := &Server{
		Profile:    profile,
		echoServer: e,
	}

	resolver := credential.NewResolver(profile.Data)
	s.apiService = apiv1.NewAPIV1Service(profile, resolver, logger)
	s.apiService.Register(e)

	frontend.Serve(e)

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "Service ready.")
	})

	return s, nil
}

// Start starts the server and blocks until the listener fails or the
// context is canceled.
func (s *Server) Start(ctx context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	slog.Info("server started",
		slog.String("address", address),
		slog.String("mode", s.Profile.Mode),
		slog.String("version", s.Profile.Version))

	if err := s.echoServer.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "failed to start echo server")
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	slog.Info("server stopped")
}
