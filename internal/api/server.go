// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	apimodel "github.com/gatehouse-id/gatehouse/internal/api/model"
	"github.com/gatehouse-id/gatehouse/internal/console"
	"github.com/gatehouse-id/gatehouse/internal/logging"
	pkgmodel "github.com/gatehouse-id/gatehouse/pkg/model"
)

const (
	BasePath        = "/api/v1"
	ViewsRoute      = BasePath + "/views"
	ViewRoute       = BasePath + "/views/:id"
	ViewSourceRoute = BasePath + "/views/:id/source"
	OverviewRoute   = BasePath + "/overview"
	StatsRoute      = BasePath + "/stats"

	HealthRoute  = BasePath + "/health"
	MetricsRoute = "/metrics"
)

type Server struct {
	echo           *echo.Echo
	console        console.ConsoleAPI
	ctx            context.Context
	serverConfig   *pkgmodel.ServerConfig
	metricsHandler http.Handler
}

func NewServer(ctx context.Context, consoleAPI console.ConsoleAPI, serverConfig *pkgmodel.ServerConfig, metricsHandler http.Handler) *Server {
	server := &Server{
		console:        consoleAPI,
		ctx:            ctx,
		serverConfig:   serverConfig,
		metricsHandler: metricsHandler,
	}

	server.echo = server.configureEcho()

	return server
}

// Start launches the server in a separate goroutine
func (s *Server) Start() {
	go func() {
		listen := fmt.Sprintf(":%d", s.serverConfig.Port)

		if s.serverConfig.TLSCert != "" && s.serverConfig.TLSKey != "" {
			if err := s.echo.StartTLS(listen, s.serverConfig.TLSCert, s.serverConfig.TLSKey); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.echo.Logger.Error(err)
			}
		} else {
			if err := s.echo.Start(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.echo.Logger.Error(err)
			}
		}
	}()
	<-s.ctx.Done()
	s.Stop(false)
}

// Stop gracefully shuts down the server, waiting for ongoing requests to complete
func (s *Server) Stop(_ bool) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()
	slog.Info("API server received shutdown")
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		slog.Info("API server error when shutting down", "error", err)
	}
	slog.Info("API Server successfully shutdown")
}

func (s *Server) configureEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Logger = logging.NewEchoLogger()
	e.StdLogger = log.Default()

	// View session endpoints
	e.POST(ViewsRoute, s.OpenView)
	e.PUT(ViewSourceRoute, s.ShowSource)
	e.GET(ViewRoute, s.View)
	e.DELETE(ViewRoute, s.CloseView)

	// Admin overview endpoint
	e.GET(OverviewRoute, s.Overview)

	// Usage stats endpoint
	e.GET(StatsRoute, s.Stats)

	// Health endpoint
	e.GET(HealthRoute, s.Health)

	// Prometheus metrics endpoint (if enabled)
	if s.metricsHandler != nil {
		e.GET(MetricsRoute, echo.WrapHandler(s.metricsHandler))
	}

	return e
}

// OpenView opens a new view session and answers with its ID. The Location
// header points at the session resource.
func (s *Server) OpenView(c echo.Context) error {
	viewID, err := s.console.OpenView()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	c.Response().Header().Set("Location", strings.Replace(ViewRoute, ":id", viewID, 1))

	return c.JSON(http.StatusCreated, apimodel.OpenViewResponse{ViewID: viewID})
}

// ShowSource sets the slug a view session should present. The resolution is
// asynchronous: the request is answered with 202 and the caller polls the
// session resource for the rendered view.
func (s *Server) ShowSource(c echo.Context) error {
	viewID := c.Param("id")

	var req apimodel.ShowSourceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Slug == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Slug is required")
	}

	if err := s.console.ShowSource(viewID, req.Slug); err != nil {
		return mapError(err)
	}

	c.Response().Header().Set("Location", strings.Replace(ViewRoute, ":id", viewID, 1))

	return c.NoContent(http.StatusAccepted)
}

// View answers with what the session should display right now: the loading
// view, the rendered source detail, or the unknown-kind fallback.
func (s *Server) View(c echo.Context) error {
	view, err := s.console.View(c.Param("id"))
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, view)
}

// CloseView closes a view session.
func (s *Server) CloseView(c echo.Context) error {
	if err := s.console.CloseView(c.Param("id")); err != nil {
		return mapError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Overview answers with the last collected admin overview snapshot.
func (s *Server) Overview(c echo.Context) error {
	snapshot, err := s.console.Overview()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, snapshot)
}

// Stats answers with usage statistics of the running console.
func (s *Server) Stats(c echo.Context) error {
	stats, err := s.console.Stats()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, stats)
}

// Health is a simple health check endpoint to verify that the API server is running.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, nil)
}

// mapError maps console errors to appropriate HTTP responses
func mapError(err error) error {
	if errors.Is(err, console.ErrViewNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
