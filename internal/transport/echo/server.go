package echo

import (
	"context"
	"net/http"

	"media-gateway/config"
	"media-gateway/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

const (
	skeletonBodyLimit = "1M"
)

// Dependencies are constructed once at startup and shared read-only by all requests.
type Dependencies struct {
	Config  *config.Config
	Store   ObjectStore
	Logger  *logrus.Logger
	Metrics *metrics.Metrics
}

// Server wraps the Echo server with dependencies
type Server struct {
	echo      *echo.Echo
	address   string
	store     ObjectStore
	log       *logrus.Logger
	metrics   *metrics.Metrics
	// profiling mounts /debug/pprof on the gateway.
	profiling bool
}

// NewGatewayServer builds the upload/list/stream gateway.
func NewGatewayServer(deps *Dependencies) *Server {
	s := newServer(deps)
	s.registerGatewayRoutes()
	return s
}

// NewSkeletonServer builds the placeholder application. It needs no store.
func NewSkeletonServer(deps *Dependencies) *Server {
	s := newServer(deps)
	s.registerSkeletonRoutes()
	return s
}

func newServer(deps *Dependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// Request ID first so every log line carries it.
	e.Use(RequestID())
	e.Use(SecurityHeaders())
	e.Use(RequestLogger(deps.Logger))
	e.Use(deps.Metrics.Middleware())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		Skipper: unroutedRequest,
	}))

	return &Server{
		echo:      e,
		address:   deps.Config.Address(),
		store:     deps.Store,
		log:       deps.Logger,
		metrics:   deps.Metrics,
		profiling: deps.Config.Server.EnableProfiling,
	}
}

// unroutedRequest reports a request that matched no route. Echo leaves the
// route path empty in that case, so preflights fall through to the 404.
func unroutedRequest(c echo.Context) bool {
	return c.Path() == ""
}

// ServeHTTP lets the server be mounted in tests or behind another mux.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start blocks serving HTTP. It returns http.ErrServerClosed after Shutdown.
func (s *Server) Start() error {
	return s.echo.Start(s.address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) healthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}
