package profiling

import (
	"net/http"
	"net/http/pprof"

	"github.com/labstack/echo/v4"
)

const prefix = "/debug/pprof"

// namedProfiles are served by pprof.Handler under their own name.
var namedProfiles = []string{
	"allocs",
	"block",
	"goroutine",
	"heap",
	"mutex",
	"threadcreate",
}

// RegisterRoutes mounts the runtime profiling endpoints under /debug/pprof.
// They expose process internals and are only mounted when explicitly enabled.
func RegisterRoutes(e *echo.Echo) {
	g := e.Group(prefix)
	g.GET("/", echo.WrapHandler(http.HandlerFunc(pprof.Index)))
	g.GET("/cmdline", echo.WrapHandler(http.HandlerFunc(pprof.Cmdline)))
	g.GET("/profile", echo.WrapHandler(http.HandlerFunc(pprof.Profile)))
	g.GET("/symbol", echo.WrapHandler(http.HandlerFunc(pprof.Symbol)))
	g.GET("/trace", echo.WrapHandler(http.HandlerFunc(pprof.Trace)))

	for _, name := range namedProfiles {
		g.GET("/"+name, echo.WrapHandler(pprof.Handler(name)))
	}
}
