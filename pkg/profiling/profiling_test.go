package profiling

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRegisterRoutes(t *testing.T) {
	e := echo.New()
	RegisterRoutes(e)

	for _, target := range []string{"/debug/pprof/", "/debug/pprof/cmdline", "/debug/pprof/goroutine?debug=1", "/debug/pprof/heap"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

		assert.Equal(t, http.StatusOK, rec.Code, target)
		assert.NotEmpty(t, rec.Body.Bytes(), target)
	}
}

func TestRegisterRoutes_UnknownProfile(t *testing.T) {
	e := echo.New()
	RegisterRoutes(e)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
