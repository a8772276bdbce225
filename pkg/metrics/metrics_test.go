package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsRequestsByRoute(t *testing.T) {
	m := New()
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/files", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "yes"})
	})

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, float64(3), testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/files", "200")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.inflight))
}

func TestMiddleware_RecordsErrorStatus(t *testing.T) {
	m := New()
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/stream", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "missing key")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stream", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/stream", "400")))
}

func TestMiddleware_HandlesErrorOnce(t *testing.T) {
	m := New()
	e := echo.New()
	handled := 0
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		handled++
		_ = c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	e.Use(m.Middleware())
	e.GET("/stream", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "missing key")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stream", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 1, handled)
}

func TestByteCounters(t *testing.T) {
	m := New()

	m.AddUploadBytes(10)
	m.AddUploadBytes(-1)
	m.AddStreamBytes(5)
	m.AddStreamBytes(7)
	m.IncStreamAborted()

	assert.Equal(t, float64(10), testutil.ToFloat64(m.uploadBytes))
	assert.Equal(t, float64(12), testutil.ToFloat64(m.streamBytes))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.aborted))
}

func TestHandler_ExposesRegistry(t *testing.T) {
	m := New()
	m.AddStreamBytes(42)

	e := echo.New()
	e.GET("/metrics", m.Handler())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "mediagateway_storage_stream_bytes_total 42")
}
