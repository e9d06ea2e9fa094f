package monitoring

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordHTTPRequest("GET", "/", "200", time.Millisecond, 0, 0)
		m.SetDesktopsActive(3)
		m.AddWindowsOpen(1)
		m.RecordStackOp("open")
		m.RecordInteraction("drag")
		m.RecordGeometryFrame("sent")
		m.IncWSConnections()
		NewTimer(m, "builtin").Stop("success")
	})
	assert.Equal(t, Snapshot{}, m.Snapshot())
}

func TestMetricsIndependentRegistries(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.RecordStackOp("open")
	a.RecordStackOp("open")
	b.RecordStackOp("open")

	assert.Equal(t, float64(2), testutil.ToFloat64(a.StackOps.WithLabelValues("open")))
	assert.Equal(t, float64(1), testutil.ToFloat64(b.StackOps.WithLabelValues("open")))
}

func TestSnapshot(t *testing.T) {
	m := NewMetrics()

	m.RecordHTTPRequest("GET", "/health", "200", 10*time.Millisecond, 0, 10)
	m.RecordHTTPRequest("GET", "/desktops/:id", "404", 30*time.Millisecond, 0, 10)
	m.SetDesktopsActive(2)
	m.AddWindowsOpen(3)
	m.AddWindowsOpen(-1)
	m.IncWSConnections()

	s := m.Snapshot()
	assert.Equal(t, int64(2), s.TotalRequests)
	assert.Equal(t, int64(1), s.TotalErrors)
	assert.Equal(t, int64(2), s.ActiveDesktops)
	assert.Equal(t, int64(2), s.OpenWindows)
	assert.Equal(t, int64(1), s.ActiveConnections)
	assert.InDelta(t, 20.0, s.AvgLatencyMS, 0.001)
	assert.Equal(t, float64(2), testutil.ToFloat64(m.WindowsOpen))
}

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	m := NewMetrics()
	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/desktops/:id", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	for _, id := range []string{"a", "b", "c"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/desktops/"+id, nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, float64(3), testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/desktops/:id", "204")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := NewMetrics()
	m.RecordInteraction("resize")

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `webdesk_interactions_total{kind="resize"} 1`)
	assert.Contains(t, string(body), "webdesk_uptime_seconds")
	assert.Contains(t, string(body), "go_goroutines")
}
