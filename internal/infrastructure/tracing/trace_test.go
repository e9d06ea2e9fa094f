package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GriffinCanCode/webdesk/internal/shared/id"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func observedTracer(t *testing.T) (*Tracer, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	tracer := New("webdesk", zap.New(core))
	t.Cleanup(tracer.Close)
	return tracer, logs
}

func TestStartSpanContinuesTrace(t *testing.T) {
	tracer, _ := observedTracer(t)

	parent, ctx := tracer.StartSpan(context.Background(), "parent")
	child, ctx := tracer.StartSpan(ctx, "child")

	assert.Equal(t, parent.TraceID, child.TraceID)
	assert.Equal(t, parent.SpanID, child.ParentID)
	assert.Empty(t, parent.ParentID)
	assert.Equal(t, child.SpanID, SpanIDFrom(ctx))
	assert.Equal(t, parent.TraceID, TraceIDFrom(ctx))
}

func TestInjectExtractRoundTrip(t *testing.T) {
	tracer, _ := observedTracer(t)
	span, ctx := tracer.StartSpan(context.Background(), "fetch")

	h := http.Header{}
	Inject(ctx, h)
	assert.Equal(t, span.TraceID.String(), h.Get(TraceHeader))

	got := Extract(context.Background(), h)
	assert.Equal(t, span.TraceID, TraceIDFrom(got))
	assert.Equal(t, span.SpanID, SpanIDFrom(got))

	empty := http.Header{}
	Inject(context.Background(), empty)
	assert.Empty(t, empty)
}

func TestSubmitLogsSpans(t *testing.T) {
	tracer, logs := observedTracer(t)

	span, _ := tracer.StartSpan(context.Background(), "ok")
	span.Finish()
	tracer.Submit(span)

	failed, _ := tracer.StartSpan(context.Background(), "broken")
	failed.SetError(errors.New("boom"))
	failed.Finish()
	tracer.Submit(failed)

	tracer.Close()
	require.Eventually(t, func() bool { return logs.Len() == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, logs.FilterMessage("span completed with error").Len())
	assert.Equal(t, 500, failed.StatusCode)
}

func TestHTTPMiddleware(t *testing.T) {
	tracer, logs := observedTracer(t)
	router := gin.New()
	router.Use(HTTPMiddleware(tracer))

	var seen id.TraceID
	router.GET("/desktops/:id", func(c *gin.Context) {
		seen = TraceIDFrom(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/desktops/x", nil)
	req.Header.Set(TraceHeader, "trace_upstream")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, id.TraceID("trace_upstream"), seen)
	assert.Equal(t, "trace_upstream", w.Header().Get(TraceHeader))
	assert.NotEmpty(t, w.Header().Get(SpanHeader))

	require.Eventually(t, func() bool { return logs.Len() == 1 }, time.Second, 5*time.Millisecond)
	entry := logs.All()[0]
	assert.Equal(t, "GET /desktops/:id", entry.ContextMap()["operation"])
	assert.Equal(t, "200", entry.ContextMap()["http.status"])
}
