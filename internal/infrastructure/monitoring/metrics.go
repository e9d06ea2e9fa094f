package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Desktop metrics
	DesktopsActive  prometheus.Gauge
	DesktopsCreated prometheus.Counter
	DesktopsReaped  prometheus.Counter
	WindowsOpen     prometheus.Gauge
	StackOps        *prometheus.CounterVec
	Interactions    *prometheus.CounterVec
	PointerEvents   *prometheus.CounterVec

	// Content metrics
	CatalogApps     prometheus.Gauge
	ContentLoads    *prometheus.CounterVec
	ContentDuration *prometheus.HistogramVec

	// WebSocket metrics
	WSConnections  prometheus.Gauge
	WSMessages     *prometheus.CounterVec
	GeometryFrames *prometheus.CounterVec

	startTime time.Time

	// Snapshot for the JSON health endpoint
	snapshot Snapshot
	mu       sync.RWMutex
}

// Snapshot holds current metric values for JSON responses.
type Snapshot struct {
	TotalRequests     int64   `json:"total_requests"`
	TotalErrors       int64   `json:"total_errors"`
	ActiveDesktops    int64   `json:"active_desktops"`
	OpenWindows       int64   `json:"open_windows"`
	ActiveConnections int64   `json:"active_connections"`
	AvgLatencyMS      float64 `json:"avg_latency_ms"`
	UptimeSeconds     float64 `json:"uptime_seconds"`

	totalDuration float64
}

// NewMetrics creates a collector backed by its own registry, which also
// carries the Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webdesk_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webdesk_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webdesk_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),

		DesktopsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "webdesk_desktops_active",
			Help: "Number of live desktops",
		}),
		DesktopsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "webdesk_desktops_created_total",
			Help: "Total number of desktops created",
		}),
		DesktopsReaped: factory.NewCounter(prometheus.CounterOpts{
			Name: "webdesk_desktops_reaped_total",
			Help: "Total number of desktops removed after idling",
		}),
		WindowsOpen: factory.NewGauge(prometheus.GaugeOpts{
			Name: "webdesk_windows_open",
			Help: "Number of open windows across all desktops",
		}),
		StackOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_stack_operations_total",
				Help: "Total number of open, close and focus operations",
			},
			[]string{"op"},
		),
		Interactions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_interactions_total",
				Help: "Total number of drag and resize sessions started",
			},
			[]string{"kind"},
		),
		PointerEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_pointer_events_total",
				Help: "Total number of pointer events applied",
			},
			[]string{"type"},
		),

		CatalogApps: factory.NewGauge(prometheus.GaugeOpts{
			Name: "webdesk_catalog_applications",
			Help: "Number of applications in the content catalog",
		}),
		ContentLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_content_loads_total",
				Help: "Total number of content source loads",
			},
			[]string{"source", "status"},
		),
		ContentDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webdesk_content_load_duration_seconds",
				Help:    "Content source load duration in seconds",
				Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
			},
			[]string{"source"},
		),

		WSConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "webdesk_ws_connections",
			Help: "Number of active pointer stream connections",
		}),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_ws_messages_total",
				Help: "Total number of pointer stream messages",
			},
			[]string{"direction", "type"},
		),
		GeometryFrames: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webdesk_geometry_frames_total",
				Help: "Geometry frames produced during drag and resize",
			},
			[]string{"result"},
		),
	}

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "webdesk_uptime_seconds",
		Help: "Server uptime in seconds",
	}, func() float64 {
		return time.Since(m.startTime).Seconds()
	})

	return m
}

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.totalDuration += duration.Seconds()
	if status[0] == '4' || status[0] == '5' {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// SetDesktopsActive sets the number of live desktops.
func (m *Metrics) SetDesktopsActive(count int) {
	if m == nil {
		return
	}
	m.DesktopsActive.Set(float64(count))
	m.mu.Lock()
	m.snapshot.ActiveDesktops = int64(count)
	m.mu.Unlock()
}

// IncDesktopsCreated increments the created desktops counter.
func (m *Metrics) IncDesktopsCreated() {
	if m == nil {
		return
	}
	m.DesktopsCreated.Inc()
}

// AddDesktopsReaped adds n reaped desktops.
func (m *Metrics) AddDesktopsReaped(n int) {
	if m == nil {
		return
	}
	m.DesktopsReaped.Add(float64(n))
}

// AddWindowsOpen adjusts the open windows gauge by delta.
func (m *Metrics) AddWindowsOpen(delta int) {
	if m == nil || delta == 0 {
		return
	}
	m.WindowsOpen.Add(float64(delta))
	m.mu.Lock()
	m.snapshot.OpenWindows += int64(delta)
	m.mu.Unlock()
}

// RecordStackOp counts an open, close or focus.
func (m *Metrics) RecordStackOp(op string) {
	if m == nil {
		return
	}
	m.StackOps.WithLabelValues(op).Inc()
}

// RecordInteraction counts a started drag or resize.
func (m *Metrics) RecordInteraction(kind string) {
	if m == nil {
		return
	}
	m.Interactions.WithLabelValues(kind).Inc()
}

// RecordPointerEvent counts an applied pointer event.
func (m *Metrics) RecordPointerEvent(eventType string) {
	if m == nil {
		return
	}
	m.PointerEvents.WithLabelValues(eventType).Inc()
}

// SetCatalogApps sets the number of catalog applications.
func (m *Metrics) SetCatalogApps(count int) {
	if m == nil {
		return
	}
	m.CatalogApps.Set(float64(count))
}

// RecordContentLoad records one content source load.
func (m *Metrics) RecordContentLoad(source, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.ContentLoads.WithLabelValues(source, status).Inc()
	m.ContentDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordWSMessage records a WebSocket message.
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	if m == nil {
		return
	}
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// RecordGeometryFrame records a geometry frame as "sent" or "dropped".
func (m *Metrics) RecordGeometryFrame(result string) {
	if m == nil {
		return
	}
	m.GeometryFrames.WithLabelValues(result).Inc()
}

// IncWSConnections increments WebSocket connections.
func (m *Metrics) IncWSConnections() {
	if m == nil {
		return
	}
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.ActiveConnections++
	m.mu.Unlock()
}

// DecWSConnections decrements WebSocket connections.
func (m *Metrics) DecWSConnections() {
	if m == nil {
		return
	}
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.ActiveConnections--
	m.mu.Unlock()
}

// Snapshot returns the current values for JSON responses.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	m.mu.RLock()
	s := m.snapshot
	m.mu.RUnlock()

	if s.TotalRequests > 0 {
		s.AvgLatencyMS = s.totalDuration / float64(s.TotalRequests) * 1000
	}
	s.UptimeSeconds = time.Since(m.startTime).Seconds()
	return s
}
