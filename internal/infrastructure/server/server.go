package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	api "github.com/GriffinCanCode/webdesk/internal/api/http"
	"github.com/GriffinCanCode/webdesk/internal/api/middleware"
	"github.com/GriffinCanCode/webdesk/internal/api/ws"
	"github.com/GriffinCanCode/webdesk/internal/domain/content"
	"github.com/GriffinCanCode/webdesk/internal/domain/session"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/config"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/logging"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/tracing"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	http     *http.Server
	sessions *session.Manager
	catalog  *content.Registry
	tracer   *tracing.Tracer
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics

	stopJanitor context.CancelFunc
	janitorDone chan struct{}
}

// New loads the content catalog, wires the API and starts the idle
// desktop janitor. Call Shutdown to release everything.
func New(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	logger.Info("Initializing webdesk server",
		zap.String("addr", net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)),
		zap.Int("max_desktops", cfg.Desktop.Max),
		zap.Duration("idle_ttl", cfg.Desktop.IdleTTL),
	)

	// Initialize metrics first (needed by other components)
	metrics := monitoring.NewMetrics()
	tracer := tracing.New("webdesk", logger.Component("tracing"))

	catalog, err := content.Load(ctx, content.Sources{
		Catalog:      cfg.Content.Catalog,
		Dir:          cfg.Content.Dir,
		Glob:         cfg.Content.Glob,
		URL:          cfg.Content.URL,
		Sanitize:     cfg.Content.Sanitize,
		FetchTimeout: cfg.Content.FetchTimeout,
		FetchRetries: cfg.Content.FetchRetries,
	}, metrics, logger.Component("content"))
	if err != nil {
		tracer.Close()
		return nil, fmt.Errorf("failed to load content: %w", err)
	}
	logger.Info("Content catalog ready", zap.Int("applications", catalog.Len()))

	sessions := session.NewManager(session.Options{
		Bounds:          cfg.Desktop.Bounds,
		Placement:       cfg.Desktop.Placement(),
		Content:         catalog,
		IdleTTL:         cfg.Desktop.IdleTTL,
		MaxDesktops:     cfg.Desktop.Max,
		CheckInvariants: cfg.Desktop.CheckInvariants,
	}, metrics, logger.Component("session"))

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := api.NewHandlers(sessions, catalog, metrics, logger.Component("http"))
	stream := ws.NewHandler(sessions, ws.Config{
		ReadLimit:     cfg.Stream.ReadLimit,
		GeometryRPS:   cfg.Stream.GeometryRPS,
		GeometryBurst: cfg.Stream.GeometryBurst,
		PingInterval:  cfg.Stream.PingInterval,
	}, metrics, logger.Component("ws"))

	// Register routes
	api.Register(router, handlers, stream.HandleConnection)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	janitorCtx, stop := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		sessions.Run(janitorCtx, time.Minute)
	}()

	logger.Info("Server initialized successfully")

	return &Server{
		router:   router,
		sessions: sessions,
		catalog:  catalog,
		tracer:   tracer,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		stopJanitor: stop,
		janitorDone: done,
	}, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves HTTP until Shutdown is called.
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones until ctx
// expires and stops the background workers.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	err := s.http.Shutdown(ctx)
	if err != nil {
		s.logger.Error("HTTP shutdown incomplete", zap.Error(err))
	}

	s.stopJanitor()
	<-s.janitorDone
	s.tracer.Close()

	s.logger.Info("Server stopped", zap.Int("desktops", s.sessions.Len()))
	_ = s.logger.Sync()
	return err
}
