package config

import (
	"fmt"
	"time"

	"github.com/GriffinCanCode/webdesk/internal/domain/window"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Desktop   DesktopConfig
	Content   ContentConfig
	Stream    StreamConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// DesktopConfig holds window manager geometry and session limits.
type DesktopConfig struct {
	MinWidth        int           `envconfig:"DESKTOP_MIN_WIDTH" default:"320"`
	MinHeight       int           `envconfig:"DESKTOP_MIN_HEIGHT" default:"180"`
	TopChrome       int           `envconfig:"DESKTOP_TOP_CHROME" default:"10"`
	BottomChrome    int           `envconfig:"DESKTOP_BOTTOM_CHROME" default:"70"`
	SafeMargin      int           `envconfig:"DESKTOP_SAFE_MARGIN" default:"10"`
	BaseX           int           `envconfig:"DESKTOP_BASE_X" default:"120"`
	BaseY           int           `envconfig:"DESKTOP_BASE_Y" default:"80"`
	CascadeOffset   int           `envconfig:"DESKTOP_CASCADE_OFFSET" default:"32"`
	DefaultWidth    int           `envconfig:"DESKTOP_DEFAULT_WIDTH" default:"540"`
	DefaultHeight   int           `envconfig:"DESKTOP_DEFAULT_HEIGHT" default:"360"`
	FitReserve      int           `envconfig:"DESKTOP_FIT_RESERVE" default:"130"`
	IdleTTL         time.Duration `envconfig:"DESKTOP_IDLE_TTL" default:"30m"`
	Max             int           `envconfig:"DESKTOP_MAX" default:"1000"`
	CheckInvariants bool          `envconfig:"DESKTOP_CHECK_INVARIANTS" default:"false"`
}

// ContentConfig holds the sources of application content.
type ContentConfig struct {
	Catalog      string        `envconfig:"CONTENT_CATALOG" default:""`
	Dir          string        `envconfig:"CONTENT_DIR" default:""`
	Glob         string        `envconfig:"CONTENT_GLOB" default:"**/*.{html,txt,md}"`
	URL          string        `envconfig:"CONTENT_URL" default:""`
	Sanitize     bool          `envconfig:"CONTENT_SANITIZE" default:"true"`
	FetchTimeout time.Duration `envconfig:"CONTENT_FETCH_TIMEOUT" default:"10s"`
	FetchRetries int           `envconfig:"CONTENT_FETCH_RETRIES" default:"3"`
}

// StreamConfig holds pointer stream (WebSocket) settings.
type StreamConfig struct {
	ReadLimit     int64         `envconfig:"STREAM_READ_LIMIT" default:"4096"`
	GeometryRPS   float64       `envconfig:"STREAM_GEOMETRY_RPS" default:"60"`
	GeometryBurst int           `envconfig:"STREAM_GEOMETRY_BURST" default:"10"`
	PingInterval  time.Duration `envconfig:"STREAM_PING_INTERVAL" default:"30s"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Desktop: DesktopConfig{
			MinWidth:      window.DefaultMinWidth,
			MinHeight:     window.DefaultMinHeight,
			TopChrome:     window.DefaultTopChrome,
			BottomChrome:  window.DefaultBottomChrome,
			SafeMargin:    window.DefaultSafeMargin,
			BaseX:         window.DefaultBaseX,
			BaseY:         window.DefaultBaseY,
			CascadeOffset: window.DefaultCascadeOffset,
			DefaultWidth:  window.DefaultWidth,
			DefaultHeight: window.DefaultHeight,
			FitReserve:    window.DefaultFitReserve,
			IdleTTL:       30 * time.Minute,
			Max:           1000,
		},
		Content: ContentConfig{
			Glob:         "**/*.{html,txt,md}",
			Sanitize:     true,
			FetchTimeout: 10 * time.Second,
			FetchRetries: 3,
		},
		Stream: StreamConfig{
			ReadLimit:     4096,
			GeometryRPS:   60,
			GeometryBurst: 10,
			PingInterval:  30 * time.Second,
		},
	}
}

// Bounds returns clamping bounds for a viewport of the given size.
func (c DesktopConfig) Bounds(vp window.Viewport) window.Bounds {
	return window.Bounds{
		Viewport: vp,
		Chrome: window.Chrome{
			Top:        c.TopChrome,
			Bottom:     c.BottomChrome,
			SafeMargin: c.SafeMargin,
		},
		MinWidth:  c.MinWidth,
		MinHeight: c.MinHeight,
	}
}

// Placement returns the cascading placement policy.
func (c DesktopConfig) Placement() window.Placement {
	return window.Placement{
		BaseX:      c.BaseX,
		BaseY:      c.BaseY,
		Offset:     c.CascadeOffset,
		Size:       window.Size{Width: c.DefaultWidth, Height: c.DefaultHeight},
		FitReserve: c.FitReserve,
	}
}
