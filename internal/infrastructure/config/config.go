package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/GriffinCanCode/RetroShell/internal/domain/window"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Desktop   DesktopConfig
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

// RateLimitConfig holds rate limiting configuration. The per-client limit
// applies to each remote address; the global limit, when GlobalRequestsPerSecond
// is positive, caps the whole server.
type RateLimitConfig struct {
	RequestsPerSecond       int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst                   int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	GlobalRequestsPerSecond int  `envconfig:"RATE_LIMIT_GLOBAL_RPS" default:"0"`
	GlobalBurst             int  `envconfig:"RATE_LIMIT_GLOBAL_BURST" default:"0"`
	Enabled                 bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// CORSConfig lists the origins allowed to call the API.
type CORSConfig struct {
	AllowOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

// DesktopConfig holds the geometry of the simulated screen.
type DesktopConfig struct {
	ViewportWidth   int    `envconfig:"VIEWPORT_WIDTH" default:"1280"`
	ViewportHeight  int    `envconfig:"VIEWPORT_HEIGHT" default:"720"`
	CanvasWidth     int    `envconfig:"CANVAS_WIDTH" default:"2000"`
	CanvasHeight    int    `envconfig:"CANVAS_HEIGHT" default:"1200"`
	LayoutFile      string `envconfig:"DESKTOP_LAYOUT_FILE"`
	MaxAdHocWindows int    `envconfig:"MAX_ADHOC_WINDOWS" default:"4"`
}

// StreamConfig holds WebSocket and clock settings.
type StreamConfig struct {
	ClockInterval    time.Duration `envconfig:"CLOCK_INTERVAL" default:"1s"`
	SubscriberBuffer int           `envconfig:"STREAM_BUFFER" default:"16"`
	PingInterval     time.Duration `envconfig:"STREAM_PING_INTERVAL" default:"30s"`
}

// Window converts the desktop section into window manager settings.
func (d DesktopConfig) Window() window.Config {
	cfg := window.DefaultConfig()
	cfg.Viewport = window.Size{Width: d.ViewportWidth, Height: d.ViewportHeight}
	cfg.Canvas = window.Size{Width: d.CanvasWidth, Height: d.CanvasHeight}
	return cfg
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
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

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Desktop.ViewportWidth <= 0 || c.Desktop.ViewportHeight <= 0:
		return fmt.Errorf("viewport must be positive, got %dx%d", c.Desktop.ViewportWidth, c.Desktop.ViewportHeight)
	case c.Desktop.CanvasWidth <= 0 || c.Desktop.CanvasHeight <= 0:
		return fmt.Errorf("canvas must be positive, got %dx%d", c.Desktop.CanvasWidth, c.Desktop.CanvasHeight)
	case c.Desktop.MaxAdHocWindows <= 0:
		return fmt.Errorf("ad-hoc window cap must be positive, got %d", c.Desktop.MaxAdHocWindows)
	case c.Stream.ClockInterval <= 0:
		return fmt.Errorf("clock interval must be positive, got %s", c.Stream.ClockInterval)
	case c.RateLimit.Enabled && c.RateLimit.RequestsPerSecond <= 0:
		return fmt.Errorf("rate limit must be positive, got %d", c.RateLimit.RequestsPerSecond)
	case c.RateLimit.GlobalRequestsPerSecond < 0 || c.RateLimit.GlobalBurst < 0:
		return fmt.Errorf("global rate limit must not be negative, got %d/%d",
			c.RateLimit.GlobalRequestsPerSecond, c.RateLimit.GlobalBurst)
	}
	return nil
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
		CORS: CORSConfig{
			AllowOrigins: []string{"*"},
		},
		Desktop: DesktopConfig{
			ViewportWidth:   1280,
			ViewportHeight:  720,
			CanvasWidth:     2000,
			CanvasHeight:    1200,
			MaxAdHocWindows: 4,
		},
		Stream: StreamConfig{
			ClockInterval:    time.Second,
			SubscriberBuffer: 16,
			PingInterval:     30 * time.Second,
		},
	}
}
