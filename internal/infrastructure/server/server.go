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

	api "github.com/GriffinCanCode/RetroShell/internal/api/http"
	"github.com/GriffinCanCode/RetroShell/internal/api/middleware"
	"github.com/GriffinCanCode/RetroShell/internal/api/ws"
	"github.com/GriffinCanCode/RetroShell/internal/domain/desktop"
	"github.com/GriffinCanCode/RetroShell/internal/domain/shell"
	"github.com/GriffinCanCode/RetroShell/internal/infrastructure/config"
	"github.com/GriffinCanCode/RetroShell/internal/infrastructure/logging"
	"github.com/GriffinCanCode/RetroShell/internal/infrastructure/monitoring"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	shell   *shell.Shell
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	logCfg := logging.DefaultConfig()
	if cfg.Logging.Development {
		logCfg = logging.DevelopmentConfig()
	}
	if cfg.Logging.Level != "" {
		logCfg.Level = cfg.Logging.Level
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return newServer(cfg, logger)
}

func newServer(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	logger.Info("Initializing RetroShell server",
		zap.String("port", cfg.Server.Port),
		zap.Int("viewport_width", cfg.Desktop.ViewportWidth),
		zap.Int("viewport_height", cfg.Desktop.ViewportHeight),
	)

	metrics := monitoring.NewMetrics()

	layout := desktop.DefaultLayout()
	if cfg.Desktop.LayoutFile != "" {
		l, err := desktop.LoadLayout(cfg.Desktop.LayoutFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load desktop layout: %w", err)
		}
		layout = l
		logger.Info("Loaded desktop layout", zap.String("file", cfg.Desktop.LayoutFile), zap.Int("icons", len(l.Icons)))
	}

	sh := shell.New(
		shell.WithLogger(logger.Named("shell")),
		shell.WithWindowConfig(cfg.Desktop.Window()),
		shell.WithLayout(layout),
		shell.WithClockInterval(cfg.Stream.ClockInterval),
		shell.WithMaxAdHocWindows(cfg.Desktop.MaxAdHocWindows),
		shell.WithIntentObserver(func(t shell.IntentType, o shell.Outcome) {
			metrics.RecordIntent(string(t), string(o))
		}),
	)

	if err := metrics.ObserveShell(func() monitoring.ShellGauges {
		st := sh.Stats()
		return monitoring.ShellGauges{
			WindowsOpen:      st.Windows.Total,
			WindowsMinimized: st.Windows.Minimized,
			Documents:        st.Documents.Live,
			Recycled:         st.Documents.Recycled,
			Subscribers:      st.Subscribers,
			StartMenuOpen:    st.StartMenuOpen,
		}
	}); err != nil {
		return nil, fmt.Errorf("failed to register shell metrics: %w", err)
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLog(logger.Named("http")))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig().WithOrigins(cfg.CORS.AllowOrigins)))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))

		if cfg.RateLimit.GlobalRequestsPerSecond > 0 {
			global := rl
			global.RequestsPerSecond = cfg.RateLimit.GlobalRequestsPerSecond
			global.Burst = max(cfg.RateLimit.GlobalBurst, cfg.RateLimit.GlobalRequestsPerSecond)
			logger.Info("Global rate limiting enabled",
				zap.Int("rps", global.RequestsPerSecond),
				zap.Int("burst", global.Burst),
			)
			router.Use(middleware.GlobalRateLimit(global))
		}
	}

	handlers := api.NewHandlers(sh, metrics, logger.Named("api"))
	handlers.Register(router)

	wsHandler := ws.NewHandler(sh, metrics, logger.Named("stream"), ws.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		SubscriberBuffer: cfg.Stream.SubscriberBuffer,
		PingInterval:     cfg.Stream.PingInterval,
	})
	router.GET("/stream", wsHandler.HandleConnection)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	logger.Info("Server initialized successfully")

	return &Server{
		router:  router,
		shell:   sh,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Shell returns the session the server drives.
func (s *Server) Shell() *shell.Shell { return s.shell }

// Run serves HTTP and the taskbar clock until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := net.JoinHostPort(s.config.Server.Host, s.config.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.shell.StartClock(ctx)
	defer s.shell.StopClock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}

// Close stops the clock and flushes the logger.
func (s *Server) Close() error {
	s.shell.StopClock()
	_ = s.logger.Sync()
	return nil
}
