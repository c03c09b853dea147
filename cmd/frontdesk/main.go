package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hms/frontdesk/internal/config"
	"github.com/hms/frontdesk/internal/domain/booking"
	"github.com/hms/frontdesk/internal/domain/doctor"
	"github.com/hms/frontdesk/internal/domain/finance"
	"github.com/hms/frontdesk/internal/platform/gateway"
	"github.com/hms/frontdesk/internal/platform/middleware"
	"github.com/hms/frontdesk/internal/shell"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "frontdesk",
		Short:        "Hospital front-office service",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("api-base-url", "", "Data service base URL (overrides API_BASE_URL)")

	root.AddCommand(serveCmd())
	root.AddCommand(doctorsCmd())
	root.AddCommand(bookCmd())
	root.AddCommand(dashboardCmd())
	root.AddCommand(routesCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the front-office API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runServer(cfg)
		},
	}
}

// loadConfig reads the environment and applies the --api-base-url override.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if u, _ := cmd.Flags().GetString("api-base-url"); u != "" {
		cfg.APIBaseURL = strings.TrimRight(u, "/")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger writes JSON, or console output in development. An unknown
// LOG_LEVEL falls back to info.
func newLogger(cfg *config.Config, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if cfg.IsDev() {
		out = zerolog.ConsoleWriter{Out: out}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// newServer builds the echo instance with the middleware chain and every
// screen handler registered under /api/v1.
func newServer(cfg *config.Config, logger zerolog.Logger, gw *gateway.Client) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Content-Type", middleware.RequestIDHeader},
	}))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	apiV1 := e.Group("/api/v1")
	apiV1.Use(middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}))

	shell.NewHandler().RegisterRoutes(apiV1)
	doctor.NewHandler(gw, logger).RegisterRoutes(apiV1)
	booking.NewHandler(gw, logger).RegisterRoutes(apiV1)
	finance.NewHandler(gw, logger).RegisterRoutes(apiV1)

	return e
}

func runServer(cfg *config.Config) error {
	logger := newLogger(cfg, os.Stdout)
	gw := gateway.New(cfg.APIBaseURL, gateway.WithLogger(logger))
	e := newServer(cfg, logger, gw)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("api_base_url", cfg.APIBaseURL).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
