package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"

	"github.com/mtlprog/transquote/internal/config"
	"github.com/mtlprog/transquote/internal/handler"
	"github.com/mtlprog/transquote/internal/metrics"
	"github.com/mtlprog/transquote/internal/middleware"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the web server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "HTTP server port (overrides server.port)",
				EnvVars: []string{"PORT"},
			},
			&cli.Float64Flag{
				Name:    "rate-rps",
				Usage:   "Requests per second per client, 0 disables limiting (overrides ratelimit.rps)",
				EnvVars: []string{"RATE_RPS"},
			},
			&cli.IntFlag{
				Name:    "rate-burst",
				Usage:   "Burst size per client (overrides ratelimit.burst)",
				EnvVars: []string{"RATE_BURST"},
			},
			&cli.StringSliceFlag{
				Name:    "trusted-proxy",
				Usage:   "Address or CIDR whose X-Forwarded-For header is honoured (overrides ratelimit.trustedProxies)",
				EnvVars: []string{"TRUSTED_PROXIES"},
			},
			&cli.StringFlag{
				Name:    "redis-addr",
				Usage:   "Redis address for quote counters (overrides metrics.redisAddr)",
				EnvVars: []string{"REDIS_ADDR"},
			},
		},
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	ctx, stop := context.WithCancel(c.Context)
	defer stop()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	port := cfg.Port
	if c.IsSet("port") && c.String("port") != "" {
		port = c.String("port")
	}
	if c.IsSet("rate-rps") {
		cfg.RateLimit.RPS = c.Float64("rate-rps")
	}
	if c.IsSet("rate-burst") {
		cfg.RateLimit.Burst = c.Int("rate-burst")
	}
	if c.IsSet("trusted-proxy") {
		cfg.RateLimit.TrustedProxies, err = config.ParseTrustedProxies(c.StringSlice("trusted-proxy"))
		if err != nil {
			return fmt.Errorf("invalid rate limit: %w", err)
		}
	}
	if err := cfg.RateLimit.Validate(); err != nil {
		return fmt.Errorf("invalid rate limit: %w", err)
	}
	if c.IsSet("redis-addr") {
		cfg.Metrics.RedisAddr = c.String("redis-addr")
	}

	recorder, closeRecorder := newRecorder(ctx, cfg.Metrics)
	defer closeRecorder()

	h := handler.New(newQuoteService(cfg), recorder, cfg.Rates.Len())

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	var root http.Handler = mux
	if cfg.RateLimit.RPS > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst,
			middleware.WithTrustedProxies(cfg.RateLimit.TrustedProxies...))
		limiter.StartJanitor(ctx, 2*time.Minute)
		root = limiter.Limit(root)
		slog.Info("rate limiting enabled",
			"rps", cfg.RateLimit.RPS,
			"burst", cfg.RateLimit.Burst,
			"trusted_proxies", len(cfg.RateLimit.TrustedProxies),
		)
	}
	root = middleware.RequestLogger(root)

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           root,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server",
			"server_addr", "http://localhost:"+port,
			"timezone", cfg.Location.String(),
			"schedule", cfg.DefaultSchedule.String(),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-done:
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// newRecorder connects to Redis when an address is configured. An unreachable
// Redis disables metrics instead of failing startup.
func newRecorder(ctx context.Context, cfg config.Metrics) (metrics.Recorder, func()) {
	if cfg.RedisAddr == "" {
		return metrics.Noop{}, func() {}
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		slog.Warn("redis unavailable, quote metrics disabled", "addr", cfg.RedisAddr, "error", err)
		_ = rdb.Close()
		return metrics.Noop{}, func() {}
	}

	slog.Info("quote metrics enabled", "addr", cfg.RedisAddr, "prefix", cfg.Prefix)
	return metrics.NewRedis(rdb, metrics.WithPrefix(cfg.Prefix)), func() {
		if err := rdb.Close(); err != nil {
			slog.Warn("failed to close redis client", "error", err)
		}
	}
}
