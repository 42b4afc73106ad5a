package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/oggyb/whatsapp-notifier/internal/cache"
	"github.com/oggyb/whatsapp-notifier/internal/cache/memory"
	"github.com/oggyb/whatsapp-notifier/internal/cache/redis"
	"github.com/oggyb/whatsapp-notifier/internal/config"
	"github.com/oggyb/whatsapp-notifier/internal/db/gormdb"
	"github.com/oggyb/whatsapp-notifier/internal/events"
	"github.com/oggyb/whatsapp-notifier/internal/handler"
	"github.com/oggyb/whatsapp-notifier/internal/logger"
	"github.com/oggyb/whatsapp-notifier/internal/metrics"
	"github.com/oggyb/whatsapp-notifier/internal/notification"
	deliveryRepo "github.com/oggyb/whatsapp-notifier/internal/repository/gorm/delivery"
	routes "github.com/oggyb/whatsapp-notifier/internal/router"
	"github.com/oggyb/whatsapp-notifier/internal/scheduler"
	"github.com/oggyb/whatsapp-notifier/internal/server"
	"github.com/oggyb/whatsapp-notifier/internal/service"
	"github.com/oggyb/whatsapp-notifier/internal/whatsapp"
)

// @title       WhatsApp Notifier API
// @version     1.0
// @description Queues and sends WhatsApp notifications through HyperSender.
// @BasePath    /
func main() {
	rootCtx := context.Background()

	cfg := config.New()

	log, err := logger.New(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid LOG_LEVEL %q: %v\n", cfg.App.LogLevel, err)
		os.Exit(1)
	}
	log = log.With().Str("app", cfg.App.Name).Logger()

	if err := cfg.ValidateWhatsApp(); err != nil {
		log.Fatal().Err(err).Msg("whatsapp configuration is incomplete")
	}

	// DB
	db, err := gormdb.New(cfg.PostgresDSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect db")
	}
	repo := deliveryRepo.NewRepository(db)
	if err := repo.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate db")
	}

	// Bus: every failure is logged and stored, and published to Redis when enabled.
	bus := events.NewBus(logger.Component(log, "events"))
	bus.Listen(
		events.LogListener(logger.Component(log, "failures")),
		events.StoreListener(repo),
	)

	// Cache
	var sentCache cache.Cache
	healthChecks := map[string]handler.HealthChecker{}
	if cfg.Redis.Enabled {
		rdb := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := rdb.Ping(rootCtx); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("failed to connect to redis")
		}
		defer rdb.Close()

		sentCache = rdb
		healthChecks["redis"] = rdb
		bus.Listen(events.StreamListener(rdb, cfg.Events.FailureStream))
	} else {
		log.Warn().Msg("redis disabled, using in-memory cache")
		sentCache = memory.New(10 * time.Minute)
	}

	// WhatsApp client and channel
	waClient := whatsapp.NewClient(
		cfg.WhatsApp.BaseURL,
		cfg.WhatsApp.Instance,
		cfg.WhatsApp.Token,
		whatsapp.WithTimeout(cfg.WhatsApp.Timeout),
	)
	if err := waClient.Health(rootCtx); err != nil {
		log.Warn().Err(err).Msg("whatsapp api health check failed")
	}
	healthChecks["whatsapp"] = handler.CheckFunc(waClient.Health)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	channelMetrics, err := metrics.NewChannelMetrics(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}

	channel, err := notification.NewWhatsappChannel(
		waClient,
		bus,
		notification.WithLogger(logger.Component(log, "whatsapp")),
		notification.WithMetrics(channelMetrics),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build whatsapp channel")
	}

	svc := service.NewDeliveryService(
		repo,
		repo,
		channel,
		sentCache,
		logger.Component(log, "outbox"),
		service.Settings{
			BatchSize:         cfg.Worker.BatchSize,
			MaxWorkers:        cfg.Worker.MaxWorkers,
			PerMessageTimeout: cfg.Worker.PerMessageTimeout,
		},
	)

	cron := scheduler.New(
		svc,
		cfg.Scheduler.Interval,
		cfg.Scheduler.BatchTimeout,
		logger.Component(log, "scheduler"),
	)

	deps := routes.AppDeps{
		Home:         handler.NewHomeHandler(healthChecks),
		Notification: handler.NewNotificationHandler(svc, cron, logger.Component(log, "http")),
		Metrics:      promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}

	addr := fmt.Sprintf("%s:%s", cfg.API.Host, cfg.API.Port)
	srv := server.New(addr, deps, logger.Component(log, "http"))

	ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	if err := cron.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdown(log, cron, srv)
}

func shutdown(log zerolog.Logger, cron *scheduler.Scheduler, srv *server.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Waits for an in-flight batch.
	if err := cron.Stop(); err != nil {
		log.Error().Err(err).Msg("scheduler did not stop cleanly")
	}
	if err := cron.Close(); err != nil {
		log.Error().Err(err).Msg("scheduler loop did not exit")
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server graceful shutdown failed")
		return
	}
	log.Info().Msg("shutdown complete")
}
