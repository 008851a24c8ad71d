// Command storebark receives App Store server notifications and relays them
// as Bark push alerts.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mihaimyh/storebark/pkg/api"
	"github.com/mihaimyh/storebark/pkg/appconfig"
	"github.com/mihaimyh/storebark/pkg/bark"
	"github.com/mihaimyh/storebark/pkg/forward"
	"github.com/mihaimyh/storebark/pkg/storebark"
	prommetrics "github.com/mihaimyh/storebark/pkg/storebark/metrics/prometheus"
)

const shutdownTimeout = 10 * time.Second

func main() {
	env, err := appconfig.LoadEnv()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := newLogger(env.LogLevel)
	apps := appconfig.Build(env, nil, logger)
	logger.Info().Strs("apps", apps.Names()).Msg("tenant configuration resolved")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := prommetrics.NewMetrics(registry, "storebark")

	pipeline, err := storebark.New(storebark.Config{
		Notifier:  bark.New(env.BarkBaseURL, logger),
		Forwarder: forward.New(logger),
		Metrics:   metrics,
		Logger:    logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build pipeline")
	}

	handler, err := api.NewHandler(api.Config{
		Pipeline: pipeline,
		Apps:     apps,
		Logger:   logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build handler")
	}

	router := handler.Routes()
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              env.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", env.ListenAddr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
