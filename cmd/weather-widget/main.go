package main

import (
	"context"
	"errors"
	nethttp "net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"weather-widget/configs"
	"weather-widget/internal/application"
	"weather-widget/internal/application/schedule"
	"weather-widget/internal/application/widget"
	"weather-widget/internal/domain/gateway/api"
	"weather-widget/internal/domain/usecase/health"
	"weather-widget/internal/domain/usecase/weather"
	"weather-widget/internal/infra/metrics"
	"weather-widget/pkg/http"
	"weather-widget/pkg/log"
	"weather-widget/pkg/msg"
)

func main() {
	defer log.Sync()

	cfg, err := configs.Load()
	if err != nil {
		log.Fatal(msg.GetMessage("app.config-fail", err), zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(msg.GetMessage("app.config-fail", err), zap.Error(err))
	}

	log.Info(msg.GetMessage("app.start", cfg.ApplicationName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Init metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)

	// Init gateway
	weatherGateway := api.NewWeatherGateway(
		cfg.OpenWeather.BaseURL,
		cfg.OpenWeather.APIKey,
		cfg.OpenWeather.Units,
		cfg.OpenWeather.Format,
		http.ClientOptions{
			ReadTimeout: cfg.OpenWeather.Timeout,
			Logger:      http.NewZapLogger(),
		},
	)

	// Init UseCase
	weatherUseCase := weather.NewWeatherUseCase(weatherGateway, appMetrics)

	// Init widget sessions
	sessions := widget.NewSessionStore(weatherUseCase, cfg.Widget.DefaultCity, cfg.Widget.SessionTTL, cfg.Widget.MaxSessions, appMetrics)
	sessionScheduler := schedule.NewSessionScheduler(sessions, cfg.Widget.SweepCron)
	if err := sessionScheduler.InitSessionScheduleTasks(); err != nil {
		log.Fatal(msg.GetMessage("app.config-fail", err), zap.Error(err))
	}

	healthUseCase := health.NewHealthUseCase(cfg.ApplicationName, cfg.OpenWeather.BaseURL, cfg.OpenWeather.APIKey != "", sessions)

	// Init routes
	e, err := application.NewRouter(cfg, sessions, healthUseCase, registry)
	if err != nil {
		log.Fatal(msg.GetMessage("app.config-fail", err), zap.Error(err))
	}

	go func() {
		log.Info(msg.GetMessage("app.started", cfg.ApplicationName, cfg.Port))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatal(err.Error(), zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info(msg.GetMessage("app.stopping", cfg.ApplicationName))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error(err.Error(), zap.Error(err))
	}
	<-sessionScheduler.Stop().Done()
	sessions.Close()

	log.Info(msg.GetMessage("app.stopped", cfg.ApplicationName))
}
