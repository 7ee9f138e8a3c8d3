package application

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"weather-widget/configs"
	"weather-widget/internal/application/controller"
	"weather-widget/internal/application/middleware"
	"weather-widget/internal/application/widget"
	"weather-widget/internal/domain/usecase/health"
)

// NewRouter wires middleware, controllers and the metrics endpoint onto a new echo instance.
func NewRouter(cfg *configs.EnvConfig, sessions *widget.SessionStore, healthUseCase health.UseCase, gatherer prometheus.Gatherer) (*echo.Echo, error) {
	renderer, err := widget.NewRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer

	e.Use(echomw.Recover())
	middleware.SetupRequestLogger(e)

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := e.Group(cfg.ContextPath)

	healthController := controller.NewHealthController(api, healthUseCase)
	weatherController := controller.NewWeatherController(api, sessions, cfg.ContextPath, cfg.Widget.RenderWait)

	healthController.InitHealthRoutes()
	weatherController.InitWeatherRoutes()

	return e, nil
}
