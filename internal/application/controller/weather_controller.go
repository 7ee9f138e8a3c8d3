package controller

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"weather-widget/internal/application/widget"
	"weather-widget/internal/domain/entity"
)

// SessionCookie names the cookie that binds a browser to its widget.
const SessionCookie = "widget_session"

type WeatherController struct {
	api         *echo.Group
	sessions    *widget.SessionStore
	contextPath string
	renderWait  time.Duration
}

func NewWeatherController(api *echo.Group, sessions *widget.SessionStore, contextPath string, renderWait time.Duration) *WeatherController {
	return &WeatherController{api: api, sessions: sessions, contextPath: contextPath, renderWait: renderWait}
}

// InitWeatherRoutes initializes widget routes
func (controller *WeatherController) InitWeatherRoutes() {
	controller.api.GET("/weather", controller.ShowWidget)
	controller.api.POST("/weather", controller.SubmitCity)
	controller.api.POST("/weather/input", controller.UpdateInput)
	controller.api.GET("/weather/state", controller.GetState)
	controller.api.StaticFS("/static", widget.StaticFS())
}

// ViewResponse is the JSON form of a widget view.
type ViewResponse struct {
	Input   string          `json:"input"`
	Phase   widget.Phase    `json:"phase"`
	Loading bool            `json:"loading"`
	Error   string          `json:"error,omitempty"`
	Weather *entity.Weather `json:"weather,omitempty"`
}

func toViewResponse(view widget.View) ViewResponse {
	return ViewResponse{
		Input:   view.Input,
		Phase:   view.State.Phase(),
		Loading: view.State.IsLoading(),
		Error:   view.ErrorMessage(),
		Weather: view.State.Result(),
	}
}

// ShowWidget godoc
// @Summary Render the weather widget
// @Description Renders the widget for the caller's session. The first visit looks up the default city.
// @Tags weather
// @Produce html
// @Success 200 {string} string "Widget page"
// @Router /weather [get]
func (controller *WeatherController) ShowWidget(c echo.Context) error {
	w := controller.session(c)
	controller.await(c, w.Activate())
	return c.Render(http.StatusOK, widget.PageTemplate, widget.NewPage(w.View(), controller.contextPath))
}

// SubmitCity godoc
// @Summary Look up the weather for a city
// @Description Stores the form field city as the input and submits it. Invalid names never reach the weather provider.
// @Tags weather
// @Accept x-www-form-urlencoded
// @Produce html
// @Param city formData string true "City name"
// @Success 200 {string} string "Widget page"
// @Router /weather [post]
func (controller *WeatherController) SubmitCity(c echo.Context) error {
	w := controller.session(c)
	w.SetCityText(c.FormValue("city"))
	controller.await(c, w.Submit())
	return c.Render(http.StatusOK, widget.PageTemplate, widget.NewPage(w.View(), controller.contextPath))
}

// UpdateInput godoc
// @Summary Update the city input
// @Description Stores the input and returns the revalidated view without fetching.
// @Tags weather
// @Accept x-www-form-urlencoded
// @Produce json
// @Param city formData string true "City name as typed"
// @Success 200 {object} ViewResponse
// @Router /weather/input [post]
func (controller *WeatherController) UpdateInput(c echo.Context) error {
	w := controller.session(c)
	w.SetCityText(c.FormValue("city"))
	return c.JSON(http.StatusOK, toViewResponse(w.View()))
}

// GetState godoc
// @Summary Get the widget state
// @Tags weather
// @Produce json
// @Success 200 {object} ViewResponse
// @Router /weather/state [get]
func (controller *WeatherController) GetState(c echo.Context) error {
	w := controller.session(c)
	return c.JSON(http.StatusOK, toViewResponse(w.View()))
}

// session resolves the caller's widget, issuing a cookie for new sessions
func (controller *WeatherController) session(c echo.Context) *widget.Controller {
	var id string
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		id = cookie.Value
	}

	sessionID, w := controller.sessions.Get(id)
	if sessionID != id {
		path := controller.contextPath
		if path == "" {
			path = "/"
		}
		c.SetCookie(&http.Cookie{
			Name:     SessionCookie,
			Value:    sessionID,
			Path:     path,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return w
}

// await gives an in-flight lookup a chance to settle before rendering.
// A lookup still pending afterwards is rendered as loading.
func (controller *WeatherController) await(c echo.Context, done <-chan struct{}) {
	if controller.renderWait <= 0 {
		return
	}

	timer := time.NewTimer(controller.renderWait)
	defer timer.Stop()

	select {
	case <-done:
	case <-timer.C:
	case <-c.Request().Context().Done():
	}
}
