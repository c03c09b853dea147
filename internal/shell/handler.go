package shell

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	now func() time.Time
}

func NewHandler() *Handler {
	return &Handler{now: time.Now}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/nav", h.Nav)
	api.GET("/home", h.Home)
	api.GET("/routes", h.Routes)
}

func (h *Handler) Nav(c echo.Context) error {
	return c.JSON(http.StatusOK, NavBar())
}

func (h *Handler) Home(c echo.Context) error {
	return c.JSON(http.StatusOK, Home(h.now().Year()))
}

// Routes resolves ?path= to a single route, or lists them all.
func (h *Handler) Routes(c echo.Context) error {
	p := c.QueryParam("path")
	if p == "" {
		return c.JSON(http.StatusOK, Routes())
	}
	r, ok := Lookup(p)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no screen at "+p)
	}
	return c.JSON(http.StatusOK, r)
}
