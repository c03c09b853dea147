package doctor

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hms/frontdesk/internal/platform/gateway"
	"github.com/hms/frontdesk/internal/platform/validation"
)

// Handler exposes the directory screen over HTTP. Each request mounts a fresh
// Directory, applies one action and renders the resulting view.
type Handler struct {
	gw     Gateway
	logger zerolog.Logger
}

func NewHandler(gw Gateway, logger zerolog.Logger) *Handler {
	return &Handler{gw: gw, logger: logger}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/doctors", h.List)
	api.POST("/doctors", h.Create)
	api.PUT("/doctors/:id", h.Update)
	api.DELETE("/doctors/:id", h.Delete)
}

type response struct {
	View
	Deleted bool                    `json:"deleted,omitempty"`
	Errors  []validation.FieldError `json:"errors,omitempty"`
}

func (h *Handler) mount(c echo.Context) *Directory {
	rid, _ := c.Get("request_id").(string)
	d := NewDirectory(h.gw, h.logger.With().Str("request_id", rid).Logger())
	d.Mount(c.Request().Context())
	return d
}

func (h *Handler) List(c echo.Context) error {
	d := h.mount(c)
	return c.JSON(http.StatusOK, response{View: d.View()})
}

func (h *Handler) Create(c echo.Context) error {
	var f Form
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d := h.mount(c)
	d.SetForm(f)
	return h.submit(c, d, http.StatusCreated)
}

func (h *Handler) Update(c echo.Context) error {
	id := gateway.NewID(c.Param("id"))
	if id.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var f Form
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d := h.mount(c)
	d.Edit(gateway.Doctor{ID: id})
	d.SetForm(f)
	return h.submit(c, d, http.StatusOK)
}

func (h *Handler) submit(c echo.Context, d *Directory, okStatus int) error {
	err := d.Submit(c.Request().Context())
	switch {
	case err == nil:
		return c.JSON(okStatus, response{View: d.View()})
	case validation.IsValidation(err):
		return c.JSON(http.StatusUnprocessableEntity, response{View: d.View(), Errors: validation.Fields(err)})
	default:
		return c.JSON(http.StatusBadGateway, response{View: d.View()})
	}
}

// Delete requires confirm=true; the query flag stands in for the interactive
// prompt.
func (h *Handler) Delete(c echo.Context) error {
	id := gateway.NewID(c.Param("id"))
	if id.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	confirmed := c.QueryParam("confirm") == "true"
	if !confirmed {
		return echo.NewHTTPError(http.StatusPreconditionRequired, DeletePrompt+" Repeat the request with confirm=true.")
	}
	d := h.mount(c)
	deleted, err := d.Delete(c.Request().Context(), id, ConfirmFunc(func(string) bool { return confirmed }))
	if err != nil {
		return c.JSON(http.StatusBadGateway, response{View: d.View()})
	}
	return c.JSON(http.StatusOK, response{View: d.View(), Deleted: deleted})
}
