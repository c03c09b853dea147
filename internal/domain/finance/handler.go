package finance

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hms/frontdesk/internal/platform/validation"
)

// Handler exposes the financial dashboard over HTTP.
type Handler struct {
	gw     Gateway
	logger zerolog.Logger
}

func NewHandler(gw Gateway, logger zerolog.Logger) *Handler {
	return &Handler{gw: gw, logger: logger}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/dashboard", h.Get)
	api.POST("/dashboard/transactions", h.AddTransaction)
}

type response struct {
	View
	Errors []validation.FieldError `json:"errors,omitempty"`
}

// tab reads the tab query parameter, defaulting to def.
func tab(c echo.Context, def Tab) (Tab, error) {
	raw := c.QueryParam("tab")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || !Tab(n).Valid() {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "tab must be 0, 1, 2 or 3")
	}
	return Tab(n), nil
}

func (h *Handler) mount(c echo.Context, t Tab) *Dashboard {
	rid, _ := c.Get("request_id").(string)
	d := NewDashboard(h.gw, h.logger.With().Str("request_id", rid).Logger())
	d.Load(c.Request().Context())
	_ = d.SelectTab(t)
	return d
}

func (h *Handler) Get(c echo.Context) error {
	t, err := tab(c, Overview)
	if err != nil {
		return err
	}
	d := h.mount(c, t)
	return c.JSON(http.StatusOK, response{View: d.View()})
}

// AddTransaction opens the dialog named by the kind query parameter, fills it
// with the request body and saves it.
func (h *Handler) AddTransaction(c echo.Context) error {
	kind := DialogKind(c.QueryParam("kind"))
	if kind == "" {
		kind = DialogTransaction
	}
	if !kind.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "kind must be transaction or expense")
	}
	t, err := tab(c, Transactions)
	if err != nil {
		return err
	}
	var f TransactionForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	d := h.mount(c, t)
	_ = d.OpenDialog(kind)
	_ = d.SetDialogForm(f)

	err = d.Save(c.Request().Context())
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, response{View: d.View()})
	case validation.IsValidation(err):
		return c.JSON(http.StatusUnprocessableEntity, response{View: d.View(), Errors: validation.Fields(err)})
	default:
		return c.JSON(http.StatusBadGateway, response{View: d.View()})
	}
}
