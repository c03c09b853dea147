package booking

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hms/frontdesk/internal/platform/gateway"
	"github.com/hms/frontdesk/internal/platform/validation"
)

// Handler exposes the booking screen over HTTP. Responses are rendered once
// every panel fetch has settled.
type Handler struct {
	gw     Gateway
	logger zerolog.Logger
}

func NewHandler(gw Gateway, logger zerolog.Logger) *Handler {
	return &Handler{gw: gw, logger: logger}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/booking", h.Get)
	api.POST("/booking", h.Book)
}

type response struct {
	View
	Outcome       *Outcome                `json:"outcome,omitempty"`
	PatientID     *gateway.ID             `json:"patient_id,omitempty"`
	TransactionID *gateway.ID             `json:"transaction_id,omitempty"`
	Errors        []validation.FieldError `json:"errors,omitempty"`
}

func (h *Handler) mount(c echo.Context) *Screen {
	rid, _ := c.Get("request_id").(string)
	s := NewScreen(h.gw, h.logger.With().Str("request_id", rid).Logger())
	s.Mount(c.Request().Context())
	s.Wait()
	return s
}

func (h *Handler) Get(c echo.Context) error {
	s := h.mount(c)
	return c.JSON(http.StatusOK, response{View: s.View()})
}

func (h *Handler) Book(c echo.Context) error {
	var f Form
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s := h.mount(c)
	s.SetForm(f)

	res := s.Book(c.Request().Context())
	s.Wait()

	resp := response{View: s.View(), Outcome: &res.Outcome}
	if res.Patient != nil {
		id := res.Patient.ID
		resp.PatientID = &id
	}
	if res.Transaction != nil {
		id := res.Transaction.ID
		resp.TransactionID = &id
	}

	switch res.Outcome {
	case Booked:
		return c.JSON(http.StatusCreated, resp)
	case PatientOnly:
		return c.JSON(http.StatusMultiStatus, resp)
	}
	if validation.IsValidation(res.Err) {
		resp.Errors = validation.Fields(res.Err)
		return c.JSON(http.StatusUnprocessableEntity, resp)
	}
	return c.JSON(http.StatusBadGateway, resp)
}
