package finance

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newTestHandler(gw *mockGateway) (*Handler, *echo.Echo) {
	return NewHandler(gw, zerolog.Nop()), echo.New()
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) response {
	t.Helper()
	var r response
	if err := json.Unmarshal(rec.Body.Bytes(), &r); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return r
}

func TestHandler_Get(t *testing.T) {
	h, e := newTestHandler(newMockGateway())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard?tab=3", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	r := decodeView(t, rec)
	if r.Tab != Reports || r.Reports == nil || r.Source != Live {
		t.Errorf("unexpected view %+v", r.View)
	}
}

func TestHandler_Get_DefaultsToOverview(t *testing.T) {
	gw := newMockGateway()
	gw.fail["financial-summary"] = true
	h, e := newTestHandler(gw)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("fallback must still answer 200, got %d", rec.Code)
	}
	r := decodeView(t, rec)
	if r.Tab != Overview || r.Overview == nil || r.Source != Fallback {
		t.Errorf("unexpected view %+v", r.View)
	}
}

func TestHandler_Get_BadTab(t *testing.T) {
	h, e := newTestHandler(newMockGateway())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard?tab=9", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Get(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_AddTransaction(t *testing.T) {
	gw := newMockGateway()
	h, e := newTestHandler(gw)

	body := `{"type":"Expense","description":"Gloves","amount":"450","date":"2024-03-12"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/dashboard/transactions?kind=expense", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.AddTransaction(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	r := decodeView(t, rec)
	if r.Dialog != nil {
		t.Error("expected dialog closed")
	}
	if r.Tab != Transactions || r.Transactions == nil {
		t.Error("expected transactions tab by default")
	}
	if len(gw.posted) != 1 || *gw.posted[0].Category != "General" {
		t.Errorf("unexpected posted %+v", gw.posted)
	}
}

func TestHandler_AddTransaction_Invalid(t *testing.T) {
	gw := newMockGateway()
	h, e := newTestHandler(gw)

	body := `{"type":"Refund","amount":"10","date":"2024-03-12"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/dashboard/transactions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.AddTransaction(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rec.Code)
	}
	r := decodeView(t, rec)
	if r.Dialog == nil || r.Dialog.Title != "Add New Transaction" || len(r.Errors) != 1 {
		t.Errorf("unexpected response %+v", r)
	}
}

func TestHandler_AddTransaction_GatewayFailure(t *testing.T) {
	gw := newMockGateway()
	gw.failTx = true
	h, e := newTestHandler(gw)

	body := `{"type":"Salary","amount":"8000","date":"2024-03-31"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/dashboard/transactions?kind=transaction", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.AddTransaction(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", rec.Code)
	}
	r := decodeView(t, rec)
	if r.Message == nil || r.Message.Text != msgSaveFailed || r.Dialog == nil {
		t.Errorf("unexpected response %+v", r)
	}
}

func TestHandler_AddTransaction_BadKind(t *testing.T) {
	h, e := newTestHandler(newMockGateway())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dashboard/transactions?kind=refund", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.AddTransaction(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}
