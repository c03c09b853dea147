package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hms/frontdesk/internal/config"
	"github.com/hms/frontdesk/internal/platform/gateway"
)

// fakeService stands in for the remote data service.
type fakeService struct {
	mu          sync.Mutex
	deletes     []string
	updates     []string
	requestIDs  []string
	failFinance bool
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requestIDs = append(f.requestIDs, r.Header.Get(gateway.RequestIDHeader))
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/doctors":
		w.Write([]byte(`[{"id":7,"name":"Dr. Mehta","phone":"9876543210","address":"12 MG Road","cabin_no":"4","specialization":"cardiology","start_time":"09:00","end_time":"13:00"}]`))
	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/doctors/"):
		f.mu.Lock()
		f.updates = append(f.updates, strings.TrimPrefix(r.URL.Path, "/doctors/"))
		f.mu.Unlock()
		body, _ := io.ReadAll(r.Body)
		w.Write(body)
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/doctors/"):
		f.mu.Lock()
		f.deletes = append(f.deletes, strings.TrimPrefix(r.URL.Path, "/doctors/"))
		f.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/patients"):
		w.Write([]byte(`[]`))
	case f.failFinance:
		http.Error(w, `{"error":"down"}`, http.StatusInternalServerError)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeService) deleted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deletes...)
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return out.String(), err
}

func TestRoutesCommand(t *testing.T) {
	out, err := run(t, "", "routes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var nav struct {
		Title string `json:"title"`
		Links []struct {
			Path string `json:"path"`
		} `json:"links"`
	}
	if err := json.Unmarshal([]byte(out), &nav); err != nil {
		t.Fatalf("expected JSON output: %v", err)
	}
	if nav.Title != "My Healthcare System" || len(nav.Links) != 4 {
		t.Errorf("unexpected nav %+v", nav)
	}
}

func TestDoctorsList(t *testing.T) {
	srv := httptest.NewServer(&fakeService{})
	defer srv.Close()

	out, err := run(t, "", "--api-base-url", srv.URL, "doctors", "list")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Dr. Mehta") || !strings.Contains(out, "Cardiologist") {
		t.Errorf("expected doctor card in output, got %s", out)
	}
}

func TestDoctorsDelete_DeclinedPromptSendsNothing(t *testing.T) {
	svc := &fakeService{}
	srv := httptest.NewServer(svc)
	defer srv.Close()

	if _, err := run(t, "n\n", "--api-base-url", srv.URL, "doctors", "delete", "7"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := svc.deleted(); len(got) != 0 {
		t.Errorf("expected no delete request, got %v", got)
	}
}

func TestDoctorsDelete_ConfirmedPrompt(t *testing.T) {
	svc := &fakeService{}
	srv := httptest.NewServer(svc)
	defer srv.Close()

	if _, err := run(t, "yes\n", "--api-base-url", srv.URL, "doctors", "delete", "7"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := svc.deleted(); len(got) != 1 || got[0] != "7" {
		t.Errorf("expected delete of 7, got %v", got)
	}
}

func TestDoctorsDelete_YesFlag(t *testing.T) {
	svc := &fakeService{}
	srv := httptest.NewServer(svc)
	defer srv.Close()

	if _, err := run(t, "", "--api-base-url", srv.URL, "doctors", "delete", "7", "--yes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := svc.deleted(); len(got) != 1 {
		t.Errorf("expected one delete, got %v", got)
	}
}

func TestDoctorsUpdate_NumericServiceID(t *testing.T) {
	svc := &fakeService{}
	srv := httptest.NewServer(svc)
	defer srv.Close()

	out, err := run(t, "", "--api-base-url", srv.URL, "doctors", "update", "7", "--phone", "9876500000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc.mu.Lock()
	updates := append([]string(nil), svc.updates...)
	svc.mu.Unlock()
	if len(updates) != 1 || updates[0] != "7" {
		t.Errorf("expected PUT /doctors/7, got %v", updates)
	}
	if !strings.Contains(out, "Dr. Mehta") {
		t.Errorf("expected refreshed directory in output, got %s", out)
	}
}

func TestDoctorsUpdate_UnknownID(t *testing.T) {
	srv := httptest.NewServer(&fakeService{})
	defer srv.Close()

	_, err := run(t, "", "--api-base-url", srv.URL, "doctors", "update", "99", "--name", "Dr. X")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestBook_InvalidFormFails(t *testing.T) {
	srv := httptest.NewServer(&fakeService{})
	defer srv.Close()

	out, err := run(t, "", "--api-base-url", srv.URL, "book", "--name", "Asha")
	if err == nil {
		t.Fatal("expected error for incomplete booking")
	}
	if !strings.Contains(out, `"outcome": "failed"`) {
		t.Errorf("expected failed outcome in output, got %s", out)
	}
}

func TestDashboard_FallsBackWhenServiceFails(t *testing.T) {
	srv := httptest.NewServer(&fakeService{failFinance: true})
	defer srv.Close()

	out, err := run(t, "", "--api-base-url", srv.URL, "dashboard", "--tab", "3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"source": "fallback"`) {
		t.Errorf("expected fallback source, got %s", out)
	}
	if !strings.Contains(out, `"reports"`) {
		t.Errorf("expected reports section, got %s", out)
	}
}

func TestDashboard_InvalidTab(t *testing.T) {
	srv := httptest.NewServer(&fakeService{})
	defer srv.Close()

	if _, err := run(t, "", "--api-base-url", srv.URL, "dashboard", "--tab", "9"); err == nil {
		t.Error("expected error for unknown tab")
	}
}

func TestInvalidBaseURL(t *testing.T) {
	if _, err := run(t, "", "--api-base-url", "not-a-url", "doctors", "list"); err == nil {
		t.Error("expected config validation error")
	}
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Port:           "8080",
		Env:            "test",
		APIBaseURL:     baseURL,
		LogLevel:       "info",
		CORSOrigins:    []string{"http://localhost:5173"},
		BodyLimit:      "1M",
		RateLimitRPS:   50,
		RateLimitBurst: 100,
	}
}

func TestServer_Health(t *testing.T) {
	e := newServer(testConfig("http://localhost:3001"), zerolog.Nop(), gateway.New("http://localhost:3001"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected request id header")
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected security headers")
	}
}

func TestServer_DoctorsForwardRequestID(t *testing.T) {
	svc := &fakeService{}
	srv := httptest.NewServer(svc)
	defer srv.Close()
	e := newServer(testConfig(srv.URL), zerolog.Nop(), gateway.New(srv.URL))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/doctors", nil)
	req.Header.Set("X-Request-ID", "front-desk-1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if len(svc.requestIDs) == 0 || svc.requestIDs[0] != "front-desk-1" {
		t.Errorf("expected request id forwarded, got %v", svc.requestIDs)
	}
}

func TestServer_UnknownRoute(t *testing.T) {
	e := newServer(testConfig("http://localhost:3001"), zerolog.Nop(), gateway.New("http://localhost:3001"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/routes?path=/nowhere", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig("http://localhost:3001")

	cfg.LogLevel = "warn"
	warnLogger := newLogger(cfg, &buf)
	warnLogger.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected info suppressed at warn, got %s", buf.String())
	}

	cfg.LogLevel = "bogus"
	fallbackLogger := newLogger(cfg, &buf)
	fallbackLogger.Info().Msg("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Error("expected unknown level to fall back to info")
	}
}
