package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/groomer-manager/internal/audit"
	"github.com/BruksfildServices01/groomer-manager/internal/config"
	"github.com/BruksfildServices01/groomer-manager/internal/models"
	"github.com/BruksfildServices01/groomer-manager/internal/storetest"
	"github.com/BruksfildServices01/groomer-manager/internal/timezone"
)

type fakeAuditLogs struct {
	got audit.Filter
}

func (f *fakeAuditLogs) List(_ context.Context, filter audit.Filter) ([]models.AuditLog, int64, error) {
	f.got = filter
	return []models.AuditLog{{ID: 1, Action: "client_created", Entity: "client"}}, 1, nil
}

type api struct {
	t     *testing.T
	r     *gin.Engine
	token string
	audit *fakeAuditLogs
	today time.Time
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecret:          "routes-test-secret",
		DueSoonHorizonDays: 7,
		OverdueCeilingDays: 30,
		LapsedAfterDays:    60,
		LoginRateLimit:     10,
		LoginRateWindow:    time.Minute,
	}
	clock := timezone.FixedClock{At: time.Now().UTC()}
	logs := &fakeAuditLogs{}

	r := gin.New()
	RegisterRoutes(r, Deps{
		Config:    cfg,
		Log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		Store:     storetest.NewMemory(),
		Clock:     clock,
		AuditLogs: logs,
	})
	return &api{t: t, r: r, audit: logs, today: timezone.Today(clock)}
}

func (a *api) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			a.t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func (a *api) expect(w *httptest.ResponseRecorder, status int, out any) {
	a.t.Helper()
	if w.Code != status {
		a.t.Fatalf("status = %d, want %d: %s", w.Code, status, w.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			a.t.Fatalf("decode: %v: %s", err, w.Body.String())
		}
	}
}

func (a *api) login() {
	a.t.Helper()
	var session struct {
		Token string `json:"token"`
	}
	a.expect(a.do(http.MethodPost, "/api/auth/register", map[string]any{
		"name": "Mia", "email": "mia@example.com", "password": "secret1",
	}), http.StatusCreated, &session)
	a.token = session.Token
}

func (a *api) date(days int) string {
	return a.today.AddDate(0, 0, days).Format(timezone.DateLayout)
}

type errorBody struct {
	Code string `json:"error_code"`
}

func TestHealthIsPublic(t *testing.T) {
	a := newAPI(t)
	a.expect(a.do(http.MethodGet, "/health", nil), http.StatusOK, nil)
}

func TestAuthFlow(t *testing.T) {
	a := newAPI(t)

	a.expect(a.do(http.MethodGet, "/api/me", nil), http.StatusUnauthorized, nil)

	a.login()

	var me struct {
		Email string `json:"email"`
	}
	a.expect(a.do(http.MethodGet, "/api/me", nil), http.StatusOK, &me)
	if me.Email != "mia@example.com" {
		t.Errorf("me = %+v", me)
	}

	var e errorBody
	a.expect(a.do(http.MethodPost, "/api/auth/register", map[string]any{
		"name": "Eve", "email": "eve@example.com", "password": "secret1",
	}), http.StatusConflict, &e)
	if e.Code != "owner_exists" {
		t.Errorf("code = %q", e.Code)
	}

	a.expect(a.do(http.MethodPost, "/api/auth/login", map[string]any{
		"email": "mia@example.com", "password": "nope",
	}), http.StatusUnauthorized, nil)
	a.expect(a.do(http.MethodPost, "/api/auth/login", map[string]any{
		"email": "mia@example.com", "password": "secret1",
	}), http.StatusOK, nil)
}

func TestClientLifecycle(t *testing.T) {
	a := newAPI(t)
	a.login()

	var client struct {
		ID   uint `json:"id"`
		Dogs []struct {
			ID   uint   `json:"id"`
			Name string `json:"name"`
		} `json:"dogs"`
	}
	a.expect(a.do(http.MethodPost, "/api/clients", map[string]any{
		"name": "Ana", "phone": "555-0100", "frequency_days": 28,
		"dogs": []map[string]any{{"name": "Rex", "size": "medium", "hair_length": "short"}},
	}), http.StatusCreated, &client)
	if len(client.Dogs) != 1 {
		t.Fatalf("dogs = %+v", client.Dogs)
	}

	a.expect(a.do(http.MethodPost, "/api/appointments", map[string]any{
		"client_id": client.ID, "date": a.date(-40), "time": "10:00",
		"service_type": "Full Groom", "price": "85.00", "status": "completed",
	}), http.StatusCreated, nil)
	a.expect(a.do(http.MethodPost, "/api/appointments", map[string]any{
		"client_id": client.ID, "date": a.date(3), "time": "11:30",
		"service_type": "Bath", "price": 40,
	}), http.StatusCreated, nil)

	var got struct {
		Last *struct {
			ServiceType string `json:"service_type"`
		} `json:"last_appointment"`
		Next *struct {
			Date string `json:"date"`
		} `json:"next_appointment"`
		Cadence *struct {
			Overdue bool `json:"overdue"`
		} `json:"cadence"`
	}
	a.expect(a.do(http.MethodGet, "/api/clients/1", nil), http.StatusOK, &got)
	if got.Last == nil || got.Last.ServiceType != "Full Groom" {
		t.Errorf("last = %+v", got.Last)
	}
	if got.Next == nil || got.Next.Date != a.date(3) {
		t.Errorf("next = %+v", got.Next)
	}
	if got.Cadence == nil || !got.Cadence.Overdue {
		t.Errorf("cadence = %+v, want overdue", got.Cadence)
	}

	var overdue struct {
		Total int `json:"total"`
	}
	a.expect(a.do(http.MethodGet, "/api/summary/overdue-clients", nil), http.StatusOK, &overdue)
	if overdue.Total != 1 {
		t.Errorf("overdue total = %d", overdue.Total)
	}

	var list struct {
		Total int `json:"total"`
	}
	a.expect(a.do(http.MethodGet, "/api/appointments?startDate="+a.date(0)+"&endDate="+a.date(7), nil), http.StatusOK, &list)
	if list.Total != 1 {
		t.Errorf("upcoming appointments = %d, want 1", list.Total)
	}

	a.expect(a.do(http.MethodPut, "/api/clients/1", map[string]any{"dogs": []any{}}), http.StatusOK, &client)
	if len(client.Dogs) != 0 {
		t.Errorf("dogs after clearing = %+v", client.Dogs)
	}

	a.expect(a.do(http.MethodDelete, "/api/clients/1", nil), http.StatusNoContent, nil)
	a.expect(a.do(http.MethodGet, "/api/clients/1", nil), http.StatusNotFound, nil)
	a.expect(a.do(http.MethodGet, "/api/appointments", nil), http.StatusOK, &list)
	if list.Total != 0 {
		t.Errorf("appointments after cascade = %d", list.Total)
	}
}

func TestAppointmentStatusTransitions(t *testing.T) {
	a := newAPI(t)
	a.login()

	a.expect(a.do(http.MethodPost, "/api/clients", map[string]any{"name": "Ana", "phone": "555"}), http.StatusCreated, nil)
	var ap struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}
	a.expect(a.do(http.MethodPost, "/api/appointments", map[string]any{
		"client_id": 1, "date": a.date(1), "time": "09:00", "service_type": "Bath", "price": 40,
	}), http.StatusCreated, &ap)
	if ap.Status != "pending" {
		t.Errorf("status = %q, want pending", ap.Status)
	}

	a.expect(a.do(http.MethodPatch, "/api/appointments/2/confirm", nil), http.StatusOK, &ap)
	if ap.Status != "confirmed" {
		t.Errorf("status = %q, want confirmed", ap.Status)
	}
	a.expect(a.do(http.MethodPatch, "/api/appointments/2/cancel", nil), http.StatusOK, &ap)

	var e errorBody
	a.expect(a.do(http.MethodPatch, "/api/appointments/2/complete", nil), http.StatusConflict, &e)
	if e.Code != "invalid_state" {
		t.Errorf("code = %q", e.Code)
	}
}

func TestValidationErrors(t *testing.T) {
	a := newAPI(t)
	a.login()

	tests := []struct {
		name     string
		method   string
		path     string
		body     any
		status   int
		wantCode string
	}{
		{"bad id", http.MethodGet, "/api/clients/abc", nil, http.StatusBadRequest, "invalid_id"},
		{"missing fields", http.MethodPost, "/api/clients", map[string]any{"name": "Ana"}, http.StatusBadRequest, "invalid_request"},
		{"unknown client", http.MethodPost, "/api/appointments", map[string]any{
			"client_id": 99, "date": "2024-01-01", "time": "10:00", "service_type": "Bath",
		}, http.StatusBadRequest, "missing_reference"},
		{"half range", http.MethodGet, "/api/expenditures?startDate=2024-01-01", nil, http.StatusBadRequest, "invalid_range"},
		{"inverted range", http.MethodGet, "/api/summary/financials?startDate=2024-02-01&endDate=2024-01-01", nil, http.StatusBadRequest, "invalid_range"},
		{"unknown period", http.MethodGet, "/api/summary/trends?period=decade", nil, http.StatusBadRequest, "invalid_range"},
		{"bad month", http.MethodGet, "/api/summary/monthly?year=2024&month=13", nil, http.StatusBadRequest, "invalid_range"},
		{"bad offset", http.MethodGet, "/api/summary/week?offset=next", nil, http.StatusBadRequest, "invalid_request"},
		{"year out of range", http.MethodGet, "/api/summary/monthly?year=100000&month=1", nil, http.StatusBadRequest, "invalid_range"},
		{"offset out of range", http.MethodGet, "/api/summary/week?offset=9999999", nil, http.StatusBadRequest, "invalid_range"},
		{"sub-cent price", http.MethodPost, "/api/appointments", map[string]any{
			"client_id": 99, "date": "2024-01-01", "time": "10:00", "service_type": "Bath", "price": "10.005",
		}, http.StatusBadRequest, "invalid_input"},
		{"amount too large", http.MethodPost, "/api/expenditures", map[string]any{
			"date": "2024-01-01", "amount": "123456789.99", "category": "Rent",
		}, http.StatusBadRequest, "invalid_input"},
		{"missing expenditure", http.MethodDelete, "/api/expenditures/5", nil, http.StatusNotFound, "expenditure_not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e errorBody
			a.expect(a.do(tt.method, tt.path, tt.body), tt.status, &e)
			if e.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", e.Code, tt.wantCode)
			}
		})
	}
}

func TestFinancialReports(t *testing.T) {
	a := newAPI(t)
	a.login()

	a.expect(a.do(http.MethodPost, "/api/clients", map[string]any{"name": "Ana", "phone": "555"}), http.StatusCreated, nil)
	a.expect(a.do(http.MethodPost, "/api/appointments", map[string]any{
		"client_id": 1, "date": a.date(0), "time": "09:00", "service_type": "Bath", "price": "40.50",
	}), http.StatusCreated, nil)
	a.expect(a.do(http.MethodPost, "/api/expenditures", map[string]any{
		"date": a.date(0), "amount": "10.25", "category": "Shampoo",
	}), http.StatusCreated, nil)

	var totals struct {
		Income   string `json:"income"`
		Expenses string `json:"expenses"`
		Net      string `json:"net"`
	}
	path := "/api/summary/financials?startDate=" + a.date(0) + "&endDate=" + a.date(0)
	a.expect(a.do(http.MethodGet, path, nil), http.StatusOK, &totals)
	if totals.Income != "40.5" || totals.Expenses != "10.25" || totals.Net != "30.25" {
		t.Errorf("totals = %+v", totals)
	}

	var trends struct {
		Granularity string `json:"granularity"`
		Buckets     []any  `json:"buckets"`
	}
	a.expect(a.do(http.MethodGet, "/api/summary/trends?period=year", nil), http.StatusOK, &trends)
	// A year back from today spans 13 calendar months, 12 on leap days.
	if trends.Granularity != "month" || len(trends.Buckets) < 12 || len(trends.Buckets) > 13 {
		t.Errorf("trends = %s with %d buckets", trends.Granularity, len(trends.Buckets))
	}

	var week struct {
		Appointments int `json:"appointments"`
	}
	a.expect(a.do(http.MethodGet, "/api/summary/week", nil), http.StatusOK, &week)
	if week.Appointments != 1 {
		t.Errorf("week appointments = %d", week.Appointments)
	}

	a.expect(a.do(http.MethodGet, "/api/summary/monthly", nil), http.StatusOK, nil)
	a.expect(a.do(http.MethodGet, "/api/summary/services", nil), http.StatusOK, nil)
	a.expect(a.do(http.MethodGet, "/api/summary/expense-categories", nil), http.StatusOK, nil)
}

func TestPhotoUploadDisabled(t *testing.T) {
	a := newAPI(t)
	a.login()

	a.expect(a.do(http.MethodPost, "/api/dogs", map[string]any{"client_id": 99, "name": "Rex", "size": "small", "hair_length": "long"}),
		http.StatusBadRequest, nil)
	a.expect(a.do(http.MethodPost, "/api/clients", map[string]any{
		"name": "Ana", "phone": "555",
		"dogs": []map[string]any{{"name": "Rex", "size": "small", "hair_length": "long"}},
	}), http.StatusCreated, nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, _ := mw.CreateFormFile("photo", "rex.png")
	_, _ = part.Write([]byte("not really a png"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/dogs/2/photo", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+a.token)
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)

	var e errorBody
	a.expect(w, http.StatusServiceUnavailable, &e)
	if e.Code != "photos_disabled" {
		t.Errorf("code = %q", e.Code)
	}
}

func TestAuditLogsFilter(t *testing.T) {
	a := newAPI(t)
	a.login()

	var page struct {
		Limit int `json:"limit"`
		Total int `json:"total"`
	}
	a.expect(a.do(http.MethodGet, "/api/audit-logs?entity=client&limit=500&from=2024-01-01&to=garbage", nil), http.StatusOK, &page)
	if page.Limit != 50 || page.Total != 1 {
		t.Errorf("page = %+v", page)
	}
	if a.audit.got.Entity != "client" || a.audit.got.From == nil || a.audit.got.To != nil {
		t.Errorf("filter = %+v", a.audit.got)
	}
}
