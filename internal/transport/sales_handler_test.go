package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/Saiganesh18787/catalog-management-system/internal/domain"
	"github.com/Saiganesh18787/catalog-management-system/internal/service"
	"github.com/Saiganesh18787/catalog-management-system/internal/stats"
	"github.com/Saiganesh18787/catalog-management-system/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func newSalesTestRouter(t *testing.T) chi.Router {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "catalog.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	sales := service.NewSalesService(context.Background(), st, zap.NewNop())

	router := chi.NewRouter()
	NewSalesHandler(sales, zap.NewNop()).RegisterRoutes(router, testAuthMiddleware)
	return router
}

func doJSON(t *testing.T, router chi.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSalesHandler_UpdateDailySales(t *testing.T) {
	router := newSalesTestRouter(t)

	w := doJSON(t, router, http.MethodPut, "/api/sales/2024-03-15", `{"sales":1000}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var ledger domain.SalesLedger
	if err := json.Unmarshal(w.Body.Bytes(), &ledger); err != nil {
		t.Fatalf("failed to parse ledger: %v", err)
	}
	if ledger["2024-03-15"].Sales != 1000 {
		t.Errorf("expected ledger entry, got %+v", ledger)
	}
}

func TestSalesHandler_UpdateDailySalesBadDate(t *testing.T) {
	router := newSalesTestRouter(t)

	w := doJSON(t, router, http.MethodPut, "/api/sales/someday", `{"sales":1000}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestSalesHandler_UpdateDailySalesMissingFigure(t *testing.T) {
	router := newSalesTestRouter(t)

	w := doJSON(t, router, http.MethodPut, "/api/sales/2024-03-15", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestSalesHandler_MonthlyStats(t *testing.T) {
	router := newSalesTestRouter(t)

	doJSON(t, router, http.MethodPut, "/api/sales/2024-03-15", `{"sales":1000}`)
	doJSON(t, router, http.MethodPut, "/api/sales/2024-04-01", `{"sales":500}`)

	w := doJSON(t, router, http.MethodGet, "/api/stats/monthly?month=3&year=2024", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var monthly stats.MonthlyStats
	if err := json.Unmarshal(w.Body.Bytes(), &monthly); err != nil {
		t.Fatalf("failed to parse stats: %v", err)
	}
	if monthly.TotalSales != 1000 {
		t.Errorf("expected only March sales, got %v", monthly.TotalSales)
	}
	if monthly.Profit != 350 {
		t.Errorf("expected profit at default margin, got %v", monthly.Profit)
	}
}

func TestSalesHandler_MonthlyStatsRejectsBadMonth(t *testing.T) {
	router := newSalesTestRouter(t)

	for _, query := range []string{"month=0&year=2024", "month=13&year=2024", "month=abc&year=2024", "month=3&year=later"} {
		w := doJSON(t, router, http.MethodGet, "/api/stats/monthly?"+query, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("query %q: expected 400, got %d", query, w.Code)
		}
	}
}

func TestSalesHandler_SettingsRoundTrip(t *testing.T) {
	router := newSalesTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/settings", "")
	var settings domain.Settings
	if err := json.Unmarshal(w.Body.Bytes(), &settings); err != nil {
		t.Fatalf("failed to parse settings: %v", err)
	}
	if settings != domain.DefaultSettings() {
		t.Errorf("expected defaults, got %+v", settings)
	}

	w = doJSON(t, router, http.MethodPut, "/api/settings", `{"profitMargin":40,"monthlyExpenses":200000}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &settings); err != nil {
		t.Fatalf("failed to parse settings: %v", err)
	}
	if settings.ProfitMargin != 40 || settings.MonthlyExpenses != 200000 {
		t.Errorf("expected updated settings, got %+v", settings)
	}
}

func TestSalesHandler_EventLifecycle(t *testing.T) {
	router := newSalesTestRouter(t)

	w := doJSON(t, router, http.MethodPut, "/api/events/2024-03-15", `{"title":"Stock audit"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var events domain.EventMap
	if err := json.Unmarshal(w.Body.Bytes(), &events); err != nil {
		t.Fatalf("failed to parse events: %v", err)
	}
	if events["2024-03-15"] != "Stock audit" {
		t.Errorf("expected event stored, got %+v", events)
	}

	w = doJSON(t, router, http.MethodDelete, "/api/events/2024-03-15", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/events", "")
	events = nil
	if err := json.Unmarshal(w.Body.Bytes(), &events); err != nil {
		t.Fatalf("failed to parse events: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events, got %+v", events)
	}
}
