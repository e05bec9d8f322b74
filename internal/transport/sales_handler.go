package transport

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Saiganesh18787/catalog-management-system/internal/domain"
	"github.com/Saiganesh18787/catalog-management-system/internal/middleware"
	"github.com/Saiganesh18787/catalog-management-system/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DailySalesRequest sets the sales figure for one day
type DailySalesRequest struct {
	Sales *float64 `json:"sales" validate:"required,gte=0"`
}

// SettingsRequest replaces the settings singleton
type SettingsRequest struct {
	ProfitMargin    *float64 `json:"profitMargin" validate:"required,gte=0"`
	MonthlyExpenses *float64 `json:"monthlyExpenses" validate:"required,gte=0"`
}

// EventRequest sets a calendar event title
type EventRequest struct {
	Title string `json:"title"`
}

// SalesHandler handles HTTP requests for the sales ledger, settings,
// calendar events and derived statistics
type SalesHandler struct {
	sales  *service.SalesService
	logger *zap.Logger
}

// NewSalesHandler creates a new SalesHandler
func NewSalesHandler(sales *service.SalesService, logger *zap.Logger) *SalesHandler {
	return &SalesHandler{
		sales:  sales,
		logger: logger,
	}
}

// RegisterRoutes registers sales, stats, settings and event routes
func (h *SalesHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Get("/api/sales", h.Ledger)
		r.Put("/api/sales/{date}", h.UpdateDailySales)

		r.Get("/api/stats/monthly", h.MonthlyStats)
		r.Get("/api/stats/alltime", h.AllTimeStats)

		r.Get("/api/settings", h.Settings)
		r.Put("/api/settings", h.UpdateSettings)

		r.Get("/api/events", h.Events)
		r.Put("/api/events/{date}", h.PutEvent)
		r.Delete("/api/events/{date}", h.DeleteEvent)
	})
}

// Ledger returns the whole sales ledger
func (h *SalesHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.sales.Ledger())
}

// UpdateDailySales records the sales figure for a day
func (h *SalesHandler) UpdateDailySales(w http.ResponseWriter, r *http.Request) {
	var req DailySalesRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date := chi.URLParam(r, "date")
	if err := h.sales.UpdateDailySales(r.Context(), date, *req.Sales); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.sales.Ledger())
}

// MonthlyStats returns the statistics for ?month=&year= (month 1-12)
func (h *SalesHandler) MonthlyStats(w http.ResponseWriter, r *http.Request) {
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		middleware.RespondWithError(w, http.StatusBadRequest, "month must be an integer between 1 and 12")
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "year must be an integer")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, h.sales.MonthlyStats(time.Month(month), year))
}

// AllTimeStats returns the unfiltered statistics
func (h *SalesHandler) AllTimeStats(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.sales.AllTimeStats())
}

// Settings returns the settings singleton
func (h *SalesHandler) Settings(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.sales.Settings())
}

// UpdateSettings replaces the settings singleton
func (h *SalesHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.sales.UpdateSettings(r.Context(), settingsFromRequest(req))
	middleware.RespondWithJSON(w, http.StatusOK, h.sales.Settings())
}

func settingsFromRequest(req SettingsRequest) domain.Settings {
	return domain.Settings{
		ProfitMargin:    *req.ProfitMargin,
		MonthlyExpenses: *req.MonthlyExpenses,
	}
}

// Events returns all calendar events
func (h *SalesHandler) Events(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.sales.Events())
}

// PutEvent sets (or, with an empty title, removes) the event for a day
func (h *SalesHandler) PutEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.sales.AddEvent(r.Context(), chi.URLParam(r, "date"), req.Title); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, h.sales.Events())
}

// DeleteEvent removes the event for a day
func (h *SalesHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.sales.RemoveEvent(r.Context(), chi.URLParam(r, "date")); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
