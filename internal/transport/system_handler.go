package transport

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Saiganesh18787/catalog-management-system/internal/holiday"
	"github.com/Saiganesh18787/catalog-management-system/internal/middleware"
	"github.com/Saiganesh18787/catalog-management-system/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SystemHandler serves the storage usage report and the public-holiday
// lookup.
type SystemHandler struct {
	store    *store.Store
	holidays *holiday.Client
	logger   *zap.Logger
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(st *store.Store, holidays *holiday.Client, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{
		store:    st,
		holidays: holidays,
		logger:   logger,
	}
}

// RegisterRoutes registers storage and holiday routes
func (h *SystemHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/api/storage", h.StorageUsage)
		r.Get("/api/holidays", h.Holidays)
	})
}

// StorageUsage returns the per-collection storage report
func (h *SystemHandler) StorageUsage(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.store.Usage(r.Context()))
}

// Holidays proxies the public-holiday lookup for ?year=. The calendar must
// stay usable offline, so a failed lookup yields an empty list, not an
// error.
func (h *SystemHandler) Holidays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		year = time.Now().Year()
	}

	holidays, err := h.holidays.PublicHolidays(r.Context(), year)
	if err != nil {
		h.logger.Warn("Holiday lookup failed", zap.Int("year", year), zap.Error(err))
		holidays = []holiday.Holiday{}
	}

	middleware.RespondWithJSON(w, http.StatusOK, holidays)
}
