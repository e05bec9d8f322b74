package transport

import (
	"net/http"

	"github.com/Saiganesh18787/catalog-management-system/internal/domain"
	"github.com/Saiganesh18787/catalog-management-system/internal/middleware"
	"github.com/Saiganesh18787/catalog-management-system/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateBillRequest is the payload for recording an expense bill
type CreateBillRequest struct {
	StoreName string   `json:"storeName" validate:"required"`
	Date      string   `json:"date" validate:"required,datetime=2006-01-02"`
	Amount    *float64 `json:"amount" validate:"required,gte=0"`
	Image     string   `json:"image"`
	Status    string   `json:"status" validate:"omitempty,oneof=Pending Paid"`
}

// UpdateBillRequest is the partial-update payload for a bill
type UpdateBillRequest struct {
	StoreName *string  `json:"storeName" validate:"omitempty,min=1"`
	Date      *string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Amount    *float64 `json:"amount" validate:"omitempty,gte=0"`
	Image     *string  `json:"image"`
	Status    *string  `json:"status" validate:"omitempty,oneof=Pending Paid"`
}

// BillHandler handles HTTP requests for expense bills
type BillHandler struct {
	bills  *service.BillService
	logger *zap.Logger
}

// NewBillHandler creates a new BillHandler
func NewBillHandler(bills *service.BillService, logger *zap.Logger) *BillHandler {
	return &BillHandler{
		bills:  bills,
		logger: logger,
	}
}

// RegisterRoutes registers all bill routes
func (h *BillHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/bills", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List returns all bills, newest first
func (h *BillHandler) List(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.bills.List())
}

// Create records a new bill
func (h *BillHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBillRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := domain.BillPatch{
		StoreName: &req.StoreName,
		Date:      &req.Date,
		Amount:    req.Amount,
		Image:     &req.Image,
	}
	if req.Status != "" {
		patch.Status = &req.Status
	}

	bill := h.bills.Add(r.Context(), patch)
	h.logger.Info("Bill recorded", zap.String("bill_id", bill.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, bill)
}

// Update applies a partial update to a bill
func (h *BillHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateBillRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bill, err := h.bills.Update(r.Context(), chi.URLParam(r, "id"), domain.BillPatch{
		StoreName: req.StoreName,
		Date:      req.Date,
		Amount:    req.Amount,
		Image:     req.Image,
		Status:    req.Status,
	})
	if err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "bill not found")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, bill)
}

// Delete removes a bill
func (h *BillHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.bills.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		middleware.RespondWithError(w, http.StatusNotFound, "bill not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
